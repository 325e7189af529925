package di

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/goliatone/go-codeclash/internal/commands"
	buildcmd "github.com/goliatone/go-codeclash/internal/commands/build"
	entrycmd "github.com/goliatone/go-codeclash/internal/commands/entry"
	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/internal/directive"
	"github.com/goliatone/go-codeclash/internal/display"
	"github.com/goliatone/go-codeclash/internal/generator"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/logging/console"
	"github.com/goliatone/go-codeclash/internal/logging/gologger"
	"github.com/goliatone/go-codeclash/internal/markdown"
	"github.com/goliatone/go-codeclash/internal/runtimeconfig"
	"github.com/goliatone/go-codeclash/internal/server"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// Container wires module dependencies from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider  interfaces.LoggerProvider
	contentFS       fs.FS
	parser          interfaces.MarkdownParser
	writer          generator.ArtifactWriter
	extraDirectives []directive.Definition

	registry     *directive.Registry
	compiler     *directive.Compiler
	contentSvc   *content.Service
	renderer     *display.Renderer
	generatorSvc generator.Service

	buildHandler   *buildcmd.BuildSiteHandler
	resolveHandler *entrycmd.ResolveEntryHandler

	serverOnce sync.Once
	server     *server.Server
	serverErr  error
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by Logging.Provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithContentFS reads categories from fsys instead of Content.Root.
func WithContentFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.contentFS = fsys
	}
}

// WithMarkdownParser overrides the goldmark parser.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		c.parser = parser
	}
}

// WithArtifactWriter overrides the filesystem writer used by the generator.
func WithArtifactWriter(writer generator.ArtifactWriter) Option {
	return func(c *Container) {
		c.writer = writer
	}
}

// WithDirectives registers extra display components next to the built-ins.
func WithDirectives(defs ...directive.Definition) Option {
	return func(c *Container) {
		c.extraDirectives = append(c.extraDirectives, defs...)
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogging(); err != nil {
		return nil, err
	}
	if err := c.configureDirectives(); err != nil {
		return nil, err
	}
	c.configureContent()
	c.configureGenerator()
	c.configureCommands()

	logging.ModuleLogger(c.loggerProvider, "codeclash").Debug("container.configured",
		"content_root", cfg.Content.Root,
		"generator_enabled", cfg.Generator.Enabled,
		"directives", len(c.registry.List()),
	)
	return c, nil
}

func (c *Container) configureLogging() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		c.loggerProvider = console.NewProvider(console.Options{Level: cfg.Level})
	case "gologger":
		provider, err := gologger.NewProvider(cfg)
		if err != nil {
			return fmt.Errorf("di: configure logging: %w", err)
		}
		c.loggerProvider = provider
	}
	return nil
}

func (c *Container) configureDirectives() error {
	c.registry = directive.NewRegistry()
	if err := display.RegisterBuiltIns(c.registry); err != nil {
		return fmt.Errorf("di: register built-in directives: %w", err)
	}
	for _, def := range c.extraDirectives {
		if err := c.registry.Register(def); err != nil {
			return fmt.Errorf("di: register directive %s: %w", def.Name, err)
		}
	}
	c.renderer = display.NewRenderer(c.registry, display.WithLogger(logging.DisplayLogger(c.loggerProvider)))
	return nil
}

func (c *Container) configureContent() {
	if c.parser == nil {
		md := c.Config.Markdown
		highlight := md.Highlight
		c.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{
			Extensions:     md.Extensions,
			HardWraps:      md.HardWraps,
			SafeMode:       md.SafeMode,
			Highlight:      &highlight,
			HighlightStyle: md.HighlightStyle,
		})
	}
	c.compiler = directive.NewCompiler(c.parser, directive.WithCompilerLogger(logging.DirectiveLogger(c.loggerProvider)))

	root := c.contentFS
	if root == nil {
		root = os.DirFS(c.Config.Content.Root)
	}
	c.contentSvc = content.NewService(root,
		content.WithMarkdownParser(c.parser),
		content.WithPayloadCompiler(c.compiler),
		content.WithLogger(logging.ContentLogger(c.loggerProvider)),
	)
}

func (c *Container) generatorConfig() generator.Config {
	cfg := c.Config.Generator
	return generator.Config{
		BaseURL:         cfg.BaseURL,
		CleanBuild:      cfg.CleanBuild,
		GenerateSitemap: cfg.GenerateSitemap,
		GenerateRobots:  cfg.GenerateRobots,
		GenerateIndex:   cfg.GenerateIndex,
		GenerateAssets:  cfg.GenerateAssets,
		HighlightStyle:  c.Config.Markdown.HighlightStyle,
		Workers:         cfg.Workers,
	}
}

func (c *Container) configureGenerator() {
	if !c.Config.Generator.Enabled {
		c.generatorSvc = generator.NewDisabledService()
		return
	}
	writer := c.writer
	if writer == nil {
		writer = generator.NewFSWriter(c.Config.Generator.OutputDir)
	}
	c.generatorSvc = generator.NewService(c.generatorConfig(), generator.Dependencies{
		Resolver: c.contentSvc,
		Writer:   writer,
		Logger:   logging.GeneratorLogger(c.loggerProvider),
	})
}

func (c *Container) configureCommands() {
	buildOpts := []buildcmd.Option{}
	if c.writer != nil {
		writer := c.writer
		buildOpts = append(buildOpts, buildcmd.WithWriterFactory(func(string) generator.ArtifactWriter {
			return writer
		}))
	}
	c.buildHandler = buildcmd.NewBuildSiteHandler(
		c.contentSvc,
		c.generatorConfig(),
		commands.Logger(c.loggerProvider, "build"),
		buildOpts...,
	)
	c.resolveHandler = entrycmd.NewResolveEntryHandler(
		c.contentSvc,
		c.renderer,
		commands.Logger(c.loggerProvider, "entry"),
	)
}

// LoggerProvider returns the provider every module logger is drawn from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// ContentService returns the content index and resolver.
func (c *Container) ContentService() *content.Service {
	return c.contentSvc
}

// DirectiveRegistry returns the display component registry.
func (c *Container) DirectiveRegistry() *directive.Registry {
	return c.registry
}

// Renderer returns the display renderer.
func (c *Container) Renderer() *display.Renderer {
	return c.renderer
}

// GeneratorService returns the static build service. It fails every call
// with generator.ErrServiceDisabled when the generator is disabled.
func (c *Container) GeneratorService() generator.Service {
	return c.generatorSvc
}

// BuildSiteHandler returns the build command handler.
func (c *Container) BuildSiteHandler() *buildcmd.BuildSiteHandler {
	return c.buildHandler
}

// ResolveEntryHandler returns the resolve command handler.
func (c *Container) ResolveEntryHandler() *entrycmd.ResolveEntryHandler {
	return c.resolveHandler
}

// Server builds the HTTP server on first use.
func (c *Container) Server() (*server.Server, error) {
	c.serverOnce.Do(func() {
		cfg := c.Config.Server
		c.server, c.serverErr = server.New(server.Config{
			Addr:            cfg.Addr,
			BaseURL:         c.Config.Generator.BaseURL,
			Mode:            cfg.Mode,
			ReadTimeout:     cfg.ReadTimeout,
			WriteTimeout:    cfg.WriteTimeout,
			ShutdownTimeout: cfg.ShutdownTimeout,
		}, server.Dependencies{
			Resolver: c.contentSvc,
			Renderer: c.renderer,
			Logger:   logging.ServerLogger(c.loggerProvider),
		})
	})
	return c.server, c.serverErr
}
