package buildcmd

import (
	"context"
	"strings"

	"github.com/goliatone/go-codeclash/internal/commands"
	"github.com/goliatone/go-codeclash/internal/generator"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// WriterFactory returns the artifact writer for an output directory.
type WriterFactory func(outputDir string) generator.ArtifactWriter

// Option configures a BuildSiteHandler.
type Option func(*BuildSiteHandler)

// WithWriterFactory overrides how output directories become writers.
func WithWriterFactory(factory WriterFactory) Option {
	return func(h *BuildSiteHandler) {
		if factory != nil {
			h.writers = factory
		}
	}
}

// WithHandlerOptions forwards options to the shared command handler.
func WithHandlerOptions(opts ...commands.HandlerOption[BuildSiteCommand]) Option {
	return func(h *BuildSiteHandler) {
		h.handlerOpts = append(h.handlerOpts, opts...)
	}
}

// BuildSiteHandler runs generator builds using the shared command handler foundation.
type BuildSiteHandler struct {
	inner       *commands.Handler[BuildSiteCommand]
	resolver    interfaces.ContentResolver
	defaults    generator.Config
	logger      interfaces.Logger
	writers     WriterFactory
	handlerOpts []commands.HandlerOption[BuildSiteCommand]
}

// NewBuildSiteHandler constructs a handler. defaults supplies every generator
// toggle the command does not override.
func NewBuildSiteHandler(resolver interfaces.ContentResolver, defaults generator.Config, logger interfaces.Logger, opts ...Option) *BuildSiteHandler {
	h := &BuildSiteHandler{
		resolver: resolver,
		defaults: defaults,
		logger:   logging.OrNoOp(logger),
		writers: func(dir string) generator.ArtifactWriter {
			return generator.NewFSWriter(dir)
		},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}

	handlerOpts := []commands.HandlerOption[BuildSiteCommand]{
		commands.WithLogger[BuildSiteCommand](h.logger),
		commands.WithOperation[BuildSiteCommand]("build.site"),
		commands.WithMessageFields[BuildSiteCommand](func(msg BuildSiteCommand) map[string]any {
			fields := map[string]any{"output_dir": msg.OutputDir}
			if msg.Workers > 0 {
				fields["workers"] = msg.Workers
			}
			if msg.Clean {
				fields["clean"] = true
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry[BuildSiteCommand](commands.DefaultTelemetry[BuildSiteCommand](nil)),
	}
	handlerOpts = append(handlerOpts, h.handlerOpts...)
	h.inner = commands.NewHandler[BuildSiteCommand](h.exec, handlerOpts...)
	return h
}

func (h *BuildSiteHandler) exec(ctx context.Context, msg BuildSiteCommand) error {
	cfg := h.defaults
	if base := strings.TrimSpace(msg.BaseURL); base != "" {
		cfg.BaseURL = base
	}
	if msg.Workers > 0 {
		cfg.Workers = msg.Workers
	}
	if msg.Clean {
		cfg.CleanBuild = true
	}

	deps := generator.Dependencies{Resolver: h.resolver, Logger: h.logger}
	if !msg.DryRun {
		deps.Writer = h.writers(strings.TrimSpace(msg.OutputDir))
	}

	result, err := generator.NewService(cfg, deps).Build(ctx, generator.BuildOptions{
		Categories: msg.categories(),
		DryRun:     msg.DryRun,
	})
	if msg.ResultCallback != nil && result != nil {
		msg.ResultCallback(result)
	}
	return err
}

// Execute satisfies command.Commander[BuildSiteCommand].
func (h *BuildSiteHandler) Execute(ctx context.Context, msg BuildSiteCommand) error {
	return h.inner.Execute(ctx, msg)
}
