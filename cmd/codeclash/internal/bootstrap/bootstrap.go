package bootstrap

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-codeclash"
	"github.com/goliatone/go-codeclash/internal/di"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/runtimeconfig"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// Options captures configuration shared by the codeclash CLIs.
type Options struct {
	ConfigFile     string
	EnvFiles       []string
	ContentDir     string
	OutputDir      string
	BaseURL        string
	Addr           string
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
	DIOptions      []di.Option
}

// Module wraps the codeclash module and a CLI logger.
type Module struct {
	Module *codeclash.Module
	Config codeclash.Config
	Logger interfaces.Logger
}

// LoadConfig resolves configuration from the YAML file, dotenv files and
// CODECLASH_* variables, then applies non-empty flag overrides.
func LoadConfig(opts Options) (codeclash.Config, error) {
	if err := runtimeconfig.LoadDotEnv(opts.EnvFiles...); err != nil {
		return codeclash.Config{}, err
	}

	cfg := codeclash.DefaultConfig()
	if path := strings.TrimSpace(opts.ConfigFile); path != "" {
		loaded, err := runtimeconfig.LoadFile(path)
		if err != nil {
			return codeclash.Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return codeclash.Config{}, err
	}

	if dir := strings.TrimSpace(opts.ContentDir); dir != "" {
		cfg.Content.Root = dir
	}
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		cfg.Generator.OutputDir = dir
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.Generator.BaseURL = base
	}
	if addr := strings.TrimSpace(opts.Addr); addr != "" {
		cfg.Server.Addr = addr
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	return cfg, nil
}

// BuildModule constructs a codeclash module for CLI use.
func BuildModule(opts Options) (*Module, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("load codeclash config: %w", err)
	}

	diOpts := append([]di.Option{}, opts.DIOptions...)
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := codeclash.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise codeclash module: %w", err)
	}

	return &Module{
		Module: module,
		Config: cfg,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "codeclash.cli"),
	}, nil
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
