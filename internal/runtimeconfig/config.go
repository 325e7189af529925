package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var ErrContentRootRequired = errors.New("codeclash config: content root is required")
var ErrGeneratorOutputDirRequired = errors.New("codeclash config: generator output directory is required when generator is enabled")
var ErrGeneratorWorkersInvalid = errors.New("codeclash config: generator workers must be zero or positive")
var ErrBaseURLInvalid = errors.New("codeclash config: base url must be absolute")
var ErrServerAddrRequired = errors.New("codeclash config: server address is required")
var ErrServerModeInvalid = errors.New("codeclash config: server mode is invalid")
var ErrLoggingProviderUnknown = errors.New("codeclash config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("codeclash config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("codeclash config: logging format is invalid")

// Config aggregates the settings of every module. Fields use simple types so
// YAML files and environment variables map onto them directly.
type Config struct {
	Content   ContentConfig   `yaml:"content"`
	Markdown  MarkdownConfig  `yaml:"markdown"`
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ContentConfig locates the category directories.
type ContentConfig struct {
	Root string `yaml:"root"`
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions     []string `yaml:"extensions"`
	HardWraps      bool     `yaml:"hard_wraps"`
	SafeMode       bool     `yaml:"safe_mode"`
	Highlight      bool     `yaml:"highlight"`
	HighlightStyle string   `yaml:"highlight_style"`
}

// GeneratorConfig captures behaviour for static builds.
type GeneratorConfig struct {
	Enabled         bool   `yaml:"enabled"`
	OutputDir       string `yaml:"output_dir"`
	BaseURL         string `yaml:"base_url"`
	CleanBuild      bool   `yaml:"clean_build"`
	GenerateSitemap bool   `yaml:"generate_sitemap"`
	GenerateRobots  bool   `yaml:"generate_robots"`
	GenerateIndex   bool   `yaml:"generate_index"`
	GenerateAssets  bool   `yaml:"generate_assets"`
	Workers         int    `yaml:"workers"`
}

// ServerConfig captures the HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns defaults for a local checkout: content under
// ./content, builds into ./dist.
func DefaultConfig() Config {
	return Config{
		Content: ContentConfig{
			Root: "content",
		},
		Markdown: MarkdownConfig{
			Highlight:      true,
			HighlightStyle: "github",
		},
		Generator: GeneratorConfig{
			Enabled:         true,
			OutputDir:       "dist",
			BaseURL:         "https://www.code-clash.net",
			CleanBuild:      true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateIndex:   true,
			GenerateAssets:  true,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Root) == "" {
		return ErrContentRootRequired
	}
	if cfg.Generator.Enabled && strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrGeneratorOutputDirRequired
	}
	if cfg.Generator.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrGeneratorWorkersInvalid, cfg.Generator.Workers)
	}
	if base := strings.TrimSpace(cfg.Generator.BaseURL); base != "" {
		parsed, err := url.Parse(base)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: %s", ErrBaseURLInvalid, base)
		}
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return ErrServerAddrRequired
	}
	if mode := strings.TrimSpace(cfg.Server.Mode); mode != "" && !isSupportedMode(mode) {
		return fmt.Errorf("%w: %s", ErrServerModeInvalid, mode)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider != "" && !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "none":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedMode(mode string) bool {
	switch mode {
	case "debug", "release", "test":
		return true
	default:
		return false
	}
}
