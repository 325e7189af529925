package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "CODECLASH_"

// LoadFile reads a YAML document over DefaultConfig. Keys absent from the
// file keep their defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("codeclash config: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("codeclash config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given files into the process
// environment without overriding variables that are already set. With no
// arguments it reads ".env". Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("codeclash config: load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with CODECLASH_* variables from the process environment.
func (cfg *Config) ApplyEnv() error {
	return cfg.applyEnv(os.LookupEnv)
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		value, ok := lookup(EnvPrefix + key)
		if !ok {
			return "", false
		}
		return strings.TrimSpace(value), true
	}

	strs := map[string]*string{
		"CONTENT_ROOT":    &cfg.Content.Root,
		"OUTPUT_DIR":      &cfg.Generator.OutputDir,
		"BASE_URL":        &cfg.Generator.BaseURL,
		"HIGHLIGHT_STYLE": &cfg.Markdown.HighlightStyle,
		"ADDR":            &cfg.Server.Addr,
		"SERVER_MODE":     &cfg.Server.Mode,
		"LOG_PROVIDER":    &cfg.Logging.Provider,
		"LOG_LEVEL":       &cfg.Logging.Level,
		"LOG_FORMAT":      &cfg.Logging.Format,
	}
	for key, target := range strs {
		if value, ok := get(key); ok {
			*target = value
		}
	}

	bools := map[string]*bool{
		"GENERATOR_ENABLED": &cfg.Generator.Enabled,
		"CLEAN_BUILD":       &cfg.Generator.CleanBuild,
		"SITEMAP":           &cfg.Generator.GenerateSitemap,
		"ROBOTS":            &cfg.Generator.GenerateRobots,
		"HIGHLIGHT":         &cfg.Markdown.Highlight,
	}
	for key, target := range bools {
		value, ok := get(key)
		if !ok || value == "" {
			continue
		}
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("codeclash config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = parsed
	}

	if value, ok := get("WORKERS"); ok && value != "" {
		workers, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("codeclash config: %sWORKERS: %w", EnvPrefix, err)
		}
		cfg.Generator.Workers = workers
	}
	if value, ok := get("SHUTDOWN_TIMEOUT"); ok && value != "" {
		timeout, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("codeclash config: %sSHUTDOWN_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Server.ShutdownTimeout = timeout
	}
	if value, ok := get("LOG_FOCUS"); ok {
		cfg.Logging.Focus = splitList(value)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
