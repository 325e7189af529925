package bootstrap

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-codeclash/internal/di"
)

func TestBuildModuleAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "codeclash.yaml")
	if err := os.WriteFile(configPath, []byte("content:\n  root: from-file\nlogging:\n  provider: none\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	resources, err := BuildModule(Options{
		ConfigFile: configPath,
		EnvFiles:   []string{filepath.Join(dir, "missing.env")},
		OutputDir:  filepath.Join(dir, "dist"),
		BaseURL:    "https://example.test",
		DIOptions:  []di.Option{di.WithContentFS(fstest.MapFS{"articles/go-rust.md": {Data: []byte("# Go vs Rust\n")}})},
	})
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	if resources.Module == nil || resources.Logger == nil {
		t.Fatal("expected module and logger to be initialised")
	}
	if resources.Config.Content.Root != "from-file" {
		t.Fatalf("expected content root from file, got %q", resources.Config.Content.Root)
	}
	if resources.Config.Generator.BaseURL != "https://example.test" {
		t.Fatalf("expected base url override, got %q", resources.Config.Generator.BaseURL)
	}
	if resources.Module.Generator() == nil {
		t.Fatal("expected generator service to be configured")
	}
}

func TestBuildModuleRejectsUnknownConfigKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "codeclash.yaml")
	if err := os.WriteFile(configPath, []byte("unknown: true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := BuildModule(Options{ConfigFile: configPath}); err == nil {
		t.Fatal("expected decode error for unknown key")
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" article, ,stack ")
	if !reflect.DeepEqual(got, []string{"article", "stack"}) {
		t.Fatalf("unexpected list %v", got)
	}
	if SplitList("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
