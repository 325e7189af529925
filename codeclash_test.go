package codeclash_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-codeclash"
	"github.com/goliatone/go-codeclash/internal/di"
)

func TestModuleResolvesThroughFacade(t *testing.T) {
	cfg := codeclash.DefaultConfig()
	cfg.Logging.Provider = "none"
	cfg.Generator.Enabled = false

	module, err := codeclash.New(cfg, di.WithContentFS(fstest.MapFS{
		"articles/c#-java.md": {Data: []byte("---\ntitle: C# vs Java\n---\n\nBody\n")},
		"articles/go-rust.md": {Data: []byte("# Go vs Rust\n")},
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	entries, err := module.Content().ListEntries(context.Background(), codeclash.CategoryArticle)
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if pairs := codeclash.FilterAvailablePairings(entries, "java"); len(pairs) != 1 || pairs[0] != "c#" {
		t.Fatalf("unexpected pairings %v", pairs)
	}

	entry, err := module.Content().Resolve(context.Background(), codeclash.CategoryArticle, "java-c[-]")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if entry.Slug != "c#-java" {
		t.Fatalf("expected c#-java, got %q", entry.Slug)
	}

	_, err = module.Content().Resolve(context.Background(), codeclash.CategoryArticle, "missing")
	if !errors.Is(err, codeclash.ErrNotFound) || codeclash.KindOf(err) != "not_found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := codeclash.DefaultConfig()
	cfg.Generator.Workers = -1
	if _, err := codeclash.New(cfg); !errors.Is(err, codeclash.ErrGeneratorWorkersInvalid) {
		t.Fatalf("expected ErrGeneratorWorkersInvalid, got %v", err)
	}
}
