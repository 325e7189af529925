package content

import (
	"testing"
	"time"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

func TestExtractHelpers(t *testing.T) {
	metadata := map[string]any{
		"title":       "  React vs Vue ",
		"description": "Two frameworks",
		"date":        "2024-05-01",
		"tags":        []any{"frontend"},
		"year":        float64(2024),
	}

	if got := ExtractTitle(metadata); got != "React vs Vue" {
		t.Fatalf("ExtractTitle = %q", got)
	}
	if got := ExtractDescription(metadata); got != "Two frameworks" {
		t.Fatalf("ExtractDescription = %q", got)
	}
	if got := ExtractString(metadata, "tags"); got != "" {
		t.Fatalf("expected non-scalar to read empty, got %q", got)
	}
	if got := ExtractString(metadata, "year"); got != "2024" {
		t.Fatalf("expected formatted number, got %q", got)
	}
	if got := ExtractTitle(nil); got != "" {
		t.Fatalf("expected empty title for nil metadata, got %q", got)
	}

	date, ok := ExtractDate(metadata)
	if !ok || !date.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("ExtractDate = %v, %v", date, ok)
	}
	stamp := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	if got, ok := ExtractDate(map[string]any{"date": stamp}); !ok || !got.Equal(stamp) {
		t.Fatalf("ExtractDate(time.Time) = %v, %v", got, ok)
	}
	if _, ok := ExtractDate(map[string]any{"date": "someday"}); ok {
		t.Fatal("expected unparseable date to be rejected")
	}
}

func TestComparisonTitle(t *testing.T) {
	descriptor := interfaces.EntryDescriptor{Category: interfaces.CategoryArticle, Slug: "python-javascript"}

	if got := ComparisonTitle(descriptor, map[string]any{"title": "Python vs JavaScript"}); got != "Python vs JavaScript" {
		t.Fatalf("expected metadata title, got %q", got)
	}
	if got := ComparisonTitle(descriptor, nil); got != "python vs javascript" {
		t.Fatalf("expected slug fallback, got %q", got)
	}
	multi := interfaces.EntryDescriptor{Category: interfaces.CategoryArticle, Slug: "a-b-c"}
	if got := ComparisonTitle(multi, nil); got != "a vs b-c" {
		t.Fatalf("expected first separator replaced, got %q", got)
	}
}

func TestDisplayTitle(t *testing.T) {
	stack := interfaces.EntryDescriptor{Category: interfaces.CategoryStack, Slug: "ruby-on-rails"}
	if got := DisplayTitle(stack, nil); got != "Ruby On Rails" {
		t.Fatalf("expected humanized slug, got %q", got)
	}
	article := interfaces.EntryDescriptor{Category: interfaces.CategoryArticle, Slug: "go-rust"}
	if got := DisplayTitle(article, nil); got != "go vs rust" {
		t.Fatalf("expected comparison fallback, got %q", got)
	}
	if got := DisplayTitle(stack, map[string]any{"title": "Rails"}); got != "Rails" {
		t.Fatalf("expected metadata title, got %q", got)
	}
}
