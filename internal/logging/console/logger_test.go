package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 3, 14, 15, 9, 26, 535897000, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		Level:    "debug",
	})

	logger := provider.GetLogger("codeclash.content")
	logger = logging.WithFields(logger, map[string]any{"module": "codeclash.content"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"build_id": "b-42",
	})
	logger = logger.WithContext(ctx)

	logger.Info("content.resolve.fallback",
		"slug", "vue-react",
		"error", errors.New("not found"),
	)

	got := strings.TrimSpace(buf.String())
	want := `2024-03-14T15:09:26.535897Z INFO content.resolve.fallback build_id=b-42 error="not found" logger=codeclash.content module=codeclash.content slug=vue-react`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer: &buf,
		Level:  "info",
	})

	logger := provider.GetLogger("codeclash.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single entry, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "included.info") {
		t.Fatalf("expected info entry, got %q", lines[0])
	}
}

func TestConsoleLogger_PositionalArguments(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf, Level: "trace"})

	provider.GetLogger("x").Trace("odd.args", "key", 1, "dangling")

	got := buf.String()
	if !strings.Contains(got, "key=1") || !strings.Contains(got, "field_1=dangling") {
		t.Fatalf("expected key and positional field, got %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"warning": console.LevelWarn,
		" error ": console.LevelError,
	}
	for raw, want := range cases {
		got, ok := console.ParseLevel(raw)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", raw, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatal("expected unknown level to be rejected")
	}
}
