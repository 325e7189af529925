package gologger

import (
	"context"
	"reflect"
	"testing"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/runtimeconfig"
)

func TestNewProviderRejectsUnknownFormat(t *testing.T) {
	if _, err := NewProvider(runtimeconfig.LoggingConfig{Format: "xml"}); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestNewProviderRejectsUnknownLevel(t *testing.T) {
	if _, err := NewProvider(runtimeconfig.LoggingConfig{Level: "loud"}); err == nil {
		t.Fatal("expected unsupported level error")
	}
}

func TestNilProviderReturnsNoOp(t *testing.T) {
	var p *Provider
	if logger := p.GetLogger("content"); logger == nil {
		t.Fatal("expected no-op logger from nil provider")
	}
}

func TestQualifyNamesUnderNamespace(t *testing.T) {
	cases := map[string]string{
		"":                    "codeclash",
		"codeclash":           "codeclash",
		"content":             "codeclash.content",
		" codeclash.server ":  "codeclash.server",
		"commands.build.site": "codeclash.commands.build.site",
	}
	for in, want := range cases {
		if got := qualify(in); got != want {
			t.Fatalf("qualify(%q): expected %q, got %q", in, want, got)
		}
	}
	if got := qualifyAll([]string{"content", " ", "codeclash.generator"}); !reflect.DeepEqual(got, []string{"codeclash.content", "codeclash.generator"}) {
		t.Fatalf("unexpected focus list %v", got)
	}
}

func TestProviderSharesChildrenAcrossSpellings(t *testing.T) {
	p, err := NewProvider(runtimeconfig.LoggingConfig{Level: "debug", Format: "console", Focus: []string{"content"}})
	if err != nil {
		t.Fatalf("NewProvider returned error: %v", err)
	}
	short := p.GetLogger("content").(*adapter)
	long := p.GetLogger("codeclash.content").(*adapter)
	if short.inner != long.inner {
		t.Fatal("expected both names to resolve to the same go-logger child")
	}
}

func TestAdapterPrependsEntryFieldsInOrder(t *testing.T) {
	stub := &stubLogger{}
	logger := newAdapter(stub, nil)

	entry := logging.WithEntryContext(
		logging.WithFields(logger, map[string]any{"module": "codeclash.content", "attempt": 2}),
		"article", "c#-java", "java-c#",
	)
	entry.Warn("content.resolve.fallback", "path", "articles/c#-java.md")

	want := []any{
		"module", "codeclash.content",
		"category", "article",
		"slug", "c#-java",
		"requested_slug", "java-c#",
		"attempt", 2,
		"path", "articles/c#-java.md",
	}
	if len(stub.calls) != 1 || stub.calls[0].level != "warn" {
		t.Fatalf("expected one warn call, got %+v", stub.calls)
	}
	if !reflect.DeepEqual(stub.calls[0].args, want) {
		t.Fatalf("unexpected args\n got %v\nwant %v", stub.calls[0].args, want)
	}
}

func TestAdapterFieldsDoNotLeakBetweenChildren(t *testing.T) {
	stub := &stubLogger{}
	base := newAdapter(stub, nil).(*adapter)

	fields := map[string]any{"build_id": "b1"}
	child := base.WithFields(fields)
	fields["build_id"] = "b2"

	child.Info("generator.build.start")
	base.Info("generator.clean.completed")

	if got := stub.calls[0].args; !reflect.DeepEqual(got, []any{"build_id", "b1"}) {
		t.Fatalf("expected copied fields on child, got %v", got)
	}
	if got := stub.calls[1].args; len(got) != 0 {
		t.Fatalf("expected no fields on parent, got %v", got)
	}
}

func TestAdapterWithContextAddsRequestID(t *testing.T) {
	stub := &stubLogger{}
	logger := newAdapter(stub, map[string]any{"module": "codeclash.server"})

	ctx := logging.ContextWithRequestID(context.Background(), "req-7")
	logger.WithContext(ctx).Debug("server.request", "status", 200)

	if len(stub.contexts) != 1 || stub.contexts[0] != ctx {
		t.Fatalf("expected context propagation, got %#v", stub.contexts)
	}
	want := []any{"module", "codeclash.server", "request_id", "req-7", "status", 200}
	if !reflect.DeepEqual(stub.calls[0].args, want) {
		t.Fatalf("unexpected args %v", stub.calls[0].args)
	}
}

type stubCall struct {
	level string
	msg   string
	args  []any
}

type stubLogger struct {
	calls    []stubCall
	contexts []context.Context
}

var _ glog.Logger = (*stubLogger)(nil)

func (s *stubLogger) record(level, msg string, args []any) {
	s.calls = append(s.calls, stubCall{level: level, msg: msg, args: append([]any(nil), args...)})
}

func (s *stubLogger) Trace(msg string, args ...any) { s.record("trace", msg, args) }
func (s *stubLogger) Debug(msg string, args ...any) { s.record("debug", msg, args) }
func (s *stubLogger) Info(msg string, args ...any)  { s.record("info", msg, args) }
func (s *stubLogger) Warn(msg string, args ...any)  { s.record("warn", msg, args) }
func (s *stubLogger) Error(msg string, args ...any) { s.record("error", msg, args) }
func (s *stubLogger) Fatal(msg string, args ...any) { s.record("fatal", msg, args) }

func (s *stubLogger) WithContext(ctx context.Context) glog.Logger {
	s.contexts = append(s.contexts, ctx)
	return s
}
