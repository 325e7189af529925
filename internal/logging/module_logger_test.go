package logging

import (
	"context"
	"reflect"
	"testing"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "codeclash.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ContentLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != contentModule {
		t.Fatalf("expected module %s, got %v", contentModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != contentModule {
		t.Fatalf("expected module field %s, got %v", contentModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestWithEntryContextSkipsEmptyAndDuplicateValues(t *testing.T) {
	rec := &recordingLogger{}

	WithEntryContext(rec, "article", "react-vue", "react-vue")
	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldCategory] != "article" || fields[fieldSlug] != "react-vue" {
		t.Fatalf("unexpected fields: %v", fields)
	}
	if _, ok := fields[fieldRequestedSlug]; ok {
		t.Fatalf("requested slug should be omitted when equal to slug: %v", fields)
	}

	WithEntryContext(rec, "article", "vue-react", "react-vue")
	if rec.fields[1][fieldRequestedSlug] != "react-vue" {
		t.Fatalf("expected requested slug field, got %v", rec.fields[1])
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"build_id": "a"})
	ctx = ContextWithFields(ctx, map[string]any{"worker": 2})

	fields := ContextFields(ctx)
	if fields["build_id"] != "a" || fields["worker"] != 2 {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	fields["build_id"] = "mutated"
	if ContextFields(ctx)["build_id"] != "a" {
		t.Fatal("expected ContextFields to return a copy")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), " req-1 ")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("expected trimmed request id, got %q", got)
	}
	if ContextWithRequestID(ctx, "") != ctx {
		t.Fatal("expected blank id to leave the context untouched")
	}
	if RequestID(context.Background()) != "" {
		t.Fatal("expected no request id on a bare context")
	}
}

func TestFieldArgsOrdersEntryFieldsFirst(t *testing.T) {
	got := FieldArgs(map[string]any{
		"zeta":           1,
		"slug":           "react-vue",
		"alpha":          2,
		"module":         "codeclash.content",
		"request_id":     "r",
		"category":       "article",
		"requested_slug": "vue-react",
	})
	want := []any{
		"module", "codeclash.content",
		"category", "article",
		"slug", "react-vue",
		"requested_slug", "vue-react",
		"request_id", "r",
		"alpha", 2,
		"zeta", 1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected order\n got %v\nwant %v", got, want)
	}
	if FieldArgs(nil) != nil {
		t.Fatal("expected nil for empty fields")
	}
}
