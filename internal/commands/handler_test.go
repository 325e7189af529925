package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

type testMessage struct {
	Slug string
}

func (testMessage) Type() string { return "codeclash.test.message" }

func (testMessage) Validate() error { return nil }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "codeclash.test.invalid" }

func (invalidMessage) Validate() error {
	return errors.New("invalid")
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := h.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestHandlerValidationShortCircuitsExecution(t *testing.T) {
	called := false
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		called = true
		return nil
	})

	err := h.Execute(context.Background(), invalidMessage{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when validation fails")
	}
}

func TestHandlerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	err := h.Execute(ctx, testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if called {
		t.Fatal("expected handler not to run when context is cancelled")
	}
}

func TestHandlerWrapsExecutionError(t *testing.T) {
	execErr := errors.New("boom")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return execErr
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if !errors.Is(err, execErr) {
		t.Fatalf("expected original error to stay reachable, got %v", err)
	}
}

func TestHandlerKeepsCategorisedErrors(t *testing.T) {
	notFound := goerrors.Wrap(errors.New("missing"), goerrors.CategoryNotFound, "entry not found")
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return notFound
	})

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryNotFound) {
		t.Fatalf("expected not found category to be preserved, got %v", err)
	}
}

func TestHandlerHonoursTimeoutOption(t *testing.T) {
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := h.Execute(context.Background(), testMessage{})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category for timeout, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestHandlerTelemetryReceivesFields(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return nil
	},
		WithOperation[testMessage]("entry.resolve"),
		WithMessageFields[testMessage](func(msg testMessage) map[string]any {
			return map[string]any{"slug": msg.Slug}
		}),
		WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
			got = info
		}),
	)

	if err := h.Execute(context.Background(), testMessage{Slug: "react-vue"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got.Status != TelemetryStatusSuccess || got.Command != "codeclash.test.message" || got.Operation != "entry.resolve" {
		t.Fatalf("unexpected telemetry %+v", got)
	}
	if got.Fields["slug"] != "react-vue" {
		t.Fatalf("expected message fields, got %v", got.Fields)
	}
}

func TestHandlerTelemetryReportsFailures(t *testing.T) {
	var statuses []TelemetryStatus
	record := WithTelemetry[testMessage](func(_ context.Context, _ testMessage, info TelemetryInfo) {
		statuses = append(statuses, info.Status)
	})

	failing := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return errors.New("boom")
	}, record)
	_ = failing.Execute(context.Background(), testMessage{})

	cancelled := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		return context.Canceled
	}, record)
	_ = cancelled.Execute(context.Background(), testMessage{})

	if len(statuses) != 2 || statuses[0] != TelemetryStatusFailed || statuses[1] != TelemetryStatusContextError {
		t.Fatalf("unexpected statuses %v", statuses)
	}
}

func textCode(t *testing.T, err error) string {
	t.Helper()
	var wrapped *goerrors.Error
	if !errors.As(err, &wrapped) {
		t.Fatalf("expected go-errors error, got %T: %v", err, err)
	}
	return wrapped.TextCode
}

func TestHandlerTextCodes(t *testing.T) {
	invalid := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error { return nil })
	if got := textCode(t, invalid.Execute(context.Background(), invalidMessage{})); got != "CODECLASH_COMMAND_INVALID" {
		t.Fatalf("unexpected invalid code %q", got)
	}

	failing := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error { return errors.New("boom") })
	if got := textCode(t, failing.Execute(context.Background(), testMessage{})); got != "CODECLASH_COMMAND_FAILED" {
		t.Fatalf("unexpected failure code %q", got)
	}

	slow := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error {
		<-ctx.Done()
		return ctx.Err()
	}, WithTimeout[testMessage](time.Millisecond))
	if got := textCode(t, slow.Execute(context.Background(), testMessage{})); got != "CODECLASH_COMMAND_TIMEOUT" {
		t.Fatalf("unexpected timeout code %q", got)
	}

	canceled := NewHandler[testMessage](func(ctx context.Context, msg testMessage) error { return context.Canceled })
	if got := textCode(t, canceled.Execute(context.Background(), testMessage{})); got != "CODECLASH_COMMAND_CANCELED" {
		t.Fatalf("unexpected cancel code %q", got)
	}
}

func TestHandlerTelemetryReportsInvalidMessages(t *testing.T) {
	var got TelemetryInfo
	h := NewHandler[invalidMessage](func(ctx context.Context, msg invalidMessage) error {
		return nil
	}, WithTelemetry[invalidMessage](func(_ context.Context, _ invalidMessage, info TelemetryInfo) {
		got = info
	}))

	_ = h.Execute(context.Background(), invalidMessage{})
	if got.Status != TelemetryStatusInvalid || got.Command != "codeclash.test.invalid" || got.Error == nil {
		t.Fatalf("unexpected telemetry %+v", got)
	}
}

type namingProvider struct {
	names []string
}

func (p *namingProvider) GetLogger(name string) interfaces.Logger {
	p.names = append(p.names, name)
	return logging.NoOp()
}

func TestLoggerNamesCommandFamilies(t *testing.T) {
	provider := &namingProvider{}
	Logger(provider, " build ")
	Logger(provider, "")

	want := []string{"codeclash.commands.build", "codeclash.commands.core"}
	if len(provider.names) != 2 || provider.names[0] != want[0] || provider.names[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, provider.names)
	}
}
