package commands

import (
	"context"
	"maps"
	"strings"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// DefaultTimeout bounds a command run when no timeout is configured. Builds
// over large content roots may need WithTimeout.
const DefaultTimeout = 5 * time.Minute

const loggerRoot = "commands"

// Logger returns the logger for a command family, named
// "codeclash.commands.<family>".
func Logger(provider interfaces.LoggerProvider, family string) interfaces.Logger {
	family = strings.TrimSpace(family)
	if family == "" {
		family = "core"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, "codeclash."+loggerRoot+"."+family),
		map[string]any{"command_family": family},
	)
}

// HandlerOption configures a Handler instance.
type HandlerOption[T command.Message] func(*Handler[T])

// Handler runs a command function behind validation, a deadline, outcome
// telemetry and go-errors categorisation.
type Handler[T command.Message] struct {
	exec      command.CommandFunc[T]
	logger    interfaces.Logger
	timeout   time.Duration
	operation string
	fields    func(T) map[string]any
	telemetry Telemetry[T]
}

// NewHandler creates a handler that satisfies go-command's Commander interface.
func NewHandler[T command.Message](fn command.CommandFunc[T], opts ...HandlerOption[T]) *Handler[T] {
	if fn == nil {
		panic("commands: handler function cannot be nil")
	}
	h := &Handler[T]{
		exec:    fn,
		logger:  logging.NoOp(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Execute conforms to command.Commander[T].Execute. Every outcome, including
// an invalid message, is reported once through telemetry.
func (h *Handler[T]) Execute(ctx context.Context, msg T) error {
	if ctx == nil {
		ctx = context.Background()
	}

	msgType := command.GetMessageType(msg)
	fields := h.messageFields(msgType, msg)
	logger := logging.WithFields(h.logger, fields)
	info := TelemetryInfo{
		Command:   msgType,
		Operation: h.operation,
		Fields:    fields,
		Logger:    logger,
	}

	if err := command.ValidateMessage(msg); err != nil {
		info.Status, info.Error = TelemetryStatusInvalid, err
		h.report(ctx, msg, info)
		return categorize(TelemetryStatusInvalid, err)
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	start := time.Now()
	err := ctx.Err()
	if err == nil {
		logger.Debug("command.execute.start")
		err = h.exec(ctx, msg)
		if err == nil {
			err = ctx.Err()
		}
	}

	info.Duration = time.Since(start)
	info.Status, info.Error = statusOf(err), err
	h.report(ctx, msg, info)
	return categorize(info.Status, err)
}

func (h *Handler[T]) messageFields(msgType string, msg T) map[string]any {
	fields := map[string]any{"command": msgType}
	if h.operation != "" {
		fields["operation"] = h.operation
	}
	if h.fields != nil {
		maps.Copy(fields, h.fields(msg))
	}
	return fields
}

func (h *Handler[T]) report(ctx context.Context, msg T, info TelemetryInfo) {
	if h.telemetry != nil {
		h.telemetry(ctx, msg, info)
		return
	}
	logTelemetry(info.Logger, info)
}

// WithTimeout overrides the default execution timeout. Zero disables it.
func WithTimeout[T command.Message](timeout time.Duration) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.timeout = max(timeout, 0)
	}
}

// WithLogger injects the logger used during execution. Defaults to a no-op logger.
func WithLogger[T command.Message](logger interfaces.Logger) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.logger = logging.OrNoOp(logger)
	}
}

// WithOperation sets the operation name emitted with every log entry.
func WithOperation[T command.Message](operation string) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.operation = operation
	}
}

// WithMessageFields adds per-message structured fields to log entries.
func WithMessageFields[T command.Message](fn func(T) map[string]any) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.fields = fn
	}
}

// WithTelemetry replaces the default outcome logging with fn.
func WithTelemetry[T command.Message](fn Telemetry[T]) HandlerOption[T] {
	return func(h *Handler[T]) {
		h.telemetry = fn
	}
}
