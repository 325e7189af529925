// Package gologger plugs github.com/goliatone/go-logger into the module's
// logging contract.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/runtimeconfig"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

const namespace = "codeclash"

// Provider hands out go-logger children named under the codeclash namespace.
type Provider struct {
	root *glog.BaseLogger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

// NewProvider builds the go-logger root from the logging section of the
// runtime config. Focus accepts module names with or without the
// "codeclash." prefix.
func NewProvider(cfg runtimeconfig.LoggingConfig) (*Provider, error) {
	options := []glog.Option{glog.WithName(namespace)}

	if cfg.Level != "" {
		level, ok := levels[strings.ToLower(strings.TrimSpace(cfg.Level))]
		if !ok {
			return nil, fmt.Errorf("logging: unsupported go-logger level %q", cfg.Level)
		}
		options = append(options, glog.WithLevel(level))
	}

	loggerType, ok := loggerTypes[strings.ToLower(strings.TrimSpace(cfg.Format))]
	if !ok {
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}
	options = append(options, glog.WithLoggerType(loggerType), glog.WithAddSource(cfg.AddSource))

	root := glog.NewLogger(options...)
	if focus := qualifyAll(cfg.Focus); len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

var loggerTypes = map[string]string{
	"":        glog.LoggerTypeJSON,
	"json":    glog.LoggerTypeJSON,
	"console": glog.LoggerTypeConsole,
	"pretty":  glog.LoggerTypePretty,
}

// GetLogger returns the child logger for a module. "content" and
// "codeclash.content" name the same child.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	return newAdapter(p.root.GetLogger(qualify(name)), nil)
}

func qualify(name string) string {
	name = strings.Trim(strings.TrimSpace(name), ".")
	switch {
	case name == "", name == namespace:
		return namespace
	case strings.HasPrefix(name, namespace+"."):
		return name
	default:
		return namespace + "." + name
	}
}

func qualifyAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			out = append(out, qualify(name))
		}
	}
	return out
}

// adapter keeps structured fields itself and prepends them to every call,
// so entry and request fields keep a stable order in the output.
type adapter struct {
	inner  glog.Logger
	fields map[string]any
	args   []any
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func newAdapter(inner glog.Logger, fields map[string]any) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner, fields: fields, args: logging.FieldArgs(fields)}
}

func (l *adapter) with(args []any) []any {
	if len(l.args) == 0 {
		return args
	}
	out := make([]any, 0, len(l.args)+len(args))
	return append(append(out, l.args...), args...)
}

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, l.with(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.with(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.with(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.with(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, l.with(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.with(args)...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return newAdapter(l.inner, merged)
}

// WithContext binds ctx to the go-logger child and folds in the fields it
// carries, such as the request id set by the HTTP layer.
func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	merged := maps.Clone(l.fields)
	if extra := logging.ContextFields(ctx); len(extra) > 0 {
		if merged == nil {
			merged = make(map[string]any, len(extra))
		}
		maps.Copy(merged, extra)
	}
	return newAdapter(l.inner.WithContext(ctx), merged)
}
