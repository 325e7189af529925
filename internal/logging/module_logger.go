package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

const (
	rootModule      = "codeclash"
	contentModule   = "codeclash.content"
	directiveModule = "codeclash.directive"
	displayModule   = "codeclash.display"
	generatorModule = "codeclash.generator"
	serverModule    = "codeclash.server"
)

const (
	fieldCategory      = "category"
	fieldSlug          = "slug"
	fieldRequestedSlug = "requested_slug"
)

// ModuleLogger returns a logger scoped to module. It falls back to the no-op
// logger when provider is nil or hands back nothing, and always tags entries
// with a "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ContentLogger returns the logger used by the content index and resolver.
func ContentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, contentModule)
}

// DirectiveLogger returns the logger used by the extended dialect compiler.
func DirectiveLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, directiveModule)
}

// DisplayLogger returns the logger used when hydrating rendered bodies.
func DisplayLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, displayModule)
}

// GeneratorLogger returns the logger used by build runs.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// ServerLogger returns the logger used by the HTTP routing layer.
func ServerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, serverModule)
}

// WithEntryContext enriches logger with the category and slug of the entry
// being processed. Empty values are skipped.
func WithEntryContext(logger interfaces.Logger, category, slug, requested string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(category); trimmed != "" {
		fields[fieldCategory] = trimmed
	}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(requested); trimmed != "" && trimmed != slug {
		fields[fieldRequestedSlug] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
