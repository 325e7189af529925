package logging

import (
	"maps"
	"slices"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when it implements
// interfaces.FieldsLogger. Loggers without field support are returned as is.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// OrNoOp returns logger, or the no-op logger when logger is nil.
func OrNoOp(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	return logger
}

// leadingFields are emitted first, in this order, so entries about the same
// content line up when scanned.
var leadingFields = []string{"module", fieldCategory, fieldSlug, fieldRequestedSlug, fieldRequestID, "build_id"}

// FieldArgs flattens fields into alternating key/value arguments. Module,
// entry and request fields come first; the rest follow in key order.
func FieldArgs(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	args := make([]any, 0, len(fields)*2)
	for _, key := range leadingFields {
		if value, ok := fields[key]; ok {
			args = append(args, key, value)
		}
	}
	rest := make([]string, 0, len(fields))
	for key := range fields {
		if !slices.Contains(leadingFields, key) {
			rest = append(rest, key)
		}
	}
	slices.Sort(rest)
	for _, key := range rest {
		args = append(args, key, fields[key])
	}
	return args
}
