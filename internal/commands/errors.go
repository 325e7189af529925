package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

type failure struct {
	category goerrors.Category
	code     string
	message  string
}

// failures maps each unsuccessful outcome to the go-errors category and text
// code surfaced to callers. Deadline errors get their own code so the CLI
// can tell a slow build from a cancelled one.
var failures = map[TelemetryStatus]failure{
	TelemetryStatusInvalid:      {goerrors.CategoryValidation, "CODECLASH_COMMAND_INVALID", "command message invalid"},
	TelemetryStatusFailed:       {goerrors.CategoryCommand, "CODECLASH_COMMAND_FAILED", "command execution failed"},
	TelemetryStatusContextError: {goerrors.CategoryCommand, "CODECLASH_COMMAND_CANCELED", "command execution canceled"},
}

var deadlineFailure = failure{goerrors.CategoryCommand, "CODECLASH_COMMAND_TIMEOUT", "command execution deadline exceeded"}

// statusOf classifies the error returned by a command function.
func statusOf(err error) TelemetryStatus {
	switch {
	case err == nil:
		return TelemetryStatusSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return TelemetryStatusContextError
	default:
		return TelemetryStatusFailed
	}
}

// categorize wraps err for status. Errors that already carry a go-errors
// category, such as content NotFound, pass through untouched.
func categorize(status TelemetryStatus, err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	f, ok := failures[status]
	if !ok {
		return err
	}
	if status == TelemetryStatusContextError && errors.Is(err, context.DeadlineExceeded) {
		f = deadlineFailure
	}
	return goerrors.Wrap(err, f.category, f.message).WithTextCode(f.code)
}
