package content

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

var (
	// ErrNotFound is returned when no source file matches a slug, including
	// after the reversed-order fallback.
	ErrNotFound = errors.New("content: entry not found")
	// ErrIO is returned when storage cannot be listed or read.
	ErrIO = errors.New("content: storage unreadable")
	// ErrParse is returned when a metadata block is malformed.
	ErrParse = errors.New("content: malformed metadata block")
	// ErrRender is returned when a body cannot be transformed.
	ErrRender = errors.New("content: render failed")
	// ErrUnknownCategory is returned for categories outside the known set.
	ErrUnknownCategory = errors.New("content: unknown category")
)

const (
	notFoundCode        = "CONTENT_NOT_FOUND"
	ioErrorCode         = "CONTENT_IO_ERROR"
	parseErrorCode      = "CONTENT_PARSE_ERROR"
	renderErrorCode     = "CONTENT_RENDER_ERROR"
	unknownCategoryCode = "CONTENT_UNKNOWN_CATEGORY"
)

// Kind classifies resolver failures.
type Kind string

const (
	KindNone     Kind = ""
	KindNotFound Kind = "not_found"
	KindIO       Kind = "io_error"
	KindParse    Kind = "parse_error"
	KindRender   Kind = "render_error"
	// KindOther covers errors that did not originate in this package, such
	// as context cancellation.
	KindOther Kind = "other"
)

// KindOf reports which failure kind err carries.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownCategory):
		return KindNotFound
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrParse):
		return KindParse
	case errors.Is(err, ErrRender):
		return KindRender
	default:
		return KindOther
	}
}

func notFoundError(category interfaces.Category, slug string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s/%s", ErrNotFound, category, slug), goerrors.CategoryNotFound, "content entry not found").
		WithTextCode(notFoundCode)
}

func unknownCategoryError(category interfaces.Category) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownCategory, category), goerrors.CategoryNotFound, "content category not found").
		WithTextCode(unknownCategoryCode)
}

func ioError(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrIO, path, err), goerrors.CategoryInternal, "content storage unreadable").
		WithTextCode(ioErrorCode)
}

func parseError(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrParse, path, err), goerrors.CategoryBadInput, "content metadata malformed").
		WithTextCode(parseErrorCode)
}

func renderError(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrRender, path, err), goerrors.CategoryInternal, "content render failed").
		WithTextCode(renderErrorCode)
}
