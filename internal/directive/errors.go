package directive

import "errors"

var (
	// ErrUnterminated is returned when an opening tag has no matching close.
	ErrUnterminated = errors.New("directive: unterminated directive")
	// ErrMismatched is returned when a closing tag does not match the innermost open tag.
	ErrMismatched = errors.New("directive: mismatched closing tag")
	// ErrUnexpectedClose is returned for a closing tag with nothing open.
	ErrUnexpectedClose = errors.New("directive: unexpected closing tag")
	// ErrMalformedTag is returned when a tag cannot be tokenised.
	ErrMalformedTag = errors.New("directive: malformed tag")

	// ErrDuplicateDefinition indicates an attempt to register a directive name twice.
	ErrDuplicateDefinition = errors.New("directive: duplicate definition")
	// ErrInvalidDefinition occurs when a definition is missing its name or renderer.
	ErrInvalidDefinition = errors.New("directive: invalid definition")
	// ErrMissingProp indicates a required prop was not supplied.
	ErrMissingProp = errors.New("directive: missing required prop")
	// ErrUnknownDirective is returned when no definition is registered for a name.
	ErrUnknownDirective = errors.New("directive: unknown directive")
)
