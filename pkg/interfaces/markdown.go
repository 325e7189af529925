package interfaces

// MarkdownParser converts markdown bytes into HTML. Implementations must be
// safe to reuse across goroutines.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
	// Highlight toggles syntax highlighting of fenced code blocks. The zero
	// value leaves the parser default in place.
	Highlight *bool
	// HighlightStyle names the chroma style used when emitting CSS.
	HighlightStyle string
}
