package markdown

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightCSS returns the stylesheet matching the class names emitted for
// highlighted code blocks. Unknown style names fall back to chroma's default.
func HighlightCSS(style string) (string, error) {
	if strings.TrimSpace(style) == "" {
		style = DefaultHighlightStyle
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	var buf bytes.Buffer
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", fmt.Errorf("markdown highlight css %s: %w", style, err)
	}
	return buf.String(), nil
}
