package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// ParseFrontMatter splits source into its metadata block and body. YAML
// (---), TOML (+++), and JSON (;;;) blocks are recognised. A source without a
// metadata block yields empty metadata and the full input as body; a block
// that fails to decode is an error.
func ParseFrontMatter(source []byte) (map[string]any, []byte, error) {
	normalized := bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))

	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(normalized), &meta)
	if err != nil {
		return nil, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return sanitizeMap(meta), body, nil
}

func sanitizeMap(input map[string]any) map[string]any {
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = sanitizeValue(value)
	}
	return out
}

// sanitizeValue rewrites decoder-specific shapes (map[interface{}]interface{}
// from YAML, typed slices) into JSON-friendly values.
func sanitizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return sanitizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[fmt.Sprint(key)] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = sanitizeValue(v[i])
		}
		return out
	case []map[string]any:
		out := make([]any, len(v))
		for i := range v {
			out[i] = sanitizeMap(v[i])
		}
		return out
	default:
		return v
	}
}
