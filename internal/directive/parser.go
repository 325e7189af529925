package directive

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// esmPattern matches top-level module statements that extended sources may
// carry. They have no meaning once components are resolved by name.
var esmPattern = regexp.MustCompile(`^(import\s+[^\n]*\s+from\s+['"][^'"\n]+['"];?|import\s+['"][^'"\n]+['"];?|export\s+(const|let|var|function|default)\b[^\n]*)\s*$`)

// node is one element of a parsed source tree. Text nodes carry raw markdown;
// directive nodes carry a name, props and children.
type node struct {
	text     string
	name     string
	props    map[string]any
	children []node
}

func (n node) isText() bool {
	return n.name == ""
}

type frame struct {
	name   string
	props  map[string]any
	offset int
	nodes  []node
	text   strings.Builder
}

func (f *frame) flush() {
	if f.text.Len() == 0 {
		return
	}
	f.nodes = append(f.nodes, node{text: f.text.String()})
	f.text.Reset()
}

type tag struct {
	name        string
	props       map[string]any
	closing     bool
	selfClosing bool
	end         int
}

// parse splits source into markdown text and directive nodes. Directives are
// tags whose name starts with an upper-case letter; fenced code blocks and
// inline code spans are never scanned for tags.
func parse(source string) ([]node, error) {
	source = strings.ReplaceAll(source, "\r\n", "\n")

	root := &frame{}
	stack := []*frame{root}
	current := func() *frame { return stack[len(stack)-1] }

	pos := 0
	lineStart := true
	for pos < len(source) {
		if lineStart {
			if end, ok := fencedBlockEnd(source, pos); ok {
				current().text.WriteString(source[pos:end])
				pos = end
				continue
			}
			if len(stack) == 1 {
				if end, ok := esmLineEnd(source, pos); ok {
					pos = end
					continue
				}
			}
		}

		ch := source[pos]
		if ch == '`' {
			end := inlineCodeEnd(source, pos)
			current().text.WriteString(source[pos:end])
			pos = end
			lineStart = false
			continue
		}

		if ch == '<' {
			t, ok, err := scanTag(source, pos)
			if err != nil {
				return nil, err
			}
			if ok {
				switch {
				case t.closing:
					if len(stack) == 1 {
						return nil, fmt.Errorf("%w: </%s> at offset %d", ErrUnexpectedClose, t.name, pos)
					}
					top := current()
					if top.name != t.name {
						return nil, fmt.Errorf("%w: </%s>, expected </%s>", ErrMismatched, t.name, top.name)
					}
					top.flush()
					stack = stack[:len(stack)-1]
					parent := current()
					parent.nodes = append(parent.nodes, node{name: top.name, props: top.props, children: top.nodes})
				case t.selfClosing:
					f := current()
					f.flush()
					f.nodes = append(f.nodes, node{name: t.name, props: t.props})
				default:
					current().flush()
					stack = append(stack, &frame{name: t.name, props: t.props, offset: pos})
				}
				pos = t.end
				lineStart = false
				continue
			}
		}

		current().text.WriteByte(ch)
		lineStart = ch == '\n'
		pos++
	}

	if len(stack) > 1 {
		top := current()
		return nil, fmt.Errorf("%w: <%s> opened at offset %d", ErrUnterminated, top.name, top.offset)
	}

	root.flush()
	return root.nodes, nil
}

func lineEnd(source string, pos int) int {
	if idx := strings.IndexByte(source[pos:], '\n'); idx >= 0 {
		return pos + idx + 1
	}
	return len(source)
}

// fencedBlockEnd reports whether a fenced code block opens at pos and returns
// the offset just past its closing fence. An unclosed fence runs to the end.
func fencedBlockEnd(source string, pos int) (int, bool) {
	marker, width, ok := fenceAt(source[pos:lineEnd(source, pos)])
	if !ok {
		return 0, false
	}

	cursor := lineEnd(source, pos)
	for cursor < len(source) {
		next := lineEnd(source, cursor)
		line := strings.TrimRight(source[cursor:next], "\n")
		if closer, closeWidth, ok := fenceAt(line); ok && closer == marker && closeWidth >= width {
			rest := strings.TrimLeft(strings.TrimSpace(line), string(marker))
			if rest == "" {
				return next, true
			}
		}
		cursor = next
	}
	return len(source), true
}

func fenceAt(line string) (byte, int, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || len(trimmed) < 3 {
		return 0, 0, false
	}
	marker := trimmed[0]
	if marker != '`' && marker != '~' {
		return 0, 0, false
	}
	width := 0
	for width < len(trimmed) && trimmed[width] == marker {
		width++
	}
	if width < 3 {
		return 0, 0, false
	}
	return marker, width, true
}

func esmLineEnd(source string, pos int) (int, bool) {
	end := lineEnd(source, pos)
	line := strings.TrimRight(source[pos:end], "\n")
	if !esmPattern.MatchString(line) {
		return 0, false
	}
	return end, true
}

// inlineCodeEnd returns the offset past the code span opening at pos. An
// unmatched backtick run is treated as literal text.
func inlineCodeEnd(source string, pos int) int {
	width := 0
	for pos+width < len(source) && source[pos+width] == '`' {
		width++
	}
	cursor := pos + width
	for cursor < len(source) {
		idx := strings.IndexByte(source[cursor:], '`')
		if idx < 0 {
			break
		}
		start := cursor + idx
		run := 0
		for start+run < len(source) && source[start+run] == '`' {
			run++
		}
		if run == width {
			return start + run
		}
		cursor = start + run
	}
	return pos + width
}

// scanTag tokenises a component tag at pos. ok is false when the text at pos
// is not a component tag (plain HTML or a literal "<").
func scanTag(source string, pos int) (tag, bool, error) {
	i := pos + 1
	t := tag{}
	if i < len(source) && source[i] == '/' {
		t.closing = true
		i++
	}
	if i >= len(source) || !isUpper(source[i]) {
		return tag{}, false, nil
	}

	start := i
	for i < len(source) && isNameChar(source[i]) {
		i++
	}
	t.name = source[start:i]

	if t.closing {
		i = skipSpace(source, i)
		if i >= len(source) || source[i] != '>' {
			return tag{}, false, fmt.Errorf("%w: </%s at offset %d", ErrMalformedTag, t.name, pos)
		}
		t.end = i + 1
		return t, true, nil
	}

	for {
		i = skipSpace(source, i)
		if i >= len(source) {
			return tag{}, false, fmt.Errorf("%w: <%s at offset %d is never closed", ErrMalformedTag, t.name, pos)
		}
		switch {
		case source[i] == '>':
			t.end = i + 1
			return t, true, nil
		case strings.HasPrefix(source[i:], "/>"):
			t.selfClosing = true
			t.end = i + 2
			return t, true, nil
		}

		attrStart := i
		for i < len(source) && isAttrChar(source[i]) {
			i++
		}
		if i == attrStart {
			return tag{}, false, fmt.Errorf("%w: unexpected %q in <%s> at offset %d", ErrMalformedTag, source[i], t.name, i)
		}
		key := source[attrStart:i]

		i = skipSpace(source, i)
		if i >= len(source) || source[i] != '=' {
			t.setProp(key, true)
			continue
		}

		i = skipSpace(source, i+1)
		if i >= len(source) {
			return tag{}, false, fmt.Errorf("%w: missing value for %s in <%s>", ErrMalformedTag, key, t.name)
		}
		value, next, err := scanValue(source, i)
		if err != nil {
			return tag{}, false, fmt.Errorf("%w: %s in <%s>: %v", ErrMalformedTag, key, t.name, err)
		}
		t.setProp(key, value)
		i = next
	}
}

func (t *tag) setProp(key string, value any) {
	if t.props == nil {
		t.props = map[string]any{}
	}
	t.props[key] = value
}

func scanValue(source string, i int) (any, int, error) {
	switch source[i] {
	case '"', '\'':
		quote := source[i]
		idx := strings.IndexByte(source[i+1:], quote)
		if idx < 0 {
			return nil, 0, fmt.Errorf("unterminated string")
		}
		return source[i+1 : i+1+idx], i + idx + 2, nil
	case '{':
		end, err := braceEnd(source, i)
		if err != nil {
			return nil, 0, err
		}
		return expressionValue(source[i+1 : end]), end + 1, nil
	default:
		return nil, 0, fmt.Errorf("unquoted value")
	}
}

// braceEnd returns the offset of the brace closing the one at open, skipping
// braces inside string literals.
func braceEnd(source string, open int) (int, error) {
	depth := 0
	var quote byte
	for i := open; i < len(source); i++ {
		ch := source[i]
		if quote != 0 {
			if ch == '\\' {
				i++
				continue
			}
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'', '`':
			quote = ch
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("unterminated expression")
}

// expressionValue reduces simple literal expressions to Go values. Anything
// else is kept as its source text.
func expressionValue(expr string) any {
	expr = strings.TrimSpace(expr)
	if len(expr) >= 2 {
		first, last := expr[0], expr[len(expr)-1]
		if first == last && (first == '"' || first == '\'' || first == '`') {
			return expr[1 : len(expr)-1]
		}
	}
	switch expr {
	case "true":
		return true
	case "false":
		return false
	case "null", "undefined":
		return nil
	}
	if number, err := strconv.ParseFloat(expr, 64); err == nil {
		return number
	}
	return expr
}

func skipSpace(source string, i int) int {
	for i < len(source) {
		switch source[i] {
		case ' ', '\t', '\n', '\r':
			i++
		default:
			return i
		}
	}
	return i
}

func isUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isNameChar(ch byte) bool {
	return isUpper(ch) || (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '.'
}

func isAttrChar(ch byte) bool {
	return isNameChar(ch) || ch == '-' || ch == ':'
}
