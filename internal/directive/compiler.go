package directive

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/markdown"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// Compiler turns extended-dialect sources into structured payloads. Markdown
// between directives is rendered to HTML; directives are kept as nodes so
// they can be resolved at display time.
type Compiler struct {
	parser interfaces.MarkdownParser
	logger interfaces.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithCompilerLogger sets the logger used for compile diagnostics.
func WithCompilerLogger(logger interfaces.Logger) CompilerOption {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCompiler constructs a compiler backed by parser. A nil parser falls back
// to the goldmark parser with default options.
func NewCompiler(parser interfaces.MarkdownParser, opts ...CompilerOption) *Compiler {
	if parser == nil {
		parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}
	c := &Compiler{parser: parser, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Compile parses source and returns its payload tree.
func (c *Compiler) Compile(source []byte) (*interfaces.StructuredPayload, error) {
	nodes, err := parse(string(source))
	if err != nil {
		c.logger.Debug("directive.compile.parse_failed", "error", err)
		return nil, err
	}
	out, err := c.render(nodes)
	if err != nil {
		c.logger.Debug("directive.compile.render_failed", "error", err)
		return nil, err
	}
	c.logger.Trace("directive.compile.completed", "nodes", len(out))
	return &interfaces.StructuredPayload{Version: interfaces.PayloadVersion, Nodes: out}, nil
}

// CompileJSON compiles source and encodes the payload.
func (c *Compiler) CompileJSON(source []byte) ([]byte, error) {
	payload, err := c.Compile(source)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("directive: encode payload: %w", err)
	}
	return encoded, nil
}

func (c *Compiler) render(nodes []node) ([]interfaces.DirectiveNode, error) {
	out := make([]interfaces.DirectiveNode, 0, len(nodes))
	for _, n := range nodes {
		if n.isText() {
			if strings.TrimSpace(n.text) == "" {
				continue
			}
			html, err := c.parser.Parse([]byte(n.text))
			if err != nil {
				return nil, fmt.Errorf("directive: render markdown: %w", err)
			}
			out = append(out, interfaces.DirectiveNode{Type: interfaces.NodeHTML, HTML: string(html)})
			continue
		}

		children, err := c.render(n.children)
		if err != nil {
			return nil, err
		}
		if len(children) == 0 {
			children = nil
		}
		out = append(out, interfaces.DirectiveNode{
			Type:     interfaces.NodeDirective,
			Name:     n.name,
			Props:    n.props,
			Children: children,
		})
	}
	return out, nil
}

// DecodePayload parses a serialized payload and checks its version.
func DecodePayload(raw []byte) (*interfaces.StructuredPayload, error) {
	var payload interfaces.StructuredPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("directive: decode payload: %w", err)
	}
	if payload.Version != interfaces.PayloadVersion {
		return nil, fmt.Errorf("directive: unsupported payload version %d", payload.Version)
	}
	return &payload, nil
}
