package display

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-codeclash/internal/directive"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

var (
	// ErrNilEntry is returned when Body is called without an entry.
	ErrNilEntry = errors.New("display: entry is nil")
	// ErrUnknownBodyKind is returned for bodies that are neither html nor structured.
	ErrUnknownBodyKind = errors.New("display: unknown body kind")
)

// Context is the explicit data handed to every directive at display time.
type Context = directive.RenderContext

// Option customises the renderer.
type Option func(*Renderer)

// WithLogger attaches a logger used for directive diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Renderer turns rendered bodies into final markup.
type Renderer struct {
	registry *directive.Registry
	logger   interfaces.Logger
}

// NewRenderer constructs a renderer resolving directives through registry. A
// nil registry is replaced by one holding the built-in components.
func NewRenderer(registry *directive.Registry, opts ...Option) *Renderer {
	if registry == nil {
		registry = directive.NewRegistry()
		if err := RegisterBuiltIns(registry); err != nil {
			panic(err)
		}
	}
	r := &Renderer{registry: registry, logger: logging.NoOp()}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Body returns the display markup for entry. HTML bodies pass through;
// structured bodies are hydrated with entries as the article index.
func (r *Renderer) Body(ctx context.Context, entry *interfaces.Entry, entries []interfaces.EntryDescriptor) (template.HTML, error) {
	if entry == nil {
		return "", ErrNilEntry
	}

	switch entry.Rendered.Kind {
	case interfaces.BodyKindHTML:
		html, _ := entry.Rendered.HTML()
		return template.HTML(html), nil
	case interfaces.BodyKindStructured:
		payload, _ := entry.Rendered.Payload()
		return r.RenderPayload(ctx, Context{Entries: entries, Entry: entry}, payload)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBodyKind, entry.Rendered.Kind)
	}
}

// RenderPayload hydrates a serialized payload.
func (r *Renderer) RenderPayload(ctx context.Context, rc Context, raw []byte) (template.HTML, error) {
	payload, err := directive.DecodePayload(raw)
	if err != nil {
		return "", err
	}

	logger := r.logger
	if rc.Entry != nil {
		logger = logging.WithEntryContext(logger, rc.Entry.Category.String(), rc.Entry.Slug, rc.Entry.RequestedSlug)
	}

	var b strings.Builder
	if err := r.renderNodes(ctx, logger, rc, payload.Nodes, &b); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

func (r *Renderer) renderNodes(ctx context.Context, logger interfaces.Logger, rc Context, nodes []interfaces.DirectiveNode, b *strings.Builder) error {
	for _, node := range nodes {
		switch node.Type {
		case interfaces.NodeHTML:
			b.WriteString(node.HTML)
		case interfaces.NodeDirective:
			def, ok := r.registry.Get(node.Name)
			if !ok {
				logger.Warn("display.directive.unknown", "directive", node.Name)
				writeComment(b, "unknown directive "+node.Name)
				continue
			}
			if err := def.CheckProps(node.Props); err != nil {
				logger.Warn("display.directive.invalid_props", "directive", node.Name, "error", err)
				writeComment(b, "invalid directive "+node.Name)
				continue
			}

			var inner strings.Builder
			if err := r.renderNodes(ctx, logger, rc, node.Children, &inner); err != nil {
				return err
			}
			out, err := def.Render(ctx, rc, node.Props, template.HTML(inner.String()))
			if err != nil {
				logger.Error("display.directive.render_failed", "directive", node.Name, "error", err)
				return fmt.Errorf("display: render %s: %w", node.Name, err)
			}
			b.WriteString(string(out))
		default:
			logger.Debug("display.node.skipped", "type", string(node.Type))
		}
	}
	return nil
}

func writeComment(b *strings.Builder, text string) {
	text = strings.ReplaceAll(text, "--", "-")
	b.WriteString("<!-- ")
	b.WriteString(template.HTMLEscapeString(text))
	b.WriteString(" -->")
}
