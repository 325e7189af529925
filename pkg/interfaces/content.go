package interfaces

import (
	"context"
	"encoding/json"
	"strings"
)

// Category identifies the storage location an entry was discovered in. The
// category of an entry is fixed by where it lives, never by its contents.
type Category string

const (
	CategoryArticle  Category = "article"
	CategoryStack    Category = "stack"
	CategoryParadigm Category = "paradigm"
	CategoryGuide    Category = "guide"
)

// Categories lists every known category in navigation order.
func Categories() []Category {
	return []Category{CategoryArticle, CategoryStack, CategoryParadigm, CategoryGuide}
}

// Dir returns the storage directory name for the category.
func (c Category) Dir() string {
	switch c {
	case CategoryArticle:
		return "articles"
	case CategoryStack:
		return "stacks"
	case CategoryParadigm:
		return "paradigms"
	case CategoryGuide:
		return "guides"
	default:
		return ""
	}
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	return c.Dir() != ""
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts singular or plural spellings ("article", "articles").
func ParseCategory(raw string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, category := range Categories() {
		if key == string(category) || key == category.Dir() {
			return category, true
		}
	}
	return "", false
}

// Dialect identifies the markup flavour of a source file.
type Dialect string

const (
	// DialectPlain is extended markdown rendered straight to HTML (.md).
	DialectPlain Dialect = "plain"
	// DialectExtended supports embedded interactive directives (.mdx).
	DialectExtended Dialect = "extended"
)

// Extension returns the file extension used by the dialect, including the dot.
func (d Dialect) Extension() string {
	switch d {
	case DialectPlain:
		return ".md"
	case DialectExtended:
		return ".mdx"
	default:
		return ""
	}
}

// EntryDescriptor is the lightweight listing record for one entry.
type EntryDescriptor struct {
	Category Category `json:"category"`
	Slug     string   `json:"slug"`
}

// BodyKind tags the representation carried by RenderedBody.
type BodyKind string

const (
	BodyKindHTML       BodyKind = "html"
	BodyKindStructured BodyKind = "structured"
)

// RenderedBody is either a finished HTML string or an opaque structured payload
// that still needs a display-time render step. Consumers switch on Kind.
type RenderedBody struct {
	Kind    BodyKind `json:"kind"`
	html    string
	payload json.RawMessage
}

// HTMLBody wraps finished HTML.
func HTMLBody(html string) RenderedBody {
	return RenderedBody{Kind: BodyKindHTML, html: html}
}

// StructuredBody wraps a serialized render payload. The bytes are copied.
func StructuredBody(payload []byte) RenderedBody {
	return RenderedBody{Kind: BodyKindStructured, payload: append(json.RawMessage(nil), payload...)}
}

// HTML returns the HTML string when the body is of kind html.
func (b RenderedBody) HTML() (string, bool) {
	if b.Kind != BodyKindHTML {
		return "", false
	}
	return b.html, true
}

// Payload returns the serialized payload when the body is of kind structured.
func (b RenderedBody) Payload() (json.RawMessage, bool) {
	if b.Kind != BodyKindStructured {
		return nil, false
	}
	return append(json.RawMessage(nil), b.payload...), true
}

// MarshalJSON emits {"kind":"html","html":"..."} or {"kind":"structured","payload":{...}}.
func (b RenderedBody) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case BodyKindHTML:
		return json.Marshal(struct {
			Kind BodyKind `json:"kind"`
			HTML string   `json:"html"`
		}{b.Kind, b.html})
	case BodyKindStructured:
		payload := b.payload
		if len(payload) == 0 {
			payload = json.RawMessage("null")
		}
		return json.Marshal(struct {
			Kind    BodyKind        `json:"kind"`
			Payload json.RawMessage `json:"payload"`
		}{b.Kind, payload})
	default:
		return []byte("null"), nil
	}
}

// Entry is one resolved content item. Entries are snapshots: every resolution
// produces a fresh value and nothing mutates it afterwards.
type Entry struct {
	Category Category `json:"category"`
	// Slug is the slug of the file that was actually loaded.
	Slug string `json:"slug"`
	// RequestedSlug is the normalized slug the caller asked for. It differs
	// from Slug when the reversed-order fallback matched.
	RequestedSlug string         `json:"requested_slug"`
	Dialect       Dialect        `json:"dialect"`
	Metadata      map[string]any `json:"metadata"`
	Body          []byte         `json:"-"`
	Rendered      RenderedBody   `json:"rendered"`
	SourcePath    string         `json:"source_path"`
}

// Descriptor returns the listing record for the entry.
func (e *Entry) Descriptor() EntryDescriptor {
	if e == nil {
		return EntryDescriptor{}
	}
	return EntryDescriptor{Category: e.Category, Slug: e.Slug}
}

// ContentResolver is the contract consumed by routing, display, and sitemap layers.
type ContentResolver interface {
	ListEntries(ctx context.Context, category Category) ([]EntryDescriptor, error)
	Resolve(ctx context.Context, category Category, slug string) (*Entry, error)
}
