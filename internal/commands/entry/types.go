package entrycmd

import (
	"html/template"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

const resolveEntryMessageType = "codeclash.entry.resolve"

// ResolveResult is handed to the callback after a successful resolution.
type ResolveResult struct {
	Entry *interfaces.Entry
	Title string
	// HTML is set when the command asked for hydration.
	HTML template.HTML
}

// ResolveEntryCommand loads one entry, optionally rendering it for display.
type ResolveEntryCommand struct {
	Category       string              `json:"category"`
	Slug           string              `json:"slug"`
	Hydrate        bool                `json:"hydrate,omitempty"`
	ResultCallback func(ResolveResult) `json:"-"`
}

// Type implements command.Message.
func (ResolveEntryCommand) Type() string { return resolveEntryMessageType }

// Validate ensures the category is known and a slug is present.
func (m ResolveEntryCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Category,
			validation.Required,
			validation.By(func(value any) error {
				if _, ok := interfaces.ParseCategory(value.(string)); !ok {
					return validation.NewError("codeclash.entry.category_invalid", "category must be article, stack, paradigm or guide")
				}
				return nil
			}),
		),
		validation.Field(&m.Slug, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("codeclash.entry.slug_blank", "slug must not be blank")
			}
			return nil
		})),
	)
}
