package display

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/internal/directive"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

const relatedEmptyMessage = "No related comparisons available."

var builtinTemplates = template.Must(template.New("builtins").Parse(`
{{- define "related" -}}
{{- if .Items -}}
<div class="related-comparisons">
<h2>Keep comparing...</h2>
<div class="comparisons-grid">
{{- range .Items }}
{{ template "box" . }}
{{- end }}
</div>
</div>
{{- else -}}
<p class="related-comparisons related-comparisons--empty">{{ .Empty }}</p>
{{- end -}}
{{- end -}}

{{- define "box" -}}
<a class="comparison-box" href="{{ .URL }}"><h3>{{ .Title }}</h3><p>Compare {{ .Compare }}</p></a>
{{- end -}}

{{- define "link" -}}
<a class="comparison-box" href="{{ .URL }}"><h3>{{ .Title }}</h3>{{ .Children }}</a>
{{- end -}}
`))

type boxView struct {
	URL      string
	Title    string
	Compare  string
	Children template.HTML
}

// BuiltInDefinitions returns the components every extended body may use.
func BuiltInDefinitions() []directive.Definition {
	return []directive.Definition{
		relatedComparisonsDefinition(),
		comparisonBoxDefinition(),
		linkBoxDefinition(),
	}
}

// RegisterBuiltIns adds the built-in components to registry.
func RegisterBuiltIns(registry *directive.Registry) error {
	for _, def := range BuiltInDefinitions() {
		if err := registry.Register(def); err != nil {
			return err
		}
	}
	return nil
}

func relatedComparisonsDefinition() directive.Definition {
	return directive.Definition{
		Name:        "RelatedComparisons",
		Description: "Lists articles sharing at least one technology with the current comparison",
		Required:    []string{"currentLanguages"},
		Render: func(_ context.Context, rc directive.RenderContext, props map[string]any, _ template.HTML) (template.HTML, error) {
			current := propString(props, "currentLanguages")
			related := content.FilterRelated(rc.Entries, current)

			items := make([]boxView, 0, len(related))
			for _, entry := range related {
				items = append(items, boxView{
					URL:     articleURL(content.EscapeSlug(entry.Slug)),
					Title:   content.ComparisonTitle(entry, nil),
					Compare: strings.Replace(entry.Slug, content.SlugSeparator, " vs ", 1),
				})
			}
			return execute("related", map[string]any{"Items": items, "Empty": relatedEmptyMessage})
		},
	}
}

func comparisonBoxDefinition() directive.Definition {
	return directive.Definition{
		Name:        "ComparisonBox",
		Description: "Links to a single comparison article",
		Required:    []string{"id"},
		Render: func(_ context.Context, _ directive.RenderContext, props map[string]any, _ template.HTML) (template.HTML, error) {
			id := propString(props, "id")
			title := propString(props, "title")
			if title == "" {
				title = content.ComparisonTitle(interfaces.EntryDescriptor{Category: interfaces.CategoryArticle, Slug: id}, nil)
			}
			return execute("box", boxView{
				URL:     articleURL(content.EncodeSlug(title, interfaces.CategoryArticle)),
				Title:   title,
				Compare: title,
			})
		},
	}
}

func linkBoxDefinition() directive.Definition {
	return directive.Definition{
		Name:        "LinkBox",
		Description: "Links to an entry of any category by its title",
		Required:    []string{"title"},
		Render: func(_ context.Context, _ directive.RenderContext, props map[string]any, children template.HTML) (template.HTML, error) {
			title := propString(props, "title")
			category := interfaces.CategoryStack
			if raw := propString(props, "type"); raw != "" {
				parsed, ok := interfaces.ParseCategory(raw)
				if !ok {
					return "", fmt.Errorf("link box type %q not supported", raw)
				}
				category = parsed
			}
			return execute("link", boxView{
				URL:      "/" + category.Dir() + "/" + content.EncodeSlug(title, category),
				Title:    title,
				Children: children,
			})
		},
	}
}

func articleURL(segment string) string {
	return "/" + interfaces.CategoryArticle.Dir() + "/" + segment
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := builtinTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func propString(props map[string]any, key string) string {
	switch value := props[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(value))
	}
}
