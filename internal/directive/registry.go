package directive

import (
	"context"
	"fmt"
	"html/template"
	"regexp"
	"sort"
	"strings"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

var definitionNamePattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9_.]*$`)

// RenderContext carries the data a directive may draw on at display time.
// Entries is the article index; nothing is read from package state.
type RenderContext struct {
	Entries []interfaces.EntryDescriptor
	Entry   *interfaces.Entry
}

// RenderFunc produces the markup for one directive occurrence.
type RenderFunc func(ctx context.Context, rc RenderContext, props map[string]any, children template.HTML) (template.HTML, error)

// Definition describes a display-time component.
type Definition struct {
	Name        string
	Description string
	Required    []string
	Render      RenderFunc
}

// Validate checks the definition before registration.
func (d Definition) Validate() error {
	err := validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required, validation.Match(definitionNamePattern)),
		validation.Field(&d.Render, validation.By(func(any) error {
			if d.Render == nil {
				return validation.NewError("codeclash.directive.render_required", "render function is required")
			}
			return nil
		})),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	return nil
}

// CheckProps reports the first required prop missing from props.
func (d Definition) CheckProps(props map[string]any) error {
	for _, key := range d.Required {
		value, ok := props[key]
		if !ok || value == nil {
			return fmt.Errorf("%w: %s requires %q", ErrMissingProp, d.Name, key)
		}
		if str, isString := value.(string); isString && strings.TrimSpace(str) == "" {
			return fmt.Errorf("%w: %s requires %q", ErrMissingProp, d.Name, key)
		}
	}
	return nil
}

// Registry is a concurrency-safe set of definitions keyed by name.
type Registry struct {
	mu          sync.RWMutex
	definitions map[string]Definition
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{definitions: make(map[string]Definition)}
}

func registryKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register stores def unless it is invalid or the name is taken.
func (r *Registry) Register(def Definition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey(def.Name)
	if _, exists := r.definitions[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, def.Name)
	}
	r.definitions[key] = def
	return nil
}

// Get returns the definition registered under name. Lookup ignores case.
func (r *Registry) Get(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[registryKey(name)]
	return def, ok
}

// List returns all definitions in name order.
func (r *Registry) List() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Definition, 0, len(r.definitions))
	for _, def := range r.definitions {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Remove deletes the definition if present.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.definitions, registryKey(name))
}
