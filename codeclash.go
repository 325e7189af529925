// Package codeclash indexes and resolves technology comparison content
// stored as markdown files, one flat directory per category.
package codeclash

import (
	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/internal/di"
	"github.com/goliatone/go-codeclash/internal/directive"
	"github.com/goliatone/go-codeclash/internal/display"
	"github.com/goliatone/go-codeclash/internal/generator"
	"github.com/goliatone/go-codeclash/internal/server"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

type (
	Category        = interfaces.Category
	EntryDescriptor = interfaces.EntryDescriptor
	Entry           = interfaces.Entry
	RenderedBody    = interfaces.RenderedBody
	BodyKind        = interfaces.BodyKind
	Dialect         = interfaces.Dialect
	ContentResolver = interfaces.ContentResolver
)

const (
	CategoryArticle  = interfaces.CategoryArticle
	CategoryStack    = interfaces.CategoryStack
	CategoryParadigm = interfaces.CategoryParadigm
	CategoryGuide    = interfaces.CategoryGuide
)

// ContentService exports the content index and resolver.
type ContentService = *content.Service

// GeneratorService exports the static build contract.
type GeneratorService = generator.Service

// DirectiveDefinition describes a display-time component.
type DirectiveDefinition = directive.Definition

// ErrorKind classifies resolver failures.
type ErrorKind = content.Kind

var (
	ErrNotFound = content.ErrNotFound
	ErrIO       = content.ErrIO
	ErrParse    = content.ErrParse
	ErrRender   = content.ErrRender
)

// KindOf reports which failure kind err carries.
func KindOf(err error) ErrorKind {
	return content.KindOf(err)
}

// FilterAvailablePairings lists technologies compared with first.
func FilterAvailablePairings(entries []EntryDescriptor, first string) []string {
	return content.FilterAvailablePairings(entries, first)
}

// FilterRelated lists comparisons sharing part of currentSlug.
func FilterRelated(entries []EntryDescriptor, currentSlug string) []EntryDescriptor {
	return content.FilterRelated(entries, currentSlug)
}

// Module represents the top level runtime facade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Content returns the content index and resolver.
func (m *Module) Content() ContentService {
	return m.container.ContentService()
}

// Renderer returns the display renderer with every registered directive.
func (m *Module) Renderer() *display.Renderer {
	return m.container.Renderer()
}

// Generator returns the static build service.
func (m *Module) Generator() GeneratorService {
	return m.container.GeneratorService()
}

// Server returns the HTTP routing layer.
func (m *Module) Server() (*server.Server, error) {
	return m.container.Server()
}
