package entrycmd

import (
	"context"

	"github.com/goliatone/go-codeclash/internal/commands"
	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/internal/display"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// ResolveEntryHandler resolves entries for previews and diagnostics.
type ResolveEntryHandler struct {
	inner    *commands.Handler[ResolveEntryCommand]
	resolver interfaces.ContentResolver
	renderer *display.Renderer
	logger   interfaces.Logger
}

// NewResolveEntryHandler constructs a handler. A nil renderer falls back to
// one with the built-in directives.
func NewResolveEntryHandler(resolver interfaces.ContentResolver, renderer *display.Renderer, logger interfaces.Logger, opts ...commands.HandlerOption[ResolveEntryCommand]) *ResolveEntryHandler {
	h := &ResolveEntryHandler{
		resolver: resolver,
		renderer: renderer,
		logger:   logging.OrNoOp(logger),
	}
	if h.renderer == nil {
		h.renderer = display.NewRenderer(nil, display.WithLogger(h.logger))
	}

	handlerOpts := []commands.HandlerOption[ResolveEntryCommand]{
		commands.WithLogger[ResolveEntryCommand](h.logger),
		commands.WithOperation[ResolveEntryCommand]("entry.resolve"),
		commands.WithMessageFields[ResolveEntryCommand](func(msg ResolveEntryCommand) map[string]any {
			return map[string]any{"category": msg.Category, "slug": msg.Slug}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler[ResolveEntryCommand](h.exec, handlerOpts...)
	return h
}

func (h *ResolveEntryHandler) exec(ctx context.Context, msg ResolveEntryCommand) error {
	if h.resolver == nil {
		return errResolverRequired
	}
	category, _ := interfaces.ParseCategory(msg.Category)
	logger := logging.WithEntryContext(h.logger, category.String(), msg.Slug, "")

	entry, err := h.resolver.Resolve(ctx, category, msg.Slug)
	if err != nil {
		logger.Warn("entry.resolve.failed", "kind", string(content.KindOf(err)), "error", err)
		return err
	}

	result := ResolveResult{
		Entry: entry,
		Title: content.DisplayTitle(entry.Descriptor(), entry.Metadata),
	}
	if msg.Hydrate {
		var articles []interfaces.EntryDescriptor
		if entry.Rendered.Kind == interfaces.BodyKindStructured {
			articles, err = h.resolver.ListEntries(ctx, interfaces.CategoryArticle)
			if err != nil {
				logger.Warn("entry.resolve.index_failed", "error", err)
				return err
			}
		}
		result.HTML, err = h.renderer.Body(ctx, entry, articles)
		if err != nil {
			logger.Warn("entry.resolve.hydrate_failed", "error", err)
			return err
		}
	}

	logger.Info("entry.resolve.hit",
		"loaded_slug", entry.Slug,
		"dialect", string(entry.Dialect),
		"kind", string(entry.Rendered.Kind),
		"fallback", entry.Slug != entry.RequestedSlug,
	)
	if msg.ResultCallback != nil {
		msg.ResultCallback(result)
	}
	return nil
}

// Execute satisfies command.Commander[ResolveEntryCommand].
func (h *ResolveEntryHandler) Execute(ctx context.Context, msg ResolveEntryCommand) error {
	return h.inner.Execute(ctx, msg)
}
