package content

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/goliatone/go-codeclash/internal/directive"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/markdown"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// PayloadCompiler turns extended-dialect bodies into serialized payloads.
type PayloadCompiler interface {
	CompileJSON(source []byte) ([]byte, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*Service)

// WithMarkdownParser overrides the parser used for plain-dialect bodies.
func WithMarkdownParser(parser interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithPayloadCompiler overrides the compiler used for extended-dialect bodies.
func WithPayloadCompiler(compiler PayloadCompiler) ServiceOption {
	return func(s *Service) {
		if compiler != nil {
			s.compiler = compiler
		}
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service lists and resolves entries stored as one flat directory per
// category. It keeps no state between calls, so a single instance can serve
// concurrent requests.
type Service struct {
	root     fs.FS
	parser   interfaces.MarkdownParser
	compiler PayloadCompiler
	logger   interfaces.Logger
}

var _ interfaces.ContentResolver = (*Service)(nil)

// NewService constructs a resolver over root.
func NewService(root fs.FS, opts ...ServiceOption) *Service {
	svc := &Service{
		root:   root,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	if svc.parser == nil {
		svc.parser = markdown.NewGoldmarkParser(interfaces.ParseOptions{})
	}
	if svc.compiler == nil {
		svc.compiler = directive.NewCompiler(svc.parser)
	}
	return svc
}

// NewDirService constructs a resolver over the directory at dir.
func NewDirService(dir string, opts ...ServiceOption) *Service {
	return NewService(os.DirFS(dir), opts...)
}

// ListEntries returns one descriptor per source file in the category
// directory, in listing order. A slug stored in both dialects is listed once.
func (s *Service) ListEntries(ctx context.Context, category interfaces.Category) ([]interfaces.EntryDescriptor, error) {
	if !category.Valid() {
		return nil, unknownCategoryError(category)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := category.Dir()
	items, err := fs.ReadDir(s.root, dir)
	if err != nil {
		s.logger.Error("content.list.failed", "category", category.String(), "error", err)
		return nil, ioError(dir, err)
	}

	result := make([]interfaces.EntryDescriptor, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		slug, _, ok := splitSourceName(item.Name())
		if !ok {
			continue
		}
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		result = append(result, interfaces.EntryDescriptor{Category: category, Slug: slug})
	}

	s.logger.Debug("content.list.completed", "category", category.String(), "count", len(result))
	return result, nil
}

// Resolve loads the entry named by slug. The slug is URL-decoded and the
// "[-]" sentinel mapped back to "#". When no file matches, categories other
// than paradigm retry once with the hyphen-joined parts reversed.
func (s *Service) Resolve(ctx context.Context, category interfaces.Category, slug string) (*interfaces.Entry, error) {
	if !category.Valid() {
		return nil, unknownCategoryError(category)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requested, ok := NormalizeSlug(slug)
	if !ok {
		s.logger.Debug("content.resolve.invalid_slug", "category", category.String(), "slug", slug)
		return nil, notFoundError(category, slug)
	}
	logger := logging.WithEntryContext(s.logger, category.String(), requested, "")

	loaded := requested
	sourcePath, dialect, found, err := s.locate(category, requested)
	if err != nil {
		logger.Error("content.resolve.stat_failed", "error", err)
		return nil, err
	}

	if !found && category != interfaces.CategoryParadigm {
		if reversed := ReverseSlug(requested); reversed != requested {
			sourcePath, dialect, found, err = s.locate(category, reversed)
			if err != nil {
				logger.Error("content.resolve.stat_failed", "error", err)
				return nil, err
			}
			if found {
				loaded = reversed
				logger.Debug("content.resolve.fallback", "reversed_slug", reversed)
			}
		}
	}

	if !found {
		logger.Debug("content.resolve.miss")
		return nil, notFoundError(category, requested)
	}

	logger = logging.WithEntryContext(s.logger, category.String(), loaded, requested)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.root, sourcePath)
	if err != nil {
		logger.Error("content.resolve.read_failed", "path", sourcePath, "error", err)
		return nil, ioError(sourcePath, err)
	}

	metadata, body, err := markdown.ParseFrontMatter(data)
	if err != nil {
		logger.Warn("content.resolve.parse_failed", "path", sourcePath, "error", err)
		return nil, parseError(sourcePath, err)
	}

	rendered, err := s.render(dialect, body)
	if err != nil {
		logger.Warn("content.resolve.render_failed", "path", sourcePath, "dialect", string(dialect), "error", err)
		return nil, renderError(sourcePath, err)
	}

	logger.Debug("content.resolve.hit", "path", sourcePath, "dialect", string(dialect))
	return &interfaces.Entry{
		Category:      category,
		Slug:          loaded,
		RequestedSlug: requested,
		Dialect:       dialect,
		Metadata:      metadata,
		Body:          body,
		Rendered:      rendered,
		SourcePath:    sourcePath,
	}, nil
}

// locate finds the source file for slug, preferring the plain dialect.
func (s *Service) locate(category interfaces.Category, slug string) (string, interfaces.Dialect, bool, error) {
	for _, dialect := range []interfaces.Dialect{interfaces.DialectPlain, interfaces.DialectExtended} {
		candidate := path.Join(category.Dir(), slug+dialect.Extension())
		info, err := fs.Stat(s.root, candidate)
		switch {
		case err == nil:
			if info.IsDir() {
				continue
			}
			return candidate, dialect, true, nil
		case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
			continue
		default:
			return "", "", false, ioError(candidate, err)
		}
	}
	return "", "", false, nil
}

func (s *Service) render(dialect interfaces.Dialect, body []byte) (interfaces.RenderedBody, error) {
	switch dialect {
	case interfaces.DialectExtended:
		payload, err := s.compiler.CompileJSON(body)
		if err != nil {
			return interfaces.RenderedBody{}, err
		}
		return interfaces.StructuredBody(payload), nil
	default:
		html, err := s.parser.Parse(body)
		if err != nil {
			return interfaces.RenderedBody{}, err
		}
		return interfaces.HTMLBody(string(html)), nil
	}
}

// splitSourceName strips a recognised extension from a file name.
func splitSourceName(name string) (string, interfaces.Dialect, bool) {
	for _, dialect := range []interfaces.Dialect{interfaces.DialectPlain, interfaces.DialectExtended} {
		ext := dialect.Extension()
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return strings.TrimSuffix(name, ext), dialect, true
		}
	}
	return "", "", false
}
