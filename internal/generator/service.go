package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/internal/logging"
	"github.com/goliatone/go-codeclash/internal/markdown"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

var (
	// ErrServiceDisabled indicates the generator feature is disabled.
	ErrServiceDisabled  = errors.New("generator: service disabled")
	errResolverRequired = errors.New("generator: content resolver is required")
)

// Service describes the static build contract.
type Service interface {
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)
	Clean(ctx context.Context) error
}

// Config captures runtime behaviour toggles for the generator.
type Config struct {
	BaseURL         string
	CleanBuild      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateIndex   bool
	GenerateAssets  bool
	HighlightStyle  string
	Workers         int
}

// BuildOptions narrows the scope of a build run.
type BuildOptions struct {
	Categories []interfaces.Category
	DryRun     bool
}

// RenderedEntry describes one entry artifact.
type RenderedEntry struct {
	Category interfaces.Category
	Slug     string
	Title    string
	Kind     interfaces.BodyKind
	Output   string
	Checksum string
	Size     int64
	LastMod  time.Time
}

// Diagnostic records a failure that was isolated from the rest of the build.
// Slug is empty when a whole category could not be listed.
type Diagnostic struct {
	Category interfaces.Category
	Slug     string
	Kind     content.Kind
	Err      error
}

// BuildResult reports aggregated build metadata.
type BuildResult struct {
	BuildID     string
	Listed      int
	Built       int
	Failed      int
	Rendered    []RenderedEntry
	Diagnostics []Diagnostic
	Artifacts   []string
	Errors      []error
	Duration    time.Duration
	DryRun      bool
}

// Dependencies lists the collaborators required by the generator.
type Dependencies struct {
	Resolver interfaces.ContentResolver
	Writer   ArtifactWriter
	Logger   interfaces.Logger
}

// NewService wires a generator with the provided configuration and dependencies.
func NewService(cfg Config, deps Dependencies) Service {
	return &service{
		cfg:   cfg,
		deps:  deps,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// NewDisabledService returns a Service that fails all operations with ErrServiceDisabled.
func NewDisabledService() Service {
	return disabledService{}
}

type service struct {
	cfg   Config
	deps  Dependencies
	now   func() time.Time
	newID func() string
}

type renderOutcome struct {
	page       RenderedEntry
	diagnostic *Diagnostic
	content    []byte
	mime       string
}

func (s *service) logger() interfaces.Logger {
	return logging.OrNoOp(s.deps.Logger)
}

func (s *service) writer() ArtifactWriter {
	if s.deps.Writer == nil {
		return noopWriter{}
	}
	return s.deps.Writer
}

// Build lists every requested category, resolves each entry with bounded
// parallelism and writes the artifacts. Entry failures become diagnostics
// and never stop the remaining entries. A missing category directory counts
// as empty; one that exists but cannot be listed is skipped and reported.
func (s *service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.deps.Resolver == nil {
		return nil, errResolverRequired
	}

	start := time.Now()
	generatedAt := s.now().UTC()
	result := &BuildResult{
		BuildID: s.newID(),
		DryRun:  opts.DryRun,
	}
	logger := logging.WithFields(s.logger(), map[string]any{"build_id": result.BuildID})
	logger.Info("generator.build.start", "dry_run", opts.DryRun)

	if s.cfg.CleanBuild && !opts.DryRun {
		if err := s.Clean(ctx); err != nil {
			return nil, err
		}
	}

	categories := opts.Categories
	if len(categories) == 0 {
		categories = interfaces.Categories()
	}

	listings := make(map[interfaces.Category][]interfaces.EntryDescriptor, len(categories))
	var all []interfaces.EntryDescriptor
	for _, category := range categories {
		descriptors, err := s.deps.Resolver.ListEntries(ctx, category)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			result.Diagnostics = append(result.Diagnostics, Diagnostic{Category: category, Kind: content.KindOf(err), Err: err})
			if errors.Is(err, fs.ErrNotExist) {
				logger.Warn("generator.category.missing", "category", category.String(), "dir", category.Dir())
				listings[category] = []interfaces.EntryDescriptor{}
				continue
			}
			logger.Error("generator.category.list_failed", "category", category.String(), "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("generator: list %s: %w", category, err))
			continue
		}
		listings[category] = descriptors
		all = append(all, descriptors...)
	}
	result.Listed = len(all)

	var (
		mu      sync.Mutex
		outputs = make([]renderOutcome, 0, len(all))
	)
	collect := func(outcome renderOutcome) {
		mu.Lock()
		defer mu.Unlock()
		if outcome.diagnostic != nil {
			result.Diagnostics = append(result.Diagnostics, *outcome.diagnostic)
			result.Failed++
			return
		}
		outputs = append(outputs, outcome)
		result.Built++
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.effectiveWorkerCount())
	for _, descriptor := range all {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			collect(s.renderEntry(groupCtx, logger, descriptor))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}

	titles := make(map[interfaces.EntryDescriptor]string, len(outputs))
	lastMod := make(map[interfaces.EntryDescriptor]time.Time, len(outputs))
	for _, outcome := range outputs {
		key := interfaces.EntryDescriptor{Category: outcome.page.Category, Slug: outcome.page.Slug}
		titles[key] = outcome.page.Title
		lastMod[key] = outcome.page.LastMod
		result.Rendered = append(result.Rendered, outcome.page)
	}

	if !opts.DryRun {
		s.writeArtifacts(ctx, logger, result, outputs, listings, titles, lastMod, generatedAt)
	}

	result.Duration = time.Since(start)
	logger.Info("generator.build.completed",
		"listed", result.Listed,
		"built", result.Built,
		"failed", result.Failed,
		"duration_ms", result.Duration.Milliseconds(),
	)
	if len(result.Errors) > 0 {
		return result, errors.Join(result.Errors...)
	}
	return result, nil
}

func (s *service) renderEntry(ctx context.Context, logger interfaces.Logger, descriptor interfaces.EntryDescriptor) renderOutcome {
	entry, err := s.deps.Resolver.Resolve(ctx, descriptor.Category, content.EscapeSlug(descriptor.Slug))
	if err != nil {
		logging.WithEntryContext(logger, descriptor.Category.String(), descriptor.Slug, "").
			Warn("generator.entry.failed", "kind", string(content.KindOf(err)), "error", err)
		return renderOutcome{diagnostic: &Diagnostic{
			Category: descriptor.Category,
			Slug:     descriptor.Slug,
			Kind:     content.KindOf(err),
			Err:      err,
		}}
	}

	page := RenderedEntry{
		Category: entry.Category,
		Slug:     entry.Slug,
		Title:    content.DisplayTitle(entry.Descriptor(), entry.Metadata),
		Kind:     entry.Rendered.Kind,
	}
	if date, ok := content.ExtractDate(entry.Metadata); ok {
		page.LastMod = date
	}

	var (
		body []byte
		mime string
	)
	switch entry.Rendered.Kind {
	case interfaces.BodyKindHTML:
		html, _ := entry.Rendered.HTML()
		body = []byte(html)
		mime = "text/html; charset=utf-8"
		page.Output = path.Join(entry.Category.Dir(), entry.Slug+".html")
	default:
		encoded, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return renderOutcome{diagnostic: &Diagnostic{
				Category: descriptor.Category,
				Slug:     descriptor.Slug,
				Kind:     content.KindRender,
				Err:      fmt.Errorf("generator: encode %s/%s: %w", descriptor.Category, descriptor.Slug, err),
			}}
		}
		body = encoded
		mime = "application/json"
		page.Output = path.Join(entry.Category.Dir(), entry.Slug+".json")
	}

	page.Checksum = checksum(body)
	page.Size = int64(len(body))
	return renderOutcome{page: page, content: body, mime: mime}
}

func (s *service) writeArtifacts(
	ctx context.Context,
	logger interfaces.Logger,
	result *BuildResult,
	outputs []renderOutcome,
	listings map[interfaces.Category][]interfaces.EntryDescriptor,
	titles map[interfaces.EntryDescriptor]string,
	lastMod map[interfaces.EntryDescriptor]time.Time,
	generatedAt time.Time,
) {
	writer := s.writer()
	write := func(rel string, data []byte, category writeCategory, mime string) {
		err := writer.WriteFile(ctx, WriteRequest{
			Path:        rel,
			Content:     bytes.NewReader(data),
			Size:        int64(len(data)),
			Category:    string(category),
			ContentType: mime,
			Checksum:    checksum(data),
		})
		if err != nil {
			logger.Error("generator.write.failed", "path", rel, "error", err)
			result.Errors = append(result.Errors, fmt.Errorf("generator: write %s: %w", rel, err))
			return
		}
		result.Artifacts = append(result.Artifacts, rel)
	}

	for _, category := range interfaces.Categories() {
		if _, ok := listings[category]; !ok {
			continue
		}
		if err := writer.EnsureDir(ctx, category.Dir()); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("generator: ensure %s: %w", category.Dir(), err))
		}
	}

	for _, outcome := range outputs {
		write(outcome.page.Output, outcome.content, categoryEntry, outcome.mime)
	}

	if s.cfg.GenerateSitemap {
		// Entries that failed to resolve have no page to link to.
		built := make([]interfaces.EntryDescriptor, 0, len(outputs))
		for _, outcome := range outputs {
			built = append(built, interfaces.EntryDescriptor{Category: outcome.page.Category, Slug: outcome.page.Slug})
		}
		write("sitemap.xml", []byte(buildSitemap(s.cfg.BaseURL, built, lastMod)), categorySitemap, "application/xml")
	}
	if s.cfg.GenerateRobots {
		write("robots.txt", []byte(buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap)), categoryRobots, "text/plain; charset=utf-8")
	}
	if s.cfg.GenerateIndex {
		index, err := buildSiteIndex(listings, titles)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("generator: encode index: %w", err))
		} else {
			write(siteIndexFileName, index, categoryIndex, "application/json")
		}
	}
	if s.cfg.GenerateAssets {
		css, err := markdown.HighlightCSS(s.cfg.HighlightStyle)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("generator: highlight css: %w", err))
		} else {
			write(highlightAssetPath, []byte(css), categoryAsset, "text/css; charset=utf-8")
		}
	}

	manifest := newBuildManifest(result.BuildID, normalizeBase(s.cfg.BaseURL), generatedAt)
	manifest.record(result)
	data, err := manifest.marshal()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("generator: encode manifest: %w", err))
		return
	}
	write(manifestFileName, data, categoryManifest, "application/json")
}

// Clean empties the output root when the writer supports it.
func (s *service) Clean(ctx context.Context) error {
	cleaner, ok := s.writer().(Cleaner)
	if !ok {
		return nil
	}
	if err := cleaner.Clean(ctx); err != nil {
		return fmt.Errorf("generator: clean output: %w", err)
	}
	s.logger().Debug("generator.clean.completed")
	return nil
}

func (s *service) effectiveWorkerCount() int {
	if s.cfg.Workers > 0 {
		return s.cfg.Workers
	}
	if cpus := runtime.NumCPU(); cpus > 0 {
		return cpus
	}
	return 1
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

type disabledService struct{}

func (disabledService) Build(context.Context, BuildOptions) (*BuildResult, error) {
	return nil, ErrServiceDisabled
}

func (disabledService) Clean(context.Context) error {
	return ErrServiceDisabled
}

type noopWriter struct{}

func (noopWriter) EnsureDir(context.Context, string) error { return nil }

func (noopWriter) WriteFile(context.Context, WriteRequest) error { return nil }

const highlightAssetPath = "assets/highlight.css"
