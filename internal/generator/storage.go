package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

type writeCategory string

const (
	categoryEntry    writeCategory = "entry"
	categoryAsset    writeCategory = "asset"
	categorySitemap  writeCategory = "sitemap"
	categoryRobots   writeCategory = "robots"
	categoryIndex    writeCategory = "index"
	categoryManifest writeCategory = "manifest"
)

var (
	errWriteContentRequired = errors.New("generator: write requires content reader")
	errWritePathRequired    = errors.New("generator: write requires path")
	errWritePathEscapes     = errors.New("generator: write path escapes output root")
)

// WriteRequest describes one artifact routed through an ArtifactWriter.
type WriteRequest struct {
	Path        string
	Content     io.Reader
	Size        int64
	Category    string
	ContentType string
	Checksum    string
}

// ArtifactWriter persists build outputs. Paths are slash separated and
// relative to the writer's root.
type ArtifactWriter interface {
	EnsureDir(ctx context.Context, dir string) error
	WriteFile(ctx context.Context, req WriteRequest) error
}

// Cleaner is implemented by writers that can empty their root before a build.
type Cleaner interface {
	Clean(ctx context.Context) error
}

func validateRequest(req WriteRequest) (string, error) {
	if req.Content == nil {
		return "", errWriteContentRequired
	}
	clean := path.Clean("/" + strings.TrimSpace(req.Path))
	if clean == "/" {
		return "", errWritePathRequired
	}
	return strings.TrimPrefix(clean, "/"), nil
}

// FSWriter writes artifacts below a directory on the local filesystem.
type FSWriter struct {
	root string
}

var (
	_ ArtifactWriter = (*FSWriter)(nil)
	_ Cleaner        = (*FSWriter)(nil)
)

// NewFSWriter returns a writer rooted at dir.
func NewFSWriter(dir string) *FSWriter {
	return &FSWriter{root: dir}
}

func (w *FSWriter) resolve(rel string) (string, error) {
	full := filepath.Join(w.root, filepath.FromSlash(rel))
	relative, err := filepath.Rel(w.root, full)
	if err != nil || relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", errWritePathEscapes, rel)
	}
	return full, nil
}

// EnsureDir creates dir and its parents.
func (w *FSWriter) EnsureDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(dir) == "" || dir == "." {
		return os.MkdirAll(w.root, 0o755)
	}
	full, err := w.resolve(dir)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, 0o755)
}

// WriteFile writes req.Content to req.Path, creating parent directories.
func (w *FSWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := validateRequest(req)
	if err != nil {
		return err
	}
	full, err := w.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("generator: ensure dir for %s: %w", rel, err)
	}

	file, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", rel, err)
	}
	if _, err := io.Copy(file, req.Content); err != nil {
		file.Close()
		return fmt.Errorf("generator: write %s: %w", rel, err)
	}
	return file.Close()
}

// Clean removes everything below the root, keeping the root itself.
func (w *FSWriter) Clean(ctx context.Context) error {
	items, err := os.ReadDir(w.root)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("generator: clean %s: %w", w.root, err)
	}
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.RemoveAll(filepath.Join(w.root, item.Name())); err != nil {
			return fmt.Errorf("generator: clean %s: %w", item.Name(), err)
		}
	}
	return nil
}

// MemoryWriter keeps artifacts in memory. It is safe for concurrent use.
type MemoryWriter struct {
	mu    sync.Mutex
	files map[string][]byte
	meta  map[string]WriteRequest
	dirs  map[string]struct{}
}

var (
	_ ArtifactWriter = (*MemoryWriter)(nil)
	_ Cleaner        = (*MemoryWriter)(nil)
)

// NewMemoryWriter returns an empty in-memory writer.
func NewMemoryWriter() *MemoryWriter {
	return &MemoryWriter{
		files: map[string][]byte{},
		meta:  map[string]WriteRequest{},
		dirs:  map[string]struct{}{},
	}
}

func (w *MemoryWriter) EnsureDir(_ context.Context, dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.dirs[strings.Trim(dir, "/")] = struct{}{}
	return nil
}

func (w *MemoryWriter) WriteFile(ctx context.Context, req WriteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rel, err := validateRequest(req)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, req.Content); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[rel] = buf.Bytes()
	req.Content = nil
	w.meta[rel] = req
	return nil
}

func (w *MemoryWriter) Clean(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files = map[string][]byte{}
	w.meta = map[string]WriteRequest{}
	w.dirs = map[string]struct{}{}
	return nil
}

// File returns the stored bytes for rel.
func (w *MemoryWriter) File(rel string) ([]byte, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	data, ok := w.files[rel]
	return data, ok
}

// Request returns the metadata recorded for rel.
func (w *MemoryWriter) Request(rel string) (WriteRequest, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	req, ok := w.meta[rel]
	return req, ok
}

// Paths lists stored artifacts in name order.
func (w *MemoryWriter) Paths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for name := range w.files {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
