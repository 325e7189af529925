package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFSWriterWritesAndCleans(t *testing.T) {
	root := t.TempDir()
	writer := NewFSWriter(root)
	ctx := context.Background()

	if err := writer.EnsureDir(ctx, "articles"); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	if err := writer.WriteFile(ctx, WriteRequest{Path: "articles/react-vue.html", Content: strings.NewReader("<h1>hi</h1>")}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "articles", "react-vue.html"))
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "<h1>hi</h1>" {
		t.Fatalf("unexpected artifact %q", data)
	}

	if err := writer.Clean(ctx); err != nil {
		t.Fatalf("Clean: %v", err)
	}
	items, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty root after clean, got %d items", len(items))
	}
}

func TestFSWriterKeepsWritesInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "out")
	writer := NewFSWriter(root)

	if err := writer.WriteFile(context.Background(), WriteRequest{Path: "../escape.txt", Content: strings.NewReader("x")}); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(parent, "escape.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected write clamped to root, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "escape.txt")); err != nil {
		t.Fatalf("expected artifact inside root: %v", err)
	}
}

func TestFSWriterCleanMissingRoot(t *testing.T) {
	writer := NewFSWriter(filepath.Join(t.TempDir(), "missing"))
	if err := writer.Clean(context.Background()); err != nil {
		t.Fatalf("expected clean of missing root to succeed, got %v", err)
	}
}

func TestWriteRequestValidation(t *testing.T) {
	writer := NewMemoryWriter()
	ctx := context.Background()

	if err := writer.WriteFile(ctx, WriteRequest{Path: "a.txt"}); !errors.Is(err, errWriteContentRequired) {
		t.Fatalf("expected errWriteContentRequired, got %v", err)
	}
	if err := writer.WriteFile(ctx, WriteRequest{Path: " / ", Content: strings.NewReader("x")}); !errors.Is(err, errWritePathRequired) {
		t.Fatalf("expected errWritePathRequired, got %v", err)
	}
}

func TestMemoryWriterRecordsRequests(t *testing.T) {
	writer := NewMemoryWriter()
	err := writer.WriteFile(context.Background(), WriteRequest{
		Path:        "/sitemap.xml",
		Content:     strings.NewReader("<urlset/>"),
		Category:    string(categorySitemap),
		ContentType: "application/xml",
	})
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	req, ok := writer.Request("sitemap.xml")
	if !ok || req.ContentType != "application/xml" || req.Content != nil {
		t.Fatalf("unexpected request %+v", req)
	}
	if paths := writer.Paths(); len(paths) != 1 || paths[0] != "sitemap.xml" {
		t.Fatalf("unexpected paths %v", paths)
	}
}
