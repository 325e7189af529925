package generator

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

const (
	manifestFileName    = "manifest.json"
	manifestFileVersion = 1
)

// buildManifest records what a build produced and what it could not.
type buildManifest struct {
	Version     int               `json:"version"`
	BuildID     string            `json:"build_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	BaseURL     string            `json:"base_url"`
	Entries     []manifestEntry   `json:"entries"`
	Failures    []manifestFailure `json:"failures"`
	Counts      map[string]int    `json:"counts"`
}

type manifestEntry struct {
	Category interfaces.Category `json:"category"`
	Slug     string              `json:"slug"`
	Title    string              `json:"title"`
	Output   string              `json:"output"`
	Kind     interfaces.BodyKind `json:"kind"`
	Checksum string              `json:"checksum"`
	Size     int64               `json:"size"`
}

type manifestFailure struct {
	Category interfaces.Category `json:"category"`
	Slug     string              `json:"slug,omitempty"`
	Kind     content.Kind        `json:"kind"`
	Error    string              `json:"error"`
}

func newBuildManifest(buildID, baseURL string, generatedAt time.Time) *buildManifest {
	return &buildManifest{
		Version:     manifestFileVersion,
		BuildID:     buildID,
		GeneratedAt: generatedAt,
		BaseURL:     baseURL,
		Entries:     []manifestEntry{},
		Failures:    []manifestFailure{},
		Counts:      map[string]int{},
	}
}

func (m *buildManifest) record(result *BuildResult) {
	for _, page := range result.Rendered {
		m.Entries = append(m.Entries, manifestEntry{
			Category: page.Category,
			Slug:     page.Slug,
			Title:    page.Title,
			Output:   page.Output,
			Kind:     page.Kind,
			Checksum: page.Checksum,
			Size:     page.Size,
		})
		m.Counts[page.Category.String()]++
	}
	for _, diag := range result.Diagnostics {
		failure := manifestFailure{Category: diag.Category, Slug: diag.Slug, Kind: diag.Kind}
		if diag.Err != nil {
			failure.Error = diag.Err.Error()
		}
		m.Failures = append(m.Failures, failure)
	}
}

// marshal emits entries and failures in a stable order.
func (m *buildManifest) marshal() ([]byte, error) {
	ordered := *m
	ordered.Entries = append([]manifestEntry(nil), m.Entries...)
	ordered.Failures = append([]manifestFailure(nil), m.Failures...)
	sort.Slice(ordered.Entries, func(i, j int) bool {
		if ordered.Entries[i].Category != ordered.Entries[j].Category {
			return ordered.Entries[i].Category < ordered.Entries[j].Category
		}
		return ordered.Entries[i].Slug < ordered.Entries[j].Slug
	})
	sort.Slice(ordered.Failures, func(i, j int) bool {
		if ordered.Failures[i].Category != ordered.Failures[j].Category {
			return ordered.Failures[i].Category < ordered.Failures[j].Category
		}
		return ordered.Failures[i].Slug < ordered.Failures[j].Slug
	})
	if ordered.Entries == nil {
		ordered.Entries = []manifestEntry{}
	}
	if ordered.Failures == nil {
		ordered.Failures = []manifestFailure{}
	}
	return json.MarshalIndent(ordered, "", "  ")
}
