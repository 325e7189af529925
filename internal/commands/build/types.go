package buildcmd

import (
	"fmt"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-codeclash/internal/generator"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

const buildSiteMessageType = "codeclash.build.site"

// ResultCallback receives the build result. It is invoked synchronously,
// also when the build returns an error alongside a partial result.
type ResultCallback func(*generator.BuildResult)

// BuildSiteCommand renders every entry into OutputDir.
type BuildSiteCommand struct {
	OutputDir      string         `json:"output_dir"`
	BaseURL        string         `json:"base_url,omitempty"`
	Workers        int            `json:"workers,omitempty"`
	Clean          bool           `json:"clean,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	Categories     []string       `json:"categories,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate checks the output directory, worker count, base URL and category names.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	if !m.DryRun && strings.TrimSpace(m.OutputDir) == "" {
		errs["output_dir"] = validation.NewError("codeclash.build.output_dir_required", "output_dir is required unless dry_run is set")
	}
	if m.Workers < 0 {
		errs["workers"] = validation.NewError("codeclash.build.workers_invalid", "workers must be zero or positive")
	}
	if base := strings.TrimSpace(m.BaseURL); base != "" {
		if parsed, err := url.Parse(base); err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs["base_url"] = validation.NewError("codeclash.build.base_url_invalid", "base_url must be an absolute URL")
		}
	}
	for _, raw := range m.Categories {
		if _, ok := interfaces.ParseCategory(raw); !ok {
			errs["categories"] = validation.NewError("codeclash.build.category_invalid", fmt.Sprintf("unknown category %q", raw))
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (m BuildSiteCommand) categories() []interfaces.Category {
	if len(m.Categories) == 0 {
		return nil
	}
	out := make([]interfaces.Category, 0, len(m.Categories))
	seen := map[interfaces.Category]struct{}{}
	for _, raw := range m.Categories {
		category, ok := interfaces.ParseCategory(raw)
		if !ok {
			continue
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	return out
}
