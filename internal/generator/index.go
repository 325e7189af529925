package generator

import (
	"encoding/json"

	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

const siteIndexFileName = "index.json"

// siteIndex is the navigation data a client needs without resolving any
// entry: the listings, the technology choices and the valid second choices
// for each first choice.
type siteIndex struct {
	Categories   map[interfaces.Category][]indexItem `json:"categories"`
	Technologies []string                            `json:"technologies"`
	Pairings     map[string][]string                 `json:"pairings"`
}

type indexItem struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

func buildSiteIndex(listings map[interfaces.Category][]interfaces.EntryDescriptor, titles map[interfaces.EntryDescriptor]string) ([]byte, error) {
	index := siteIndex{
		Categories: map[interfaces.Category][]indexItem{},
		Pairings:   map[string][]string{},
	}

	for category, descriptors := range listings {
		sorted := append([]interfaces.EntryDescriptor(nil), descriptors...)
		content.SortDescriptors(sorted)
		items := make([]indexItem, 0, len(sorted))
		for _, descriptor := range sorted {
			title := titles[descriptor]
			if title == "" {
				title = content.DisplayTitle(descriptor, nil)
			}
			items = append(items, indexItem{Slug: descriptor.Slug, Title: title, Path: EntryPath(descriptor)})
		}
		index.Categories[category] = items
	}

	articles := listings[interfaces.CategoryArticle]
	index.Technologies = content.Technologies(articles)
	for _, tech := range index.Technologies {
		index.Pairings[tech] = content.FilterAvailablePairings(articles, tech)
	}

	return json.MarshalIndent(index, "", "  ")
}
