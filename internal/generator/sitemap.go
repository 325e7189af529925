package generator

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-codeclash/internal/content"
	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// DefaultBaseURL is the public host used when none is configured.
const DefaultBaseURL = "https://www.code-clash.net"

const sitemapChangeFreq = "monthly"

type sitemapEntry struct {
	Location   string
	LastMod    time.Time
	Priority   string
	ChangeFreq string
}

// EntryURL returns the absolute URL of an entry below base.
func EntryURL(base string, descriptor interfaces.EntryDescriptor) string {
	return strings.TrimRight(normalizeBase(base), "/") + EntryPath(descriptor)
}

// EntryPath returns the site path of an entry, e.g. /articles/react-vue.
// Slugs that are already URL-safe are emitted unchanged.
func EntryPath(descriptor interfaces.EntryDescriptor) string {
	segment := descriptor.Slug
	if !slug.IsValid(segment) {
		segment = content.EscapeSlug(segment)
	}
	return "/" + descriptor.Category.Dir() + "/" + segment
}

func normalizeBase(baseURL string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return base
}

func sitemapPriority(category interfaces.Category) string {
	if category == interfaces.CategoryArticle {
		return "1.0"
	}
	return "0.8"
}

// Sitemap renders the sitemap document for descriptors without lastmod
// dates. Duplicate locations are dropped and entries are sorted by URL.
func Sitemap(baseURL string, descriptors []interfaces.EntryDescriptor) string {
	return buildSitemap(baseURL, descriptors, nil)
}

func buildSitemap(baseURL string, descriptors []interfaces.EntryDescriptor, lastMod map[interfaces.EntryDescriptor]time.Time) string {
	base := normalizeBase(baseURL)

	entries := make([]sitemapEntry, 0, len(descriptors))
	seen := map[string]struct{}{}
	for _, descriptor := range descriptors {
		location := EntryURL(base, descriptor)
		if _, ok := seen[location]; ok {
			continue
		}
		seen[location] = struct{}{}
		entries = append(entries, sitemapEntry{
			Location:   location,
			LastMod:    lastMod[descriptor],
			Priority:   sitemapPriority(descriptor.Category),
			ChangeFreq: sitemapChangeFreq,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Location < entries[j].Location
	})

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">` + "\n")
	for _, entry := range entries {
		builder.WriteString("  <url>\n")
		builder.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", xmlEscape(entry.Location)))
		if !entry.LastMod.IsZero() {
			builder.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", entry.LastMod.UTC().Format("2006-01-02")))
		}
		builder.WriteString(fmt.Sprintf("    <changefreq>%s</changefreq>\n", entry.ChangeFreq))
		builder.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", entry.Priority))
		builder.WriteString("  </url>\n")
	}
	builder.WriteString(`</urlset>` + "\n")
	return builder.String()
}

func buildRobots(baseURL string, includeSitemap bool) string {
	var builder strings.Builder
	builder.WriteString("User-agent: *\n")
	builder.WriteString("Allow: /\n")
	if includeSitemap {
		builder.WriteString("\n")
		builder.WriteString(fmt.Sprintf("Sitemap: %s/sitemap.xml\n", normalizeBase(baseURL)))
	}
	return builder.String()
}

func xmlEscape(value string) string {
	var builder strings.Builder
	if err := xml.EscapeText(&builder, []byte(value)); err != nil {
		return value
	}
	return builder.String()
}
