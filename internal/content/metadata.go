package content

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ExtractString reads key as a trimmed string. Numbers and booleans are
// formatted; other shapes read as empty.
func ExtractString(metadata map[string]any, key string) string {
	if metadata == nil {
		return ""
	}
	switch value := metadata[key].(type) {
	case string:
		return strings.TrimSpace(value)
	case int, int64, float64, bool:
		return fmt.Sprint(value)
	default:
		return ""
	}
}

// ExtractTitle returns the "title" metadata value.
func ExtractTitle(metadata map[string]any) string {
	return ExtractString(metadata, "title")
}

// ExtractDescription returns the "description" metadata value.
func ExtractDescription(metadata map[string]any) string {
	return ExtractString(metadata, "description")
}

// ExtractDate returns the "date" metadata value when it holds a timestamp or
// a string in one of the accepted layouts.
func ExtractDate(metadata map[string]any) (time.Time, bool) {
	if metadata == nil {
		return time.Time{}, false
	}
	switch value := metadata["date"].(type) {
	case time.Time:
		return value, !value.IsZero()
	case string:
		raw := strings.TrimSpace(value)
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, raw); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// ComparisonTitle returns the title of an article, falling back to the slug
// with its first separator read as " vs ".
func ComparisonTitle(descriptor interfaces.EntryDescriptor, metadata map[string]any) string {
	if title := ExtractTitle(metadata); title != "" {
		return title
	}
	return strings.Replace(descriptor.Slug, SlugSeparator, " vs ", 1)
}

// HumanizeSlug turns "object-oriented" into "Object Oriented".
func HumanizeSlug(slug string) string {
	words := strings.ReplaceAll(slug, SlugSeparator, " ")
	return cases.Title(language.English, cases.NoLower).String(words)
}

// DisplayTitle picks the heading for any entry: the title metadata when set,
// otherwise the comparison form for articles and a humanized slug for the
// remaining categories.
func DisplayTitle(descriptor interfaces.EntryDescriptor, metadata map[string]any) string {
	if title := ExtractTitle(metadata); title != "" {
		return title
	}
	if descriptor.Category == interfaces.CategoryArticle {
		return ComparisonTitle(descriptor, nil)
	}
	return HumanizeSlug(descriptor.Slug)
}
