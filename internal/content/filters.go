package content

import (
	"sort"
	"strings"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// FilterAvailablePairings returns the technologies compared with first, in
// index order. first must open or close the slug ("first-t" or "t-first");
// the rest of the slug is the partner. first itself is never returned and
// duplicates are dropped.
func FilterAvailablePairings(entries []interfaces.EntryDescriptor, first string) []string {
	result := []string{}
	if first == "" {
		return result
	}

	prefix := first + SlugSeparator
	suffix := SlugSeparator + first
	seen := map[string]struct{}{}
	for _, entry := range entries {
		var partner string
		switch {
		case strings.HasPrefix(entry.Slug, prefix):
			partner = strings.TrimPrefix(entry.Slug, prefix)
		case strings.HasSuffix(entry.Slug, suffix):
			partner = strings.TrimSuffix(entry.Slug, suffix)
		default:
			continue
		}
		if partner == "" || partner == first {
			continue
		}
		if _, dup := seen[partner]; dup {
			continue
		}
		seen[partner] = struct{}{}
		result = append(result, partner)
	}
	return result
}

// FilterRelated returns the entries that share at least one technology with
// currentSlug without containing all of them, in index order.
func FilterRelated(entries []interfaces.EntryDescriptor, currentSlug string) []interfaces.EntryDescriptor {
	result := []interfaces.EntryDescriptor{}
	current := SplitSlug(currentSlug)
	if len(current) == 0 {
		return result
	}

	for _, entry := range entries {
		parts := SplitSlug(entry.Slug)
		shared := false
		for _, part := range parts {
			if containsName(current, part) {
				shared = true
				break
			}
		}
		if !shared {
			continue
		}

		coversAll := true
		for _, name := range current {
			if !containsName(parts, name) {
				coversAll = false
				break
			}
		}
		if coversAll {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// Technologies returns every technology named in the index, first-seen order.
func Technologies(entries []interfaces.EntryDescriptor) []string {
	result := []string{}
	seen := map[string]struct{}{}
	for _, entry := range entries {
		for _, part := range SplitSlug(entry.Slug) {
			if part == "" {
				continue
			}
			if _, dup := seen[part]; dup {
				continue
			}
			seen[part] = struct{}{}
			result = append(result, part)
		}
	}
	return result
}

// FindComparison returns the entry comparing first and second in either order.
func FindComparison(entries []interfaces.EntryDescriptor, first, second string) (interfaces.EntryDescriptor, error) {
	if first == "" || second == "" {
		return interfaces.EntryDescriptor{}, notFoundError(interfaces.CategoryArticle, first+SlugSeparator+second)
	}

	forward := first + SlugSeparator + second
	backward := second + SlugSeparator + first
	for _, candidate := range []string{forward, backward} {
		for _, entry := range entries {
			if entry.Slug == candidate {
				return entry, nil
			}
		}
	}
	return interfaces.EntryDescriptor{}, notFoundError(interfaces.CategoryArticle, forward)
}

// SortDescriptors orders descriptors by category then slug, in place.
func SortDescriptors(descriptors []interfaces.EntryDescriptor) {
	sort.SliceStable(descriptors, func(i, j int) bool {
		if descriptors[i].Category != descriptors[j].Category {
			return descriptors[i].Category < descriptors[j].Category
		}
		return descriptors[i].Slug < descriptors[j].Slug
	})
}

func containsName(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}
