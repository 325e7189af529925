package content

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-codeclash/pkg/interfaces"
)

// HashSentinel stands in for a literal "#" inside a path segment, so titles
// such as "C# vs Java" survive as "c[-]-java".
const HashSentinel = "[-]"

// SlugSeparator joins technology names inside a comparison slug.
const SlugSeparator = "-"

// NormalizeSlug URL-decodes raw and maps every sentinel back to "#". ok is
// false when raw cannot name a file: it fails to decode, is empty, or would
// escape the category directory.
func NormalizeSlug(raw string) (string, bool) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	slug := strings.ReplaceAll(decoded, HashSentinel, "#")
	if strings.TrimSpace(slug) == "" {
		return "", false
	}
	if strings.ContainsAny(slug, "/\\\x00") || slug == "." || strings.Contains(slug, "..") {
		return "", false
	}
	return slug, true
}

// ReverseSlug splits slug on "-", reverses the parts and rejoins them.
func ReverseSlug(slug string) string {
	parts := strings.Split(slug, SlugSeparator)
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, SlugSeparator)
}

// SplitSlug returns the technology names joined in slug.
func SplitSlug(slug string) []string {
	if slug == "" {
		return nil
	}
	return strings.Split(slug, SlugSeparator)
}

// EncodeSlug builds a path segment for a comparison title: the first " vs "
// becomes "-", every "#" becomes the sentinel, and the result is URI-escaped.
// Paradigm links are lower-cased.
func EncodeSlug(title string, category interfaces.Category) string {
	slug := strings.Replace(title, " vs ", SlugSeparator, 1)
	slug = strings.ReplaceAll(slug, "#", HashSentinel)
	encoded := escapeSegment(slug)
	if category == interfaces.CategoryParadigm {
		encoded = strings.ToLower(encoded)
	}
	return encoded
}

// EscapeSlug prepares an on-disk slug for use in a URL path. "#" is replaced
// by the sentinel before escaping so NormalizeSlug restores it.
func EscapeSlug(slug string) string {
	return escapeSegment(strings.ReplaceAll(slug, "#", HashSentinel))
}

// escapeSegment escapes like encodeURI: brackets and other reserved
// characters stay literal, spaces and non-ASCII bytes are percent-encoded.
func escapeSegment(segment string) string {
	var b strings.Builder
	for i := 0; i < len(segment); i++ {
		ch := segment[i]
		if shouldKeep(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[ch>>4])
		b.WriteByte(upperHex[ch&15])
	}
	return b.String()
}

const upperHex = "0123456789ABCDEF"

func shouldKeep(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}
	switch ch {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')', ';', ',', ':', '@', '&', '=', '+', '$', '[', ']':
		return true
	}
	return false
}
