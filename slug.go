package pinemd

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

// Slugify converts heading or title text to a Markdown anchor token.
// Characters outside letters, digits, whitespace and hyphens are dropped,
// the remainder is trimmed and lower-cased, and every whitespace character
// becomes a hyphen. Each whitespace character is replaced individually, so
// consecutive spaces yield consecutive hyphens; the site generates its own
// anchors the same way, and the slugs must match.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	s := strings.ToLower(strings.TrimSpace(b.String()))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, s)
}

// CacheFileName returns the on-disk name for a chapter's raw HTML: a
// dense 1-based index prefix followed by the URL path with slashes
// flattened to underscores.
func CacheFileName(index int, rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		name = u.Path
	}
	name = strings.Trim(name, "/")
	name = strings.ReplaceAll(name, "/", "_")
	if !strings.HasSuffix(name, ".html") {
		name += ".html"
	}
	return fmt.Sprintf("%05d_%s", index, name)
}
