package domain

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugSeparate = regexp.MustCompile(`[\s_-]+`)
)

// Slugify derives a URL-safe identifier from a display name: lowercase,
// punctuation stripped, runs of whitespace/underscores/hyphens collapsed to
// a single hyphen, leading and trailing hyphens trimmed. The same input
// always yields the same slug.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparate.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
