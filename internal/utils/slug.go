package utils

import (
	"regexp"
	"strings"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)

// Slugify turns a display name into a URL slug: lowercase, spaces to hyphens,
// everything else stripped.
func Slugify(name string) string {
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	return slugInvalid.ReplaceAllString(slug, "")
}
