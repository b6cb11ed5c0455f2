package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces       = regexp.MustCompile(`[\s]+`)
)

// GenerateSlug builds a URL-friendly slug from a listing title plus a short
// ID prefix for uniqueness. Slugs are assigned once at creation and never
// regenerated.
func GenerateSlug(title string, id uuid.UUID) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	return slug + "-" + id.String()[:8]
}
