package papers

import (
	"regexp"
	"strings"
)

var (
	slugStripRegexp = regexp.MustCompile(`[^\w\s-]`)
	slugSepRegexp   = regexp.MustCompile(`[-\s]+`)
)

// Slug derives a deterministic filesystem-safe key from a paper title:
// non-word characters are stripped, runs of spaces and hyphens collapse to a
// single underscore, and the result is truncated to 50 bytes. The image
// generator names artifacts with it and the poster recomputes it to find
// them, so both sides must go through this function.
func Slug(title string) string {
	s := slugStripRegexp.ReplaceAllString(title, "")
	s = slugSepRegexp.ReplaceAllString(s, "_")
	s = strings.Trim(s, "-_")
	if len(s) > 50 {
		s = s[:50]
	}
	return s
}
