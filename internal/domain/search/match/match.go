// Package match scores one string against one needle.
package match

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/lasr/internal/domain/search/region"
)

// String finds the first occurrence of needle in haystack. It returns the
// matched region in character offsets and the score len(needle)/len(haystack).
// An empty needle never matches.
func String(haystack, needle string) (region.Region, float64, bool) {
	if needle == "" {
		return region.Region{}, 0, false
	}
	idx := strings.Index(haystack, needle)
	if idx < 0 {
		return region.Region{}, 0, false
	}

	start := utf8.RuneCountInString(haystack[:idx])
	n := utf8.RuneCountInString(needle)
	score := float64(n) / float64(utf8.RuneCountInString(haystack))

	reg, err := region.New(start, start+n)
	if err != nil {
		return region.Region{}, 0, false
	}
	return reg, score, true
}

// Normalize lower-cases s for case-insensitive matching.
// It builds a fresh caser per call; hot loops should hold their own
// cases.Caser instead.
func Normalize(s string) string {
	return cases.Lower(language.Und).String(s)
}
