// Package score turns records into scored results.
//
// Each extracted field value is matched against the whole normalized query
// first. Only when that fails does every query token get a chance, and the
// token scores add up. An exact full-query match therefore always suppresses
// token scoring for the same value.
package score

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/lasr/internal/domain/search/match"
	"github.com/kailas-cloud/lasr/internal/domain/search/path"
	"github.com/kailas-cloud/lasr/internal/domain/search/region"
	"github.com/kailas-cloud/lasr/internal/domain/search/result"
	"github.com/kailas-cloud/lasr/internal/domain/value"
)

// Extracted is one projected value of a record.
type Extracted struct {
	Key        string
	Value      string
	Normalized string
}

// Scorer scores records. It owns a stateful caser and must not be shared
// between goroutines; create one per worker.
type Scorer struct {
	caser cases.Caser
}

// NewScorer creates a Scorer.
func NewScorer() *Scorer {
	return &Scorer{caser: cases.Lower(language.Und)}
}

// Extract projects every key onto rec and returns the string and lower-cased
// form of each value, in key order.
func (s *Scorer) Extract(rec value.Value, keys []path.FieldPath) []Extracted {
	var out []Extracted
	for _, k := range keys {
		for _, v := range path.Project(rec, k) {
			str := v.String()
			out = append(out, Extracted{
				Key:        k.String(),
				Value:      str,
				Normalized: s.caser.String(str),
			})
		}
	}
	return out
}

// Record scores rec. query and tokens must already be lower-cased.
// index is carried into the result so callers can map it back to their input.
func (s *Scorer) Record(
	index int, rec value.Value, keys []path.FieldPath, query string, tokens []string,
) result.Result {
	var total float64
	var matches []result.FieldMatch

	for _, ex := range s.Extract(rec, keys) {
		regions, sc := Value(ex.Normalized, query, tokens)
		if sc > 0 {
			matches = append(matches, result.NewFieldMatch(ex.Key, ex.Value, regions, sc))
			total += sc
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score() > matches[j].Score()
	})

	return result.New(index, rec, total, matches)
}

// Value scores one normalized value: the whole query first, then each token
// if the whole query did not match. Regions come back coalesced.
func Value(normalized, query string, tokens []string) ([]region.Region, float64) {
	if reg, sc, ok := match.String(normalized, query); ok {
		return []region.Region{reg}, sc
	}

	var regions []region.Region
	var total float64
	for _, tok := range tokens {
		if reg, sc, ok := match.String(normalized, tok); ok {
			regions = append(regions, reg)
			total += sc
		}
	}
	return region.Coalesce(regions), total
}
