package result

import (
	"github.com/kailas-cloud/lasr/internal/domain/search/region"
	"github.com/kailas-cloud/lasr/internal/domain/value"
)

// FieldMatch is one extracted field value that matched the query.
type FieldMatch struct {
	key     string
	value   string
	regions []region.Region
	score   float64
}

// NewFieldMatch creates a field match. regions must already be coalesced.
func NewFieldMatch(key, val string, regions []region.Region, score float64) FieldMatch {
	return FieldMatch{key: key, value: val, regions: regions, score: score}
}

// Key returns the field path that produced the value.
func (m *FieldMatch) Key() string { return m.key }

// Value returns the original (not lower-cased) field value.
func (m *FieldMatch) Value() string { return m.value }

// Regions returns the sorted, disjoint highlight spans.
func (m *FieldMatch) Regions() []region.Region { return m.regions }

// Score returns the field value score.
func (m *FieldMatch) Score() float64 { return m.score }

// Result is a scored record.
type Result struct {
	index   int
	record  value.Value
	score   float64
	matches []FieldMatch
}

// New creates a record result. index is the record position in the input.
func New(index int, record value.Value, score float64, matches []FieldMatch) Result {
	return Result{index: index, record: record, score: score, matches: matches}
}

// Index returns the position of the record in the searched input.
func (r *Result) Index() int { return r.index }

// Record returns the scored record.
func (r *Result) Record() value.Value { return r.record }

// Score returns the total relevance score.
func (r *Result) Score() float64 { return r.score }

// Matches returns field matches, best first.
func (r *Result) Matches() []FieldMatch { return r.matches }
