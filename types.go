package lasr

import (
	"github.com/kailas-cloud/lasr/internal/domain/search/region"
	"github.com/kailas-cloud/lasr/internal/domain/search/result"
)

// Region is a half-open [Start, End) span of characters in a matched value.
// It encodes to JSON as [start, end].
type Region = region.Region

// Match is one field value that matched the query.
type Match struct {
	Key     string   `json:"key"`
	Value   string   `json:"value"`
	Indices []Region `json:"indices"`
	Score   float64  `json:"score"`
}

// Result is a ranked record.
type Result struct {
	Item    any     `json:"item"`
	Score   float64 `json:"score"`
	Matches []Match `json:"matches"`
}

func fromResults(results []result.Result, item func(*result.Result) any) []Result {
	out := make([]Result, len(results))
	for i := range results {
		r := &results[i]
		matches := make([]Match, len(r.Matches()))
		for j := range r.Matches() {
			m := &r.Matches()[j]
			indices := m.Regions()
			if indices == nil {
				indices = []Region{}
			}
			matches[j] = Match{
				Key:     m.Key(),
				Value:   m.Value(),
				Indices: indices,
				Score:   m.Score(),
			}
		}
		out[i] = Result{
			Item:    item(r),
			Score:   r.Score(),
			Matches: matches,
		}
	}
	return out
}
