package search

import (
	"sort"

	"github.com/kailas-cloud/lasr/internal/domain/search/result"
)

// rank drops zero-score results, orders the rest by descending score and keeps
// the best limit. The sort is stable, so ties keep input order.
func rank(results []result.Result, limit int) []result.Result {
	if limit <= 0 {
		return []result.Result{}
	}

	ranked := make([]result.Result, 0, len(results))
	for _, r := range results {
		if r.Score() > 0 {
			ranked = append(ranked, r)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
