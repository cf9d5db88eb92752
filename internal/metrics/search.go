package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search sources.
const (
	SourceInline     = "inline"
	SourceCollection = "collection"
)

// Search Prometheus metrics.
var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lasr",
			Name:      "search_duration_seconds",
			Help:      "Time spent scoring and ranking records",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"source"},
	)

	SearchRecordsScored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lasr",
			Name:      "search_records_scored_total",
			Help:      "Total number of records scored",
		},
		[]string{"source"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lasr",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 500},
		},
		[]string{"source"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers the search collectors with the default
// registry. Library use (the lasr SDK) never calls it, so host applications
// keep a clean registry.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchDuration, SearchRecordsScored, SearchResults)
	})
}

// ObserveSearch records one completed search.
func ObserveSearch(source string, records, results int, d time.Duration) {
	SearchDuration.WithLabelValues(source).Observe(d.Seconds())
	SearchRecordsScored.WithLabelValues(source).Add(float64(records))
	SearchResults.WithLabelValues(source).Observe(float64(results))
}
