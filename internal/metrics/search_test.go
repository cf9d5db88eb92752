package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSearch(t *testing.T) {
	before := testutil.ToFloat64(SearchRecordsScored.WithLabelValues(SourceInline))

	ObserveSearch(SourceInline, 4, 2, 3*time.Millisecond)

	after := testutil.ToFloat64(SearchRecordsScored.WithLabelValues(SourceInline))
	if after-before != 4 {
		t.Errorf("records scored delta = %f, want 4", after-before)
	}
	if testutil.CollectAndCount(SearchDuration) == 0 {
		t.Error("expected search_duration_seconds to have observations")
	}
	if testutil.CollectAndCount(SearchResults) == 0 {
		t.Error("expected search_results to have observations")
	}
}

func TestRegisterSearchMetrics_Idempotent(t *testing.T) {
	RegisterSearchMetrics()
	RegisterSearchMetrics()

	var already prometheus.AlreadyRegisteredError
	err := prometheus.Register(SearchDuration)
	if !errors.As(err, &already) {
		t.Errorf("expected search_duration_seconds in the default registry, got %v", err)
	}
}
