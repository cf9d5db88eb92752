package search

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/lasr/internal/domain"
	"github.com/kailas-cloud/lasr/internal/domain/search/request"
	"github.com/kailas-cloud/lasr/internal/domain/search/result"
	"github.com/kailas-cloud/lasr/internal/domain/search/score"
	"github.com/kailas-cloud/lasr/internal/domain/value"
	"github.com/kailas-cloud/lasr/internal/logger"
	"github.com/kailas-cloud/lasr/internal/metrics"
)

// Defaults for parallel scoring.
const (
	DefaultParallelThreshold = 2048
	// cancelCheckInterval is how many records a worker scores between context checks.
	cancelCheckInterval = 256
)

// Service ranks records against a query.
type Service struct {
	records           RecordSource
	workers           int
	parallelThreshold int
}

// New creates a search service. records may be nil, in which case only
// inline searches are available.
func New(records RecordSource) *Service {
	return &Service{
		records:           records,
		workers:           runtime.GOMAXPROCS(0),
		parallelThreshold: DefaultParallelThreshold,
	}
}

// WithParallelism sets the worker count and the minimum number of records
// before scoring fans out. workers <= 1 disables fan-out.
func (s *Service) WithParallelism(workers, threshold int) *Service {
	if workers > 0 {
		s.workers = workers
	}
	if threshold > 0 {
		s.parallelThreshold = threshold
	}
	return s
}

// Search scores every record, drops zero scores and returns the best
// req.Limit() results in descending score order.
func (s *Service) Search(
	ctx context.Context, records []value.Value, req *request.Request,
) ([]result.Result, error) {
	return s.search(ctx, metrics.SourceInline, records, req)
}

// SearchCollection searches the records stored for a collection.
func (s *Service) SearchCollection(
	ctx context.Context, collection string, req *request.Request,
) ([]result.Result, error) {
	if s.records == nil {
		return nil, domain.ErrStoreNotConfigured
	}
	ctx = logger.With(ctx, zap.String("collection", collection))
	records, err := s.records.Load(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return s.search(ctx, metrics.SourceCollection, records, req)
}

func (s *Service) search(
	ctx context.Context, source string, records []value.Value, req *request.Request,
) ([]result.Result, error) {
	start := time.Now()

	scored, err := s.scoreAll(ctx, records, req)
	if err != nil {
		return nil, err
	}
	results := rank(scored, req.Limit())

	duration := time.Since(start)
	metrics.ObserveSearch(source, len(records), len(results), duration)
	logger.FromContext(ctx).Debug("search completed",
		zap.String("source", source),
		zap.Int("records", len(records)),
		zap.Int("keys", len(req.Keys())),
		zap.Int("tokens", len(req.Tokens())),
		zap.Int("results", len(results)),
		zap.Duration("duration", duration),
	)
	return results, nil
}

// scoreAll scores records in input order. Large inputs are split into
// contiguous chunks scored by separate workers, each with its own Scorer.
func (s *Service) scoreAll(
	ctx context.Context, records []value.Value, req *request.Request,
) ([]result.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	scored := make([]result.Result, len(records))
	if len(records) == 0 {
		return scored, nil
	}

	keys, query, tokens := req.Keys(), req.Normalized(), req.Tokens()

	if s.workers <= 1 || len(records) < s.parallelThreshold {
		sc := score.NewScorer()
		for i, rec := range records {
			scored[i] = sc.Record(i, rec, keys, query, tokens)
		}
		return scored, nil
	}

	chunk := (len(records) + s.workers - 1) / s.workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(records); lo += chunk {
		lo := lo
		hi := min(lo+chunk, len(records))
		g.Go(func() error {
			sc := score.NewScorer()
			for i := lo; i < hi; i++ {
				if (i-lo)%cancelCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				scored[i] = sc.Record(i, records[i], keys, query, tokens)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return scored, nil
}
