package lasr

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/lasr/internal/domain"
	"github.com/kailas-cloud/lasr/internal/domain/search/request"
	"github.com/kailas-cloud/lasr/internal/domain/search/result"
	"github.com/kailas-cloud/lasr/internal/domain/value"
	searchuc "github.com/kailas-cloud/lasr/internal/usecase/search"
)

// DefaultLimit is the number of results returned when Options.Limit is 0.
const DefaultLimit = request.DefaultLimit

// Options describes an in-process search.
type Options struct {
	// Items are the records to search: maps, slices, scalars or any
	// JSON-marshalable struct. Required; an empty slice yields no results.
	Items []any
	// Query is matched case-insensitively, first whole, then token by token.
	Query string
	// Keys are dotted field paths; values under arrays are searched element-wise.
	Keys []string
	// Limit caps the result count. 0 means DefaultLimit, negative means none.
	Limit int
}

// Search ranks opts.Items against opts.Query.
func Search(opts Options) ([]Result, error) {
	return SearchContext(context.Background(), opts)
}

// SearchContext is Search with cancellation.
func SearchContext(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Items == nil {
		return nil, fmt.Errorf("search: items is required: %w", domain.ErrInvalidRequest)
	}

	req := newRequest(opts.Query, opts.Keys, opts.Limit)
	records := make([]value.Value, len(opts.Items))
	for i, item := range opts.Items {
		records[i] = value.FromAny(item)
	}

	results, err := searchuc.New(nil).Search(ctx, records, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return fromResults(results, func(r *result.Result) any {
		return opts.Items[r.Index()]
	}), nil
}

func newRequest(query string, keys []string, limit int) request.Request {
	if limit == 0 {
		limit = DefaultLimit
	}
	return request.New(query, keys, limit)
}
