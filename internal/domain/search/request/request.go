package request

import (
	"strings"

	"github.com/kailas-cloud/lasr/internal/domain/search/match"
	"github.com/kailas-cloud/lasr/internal/domain/search/path"
)

// DefaultLimit is the result count used when the caller does not pick one.
const DefaultLimit = 10

// Request is a normalized search query. The normalized query and its tokens
// are derived once and shared by every record scored for this request.
type Request struct {
	query      string
	normalized string
	tokens     []string
	keys       []path.FieldPath
	limit      int
}

// New normalizes search parameters. It never fails: an empty query matches
// nothing, malformed or empty keys resolve to no values and limit <= 0 yields
// no results.
func New(query string, keys []string, limit int) Request {
	normalized := match.Normalize(query)
	return Request{
		query:      query,
		normalized: normalized,
		tokens:     strings.Fields(normalized),
		keys:       path.ParseAll(keys),
		limit:      limit,
	}
}

// Query returns the query as supplied by the caller.
func (r *Request) Query() string { return r.query }

// Normalized returns the lower-cased query.
func (r *Request) Normalized() string { return r.normalized }

// Tokens returns the whitespace-split, non-empty, lower-cased query tokens.
func (r *Request) Tokens() []string { return r.tokens }

// Keys returns the field paths to search.
func (r *Request) Keys() []path.FieldPath { return r.keys }

// Limit returns the maximum number of results.
func (r *Request) Limit() int { return r.limit }
