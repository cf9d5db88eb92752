package chi

import (
	"encoding/json"

	"github.com/kailas-cloud/lasr/internal/domain/search/region"
	"github.com/kailas-cloud/lasr/internal/domain/search/result"
)

// ErrorResponseCode is a machine-readable error code.
type ErrorResponseCode string

// Error codes returned by the API.
const (
	ErrorResponseCodeBadRequest         ErrorResponseCode = "bad_request"
	ErrorResponseCodeUnauthorized       ErrorResponseCode = "unauthorized"
	ErrorResponseCodeValidationFailed   ErrorResponseCode = "validation_failed"
	ErrorResponseCodeTooManyItems       ErrorResponseCode = "too_many_items"
	ErrorResponseCodeCollectionNotFound ErrorResponseCode = "collection_not_found"
	ErrorResponseCodeNotFound           ErrorResponseCode = "not_found"
	ErrorResponseCodeMethodNotAllowed   ErrorResponseCode = "method_not_allowed"
	ErrorResponseCodeStoreNotConfigured ErrorResponseCode = "store_not_configured"
	ErrorResponseCodeStoreUnavailable   ErrorResponseCode = "store_unavailable"
	ErrorResponseCodeInternalError      ErrorResponseCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchRequest is the body of POST /search. Pointers distinguish missing
// fields from empty ones.
type SearchRequest struct {
	Items *[]json.RawMessage `json:"items"`
	Query *string            `json:"query"`
	Keys  []string           `json:"keys"`
	Limit *int               `json:"limit"`
}

// CollectionSearchRequest is the body of POST /collections/{collection}/search.
type CollectionSearchRequest struct {
	Query *string  `json:"query"`
	Keys  []string `json:"keys"`
	Limit *int     `json:"limit"`
}

// SearchResponse wraps ranked results.
type SearchResponse struct {
	Results []SearchResultItem `json:"results"`
}

// SearchResultItem is one ranked record.
type SearchResultItem struct {
	Item    any         `json:"item"`
	Score   float64     `json:"score"`
	Matches []MatchItem `json:"matches"`
}

// MatchItem is one matched field value with its highlight spans.
type MatchItem struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Indices []region.Region `json:"indices"`
	Score   float64         `json:"score"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// searchResultToDTO converts a result. item is what the caller sees as the
// record: the raw request item for inline searches, the stored record otherwise.
func searchResultToDTO(r *result.Result, item any) SearchResultItem {
	matches := make([]MatchItem, len(r.Matches()))
	for i := range r.Matches() {
		m := &r.Matches()[i]
		indices := m.Regions()
		if indices == nil {
			indices = []region.Region{}
		}
		matches[i] = MatchItem{
			Key:     m.Key(),
			Value:   m.Value(),
			Indices: indices,
			Score:   m.Score(),
		}
	}
	return SearchResultItem{
		Item:    item,
		Score:   r.Score(),
		Matches: matches,
	}
}
