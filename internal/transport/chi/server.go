package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lasr/internal/domain"
	"github.com/kailas-cloud/lasr/internal/domain/search/request"
	"github.com/kailas-cloud/lasr/internal/domain/search/result"
	"github.com/kailas-cloud/lasr/internal/domain/value"
	healthuc "github.com/kailas-cloud/lasr/internal/usecase/health"
	searchuc "github.com/kailas-cloud/lasr/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Limits bounds request sizes.
type Limits struct {
	DefaultLimit int   // results when the request omits limit
	MaxItems     int   // items per inline search, 0 = unlimited
	MaxBodyBytes int64 // request body size, 0 = unlimited
}

// Server serves the lasr HTTP API.
type Server struct {
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	limits        Limits
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
	limits Limits,
) *Server {
	if limits.DefaultLimit <= 0 {
		limits.DefaultLimit = request.DefaultLimit
	}
	s := &Server{
		search: search,
		health: health,
		logger: logger,
		limits: limits,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorResponseCodeValidationFailed),
		sentinelHandler(domain.ErrTooManyItems, http.StatusRequestEntityTooLarge, ErrorResponseCodeTooManyItems),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorResponseCodeCollectionNotFound),
		sentinelHandler(domain.ErrStoreNotConfigured,
			http.StatusNotImplemented, ErrorResponseCodeStoreNotConfigured),
		sentinelHandler(domain.ErrStoreUnavailable,
			http.StatusServiceUnavailable, ErrorResponseCodeStoreUnavailable),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Post("/search", s.Search)
	r.Post("/collections/{collection}/search", s.SearchCollection)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorResponseCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorResponseCodeMethodNotAllowed, "method not allowed")
	})
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if !s.decode(w, r, &req) {
		return
	}

	if req.Items == nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "items is required")
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "query is required")
		return
	}
	items := *req.Items
	if s.limits.MaxItems > 0 && len(items) > s.limits.MaxItems {
		s.handleDomainError(w, fmt.Errorf("%d items, max %d: %w", len(items), s.limits.MaxItems, domain.ErrTooManyItems))
		return
	}

	searchReq := s.searchRequest(*req.Query, req.Keys, req.Limit)

	records := make([]value.Value, len(items))
	for i, raw := range items {
		v, err := value.ParseJSON(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed,
				fmt.Sprintf("items[%d] is not valid JSON", i))
			return
		}
		records[i] = v
	}

	results, err := s.search.Search(r.Context(), records, &searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(results, func(res *result.Result) any {
		return items[res.Index()]
	}))
}

// SearchCollection handles POST /collections/{collection}/search.
func (s *Server) SearchCollection(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")

	var req CollectionSearchRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Query == nil {
		writeError(w, http.StatusBadRequest, ErrorResponseCodeValidationFailed, "query is required")
		return
	}

	searchReq := s.searchRequest(*req.Query, req.Keys, req.Limit)

	results, err := s.search.SearchCollection(r.Context(), collection, &searchReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSearchResponse(results, func(res *result.Result) any {
		return res.Record()
	}))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := r.Body
	if s.limits.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.limits.MaxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorResponseCodeBadRequest, "request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorResponseCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) searchRequest(query string, keys []string, limitPtr *int) request.Request {
	limit := s.limits.DefaultLimit
	if limitPtr != nil {
		limit = *limitPtr
	}
	return request.New(query, keys, limit)
}

func toSearchResponse(results []result.Result, item func(*result.Result) any) SearchResponse {
	items := make([]SearchResultItem, len(results))
	for i := range results {
		items[i] = searchResultToDTO(&results[i], item(&results[i]))
	}
	return SearchResponse{Results: items}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorResponseCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrInvalidRequest,
		domain.ErrTooManyItems,
		domain.ErrNotFound,
		domain.ErrStoreNotConfigured,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorResponseCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorResponseCodeInternalError, "internal error")
}
