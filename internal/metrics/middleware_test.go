package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const collectionRoute = "/collections/{collection}/search"

// newSearchRouter mimics the API routes with canned statuses.
func newSearchRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/search", func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 64 {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	r.Post(collectionRoute, func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "collection") == "missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"results":[]}`))
	})
	r.Get("/health", func(http.ResponseWriter, *http.Request) {})
	return r
}

func requests(method, route, status string) float64 {
	return testutil.ToFloat64(httpRequestsTotal.WithLabelValues(method, route, status))
}

func serve(h http.Handler, method, path, body string) {
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, strings.NewReader(body)))
}

func TestMiddleware_CollectionRoutePattern(t *testing.T) {
	h := newSearchRouter()
	okBefore := requests(http.MethodPost, collectionRoute, "200")
	missBefore := requests(http.MethodPost, collectionRoute, "404")

	serve(h, http.MethodPost, "/collections/people/search", `{"query":"mage"}`)
	serve(h, http.MethodPost, "/collections/planets/search", `{"query":"mars"}`)
	serve(h, http.MethodPost, "/collections/missing/search", `{"query":"x"}`)

	if got := requests(http.MethodPost, collectionRoute, "200") - okBefore; got != 2 {
		t.Errorf("200 delta = %f, want 2 (collections share one label)", got)
	}
	if got := requests(http.MethodPost, collectionRoute, "404") - missBefore; got != 1 {
		t.Errorf("404 delta = %f, want 1", got)
	}
}

func TestMiddleware_CountsRejectedBodies(t *testing.T) {
	h := newSearchRouter()
	before := requests(http.MethodPost, "/search", "413")

	serve(h, http.MethodPost, "/search", `{"items":[`+strings.Repeat(`{"name":"x"},`, 20)+`{}],"query":"x"}`)

	if got := requests(http.MethodPost, "/search", "413") - before; got != 1 {
		t.Errorf("413 delta = %f, want 1", got)
	}
	if testutil.CollectAndCount(httpRequestBodyBytes) == 0 {
		t.Error("expected body size observations")
	}
}

func TestMiddleware_EmptyHandlerIsOK(t *testing.T) {
	h := newSearchRouter()
	before := requests(http.MethodGet, "/health", "200")

	serve(h, http.MethodGet, "/health", "")

	if got := requests(http.MethodGet, "/health", "200") - before; got != 1 {
		t.Errorf("200 delta = %f, want 1", got)
	}
}

func TestMiddleware_UnmatchedRoute(t *testing.T) {
	h := newSearchRouter()
	before := requests(http.MethodGet, unmatchedRoute, "404")

	serve(h, http.MethodGet, "/collections/people/items/42", "")
	serve(h, http.MethodGet, "/wp-admin", "")

	if got := requests(http.MethodGet, unmatchedRoute, "404") - before; got != 2 {
		t.Errorf("unmatched delta = %f, want 2", got)
	}
}

func TestRouteLabel_OutsideRouter(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/search", http.NoBody)
	if got := routeLabel(r); got != unmatchedRoute {
		t.Errorf("routeLabel = %q, want %q", got, unmatchedRoute)
	}
}

func TestRegisterHTTPMetrics_Idempotent(t *testing.T) {
	RegisterHTTPMetrics()
	RegisterHTTPMetrics()

	var already prometheus.AlreadyRegisteredError
	if err := prometheus.Register(httpRequestsTotal); !errors.As(err, &already) {
		t.Errorf("expected http_requests_total in the default registry, got %v", err)
	}
}
