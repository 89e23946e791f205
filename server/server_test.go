package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apilens/apilens/analyze"
	"github.com/apilens/apilens/embedding"
	"github.com/apilens/apilens/importance"
	"github.com/apilens/apilens/semantic"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	art, err := embedding.DefaultArtifact()
	require.NoError(t, err)
	scorer := semantic.NewScorer(semantic.StrategyEmbedding, embedding.NewClassifier(art))
	detector := semantic.NewDetector(semantic.NewRegistry(), scorer, semantic.NewCache())
	analyzer := analyze.New(detector, importance.NewAnalyzer())
	return NewWithRegistry(analyzer, prometheus.NewRegistry())
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer(t)

	body := `[{"rating":5,"comment":"Great!"},{"rating":3,"comment":"Okay"}]`
	req := httptest.NewRequest("POST", "/v1/analyze?source=test://reviews", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"review-pattern-detected"`)
	assert.Contains(t, rec.Body.String(), `"card-list"`)
}

func TestAnalyzeEndpointBadDocument(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/v1/analyze", strings.NewReader(`{"broken":`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid document")
}

func TestSpecEndpoint(t *testing.T) {
	s := newTestServer(t)

	doc := `{
		"openapi": "3.0.0",
		"info": {"title": "Petstore", "version": "1.0.0"},
		"paths": {
			"/pets": {
				"get": {"responses": {"200": {"description": "ok"}}},
				"delete": {"responses": {"204": {"description": "gone"}}}
			}
		}
	}`
	req := httptest.NewRequest("POST", "/v1/spec", strings.NewReader(doc))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Petstore"`)
	assert.Contains(t, rec.Body.String(), `"GET"`)
	assert.NotContains(t, rec.Body.String(), `"DELETE"`)
}

func TestSpecEndpointBadDocument(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("POST", "/v1/spec", strings.NewReader(`not a spec`))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestMetricsExposed(t *testing.T) {
	s := newTestServer(t)

	// Warm the cache gauge with one analysis first.
	req := httptest.NewRequest("POST", "/v1/analyze", strings.NewReader(`{"price":9.99}`))
	s.ServeHTTP(httptest.NewRecorder(), req)

	req = httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "apilens_detection_cache_entries")
	assert.Contains(t, rec.Body.String(), "apilens_http_requests_total")
}
