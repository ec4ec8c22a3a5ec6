package health

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nadzzz/globemate/internal/metrics"
)

func do(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealthAndReadiness(t *testing.T) {
	var modelLoaded atomic.Bool
	s := New(0, modelLoaded.Load)
	h := s.Handler()

	assert.Equal(t, http.StatusServiceUnavailable, do(h, "/healthz").Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(h, "/readyz").Code)

	s.SetStarted(true)
	rec := do(h, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"not_ready"}`, rec.Body.String())

	modelLoaded.Store(true)
	assert.Equal(t, http.StatusOK, do(h, "/readyz").Code)
}

func TestNilReadyMeansReady(t *testing.T) {
	s := New(0, nil)
	s.SetStarted(true)
	assert.Equal(t, http.StatusOK, do(s.Handler(), "/readyz").Code)
}

func TestMetrics(t *testing.T) {
	metrics.PipelineOutcomes.WithLabelValues("query", "ok").Inc()

	rec := do(New(0, nil).Handler(), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "globemate_pipeline_outcomes_total")
}
