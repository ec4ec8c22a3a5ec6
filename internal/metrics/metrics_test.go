package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMiddlewareLabelsByPattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/eco/hotels", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Middleware(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/eco/hotels?city=Paris", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	out := scrape(t)
	assert.Contains(t, out, `globemate_http_requests_total{method="GET",route="GET /v1/eco/hotels",status="418"}`)
	assert.Contains(t, out, `route="unmatched"`)
}

func TestObserveBackend(t *testing.T) {
	ObserveBackend("stub", "generate", time.Now(), nil)
	ObserveBackend("stub", "generate", time.Now(), errors.New("boom"))

	out := scrape(t)
	assert.Contains(t, out, `globemate_backend_call_duration_seconds_count{backend="stub",op="generate",result="ok"} 1`)
	assert.Contains(t, out, `globemate_backend_call_duration_seconds_count{backend="stub",op="generate",result="error"} 1`)
}
