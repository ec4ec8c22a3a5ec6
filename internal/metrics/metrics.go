// Package metrics exposes Prometheus collectors for pipeline outcomes,
// backend calls and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// PipelineOutcomes counts finished pipeline runs by outcome.
	PipelineOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globemate",
		Name:      "pipeline_outcomes_total",
		Help:      "Pipeline runs by pipeline and outcome",
	}, []string{"pipeline", "outcome"})

	// BackendCalls times calls to generation, translation and transcription backends.
	BackendCalls = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "globemate",
		Name:      "backend_call_duration_seconds",
		Help:      "Duration of backend calls in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend", "op", "result"})

	// FeedTips tracks the total size of the community feed.
	FeedTips = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "globemate",
		Name:      "feed_tips",
		Help:      "Number of tips stored in the community feed",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "globemate",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests received",
	}, []string{"method", "route", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "globemate",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// ObserveBackend records one backend call.
func ObserveBackend(backend, op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	BackendCalls.WithLabelValues(backend, op, result).Observe(time.Since(start).Seconds())
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware records request counts and latency. Routes are labelled with
// the matched ServeMux pattern to keep cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(rec.status),
		}
		httpRequests.With(labels).Inc()
		httpLatency.With(labels).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the default Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
