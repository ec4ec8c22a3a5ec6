// Package health provides the ops HTTP endpoints.
//
// Docker and Kubernetes use /healthz for liveness and /readyz for readiness.
// /healthz turns OK once the daemon has started its transports; /readyz
// additionally requires the text generation backend, so an instance whose
// model never loaded stays out of rotation while still answering with the
// "model not loaded" warning. /metrics serves Prometheus metrics.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/nadzzz/globemate/internal/metrics"
)

// Server is a lightweight HTTP server for health, readiness and metrics.
type Server struct {
	port    int
	started atomic.Bool
	ready   func() bool
	server  *http.Server
}

// New creates a new ops server. ready reports whether the backends needed
// to answer queries are available; nil means always ready.
func New(port int, ready func() bool) *Server {
	if ready == nil {
		ready = func() bool { return true }
	}
	return &Server{port: port, ready: ready}
}

// SetStarted marks the daemon as started.
func (s *Server) SetStarted(started bool) {
	s.started.Store(started)
}

// Handler returns the ops routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, s.started.Load())
	})

	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, s.started.Load() && s.ready())
	})

	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

// ListenAndServe starts the ops HTTP server.
// It blocks until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("health server listening", "port", s.port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	if err := s.server.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("health server: %w", err)
	}
	return nil
}

func writeStatus(w http.ResponseWriter, ok bool) {
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "not_ready"})
		return
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
