// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/negroni"

	"github.com/apilens/apilens/analyze"
	"github.com/apilens/apilens/openapi"
)

const maxBodyBytes = 8 << 20

// Server routes analysis and spec parsing requests to the pipeline.
type Server struct {
	analyzer *analyze.Analyzer
	router   *mux.Router
	metrics  *metrics
}

func New(analyzer *analyze.Analyzer) *Server {
	return NewWithRegistry(analyzer, prometheus.NewRegistry())
}

// NewWithRegistry lets the caller own the metrics registry, which keeps
// tests from tripping over duplicate collector registration.
func NewWithRegistry(analyzer *analyze.Analyzer, reg *prometheus.Registry) *Server {
	s := &Server{analyzer: analyzer}
	s.metrics = newMetrics(reg, func() float64 {
		return float64(analyzer.Detector().Cache().Size())
	})

	r := mux.NewRouter().StrictSlash(true)
	r.HandleFunc("/v1/analyze", s.handleAnalyze).Methods("POST")
	r.HandleFunc("/v1/spec", s.handleSpec).Methods("POST")
	r.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods("GET")
	r.Use(s.observe)

	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	slog.Info("listening", "addr", addr)
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	source := r.URL.Query().Get("source")
	if source == "" {
		source = "request"
	}

	rep, err := s.analyzer.Analyze(body, source)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid document: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	spec, err := openapi.ParseBytes(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := negroni.NewResponseWriter(w)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		s.metrics.requests.WithLabelValues(route, fmt.Sprint(ww.Status())).Inc()
		s.metrics.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "dur", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("could not encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
