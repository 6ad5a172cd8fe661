// Package http exposes the conversion service over HTTP: health, readiness,
// and metrics endpoints plus a JSON-in/XML-out export endpoint.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/hazard-nrml-export/internal/domain"
	"github.com/couchcryptid/hazard-nrml-export/internal/nrml"
)

// maxBundleBytes caps export request bodies. Disaggregation bundles are the
// largest legitimate inputs and stay well under this.
const maxBundleBytes = 64 << 20

// Exporter converts one decoded bundle into an NRML document on the sink.
type Exporter interface {
	Export(bundle domain.Bundle, sink io.Writer) error
	CheckReadiness() error
}

// Server exposes health, readiness, metrics, and export HTTP endpoints.
type Server struct {
	httpServer *http.Server
	exporter   Exporter
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// POST /export routes.
func NewServer(addr string, exporter Exporter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		exporter: exporter,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /export", s.handleExport)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if err := s.exporter.CheckReadiness(); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleExport converts a JSON result bundle into an NRML document. The
// document is buffered before writing the response so a serialization
// failure produces a clean error status instead of a truncated body.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBundleBytes))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
		return
	}

	bundle, err := domain.DecodeBundle(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var doc bytes.Buffer
	if err := s.exporter.Export(bundle, &doc); err != nil {
		s.logger.Warn("export request failed", "kind", bundle.Kind, "error", err)
		writeJSON(w, exportStatus(err), map[string]string{"error": err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Bytes()) //nolint:errcheck // client went away; nothing to do
}

// exportStatus maps writer errors onto HTTP statuses: caller mistakes
// (bad metadata, bad geometry, missing bin edges) are 422s, everything
// else is a 500.
func exportStatus(err error) int {
	var (
		metadataErr *nrml.MetadataError
		geometryErr *nrml.InvalidGeometryError
		binEdgesErr *nrml.MissingBinEdgesError
	)
	switch {
	case errors.As(err, &metadataErr),
		errors.As(err, &geometryErr),
		errors.As(err, &binEdgesErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
