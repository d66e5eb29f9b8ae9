// Package server exposes the pipeline over HTTP: POST /search plus
// health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkarpov/rolefinder/internal/model"
)

// Searcher is what the server needs from the pipeline.
type Searcher interface {
	Run(ctx context.Context, company, designation string) (*model.SearchResponse, error)
}

// Server wires the HTTP surface around a Searcher.
type Server struct {
	cfg      model.ServerConfig
	searcher Searcher
	logger   *slog.Logger
	metrics  *metrics
	mux      *http.ServeMux
}

// New creates a server. A nil logger falls back to slog.Default.
func New(cfg model.ServerConfig, searcher Searcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		searcher: searcher,
		logger:   logger,
		metrics:  newMetrics(),
		mux:      http.NewServeMux(),
	}

	s.mux.HandleFunc("/search", s.handleSearch)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", s.metrics.handler())

	return s
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withCORS(s.mux))
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "use POST")
		return
	}

	var req model.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.requestsTotal.WithLabelValues("bad_request").Inc()
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ctx := r.Context()
	if s.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.searcher.Run(ctx, req.Company, req.Designation)
	elapsed := time.Since(start)

	requestID, _ := r.Context().Value(requestIDKey{}).(string)

	switch {
	case errors.Is(err, model.ErrInvalidRequest):
		s.metrics.requestsTotal.WithLabelValues("invalid").Inc()
		s.writeError(w, http.StatusBadRequest, err.Error())

	case err != nil:
		s.metrics.requestsTotal.WithLabelValues("error").Inc()
		s.logger.Error("search failed",
			"request_id", requestID,
			"company", req.Company,
			"error", err,
		)
		s.writeError(w, http.StatusInternalServerError, "search failed")

	default:
		s.metrics.requestsTotal.WithLabelValues("ok").Inc()
		s.metrics.searchDuration.Observe(elapsed.Seconds())
		s.metrics.candidatesFound.Observe(float64(len(resp.Candidates)))
		s.logger.Info("search completed",
			"request_id", requestID,
			"company", req.Company,
			"designation", req.Designation,
			"candidates", len(resp.Candidates),
			"found", resp.BestMatch != nil,
			"duration_ms", elapsed.Milliseconds(),
		)
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

type requestIDKey struct{}

// withRequestID tags every request with a UUID for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// withCORS answers preflight requests and sets the allow-origin header
// for the configured origins ("*" allows any).
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed := s.allowOrigin(origin); allowed != "" {
			w.Header().Set("Access-Control-Allow-Origin", allowed)
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowOrigin(origin string) string {
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" {
			return "*"
		}
		if o == origin {
			return origin
		}
	}
	return ""
}
