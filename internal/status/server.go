// Package status serves a small read-only HTTP surface over the sync
// engine: liveness plus last-successful-sync timestamps and failure
// counters. The sync engine itself stays silent toward users; this is
// the one place pending/failed sync becomes observable.
package status

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	syncengine "github.com/PratikMahajan1993/worktracker/internal/sync"
)

// Server exposes /healthz and /api/status.
type Server struct {
	status *syncengine.Status
	logger *log.Logger
	http   *http.Server
}

// New creates a status server bound to addr.
// If logger is nil, a default logger writing to stderr is used.
func New(addr string, status *syncengine.Status, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "[status] ", log.LstdFlags)
	}

	s := &Server{status: status, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Get("/api/status", s.handleStatus)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe blocks serving requests until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Printf("Status server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.status.Snapshot()); err != nil {
		s.logger.Printf("Failed to encode status: %v", err)
	}
}
