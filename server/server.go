// Package server serves a generated analysis report over HTTP.
package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/apperrors"
	"github.com/jacokyle01/critical-moves/models"
	"github.com/jacokyle01/critical-moves/report"
)

// Server holds the report loaded from an output directory.
type Server struct {
	dir string
	log *zap.SugaredLogger

	mu     sync.RWMutex
	report models.Report
}

// NewServer loads the report in dir.
func NewServer(dir string, log *zap.SugaredLogger) (*Server, error) {
	s := &Server{dir: dir, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the report from disk.
func (s *Server) Reload() error {
	rep, err := report.ReadFile(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w in %s", apperrors.ErrNoReport, s.dir)
	}
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}

	s.mu.Lock()
	s.report = rep
	s.mu.Unlock()

	s.log.Infof("Loaded report %s with %d critical moves", rep.Metadata.RunID, len(rep.CriticalMoves))
	return nil
}

func (s *Server) current() models.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// Router returns the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHTML)
	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/report", s.handleReport)
		r.Get("/moves", s.handleMoves)
		r.Get("/prompts", s.handlePrompts)
		r.Post("/reload", s.handleReload)
	})
	return r
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Infof("Starting server on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}
