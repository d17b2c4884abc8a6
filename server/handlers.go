package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/jacokyle01/critical-moves/models"
	"github.com/jacokyle01/critical-moves/report"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.WriteHTML(w, s.current()); err != nil {
		s.log.Errorw("Error rendering HTML report", "error", err)
	}
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := report.WriteJSON(w, s.current()); err != nil {
		s.log.Errorw("Error encoding report", "error", err)
	}
}

func (s *Server) handlePrompts(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := report.WritePrompts(w, s.current()); err != nil {
		s.log.Errorw("Error rendering prompts", "error", err)
	}
}

// handleMoves lists critical moves, largest swing first, optionally
// filtered by game_id and min_delta.
func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")

	minDelta := 0.0
	if raw := r.URL.Query().Get("min_delta"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			http.Error(w, "Invalid min_delta parameter", http.StatusBadRequest)
			return
		}
		minDelta = v
	}

	moves := make([]models.CriticalMove, 0)
	for _, m := range report.SortByDelta(s.current().CriticalMoves) {
		if gameID != "" && m.GameID != gameID {
			continue
		}
		if m.Delta < minDelta {
			continue
		}
		moves = append(moves, m)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"count":          len(moves),
		"critical_moves": moves,
	}); err != nil {
		s.log.Errorw("Error encoding critical moves", "error", err)
	}
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(); err != nil {
		s.log.Errorw("Error reloading report", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
