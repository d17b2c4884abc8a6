// Package report turns critical moves into JSON, HTML and prompt files.
package report

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/jacokyle01/critical-moves/models"
)

// File names written into the output directory.
const (
	JSONFile    = "chess_analysis.json"
	HTMLFile    = "chess_analysis_report.html"
	PromptsFile = "chess_analysis_prompts.txt"
)

// PromptLimit is the number of moves turned into prompts.
const PromptLimit = 10

// New builds a report for moves with a fresh run id and the current time.
func New(moves []models.CriticalMove, threshold float64, depth int, engine string) models.Report {
	return models.Report{
		Metadata: models.Metadata{
			RunID:      uuid.NewString(),
			Timestamp:  time.Now(),
			Threshold:  threshold,
			Depth:      depth,
			Engine:     engine,
			TotalMoves: len(moves),
		},
		CriticalMoves: moves,
	}
}

// SortByDelta returns a copy of moves ordered by delta, largest first.
// Moves with equal deltas keep their original order.
func SortByDelta(moves []models.CriticalMove) []models.CriticalMove {
	sorted := slices.Clone(moves)
	slices.SortStableFunc(sorted, func(a, b models.CriticalMove) int {
		switch {
		case a.Delta > b.Delta:
			return -1
		case a.Delta < b.Delta:
			return 1
		}
		return 0
	})
	return sorted
}

// Top returns the n moves with the largest deltas.
func Top(moves []models.CriticalMove, n int) []models.CriticalMove {
	sorted := SortByDelta(moves)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
