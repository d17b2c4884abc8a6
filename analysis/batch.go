package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/loader"
	"github.com/jacokyle01/critical-moves/models"
)

// Batch runs a scanner over many games, one at a time.
type Batch struct {
	scanner *Scanner
	log     *zap.SugaredLogger
}

// NewBatch creates a batch runner.
func NewBatch(scanner *Scanner, log *zap.SugaredLogger) *Batch {
	return &Batch{scanner: scanner, log: log}
}

// Run analyzes games in order and returns every critical move found. A
// game that fails is logged and skipped. If ctx is cancelled, Run stops
// and returns what it has gathered together with the context error.
func (b *Batch) Run(ctx context.Context, games []loader.Game) ([]models.CriticalMove, error) {
	var all []models.CriticalMove

	b.log.Infof("Starting analysis of %d games", len(games))

	for i, g := range games {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		b.log.Infof("Analyzing game %d/%d: %s", i+1, len(games), g.ID)

		moves, err := b.scanner.Scan(ctx, g.ID, g.Game)
		all = append(all, moves...)
		if err != nil {
			if ctx.Err() != nil {
				return all, ctx.Err()
			}
			b.log.Errorw("Error analyzing game", "game_id", g.ID, "file", g.File, "error", err)
			continue
		}

		b.log.Infof("Game %s: %d critical moves found", g.ID, len(moves))
	}

	return all, nil
}
