// Package analysis replays games against an engine and collects the moves
// whose evaluation swing crosses the critical threshold.
package analysis

import (
	"context"
	"math"

	"github.com/notnil/chess"
	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/models"
)

// DefaultThreshold is the evaluation swing, in pawns, that makes a move
// critical.
const DefaultThreshold = 2.0

// Engine evaluates positions given as FEN. Evaluations are White-relative;
// best moves are UCI strings, "" when there is none.
type Engine interface {
	Evaluate(fen string, depth int) (float64, error)
	BestMove(fen string, depth int) (string, error)
}

// Scanner finds critical moves in a single game.
type Scanner struct {
	engine    Engine
	depth     int
	threshold float64
	log       *zap.SugaredLogger
}

// NewScanner creates a scanner searching each position to depth.
func NewScanner(engine Engine, depth int, threshold float64, log *zap.SugaredLogger) *Scanner {
	return &Scanner{engine: engine, depth: depth, threshold: threshold, log: log}
}

// evaluate never fails: engine errors are logged and count as 0.0.
func (s *Scanner) evaluate(fen string) float64 {
	eval, err := s.engine.Evaluate(fen, s.depth)
	if err != nil {
		s.log.Errorw("Error evaluating position", "fen", fen, "error", err)
		return 0.0
	}
	return eval
}

// bestMove returns the engine's choice in SAN for the board's current
// position, or nil if the engine fails or has no move.
func (s *Scanner) bestMove(b *Board) *string {
	fen := b.Position().String()
	uci, err := s.engine.BestMove(fen, s.depth)
	if err != nil {
		s.log.Errorw("Error getting best move", "fen", fen, "error", err)
		return nil
	}
	if uci == "" {
		return nil
	}
	san, err := b.SAN(uci)
	if err != nil {
		s.log.Errorw("Engine suggested an unusable move", "fen", fen, "move", uci, "error", err)
		return nil
	}
	return &san
}

// Scan replays the mainline of game and returns its critical moves in
// move order. On error the moves found so far are returned with it.
func (s *Scanner) Scan(ctx context.Context, gameID string, game *chess.Game) ([]models.CriticalMove, error) {
	var critical []models.CriticalMove

	positions := game.Positions()
	board := NewBoard(positions[0])
	moves := game.Moves()

	s.log.Infof("Analyzing game %s", gameID)

	previousEval := 0.0
	if len(moves) > 0 && !board.IsTerminal() {
		previousEval = s.evaluate(board.Position().String())
	}

	for i, move := range moves {
		if err := ctx.Err(); err != nil {
			return critical, err
		}
		moveNumber := i + 1

		san, err := board.Push(move)
		if err != nil {
			return critical, err
		}

		if !board.IsTerminal() {
			pos := board.Position()
			currentEval := s.evaluate(pos.String())
			delta := math.Abs(currentEval - previousEval)

			if delta >= s.threshold {
				board.Pop()
				best := s.bestMove(board)
				if _, err := board.Push(move); err != nil {
					return critical, err
				}

				critical = append(critical, models.CriticalMove{
					GameID:      gameID,
					MoveNumber:  moveNumber,
					Move:        san,
					Side:        sideName(pos.Turn().Other()),
					EvalBefore:  previousEval,
					EvalAfter:   currentEval,
					Delta:       delta,
					PositionFEN: pos.String(),
					BestMove:    best,
					Comment:     Comment(previousEval, currentEval, delta),
				})
				s.log.Infof("Critical move found: %s (delta=%.2f)", san, delta)
			}

			previousEval = currentEval
		}

		if moveNumber%10 == 0 {
			s.log.Infof("Analyzed move %d", moveNumber)
		}
	}

	return critical, nil
}
