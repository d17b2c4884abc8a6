package models

// Side names used for the player who made a move.
const (
	White = "White"
	Black = "Black"
)

// CriticalMove is a move whose evaluation swing met the analysis threshold.
// Evaluations are White-relative; mate scores are encoded as ±(1000+N).
type CriticalMove struct {
	GameID      string  `json:"game_id"`
	MoveNumber  int     `json:"move_number"`
	Move        string  `json:"move"` // SAN
	Side        string  `json:"side"` // side that played the move
	EvalBefore  float64 `json:"eval_before"`
	EvalAfter   float64 `json:"eval_after"`
	Delta       float64 `json:"delta"`
	PositionFEN string  `json:"position_fen"` // position after the move
	BestMove    *string `json:"best_move"`    // SAN, nil when the engine gave none
	Comment     string  `json:"comment"`
}

// Improved reports whether the move raised White's evaluation.
func (m CriticalMove) Improved() bool {
	return m.EvalAfter > m.EvalBefore
}

// BestMoveOr returns the best move or fallback when absent.
func (m CriticalMove) BestMoveOr(fallback string) string {
	if m.BestMove == nil {
		return fallback
	}
	return *m.BestMove
}
