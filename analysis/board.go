package analysis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"

	"github.com/jacokyle01/critical-moves/apperrors"
	"github.com/jacokyle01/critical-moves/models"
)

// Board is a position with move history supporting push and pop. It is
// owned by a single scan and is not safe for concurrent use.
type Board struct {
	positions []*chess.Position
}

// NewBoard returns a board at start.
func NewBoard(start *chess.Position) *Board {
	return &Board{positions: []*chess.Position{start}}
}

// Position returns the current position.
func (b *Board) Position() *chess.Position {
	return b.positions[len(b.positions)-1]
}

// Plies returns the number of moves pushed.
func (b *Board) Plies() int {
	return len(b.positions) - 1
}

// Push plays m on the current position and returns its SAN.
func (b *Board) Push(m *chess.Move) (string, error) {
	pos := b.Position()
	legal := findMove(pos, m.S1(), m.S2(), m.Promo())
	if legal == nil {
		return "", fmt.Errorf("%w: %s in %s", apperrors.ErrIllegalMove, m, pos)
	}
	san := chess.AlgebraicNotation{}.Encode(pos, legal)
	b.positions = append(b.positions, pos.Update(legal))
	return san, nil
}

// Pop takes back the last move. Popping the start position is a no-op.
func (b *Board) Pop() {
	if len(b.positions) > 1 {
		b.positions = b.positions[:len(b.positions)-1]
	}
}

// SAN converts a UCI move for the current position to SAN.
func (b *Board) SAN(uci string) (string, error) {
	pos := b.Position()
	m, err := chess.UCINotation{}.Decode(pos, uci)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", apperrors.ErrIllegalMove, uci, err)
	}
	legal := findMove(pos, m.S1(), m.S2(), m.Promo())
	if legal == nil {
		return "", fmt.Errorf("%w: %s in %s", apperrors.ErrIllegalMove, uci, pos)
	}
	return chess.AlgebraicNotation{}.Encode(pos, legal), nil
}

// IsTerminal reports whether the game is over in the current position:
// checkmate, stalemate, insufficient material, the 75-move rule or
// fivefold repetition.
func (b *Board) IsTerminal() bool {
	pos := b.Position()
	if pos.Status() != chess.NoMethod || len(pos.ValidMoves()) == 0 {
		return true
	}
	if insufficientMaterial(pos.Board()) {
		return true
	}
	if halfMoveClock(pos) >= 150 {
		return true
	}
	return b.repetitions() >= 5
}

func (b *Board) repetitions() int {
	cur := repetitionKey(b.Position())
	n := 0
	for _, p := range b.positions {
		if repetitionKey(p) == cur {
			n++
		}
	}
	return n
}

// repetitionKey is the FEN without move counters.
func repetitionKey(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) > 4 {
		fields = fields[:4]
	}
	return strings.Join(fields, " ")
}

func halfMoveClock(pos *chess.Position) int {
	fields := strings.Fields(pos.String())
	if len(fields) < 5 {
		return 0
	}
	n, _ := strconv.Atoi(fields[4])
	return n
}

func insufficientMaterial(board *chess.Board) bool {
	var minors, bishops int
	bishopColors := map[int]bool{}
	for sq, p := range board.SquareMap() {
		switch p.Type() {
		case chess.King:
		case chess.Knight:
			minors++
		case chess.Bishop:
			minors++
			bishops++
			bishopColors[(int(sq.File())+int(sq.Rank()))%2] = true
		default:
			return false
		}
	}
	if minors <= 1 {
		return true
	}
	return bishops == minors && len(bishopColors) == 1
}

func findMove(pos *chess.Position, s1, s2 chess.Square, promo chess.PieceType) *chess.Move {
	for _, m := range pos.ValidMoves() {
		if m.S1() == s1 && m.S2() == s2 && m.Promo() == promo {
			return m
		}
	}
	return nil
}

func sideName(c chess.Color) string {
	if c == chess.Black {
		return models.Black
	}
	return models.White
}
