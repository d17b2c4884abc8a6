package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacokyle01/critical-moves/models"
)

func strPtr(s string) *string { return &s }

func sampleMoves() []models.CriticalMove {
	return []models.CriticalMove{
		{
			GameID: "club_1", MoveNumber: 2, Move: "e5", Side: models.Black,
			EvalBefore: 1.0, EvalAfter: 4.5, Delta: 3.5,
			PositionFEN: "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2",
			BestMove:    strPtr("d5"), Comment: "Good tactical move that increases the advantage",
		},
		{
			GameID: "club_1", MoveNumber: 7, Move: "Qxf7+", Side: models.White,
			EvalBefore: 0.2, EvalAfter: 1006, Delta: 1005.8,
			PositionFEN: "r1bqkbnr/pppp1Qpp/2n5/4p3/2B1P3/8/PPPP1PPP/RNB1K1NR b KQkq - 0 4",
			Comment:     "Excellent move! Significantly improves the position",
		},
		{
			GameID: "club_2", MoveNumber: 12, Move: "Bxh7", Side: models.White,
			EvalBefore: 3.0, EvalAfter: 0.5, Delta: 2.5,
			PositionFEN: "8/8/8/8/8/8/8/K6k w - - 0 40",
			BestMove:    strPtr("<b>Nf3</b>"), Comment: "Inaccuracy that worsens the position",
		},
	}
}

func TestJSONRoundTrip(t *testing.T) {
	rep := New(sampleMoves(), 2.0, 15, "Stockfish 17")

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, rep))

	got, err := ReadJSON(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(rep, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, got.Metadata.TotalMoves)
	assert.NotEmpty(t, got.Metadata.RunID)
}

func TestJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, New(sampleMoves()[1:2], 2.0, 15, "")))

	out := buf.String()
	for _, field := range []string{
		`"metadata"`, `"timestamp"`, `"threshold": 2`, `"depth": 15`, `"total_moves": 1`,
		`"critical_moves"`, `"game_id": "club_1"`, `"move_number": 7`, `"move": "Qxf7+"`,
		`"side": "White"`, `"eval_before": 0.2`, `"eval_after": 1006`, `"delta": 1005.8`,
		`"position_fen"`, `"best_move": null`, `"comment"`,
	} {
		assert.Contains(t, out, field)
	}
}

func TestSortByDeltaStable(t *testing.T) {
	moves := []models.CriticalMove{
		{GameID: "a", Delta: 2.0},
		{GameID: "b", Delta: 5.0},
		{GameID: "c", Delta: 2.0},
		{GameID: "d", Delta: 5.0},
		{GameID: "e", Delta: 3.0},
	}
	sorted := SortByDelta(moves)

	var ids []string
	for _, m := range sorted {
		ids = append(ids, m.GameID)
	}
	assert.Equal(t, []string{"b", "d", "e", "a", "c"}, ids)
	assert.Equal(t, "a", moves[0].GameID, "input must not be reordered")
}

func TestTop(t *testing.T) {
	var moves []models.CriticalMove
	for i := 0; i < 15; i++ {
		moves = append(moves, models.CriticalMove{GameID: fmt.Sprintf("g_%d", i), Delta: float64(i)})
	}
	top := Top(moves, PromptLimit)
	require.Len(t, top, PromptLimit)
	assert.Equal(t, 14.0, top[0].Delta)
	assert.Equal(t, 5.0, top[9].Delta)

	assert.Len(t, Top(moves[:3], PromptLimit), 3)
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, New(sampleMoves(), 2.0, 15, "Stockfish 17")))
	out := buf.String()

	// Largest swing first. html/template escapes "+" as "&#43;".
	first := strings.Index(out, "<h3>Qxf7&#43;")
	second := strings.Index(out, "<h3>e5")
	third := strings.Index(out, "<h3>Bxh7")
	require.True(t, first >= 0 && second >= 0 && third >= 0)
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	assert.Equal(t, 2, strings.Count(out, `class="critical-move good"`))
	assert.Equal(t, 1, strings.Count(out, `class="critical-move error"`))
	assert.Contains(t, out, "<strong>Total critical moves:</strong> 3")
	assert.Contains(t, out, "<strong>Best move:</strong> d5")
	assert.Contains(t, out, "&lt;b&gt;Nf3&lt;/b&gt;")
	assert.Equal(t, 2, strings.Count(out, "Best move:"))
	assert.Contains(t, out, "1005.80 points")
}

func TestWritePrompts(t *testing.T) {
	var moves []models.CriticalMove
	for i := 0; i < 12; i++ {
		moves = append(moves, models.CriticalMove{
			GameID: "g_1", MoveNumber: i + 1, Move: fmt.Sprintf("m%d", i), Side: models.White,
			Delta: float64(i) + 2, PositionFEN: "8/8/8/8/8/8/8/K6k w - - 0 1",
		})
	}
	moves[11].BestMove = strPtr("Kb2")

	var buf bytes.Buffer
	require.NoError(t, WritePrompts(&buf, New(moves, 2.0, 15, "")))
	out := buf.String()

	assert.Equal(t, PromptLimit, strings.Count(out, "## Prompt "))
	assert.Contains(t, out, "## Prompt 1: m11 - White")
	assert.Contains(t, out, "## Prompt 10: m2 - White")
	assert.NotContains(t, out, "m1 - White")
	assert.Contains(t, out, "- Suggested best move: Kb2")
	assert.Contains(t, out, "- Suggested best move: N/A")
	for _, q := range Questions {
		assert.Equal(t, PromptLimit, strings.Count(out, q))
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	rep := New(sampleMoves(), 2.0, 15, "")

	written, err := WriteFiles(dir, rep, Options{HTML: true, Prompts: false})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, JSONFile), filepath.Join(dir, HTMLFile)}, written)

	_, err = os.Stat(filepath.Join(dir, PromptsFile))
	assert.True(t, os.IsNotExist(err))

	got, err := ReadFile(dir)
	require.NoError(t, err)
	assert.Len(t, got.CriticalMoves, 3)
}
