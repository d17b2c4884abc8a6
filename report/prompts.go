package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jacokyle01/critical-moves/models"
)

// Questions asked about every prompted position.
var Questions = []string{
	"Why was this move critical?",
	"What were the better alternatives?",
	"Which tactical or strategic pattern is involved?",
	"How did the position change after this move?",
	"What lessons can be learned from it?",
}

// WritePrompts writes LLM prompts for the PromptLimit largest swings.
func WritePrompts(w io.Writer, r models.Report) error {
	var b strings.Builder

	b.WriteString("# Chess Analysis Prompts\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, m := range Top(r.CriticalMoves, PromptLimit) {
		fmt.Fprintf(&b, "## Prompt %d: %s - %s\n", i+1, m.Move, m.Side)
		fmt.Fprintf(&b, "**Game:** %s | **Move:** %d\n", m.GameID, m.MoveNumber)
		fmt.Fprintf(&b, "**Evaluation swing:** %.2f points\n\n", m.Delta)

		b.WriteString("### Prompt:\n\n")
		fmt.Fprintf(&b, "Analyze this chess position where %s played %s:\n\n", m.Side, m.Move)
		b.WriteString("**Context:**\n")
		fmt.Fprintf(&b, "- Move number: %d\n", m.MoveNumber)
		fmt.Fprintf(&b, "- Evaluation before: %.2f\n", m.EvalBefore)
		fmt.Fprintf(&b, "- Evaluation after: %.2f\n", m.EvalAfter)
		fmt.Fprintf(&b, "- Swing: %.2f points\n", m.Delta)
		fmt.Fprintf(&b, "- Suggested best move: %s\n\n", m.BestMoveOr("N/A"))
		b.WriteString("**Position (FEN):**\n")
		b.WriteString(m.PositionFEN + "\n\n")
		b.WriteString("**Questions:**\n")
		for j, q := range Questions {
			fmt.Fprintf(&b, "%d. %s\n", j+1, q)
		}
		b.WriteString("\nPlease provide a detailed analysis of this position.\n")
		b.WriteString("\n" + strings.Repeat("=", 80) + "\n\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
