package report

import (
	"html/template"
	"io"

	"github.com/jacokyle01/critical-moves/models"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"cls": func(m models.CriticalMove) string {
		if m.Improved() {
			return "good"
		}
		return "error"
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Chess Analysis Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #2c3e50; color: white; padding: 20px; border-radius: 8px; }
        .stats { background-color: #ecf0f1; padding: 15px; border-radius: 8px; margin: 20px 0; }
        .critical-move { border: 1px solid #ddd; margin: 10px 0; padding: 15px; border-radius: 8px; }
        .critical-move.error { border-left: 5px solid #e74c3c; }
        .critical-move.good { border-left: 5px solid #27ae60; }
        .move-info { display: grid; grid-template-columns: 1fr 1fr; gap: 10px; margin: 10px 0; }
        .fen { font-family: monospace; font-size: 12px; background-color: #f8f9fa; padding: 5px; border-radius: 4px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Chess Analysis Report</h1>
        <p>Generated: {{.Metadata.Timestamp.Format "2006-01-02 15:04:05"}}</p>
    </div>

    <div class="stats">
        <h2>Statistics</h2>
        <ul>
            <li><strong>Total critical moves:</strong> {{.Metadata.TotalMoves}}</li>
            <li><strong>Critical threshold:</strong> {{.Metadata.Threshold}} points</li>
            <li><strong>Analysis depth:</strong> {{.Metadata.Depth}} plies</li>
            {{- with .Metadata.Engine}}
            <li><strong>Engine:</strong> {{.}}</li>
            {{- end}}
        </ul>
    </div>

    <div class="moves-section">
        <h2>Critical Moves</h2>
{{- range .Moves}}
        <div class="critical-move {{cls .}}">
            <h3>{{.Move}} - {{.Side}} (move {{.MoveNumber}})</h3>
            <div class="move-info">
                <div><strong>Game:</strong> {{.GameID}}</div>
                <div><strong>Swing:</strong> {{printf "%.2f" .Delta}} points</div>
                <div><strong>Eval before:</strong> {{printf "%.2f" .EvalBefore}}</div>
                <div><strong>Eval after:</strong> {{printf "%.2f" .EvalAfter}}</div>
            </div>
            <p><strong>Comment:</strong> {{.Comment}}</p>
            {{- with .BestMove}}
            <p><strong>Best move:</strong> {{.}}</p>
            {{- end}}
            <div class="fen">
                <strong>FEN:</strong> {{.PositionFEN}}
            </div>
        </div>
{{- end}}
    </div>
</body>
</html>
`))

// WriteHTML renders every move, largest swing first.
func WriteHTML(w io.Writer, r models.Report) error {
	return htmlTemplate.Execute(w, struct {
		Metadata models.Metadata
		Moves    []models.CriticalMove
	}{r.Metadata, SortByDelta(r.CriticalMoves)})
}
