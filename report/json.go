package report

import (
	"encoding/json"
	"io"

	"github.com/jacokyle01/critical-moves/models"
)

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r models.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// ReadJSON decodes a report written by WriteJSON.
func ReadJSON(r io.Reader) (models.Report, error) {
	var rep models.Report
	err := json.NewDecoder(r).Decode(&rep)
	return rep, err
}
