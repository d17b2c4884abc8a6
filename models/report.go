package models

import "time"

// Metadata describes the run that produced a report.
type Metadata struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	Threshold  float64   `json:"threshold"`
	Depth      int       `json:"depth"`
	Engine     string    `json:"engine"`
	TotalMoves int       `json:"total_moves"`
}

// Report is the serialized form of one analysis run.
type Report struct {
	Metadata      Metadata       `json:"metadata"`
	CriticalMoves []CriticalMove `json:"critical_moves"`
}
