// Package apperrors holds the sentinel errors shared across the analyzer.
package apperrors

import "errors"

var (
	ErrEngineStart  = errors.New("engine failed to start")
	ErrEngineIO     = errors.New("engine communication failed")
	ErrNoScore      = errors.New("engine reported no score")
	ErrParse        = errors.New("pgn parse failed")
	ErrIllegalMove  = errors.New("illegal move in game record")
	ErrNoReport     = errors.New("no analysis report found")
	ErrInvalidValue = errors.New("invalid configuration value")
)
