// Package engine drives an external UCI chess engine over its stdin/stdout.
package engine

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/apperrors"
)

// Engine wraps a UCI chess engine process. It is not safe for concurrent use.
type Engine struct {
	path    string
	args    []string
	options map[string]string
	log     *zap.SugaredLogger

	cmd    *exec.Cmd
	pipe   io.WriteCloser
	stdin  *bufio.Writer
	stdout *bufio.Scanner
	name   string
}

// Option configures an Engine.
type Option func(*Engine)

// WithArgs sets extra command line arguments for the engine executable.
func WithArgs(args ...string) Option {
	return func(e *Engine) { e.args = args }
}

// WithOptions sets UCI options sent with setoption during the handshake.
func WithOptions(options map[string]string) Option {
	return func(e *Engine) { e.options = options }
}

// WithLogger sets the logger used for protocol traffic.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine for the executable at path. The process is not
// launched until Start.
func New(path string, opts ...Option) *Engine {
	e := &Engine{
		path: path,
		log:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the engine and runs the UCI handshake.
func (e *Engine) Start() error {
	if e.cmd != nil {
		return nil
	}

	cmd := exec.Command(e.path, e.args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEngineStart, err)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEngineStart, err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", apperrors.ErrEngineStart, e.path, err)
	}

	e.cmd = cmd
	e.pipe = stdin
	e.stdin = bufio.NewWriter(stdin)
	e.stdout = bufio.NewScanner(stdout)

	if err := e.handshake(); err != nil {
		e.kill()
		return fmt.Errorf("%w: %w", apperrors.ErrEngineStart, err)
	}

	e.log.Infof("Engine %s started", e.Name())
	return nil
}

func (e *Engine) handshake() error {
	if err := e.sendCommand("uci"); err != nil {
		return err
	}
	lines, err := e.readUntil("uciok")
	if err != nil {
		return err
	}
	for _, line := range lines {
		if name, ok := strings.CutPrefix(line, "id name "); ok {
			e.name = strings.TrimSpace(name)
		}
	}

	keys := make([]string, 0, len(e.options))
	for k := range e.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := e.sendCommand(fmt.Sprintf("setoption name %s value %s", k, e.options[k])); err != nil {
			return err
		}
	}

	if err := e.sendCommand("isready"); err != nil {
		return err
	}
	_, err = e.readUntil("readyok")
	return err
}

// Name returns the engine's reported name, or its path before the handshake.
func (e *Engine) Name() string {
	if e.name != "" {
		return e.name
	}
	return e.path
}

func (e *Engine) sendCommand(cmd string) error {
	e.log.Debugf("engine <- %s", cmd)
	if _, err := e.stdin.WriteString(cmd + "\n"); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEngineIO, err)
	}
	if err := e.stdin.Flush(); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEngineIO, err)
	}
	return nil
}

// readUntil collects output lines up to and including the first line that
// starts with the given token.
func (e *Engine) readUntil(token string) ([]string, error) {
	var lines []string
	for e.stdout.Scan() {
		line := strings.TrimSpace(e.stdout.Text())
		lines = append(lines, line)
		if line == token || strings.HasPrefix(line, token+" ") {
			return lines, nil
		}
	}
	err := e.stdout.Err()
	if err == nil {
		err = io.ErrUnexpectedEOF
	}
	return lines, fmt.Errorf("%w: waiting for %s: %w", apperrors.ErrEngineIO, token, err)
}

func (e *Engine) search(fen string, depth int) ([]string, error) {
	if e.cmd == nil {
		return nil, fmt.Errorf("%w: engine not started", apperrors.ErrEngineIO)
	}
	if err := e.sendCommand("position fen " + fen); err != nil {
		return nil, err
	}
	if err := e.sendCommand(fmt.Sprintf("go depth %d", depth)); err != nil {
		return nil, err
	}
	return e.readUntil("bestmove")
}

// Evaluate searches fen to depth and returns the evaluation from White's
// point of view: pawns for ordinary scores, ±(1000+N) for mate in N.
func (e *Engine) Evaluate(fen string, depth int) (float64, error) {
	lines, err := e.search(fen, depth)
	if err != nil {
		return 0, err
	}

	var (
		score Score
		found bool
	)
	for _, line := range lines {
		if !strings.HasPrefix(line, "info") {
			continue
		}
		if s, ok := parseScore(strings.Fields(line)); ok {
			score, found = s, true
		}
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrNoScore, fen)
	}
	return score.White(whiteToMove(fen)), nil
}

// BestMove searches fen to depth and returns the engine's move in UCI
// notation, or "" when the engine has no move to offer.
func (e *Engine) BestMove(fen string, depth int) (string, error) {
	lines, err := e.search(fen, depth)
	if err != nil {
		return "", err
	}
	parts := strings.Fields(lines[len(lines)-1])
	if len(parts) < 2 || parts[1] == "(none)" || parts[1] == "0000" {
		return "", nil
	}
	return parts[1], nil
}

// Stop asks the engine to quit and waits for the process to exit. It is a
// no-op on an engine that is not running.
func (e *Engine) Stop() error {
	if e.cmd == nil {
		return nil
	}
	_ = e.sendCommand("quit")
	_ = e.pipe.Close()
	err := e.cmd.Wait()
	e.cmd = nil
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrEngineIO, err)
	}
	e.log.Infof("Engine %s stopped", e.Name())
	return nil
}

func (e *Engine) kill() {
	_ = e.pipe.Close()
	if e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	_ = e.cmd.Wait()
	e.cmd = nil
}

// Score is a UCI score, relative to the side to move.
type Score struct {
	Mate  bool
	Value int // centipawns, or moves to mate
}

// White converts s to White's point of view. A mate in N becomes
// sign(N)*(1000+|N|); mate 0 means the side to move is already mated.
func (s Score) White(whiteToMove bool) float64 {
	sign := 1
	if !whiteToMove {
		sign = -1
	}
	if s.Mate {
		v := 1000 + abs(s.Value)
		if s.Value <= 0 {
			v = -v
		}
		return float64(sign * v)
	}
	return float64(sign*s.Value) / 100
}

func parseScore(parts []string) (Score, bool) {
	for i, part := range parts {
		if part != "score" || i+2 >= len(parts) {
			continue
		}
		v, err := strconv.Atoi(parts[i+2])
		if err != nil {
			return Score{}, false
		}
		switch parts[i+1] {
		case "cp":
			return Score{Value: v}, true
		case "mate":
			return Score{Mate: true, Value: v}, true
		}
	}
	return Score{}, false
}

func whiteToMove(fen string) bool {
	parts := strings.Fields(fen)
	return len(parts) < 2 || parts[1] != "b"
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
