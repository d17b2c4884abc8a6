// Package loader reads PGN files into games with stable identifiers.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/notnil/chess"
	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/apperrors"
)

// Extension of the files picked up by Load.
const Extension = ".pgn"

// Game is a parsed game and its identifier, "<file stem>_<n>".
type Game struct {
	ID   string
	File string
	Game *chess.Game
}

// Loader reads games from disk.
type Loader struct {
	log *zap.SugaredLogger
}

// New creates a loader.
func New(log *zap.SugaredLogger) *Loader {
	return &Loader{log: log}
}

// Load parses every PGN file directly inside dir, in file name order. A
// file that cannot be read or parsed is logged and skipped.
func (l *Loader) Load(dir string) ([]Game, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read game directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != Extension {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	l.log.Infof("Found %d PGN files", len(files))

	var games []Game
	for _, file := range files {
		loaded, err := l.LoadFile(file)
		if err != nil {
			l.log.Errorw("Error loading file", "file", file, "error", err)
			continue
		}
		l.log.Infof("Loaded %d games from %s", len(loaded), filepath.Base(file))
		games = append(games, loaded...)
	}

	return games, nil
}

// LoadFile parses all games in one PGN file. Either every game in the file
// is returned or none is.
func (l *Loader) LoadFile(path string) ([]Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return parse(f, stem, path)
}

func parse(r io.Reader, stem, path string) ([]Game, error) {
	var games []Game

	scanner := chess.NewScanner(r)
	for scanner.Scan() {
		game := scanner.Next()
		// The scanner yields a blank game for trailing whitespace at EOF.
		if isBlank(game) {
			continue
		}
		games = append(games, Game{
			ID:   fmt.Sprintf("%s_%d", stem, len(games)+1),
			File: path,
			Game: game,
		})
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", apperrors.ErrParse, path, err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: %s: no games found", apperrors.ErrParse, path)
	}

	return games, nil
}

func isBlank(g *chess.Game) bool {
	return len(g.Moves()) == 0 && len(g.TagPairs()) == 0
}
