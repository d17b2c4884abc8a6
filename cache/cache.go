// Package cache persists engine results in BadgerDB so repeated runs over
// the same games skip positions that were already searched.
package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

// Key prefixes
const (
	prefixEval = "eval"
	prefixBest = "best"
)

// Store wraps BadgerDB for evaluation results
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}

	return &Store{db: db}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func key(prefix string, depth int, fen string) []byte {
	return []byte(fmt.Sprintf("%s/%d/%s", prefix, depth, fen))
}

// get returns the stored value, or nil if the key is absent.
func (s *Store) get(k []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return val, err
}

func (s *Store) set(k, v []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, v)
	})
}

// Evaluation returns a cached evaluation for fen at depth.
func (s *Store) Evaluation(fen string, depth int) (float64, bool, error) {
	val, err := s.get(key(prefixEval, depth, fen))
	if err != nil || len(val) != 8 {
		return 0, false, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(val)), true, nil
}

// SaveEvaluation stores an evaluation for fen at depth.
func (s *Store) SaveEvaluation(fen string, depth int, eval float64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, math.Float64bits(eval))
	return s.set(key(prefixEval, depth, fen), buf)
}

// BestMove returns a cached best move for fen at depth. An empty move with
// ok set means the engine had no move for the position.
func (s *Store) BestMove(fen string, depth int) (string, bool, error) {
	val, err := s.get(key(prefixBest, depth, fen))
	if err != nil || val == nil {
		return "", false, err
	}
	return string(val), true, nil
}

// SaveBestMove stores a best move for fen at depth.
func (s *Store) SaveBestMove(fen string, depth int, move string) error {
	return s.set(key(prefixBest, depth, fen), []byte(move))
}

// Evaluator is the engine surface that can be cached.
type Evaluator interface {
	Evaluate(fen string, depth int) (float64, error)
	BestMove(fen string, depth int) (string, error)
}

// Engine serves engine queries from the store and falls back to the
// wrapped evaluator on a miss. Engine errors are never stored.
type Engine struct {
	next  Evaluator
	store *Store
	log   *zap.SugaredLogger

	hits, misses int
}

// Wrap returns an Evaluator backed by store.
func Wrap(next Evaluator, store *Store, log *zap.SugaredLogger) *Engine {
	return &Engine{next: next, store: store, log: log}
}

// Evaluate implements Evaluator.
func (c *Engine) Evaluate(fen string, depth int) (float64, error) {
	eval, ok, err := c.store.Evaluation(fen, depth)
	if err != nil {
		c.log.Warnw("cache read failed", "fen", fen, "error", err)
	}
	if ok {
		c.hits++
		return eval, nil
	}
	c.misses++

	eval, err = c.next.Evaluate(fen, depth)
	if err != nil {
		return eval, err
	}
	if err := c.store.SaveEvaluation(fen, depth, eval); err != nil {
		c.log.Warnw("cache write failed", "fen", fen, "error", err)
	}
	return eval, nil
}

// BestMove implements Evaluator.
func (c *Engine) BestMove(fen string, depth int) (string, error) {
	move, ok, err := c.store.BestMove(fen, depth)
	if err != nil {
		c.log.Warnw("cache read failed", "fen", fen, "error", err)
	}
	if ok {
		c.hits++
		return move, nil
	}
	c.misses++

	move, err = c.next.BestMove(fen, depth)
	if err != nil {
		return move, err
	}
	if err := c.store.SaveBestMove(fen, depth, move); err != nil {
		c.log.Warnw("cache write failed", "fen", fen, "error", err)
	}
	return move, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *Engine) Stats() (hits, misses int) {
	return c.hits, c.misses
}
