package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jacokyle01/critical-moves/loader"
)

func TestBatchAccumulatesInOrder(t *testing.T) {
	games := []loader.Game{
		{ID: "club_1", Game: mustGame(t, "1. e4 e5 *")},
		{ID: "club_2", Game: mustGame(t, "1. d4 *")},
		{ID: "blitz_1", Game: mustGame(t, "1. c4 c5 *")},
	}
	// Evaluations are consumed game by game: start position first.
	engine := &scriptedEngine{evals: []float64{
		0, 3, 3, // club_1: e4 critical
		0, 0.5, // club_2: nothing
		0, 0, -2.5, // blitz_1: c5 critical
	}}

	s := NewScanner(engine, 15, 2.0, zap.NewNop().Sugar())
	moves, err := NewBatch(s, zap.NewNop().Sugar()).Run(context.Background(), games)
	require.NoError(t, err)

	require.Len(t, moves, 2)
	assert.Equal(t, "club_1", moves[0].GameID)
	assert.Equal(t, "e4", moves[0].Move)
	assert.Equal(t, "blitz_1", moves[1].GameID)
	assert.Equal(t, "c5", moves[1].Move)
}

func TestBatchEmpty(t *testing.T) {
	s := NewScanner(&scriptedEngine{}, 15, 2.0, zap.NewNop().Sugar())
	moves, err := NewBatch(s, zap.NewNop().Sugar()).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, moves)
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &scriptedEngine{evals: []float64{0, 5}}
	s := NewScanner(engine, 15, 2.0, zap.NewNop().Sugar())
	moves, err := NewBatch(s, zap.NewNop().Sugar()).Run(ctx, []loader.Game{{ID: "g_1", Game: mustGame(t, "1. e4 *")}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, moves)
	assert.Empty(t, engine.evaluated)
}
