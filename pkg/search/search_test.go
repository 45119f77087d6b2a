package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/nthmove/woodpusher/pkg/board/fen"
	"github.com/nthmove/woodpusher/pkg/eval"
	"github.com/nthmove/woodpusher/pkg/history"
	"github.com/nthmove/woodpusher/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheckmateScoresTerminal(t *testing.T) {
	// Fool's mate: 1. f3 e5 2. g4 Qh4#, White to move with no legal moves.
	bp, _, _, _, err := fen.Decode("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	opt := search.DefaultOptions()
	h := history.New()
	rng := rand.New(rand.NewSource(1))

	res, err := search.Run(context.Background(), bp, 1, opt, h, rng, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, -eval.TerminalVal, res.Score.Material)
}

func TestRunDeterministic(t *testing.T) {
	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	opt := search.DefaultOptions()

	run := func() eval.Leaf {
		h := history.New()
		rng := rand.New(rand.NewSource(42))
		res, err := search.Run(context.Background(), bp, 3, opt, h, rng, nil, nil)
		require.NoError(t, err)
		return res.Score
	}

	a, b := run(), run()
	assert.Equal(t, a, b)
}

func TestIterativeDeepeningStopsAtMaxDepth(t *testing.T) {
	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	opt := search.DefaultOptions()
	opt.MaxDepthLimit = lang.Some(2)

	h := history.New()
	rng := rand.New(rand.NewSource(7))

	pv, err := search.IterativeDeepening(context.Background(), bp, opt, h, rng, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, pv.Depth)
	assert.NotEmpty(t, pv.Moves)
}
