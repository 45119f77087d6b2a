package movegen_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/board/fen"
	"github.com/nthmove/woodpusher/pkg/history"
	"github.com/nthmove/woodpusher/pkg/movegen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, position string) *board.MoveList {
	t.Helper()
	bp, _, _, _, err := fen.Decode(position)
	require.NoError(t, err)

	ml, err := movegen.Generate(bp, history.New(), rand.New(rand.NewSource(1)), true)
	require.NoError(t, err)
	return ml
}

func collect(ml *board.MoveList) []board.Action {
	var out []board.Action
	for {
		a, ok := ml.Next()
		if !ok {
			break
		}
		out = append(out, a)
	}
	return out
}

func TestInitialPositionHasTwentyLegalMoves(t *testing.T) {
	ml := generate(t, fen.Initial)
	assert.Len(t, collect(ml), 20)
}

func TestPromotionExpandsToFourMoves(t *testing.T) {
	// White pawn one step from promoting; White's only other piece is its king.
	ml := generate(t, "k7/4P3/8/8/8/8/8/4K3 w - - 0 1")
	actions := collect(ml)

	var promos int
	for _, a := range actions {
		if a.From == board.E7 && a.To == board.E8 {
			require.True(t, a.Promoted)
			promos++
		}
	}
	assert.Equal(t, 4, promos)
}

func TestEnPassantCapture(t *testing.T) {
	// White just played e2-e4 past the black pawn on d4, enabling d4xe3.
	ml := generate(t, "4k3/8/8/8/3pP3/8/8/4K3 b - e3 0 1")
	actions := collect(ml)

	var found bool
	for _, a := range actions {
		if a.From == board.D4 && a.To == board.E3 {
			found = true
		}
	}
	assert.True(t, found, "en-passant capture d4xe3 must be legal")
}

func TestCastlingBlockedThroughCheck(t *testing.T) {
	// White king on e1 may castle kingside (f1, g1 empty, both rooks
	// present), but a black rook on f8 attacks f1, the square the king
	// passes through, so kingside castling must be illegal. Queenside
	// remains legal.
	ml := generate(t, "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	actions := collect(ml)

	var kingside, queenside bool
	for _, a := range actions {
		if a.From == board.E1 && a.To == board.G1 {
			kingside = true
		}
		if a.From == board.E1 && a.To == board.C1 {
			queenside = true
		}
	}
	assert.False(t, kingside, "castling through an attacked square must be illegal")
	assert.True(t, queenside, "queenside castling is unaffected")
}

func TestCheckmateDetected(t *testing.T) {
	// Fool's mate.
	bp, _, _, _, err := fen.Decode("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	require.NoError(t, err)

	_, err = movegen.Generate(bp, history.New(), rand.New(rand.NewSource(1)), true)
	assert.True(t, errors.Is(err, movegen.ErrCheckmate))
}

func TestStalemateDetected(t *testing.T) {
	// Classic stalemate: black king cornered on a8, no black pieces left to
	// move and no legal king move.
	bp, _, _, _, err := fen.Decode("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	require.NoError(t, err)

	_, err = movegen.Generate(bp, history.New(), rand.New(rand.NewSource(1)), true)
	assert.True(t, errors.Is(err, movegen.ErrStalemate))
}

func TestHistoryTableOrderingIsDeterministic(t *testing.T) {
	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	h := history.New()
	h.Increment(int(board.E2), int(board.E4), 0)
	h.Increment(int(board.E2), int(board.E4), 0)

	run := func() []board.Action {
		ml, err := movegen.Generate(bp, h, rand.New(rand.NewSource(99)), false)
		require.NoError(t, err)
		return collect(ml)
	}

	a, b := run(), run()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.True(t, a[i].Equals(b[i]), "play-mode order must be deterministic given fixed history and RNG seed")
	}
	assert.True(t, a[0].From == board.E2 && a[0].To == board.E4, "the move with the higher history count must sort first")
}
