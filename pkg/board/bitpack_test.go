package board_test

import (
	"testing"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactlyOneKingPerColor(t *testing.T) {
	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	for _, c := range []board.Color{board.White, board.Black} {
		sq := bp.KingSquare(c)
		piece, color, ok := bp.PieceAt(sq)
		require.True(t, ok)
		assert.Equal(t, board.King, piece)
		assert.Equal(t, c, color)
	}
}

func TestEnPassantFlagAndTargetConsistency(t *testing.T) {
	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	_, ok := bp.EnPassant()
	assert.False(t, ok, "no en-passant target in the initial position")

	bp.SetEnPassant(board.D6, true)
	sq, ok := bp.EnPassant()
	assert.True(t, ok)
	assert.Equal(t, board.D6, sq)

	bp.SetEnPassant(board.NoSquare, false)
	_, ok = bp.EnPassant()
	assert.False(t, ok)
}

func TestCastlingRightsBookkeeping(t *testing.T) {
	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	all := board.WhiteQueenSideCastle | board.WhiteKingSideCastle | board.BlackQueenSideCastle | board.BlackKingSideCastle
	assert.Equal(t, all, bp.Castling())

	bp.SetCastling(board.BlackQueenSideCastle | board.BlackKingSideCastle)
	rights := bp.Castling()
	assert.True(t, rights.IsAllowed(board.BlackQueenSideCastle))
	assert.True(t, rights.IsAllowed(board.BlackKingSideCastle))
	assert.False(t, rights.IsAllowed(board.WhiteQueenSideCastle))
	assert.False(t, rights.IsAllowed(board.WhiteKingSideCastle))
}

func TestApplyIsZeroSumAcrossAPathSinceStart(t *testing.T) {
	// Along a path of quiet plies from the starting position (no captures,
	// no promotions), every Apply returns a material delta of zero, so the
	// sum over the path is zero.
	bp, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	moves := []board.Action{
		{From: board.E2, To: board.E4},
		{From: board.E7, To: board.E5},
		{From: board.G1, To: board.F3},
		{From: board.B8, To: board.C6},
	}

	var sum int
	for _, m := range moves {
		sum += bp.Apply(m)
	}
	assert.Equal(t, 0, sum, "no captures occurred, so total material delta must be zero")
}
