package fen_test

import (
	"testing"

	"github.com/nthmove/woodpusher/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",
		"rnbq1bnr/ppppkppp/8/4p3/4P3/8/PPPPKPPP/RNBQ1BNR w - - 2 3",
		// Two queens for White: the second queen is a promoted pawn, stored
		// in a pawn slot, and must still round-trip losslessly.
		"4k3/8/8/8/8/8/8/QQ2K3 w - - 0 1",
	}

	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			bp, c, np, fm, err := fen.Decode(tt)
			require.NoError(t, err)

			assert.Equal(t, tt, fen.Encode(bp, c, np, fm))
		})
	}
}

func TestDecodeRejectsInvalid(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"8/8/8/8/8/8/8/8 w - - 0 1",                       // no kings
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1", // short rank
	}
	for _, tt := range tests {
		t.Run(tt, func(t *testing.T) {
			_, _, _, _, err := fen.Decode(tt)
			assert.Error(t, err)
		})
	}
}
