package search

import (
	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/eval"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold the per-search tunables from the engine's enumerated
// configuration table. The user may change these between turns.
type Options struct {
	// Random, if true, tells the caller to skip search and emit a uniformly
	// random legal move instead.
	Random bool

	// AlphaBeta enables alpha-beta pruning; when false the search still
	// negamaxes but never cuts a branch off early.
	AlphaBeta bool
	// HistoryTable enables move-ordering history updates (writes); reads
	// for ordering happen in MoveGen regardless.
	HistoryTable bool

	// Quiescent is Q: extra plies allowed past the depth limit along
	// non-quiet lines.
	Quiescent int
	// MinDepthLimit is the depth at or below which time checks are
	// suppressed: the deadline is consulted only while L > MinDepthLimit.
	MinDepthLimit int
	// MaxDepthLimit, if set, is the hard iterative-deepening ceiling.
	MaxDepthLimit lang.Optional[int]

	// WhichAI selects the leaf heuristic.
	WhichAI eval.Heuristic
	// EvenDepthsOnly accepts the root's best move only from even completed
	// depths, unless a terminal score was found.
	EvenDepthsOnly bool

	// AvoidRootMove, if set, is skipped at the root when at least one other
	// legal move exists: the turn driver's two-move repetition guard.
	AvoidRootMove lang.Optional[board.Action]
}

// DefaultOptions mirrors the documented defaults of the configuration table.
func DefaultOptions() Options {
	return Options{
		AlphaBeta:     true,
		HistoryTable:  true,
		Quiescent:     2,
		MinDepthLimit: 2,
		WhichAI:       eval.MaterialOnly,
	}
}
