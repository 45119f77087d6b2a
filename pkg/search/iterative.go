package search

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/eval"
	"github.com/nthmove/woodpusher/pkg/history"
)

// PV is a completed iteration's principal variation.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Leaf
	Moves []board.Action
}

// Best returns the move to play, the head of the variation.
func (pv PV) Best() board.Action {
	return pv.Moves[0]
}

func (pv PV) terminal() bool {
	return pv.Score.Material >= eval.TerminalVal || pv.Score.Material <= -eval.TerminalVal
}

// IterativeDeepening runs §4.4's outer loop: depth-limited negamax for
// L=1,2,3,..., remembering the best move of the most recently completed
// iteration. It stops when a mating score is found at the root, the
// configured maximum depth is reached, the deadline fires, or pondering's
// stop signal fires. On the latter two, the last completed iteration's move
// is returned unless none has completed yet, which is a hard error.
func IterativeDeepening(ctx context.Context, pos board.BitPack, opt Options, hist *history.Table, rng *rand.Rand, deadline Deadline, ponder PonderStop) (PV, error) {
	var last, lastEven PV
	haveLast, haveEven := false, false

	for L := 1; ; L++ {
		if max, ok := opt.MaxDepthLimit.V(); ok && L > max {
			break
		}

		res, err := Run(ctx, pos, L, opt, hist, rng, deadline, ponder)
		if err != nil {
			if !haveLast {
				return PV{}, fmt.Errorf("search: ran out of time before completing any iteration (min_depth_limit=%v): %w", opt.MinDepthLimit, err)
			}
			break
		}
		if len(res.PV) == 0 {
			return PV{}, fmt.Errorf("search: no legal move available at root")
		}

		last = PV{Depth: L, Nodes: res.Nodes, Score: res.Score, Moves: res.PV}
		haveLast = true
		if L%2 == 0 {
			lastEven = last
			haveEven = true
		}
		if last.terminal() {
			break
		}
	}

	if opt.EvenDepthsOnly && haveEven && !last.terminal() {
		return lastEven, nil
	}
	return last, nil
}
