// Package search implements iterative-deepening negamax with alpha-beta
// pruning and a quiescence extension over pkg/movegen and pkg/board, using
// pkg/history for move ordering and pkg/eval for leaf scoring.
package search

import (
	"context"
	"errors"
	"math/rand"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/eval"
	"github.com/nthmove/woodpusher/pkg/history"
	"github.com/nthmove/woodpusher/pkg/movegen"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Result is the outcome of a single depth-limited search.
type Result struct {
	Nodes uint64
	Score eval.Leaf
	PV    []board.Action
}

// Run performs one depth-limited iterative-deepening iteration to depth L,
// rooted at pos. It is the per-ply routine from §4.4, made concrete.
func Run(ctx context.Context, pos board.BitPack, L int, opt Options, hist *history.Table, rng *rand.Rand, deadline Deadline, ponder PonderStop) (Result, error) {
	if deadline == nil {
		deadline = NoDeadline
	}
	if ponder == nil {
		ponder = NoPonderStop
	}

	r := &run{opt: opt, hist: hist, rng: rng, deadline: deadline, ponder: ponder, L: L}
	score, pv, err := r.search(ctx, node{pos: pos}, eval.NegInf, eval.PosInf)
	if err != nil {
		return Result{}, err
	}
	return Result{Nodes: r.nodes, Score: score, PV: pv}, nil
}

type run struct {
	opt      Options
	hist     *history.Table
	rng      *rand.Rand
	deadline Deadline
	ponder   PonderStop
	L        int
	nodes    uint64
}

// atDepthLimit is at_depth_limit(node) from §4.4: reached once quiescent at
// L, or unconditionally once L+Q plies deep.
func (r *run) atDepthLimit(n node) bool {
	if n.depth >= r.L+r.opt.Quiescent {
		return true
	}
	return n.depth >= r.L && n.quiescent()
}

// search returns the score for the side to move at n, along with the
// variation that achieves it (n's move first).
func (r *run) search(ctx context.Context, n node, alpha, beta eval.Leaf) (eval.Leaf, []board.Action, error) {
	if contextx.IsCancelled(ctx) {
		return eval.Leaf{}, nil, ErrDonePondering
	}
	if err := r.ponder.CheckStop(); err != nil {
		return eval.Leaf{}, nil, err
	}
	if r.L > r.opt.MinDepthLimit {
		if err := r.deadline.Check(n.depth); err != nil {
			return eval.Leaf{}, nil, err
		}
	}

	if r.atDepthLimit(n) {
		return r.opt.WhichAI.Leaf(n.materialDelta, n.movesDelta), nil, nil
	}

	ml, err := movegen.Generate(n.pos, r.hist, r.rng, false)
	if err != nil {
		switch {
		case errors.Is(err, movegen.ErrCheckmate), errors.Is(err, movegen.ErrStalemate):
			// Both are scored as a loss for the side to move; see the
			// stalemate-as-loss decision recorded alongside this package.
			return eval.Mate, nil, nil
		default:
			return eval.Err, nil, nil
		}
	}
	r.nodes++
	siblings := ml.Size()

	best := eval.NegInf
	var bestMove board.Action
	var bestPV []board.Action
	haveBest := false

	for {
		a, ok := ml.Next()
		if !ok {
			break
		}
		if n.depth == 0 && siblings > 1 {
			if avoid, set := r.opt.AvoidRootMove.V(); set && a.Equals(avoid) {
				continue
			}
		}

		child := n.pos
		delta := child.Apply(a)
		// delta includes any promotion gain; what remains is the value of the
		// captured piece, and every capturable piece is worth at least 1.
		captured := delta
		if a.Promoted {
			captured -= a.PromotionTarget.Value() - board.Pawn.Value()
		}
		a.Captured = captured > 0
		cn := n.child(child, a, delta, siblings)

		v, rem, err := r.search(ctx, cn, beta.Negate(), alpha.Negate())
		if err != nil {
			return eval.Leaf{}, nil, err
		}
		v = v.Negate()

		if !haveBest || best.Less(v) {
			best = v
			bestMove = a
			bestPV = append([]board.Action{a}, rem...)
			haveBest = true
		}

		if r.opt.AlphaBeta && (v == beta || beta.Less(v)) {
			break // fail-high: bestMove is this move, credited below
		}
		if alpha.Less(v) {
			alpha = v
		}
	}

	if !haveBest {
		// No legal moves but Generate didn't raise: unreachable in
		// practice since Generate itself detects this case.
		return eval.Mate, nil, nil
	}
	if r.opt.HistoryTable {
		r.hist.Increment(int(bestMove.From), int(bestMove.To), bestMove.PromotionIndex())
	}
	return best, bestPV, nil
}
