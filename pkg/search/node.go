package search

import "github.com/nthmove/woodpusher/pkg/board"

// node is the recursion-local state of one ply of the search tree: the
// position it reached and the deltas accumulated along the path from the
// root. It carries no parent pointer; the caller reconstructs the principal
// variation by prepending each ply's chosen move to the child's returned
// variation as the recursion unwinds.
type node struct {
	pos      board.BitPack
	lastMove board.Action
	hasMove  bool

	depth         int
	materialDelta int
	movesDelta    int
}

// quiescent reports whether the move that produced this node neither
// captured nor promoted, per the quiescence-extension rule in §4.4.
func (n node) quiescent() bool {
	return !n.hasMove || (!n.lastMove.Captured && !n.lastMove.Promoted)
}

// child derives the node reached by playing a from n, given n's own total
// legal-move count siblings (n's mobility, known at the point n's successors
// were generated) and the material delta Apply returned for a.
func (n node) child(pos board.BitPack, a board.Action, delta, siblings int) node {
	return node{
		pos:           pos,
		lastMove:      a,
		hasMove:       true,
		depth:         n.depth + 1,
		materialDelta: -n.materialDelta - delta,
		movesDelta:    -n.movesDelta + siblings,
	}
}
