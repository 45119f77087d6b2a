package board

import (
	"container/heap"
	"fmt"
)

// ActionPriority is the move-order priority used by MoveList: higher sorts
// first.
type ActionPriority int64

// ActionPriorityFn assigns a priority to an action.
type ActionPriorityFn func(a Action) ActionPriority

// TestOrder orders moves lexicographically by (from, to, promotion_target),
// for deterministic, content-addressed test expectations.
func TestOrder(a Action) ActionPriority {
	key := int64(a.From)<<16 | int64(a.To)<<8 | int64(a.promotionIndex())
	// Lexicographic ascending order means smaller keys sort first, so negate
	// to fit the heap's "higher priority pops first" convention.
	return ActionPriority(-key)
}

// PlayOrder orders moves by (history_count desc, random_tiebreak desc), the
// ordering used during normal play and pondering.
func PlayOrder(a Action) ActionPriority {
	return ActionPriority(a.History)<<32 + ActionPriority(uint32(a.Random))
}

// MoveList is an action priority queue used for move ordering during search.
type MoveList struct {
	h actionHeap
}

// NewMoveList returns a new move list with the given priority function.
func NewMoveList(actions []Action, fn ActionPriorityFn) *MoveList {
	h := make(actionHeap, len(actions))
	for i, a := range actions {
		h[i] = actionElm{a: a, val: fn(a)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops the highest-priority action remaining in the list.
func (ml *MoveList) Next() (Action, bool) {
	if ml.Size() == 0 {
		return Action{}, false
	}
	ret := heap.Pop(&ml.h).(actionElm)
	return ret.a, true
}

// Size returns the number of actions left in the list.
func (ml *MoveList) Size() int {
	return ml.h.Len()
}

func (ml *MoveList) String() string {
	if ml.Size() == 0 {
		return "[size=0]"
	}
	return fmt.Sprintf("[top=%v, size=%v]", ml.h[0].a, ml.Size())
}

type actionElm struct {
	a   Action
	val ActionPriority
}

type actionHeap []actionElm

func (h actionHeap) Len() int {
	return len(h)
}

func (h actionHeap) Less(i, j int) bool {
	return h[i].val > h[j].val
}

func (h actionHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

func (h *actionHeap) Push(x interface{}) {
	*h = append(*h, x.(actionElm))
}

func (h *actionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	ret := old[n-1]
	*h = old[0 : n-1]
	return ret
}
