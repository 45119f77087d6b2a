package board

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Action represents a not-necessarily-legal move along with the contextual
// metadata MoveGen attaches when it enumerates moves: which slot is moving,
// the history-table count and RNG tiebreak snapshotted at construction, and
// (once the search has applied it) whether the move captured.
type Action struct {
	From, To        Square
	Promoted        bool
	PromotionTarget Piece // valid iff Promoted
	Slot            lang.Optional[int]

	// Captured is set by the search from Apply's returned delta; it is not
	// part of move equality.
	Captured bool

	// History is read from the HistoryTable at construction, so that
	// ordering within a single move list is stable even if counters change
	// mid-search.
	History uint64
	// Random is drawn from a per-process RNG at construction, used as a
	// tiebreak in play-mode ordering.
	Random int64
}

// PromotionIndex returns the history-table promotion index for this action:
// 0 for non-promoting moves, otherwise the 2-bit promotion code.
func (a Action) PromotionIndex() uint8 {
	return a.promotionIndex()
}

// promotionIndex returns the history-table promotion index for this action:
// 0 for non-promoting moves, otherwise the 2-bit promotion code.
func (a Action) promotionIndex() uint8 {
	if !a.Promoted {
		return 0
	}
	return promotionBits(a.PromotionTarget)
}

// Equals compares moves by (from, to, promotion_target if promoted); it
// ignores Captured, Slot, History and Random.
func (a Action) Equals(o Action) bool {
	if a.From != o.From || a.To != o.To || a.Promoted != o.Promoted {
		return false
	}
	return !a.Promoted || a.PromotionTarget == o.PromotionTarget
}

func (a Action) String() string {
	if a.Promoted {
		return fmt.Sprintf("%v%v=%v", a.From, a.To, a.PromotionTarget.PromotionWord())
	}
	return fmt.Sprintf("%v%v", a.From, a.To)
}
