// Package timebudget derives and enforces a per-turn search deadline from a
// remaining-seconds clock budget, grounded on the original engine's Timer.
package timebudget

import (
	"time"

	"github.com/nthmove/woodpusher/pkg/search"
)

// Budget implements search.Deadline. It is owned by the turn driver and
// restarted once per turn; it is not safe for concurrent use.
type Budget struct {
	// secondsLimit is the configured fixed per-turn budget; negative
	// selects fractional allocation by game phase.
	secondsLimit float64

	totalSecondsInGame float64
	secondsThisTurn    float64
	turnStart          time.Time
}

// New returns a Budget using the given fixed per-turn seconds, or fractional
// allocation by game phase if secondsLimit is negative.
func New(secondsLimit float64) *Budget {
	return &Budget{secondsLimit: secondsLimit}
}

// Restart derives this turn's deadline from the remaining clock budget.
// totalSecondsInGame is set from the first call's remainingSeconds and kept
// for the rest of the game. When the fractional allocation has bottomed out
// (the last 5% of the game), it returns a forced minimum-depth floor so a
// move is always produced quickly; the caller should raise its
// min_depth_limit to at least that value for this turn.
func (b *Budget) Restart(remainingSeconds float64) (forcedMinDepth int, hasForced bool) {
	if b.totalSecondsInGame == 0 {
		b.totalSecondsInGame = remainingSeconds
	}

	switch {
	case b.secondsLimit >= 0:
		b.secondsThisTurn = b.secondsLimit
	default:
		frac := remainingSeconds / b.totalSecondsInGame
		switch {
		case frac > 0.95:
			b.secondsThisTurn = 0.0075 * b.totalSecondsInGame
		case frac > 0.60:
			b.secondsThisTurn = 0.02 * b.totalSecondsInGame
		case frac > 0.20:
			b.secondsThisTurn = 0.01 * b.totalSecondsInGame
		case frac > 0.05:
			b.secondsThisTurn = 0.005 * b.totalSecondsInGame
		default:
			b.secondsThisTurn = 0.000001
			forcedMinDepth, hasForced = 4, true
		}
	}

	b.turnStart = time.Now()
	return forcedMinDepth, hasForced
}

// Elapsed returns the time since the last Restart.
func (b *Budget) Elapsed() time.Duration {
	return time.Since(b.turnStart)
}

// Check implements search.Deadline: it returns search.ErrOutOfTime once a
// positive per-turn budget has elapsed. depth is unused; the search loop is
// responsible for only calling Check once past its min_depth_limit floor.
func (b *Budget) Check(depth int) error {
	if b.secondsThisTurn > 0 && b.Elapsed().Seconds() >= b.secondsThisTurn {
		return search.ErrOutOfTime
	}
	return nil
}
