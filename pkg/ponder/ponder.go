// Package ponder runs a background search during the opponent's turn,
// grounded on the original engine's Pondering worker.
package ponder

import (
	"context"
	"math/rand"
	"sync"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/history"
	"github.com/nthmove/woodpusher/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
	"go.uber.org/atomic"
)

// Worker runs an unbounded-depth, unbounded-time search on the position
// with the side to move swapped, so it searches as if it were the
// opponent's move. At most one worker runs at a time; the main thread owns
// the shared position and HistoryTable between Stop and Start.
type Worker struct {
	enabled bool
	opt     search.Options
	hist    *history.Table
	rng     *rand.Rand

	shouldContinue atomic.Bool
	running        atomic.Bool

	mu   sync.Mutex
	done chan struct{}
}

// New returns a Worker. enabled mirrors the pondering configuration option;
// a disabled Worker's Start/Stop are no-ops.
func New(enabled bool, opt search.Options, hist *history.Table, rng *rand.Rand) *Worker {
	return &Worker{enabled: enabled, opt: opt, hist: hist, rng: rng}
}

// Start begins pondering on pos. No-op if pondering or the history table is
// disabled, matching the original engine's guard (pondering without a
// history table has nothing useful to warm).
func (w *Worker) Start(pos board.BitPack) {
	if !w.enabled || !w.opt.HistoryTable {
		return
	}

	swapped := pos
	swapped.SetSideToMove(pos.SideToMove().Opponent())

	w.hist.Reset()

	opt := w.opt
	opt.MaxDepthLimit = lang.Optional[int]{} // unbounded depth while pondering
	opt.AvoidRootMove = lang.Optional[board.Action]{}

	w.shouldContinue.Store(true)
	w.running.Store(true)
	w.done = make(chan struct{})

	go func() {
		defer close(w.done)
		defer w.running.Store(false)

		// Errors (including ErrDonePondering) are expected and discarded:
		// the worker's only product is the HistoryTable it warms as a side
		// effect of searching.
		_, _ = search.IterativeDeepening(context.Background(), swapped, opt, w.hist, w.rng, search.NoDeadline, w)
	}()
}

// Stop signals the worker to stop and waits for it to exit. No-op if no
// worker is running. Idempotent.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running.Load() {
		return
	}
	w.shouldContinue.Store(false)
	<-w.done
}

// CheckStop implements search.PonderStop: it reports ErrDonePondering once
// Stop has been called on a still-running worker.
func (w *Worker) CheckStop() error {
	if w.running.Load() && !w.shouldContinue.Load() {
		return search.ErrDonePondering
	}
	return nil
}
