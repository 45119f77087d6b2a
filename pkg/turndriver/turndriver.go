package turndriver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/board/fen"
	"github.com/nthmove/woodpusher/pkg/history"
	"github.com/nthmove/woodpusher/pkg/movegen"
	"github.com/nthmove/woodpusher/pkg/ponder"
	"github.com/nthmove/woodpusher/pkg/search"
	"github.com/nthmove/woodpusher/pkg/timebudget"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TurnDriver orchestrates one turn at a time against a shared position,
// mirroring pkg/engine.Engine's role in the teacher but scoped to the
// seven-step turn sequence: stop pondering, refresh state, restart the
// clock, search (or pick randomly), apply the move, resume pondering,
// return the move.
type TurnDriver struct {
	settings Settings

	hist   *history.Table
	rng    *rand.Rand
	budget *timebudget.Budget
	ponder *ponder.Worker

	mu       sync.Mutex
	pos      board.BitPack
	lastMove lang.Optional[board.Action]
}

// New returns a TurnDriver for the given settings.
func New(ctx context.Context, settings Settings) (*TurnDriver, error) {
	opt, err := settings.searchOptions()
	if err != nil {
		return nil, err
	}

	hist := history.New()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	d := &TurnDriver{
		settings: settings,
		hist:     hist,
		rng:      rng,
		budget:   timebudget.New(settings.SecondsLimit),
		ponder:   ponder.New(settings.Pondering, opt, hist, rng),
	}

	logw.Infof(ctx, "New turn driver, settings=%+v", settings)
	return d, nil
}

// MyTurn runs one turn: it is given the position as FEN (the state after
// the opponent's reply, or the initial position on the very first call)
// and the remaining clock budget in seconds, and returns the chosen move.
func (d *TurnDriver) MyTurn(ctx context.Context, position string, remainingSeconds float64) (board.Action, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.ponder.Stop()

	bp, _, _, _, err := fen.Decode(position)
	if err != nil {
		return board.Action{}, fmt.Errorf("turndriver: invalid position %q: %w", position, err)
	}
	d.pos = bp

	forcedMinDepth, forced := d.budget.Restart(remainingSeconds)

	opt, err := d.settings.searchOptions()
	if err != nil {
		return board.Action{}, err
	}
	if forced && opt.MinDepthLimit < forcedMinDepth {
		opt.MinDepthLimit = forcedMinDepth
	}
	if last, ok := d.lastMove.V(); ok {
		opt.AvoidRootMove = lang.Some(last)
	}

	var action board.Action
	if d.settings.Random {
		action, err = pickRandom(d.pos, d.hist, d.rng)
		if err != nil {
			return board.Action{}, err
		}
		logw.Infof(ctx, "MyTurn %v: random move %v", position, action)
	} else {
		pv, err := search.IterativeDeepening(ctx, d.pos, opt, d.hist, d.rng, d.budget, search.NoPonderStop)
		if err != nil {
			logw.Errorf(ctx, "MyTurn %v: search failed: %v", position, err)
			return board.Action{}, err
		}
		action = pv.Best()
		if d.settings.VeryVerbose {
			logw.Debugf(ctx, "MyTurn %v: depth=%v nodes=%v score=%v pv=%v", position, pv.Depth, pv.Nodes, pv.Score, pv.Moves)
		}
	}

	d.pos.Apply(action)
	d.lastMove = lang.Some(action)

	d.ponder.Start(d.pos)

	logw.Infof(ctx, "MyTurn %v: %v", position, action)
	return action, nil
}

// pickRandom implements the random configuration option: it ignores search
// and uniformly picks one legal move.
func pickRandom(bp board.BitPack, h *history.Table, rng *rand.Rand) (board.Action, error) {
	ml, err := movegen.Generate(bp, h, rng, false)
	if err != nil {
		return board.Action{}, err
	}

	var actions []board.Action
	for {
		a, ok := ml.Next()
		if !ok {
			break
		}
		actions = append(actions, a)
	}
	return actions[rng.Intn(len(actions))], nil
}
