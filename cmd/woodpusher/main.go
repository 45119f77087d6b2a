// woodpusher is a from-FEN, one-shot move chooser: given a position and a
// remaining clock budget, it prints the chosen move and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/turndriver"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

var (
	silent         = flag.Bool("silent", false, "Recorded in the settings; logging output is not changed by it")
	verbose        = flag.Bool("verbose", false, "Recorded in the settings; turn lifecycle events are logged whatever its value")
	veryVerbose    = flag.Bool("very_verbose", false, "Log search statistics per turn")
	random         = flag.Bool("random", false, "Ignore search and play a uniformly random legal move")
	alphaBeta      = flag.Bool("alpha_beta", true, "Enable alpha-beta pruning")
	historyTable   = flag.Bool("history_table", true, "Enable move-ordering history updates")
	pondering      = flag.Bool("pondering", false, "Enable background search on the opponent's turn")
	secondsLimit   = flag.Float64("seconds_limit", -1, "Fixed per-turn budget in seconds; negative selects fractional allocation by game phase")
	quiescent      = flag.Int("quiescent", 2, "Additional plies allowed past the depth limit along non-quiet lines")
	minDepthLimit  = flag.Int("min_depth_limit", 2, "Depth at or below which the time check is suppressed")
	maxDepthLimit  = flag.Int("max_depth_limit", 0, "Hard iterative-deepening ceiling (0 = unlimited)")
	whichAI        = flag.Int("which_ai", 1, "Leaf heuristic: 1 material only, 2 material and mobility")
	evenDepthsOnly = flag.Bool("even_depths_only", false, "Accept the root's best move only from even completed depths")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: woodpusher [options] <fen> <remaining_seconds>

woodpusher chooses one move for the position given as FEN, under the given
remaining clock budget in seconds, and prints it to standard output as
<from><to>[promotion], e.g. e2e4, a7a8Queen.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	if *veryVerbose {
		logw.Infof(ctx, "woodpusher %v", version)
	}

	if flag.NArg() != 2 {
		flag.Usage()
		logw.Exitf(ctx, "want exactly 2 positional arguments, got %v", flag.NArg())
	}
	position := flag.Arg(0)
	remaining, err := parseSeconds(flag.Arg(1))
	if err != nil {
		logw.Exitf(ctx, "invalid remaining_seconds %q: %v", flag.Arg(1), err)
	}

	settings, err := turndriver.NewSettings(
		turndriver.WithVerbosity(*silent, *verbose, *veryVerbose),
		turndriver.WithRandom(*random),
		turndriver.WithAlphaBeta(*alphaBeta),
		turndriver.WithHistoryTable(*historyTable),
		turndriver.WithPondering(*pondering),
		turndriver.WithSecondsLimit(*secondsLimit),
		turndriver.WithQuiescent(*quiescent),
		turndriver.WithMinDepthLimit(*minDepthLimit),
		turndriver.WithMaxDepthLimit(*maxDepthLimit),
		turndriver.WithWhichAI(*whichAI),
		turndriver.WithEvenDepthsOnly(*evenDepthsOnly),
	)
	if err != nil {
		logw.Exitf(ctx, "invalid configuration: %v", err)
	}

	d, err := turndriver.New(ctx, settings)
	if err != nil {
		logw.Exitf(ctx, "failed to initialize: %v", err)
	}

	action, err := d.MyTurn(ctx, position, remaining)
	if err != nil {
		logw.Exitf(ctx, "turn failed: %v", err)
	}

	fmt.Println(formatMove(action))
}

// formatMove renders an action in the external move-out format:
// <file><rank> for from and to, with the promotion piece name (no
// separator) appended when present. This differs from Action.String, which
// uses "=" for internal logging and PV rendering.
func formatMove(a board.Action) string {
	if a.Promoted {
		return fmt.Sprintf("%v%v%v", a.From, a.To, a.PromotionTarget.PromotionWord())
	}
	return fmt.Sprintf("%v%v", a.From, a.To)
}

func parseSeconds(s string) (float64, error) {
	var v float64
	_, err := fmt.Sscanf(s, "%g", &v)
	return v, err
}
