// Package turndriver orchestrates a single turn end to end: stop pondering,
// load the new position, restart the time budget, search (or pick a random
// move), apply the chosen action, and resume pondering.
package turndriver

import (
	"fmt"

	"github.com/nthmove/woodpusher/pkg/eval"
	"github.com/nthmove/woodpusher/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Settings enumerates the engine's configuration table. It is validated
// once at construction and then held fixed for the duration of a game,
// matching the original engine's "settings are process-wide and stable for
// the duration of a turn" contract (ponder snapshots and restores them
// around its own unbounded search, not by mutating Settings in place).
type Settings struct {
	// Silent, Verbose and VeryVerbose are the diagnostic-volume settings.
	// Only VeryVerbose is consulted: it adds a per-turn search summary logged
	// at Debug level. Silent and Verbose are stored but not read; the turn
	// lifecycle lines are logged at Info level whatever their values.
	Silent      bool
	Verbose     bool
	VeryVerbose bool

	// Random, if true, skips search entirely and emits a uniformly random
	// legal move.
	Random bool

	AlphaBeta    bool
	HistoryTable bool
	Pondering    bool

	// SecondsLimit is the fixed per-turn budget; negative selects
	// fractional allocation by game phase.
	SecondsLimit float64

	Quiescent     int
	MinDepthLimit int
	// MaxDepthLimit is the hard iterative-deepening ceiling; 0 means
	// unlimited.
	MaxDepthLimit int

	// WhichAI selects the leaf heuristic: 1 material only, 2 material and
	// mobility.
	WhichAI int

	EvenDepthsOnly bool
}

// DefaultSettings mirrors the documented defaults of the configuration
// table.
func DefaultSettings() Settings {
	return Settings{
		AlphaBeta:     true,
		HistoryTable:  true,
		Quiescent:     2,
		MinDepthLimit: 2,
		WhichAI:       1,
	}
}

// Option mutates a Settings value under construction, following the
// engine.Option functional-options pattern.
type Option func(*Settings)

func WithVerbosity(silent, verbose, veryVerbose bool) Option {
	return func(s *Settings) { s.Silent, s.Verbose, s.VeryVerbose = silent, verbose, veryVerbose }
}

func WithRandom(v bool) Option { return func(s *Settings) { s.Random = v } }

func WithAlphaBeta(v bool) Option { return func(s *Settings) { s.AlphaBeta = v } }

func WithHistoryTable(v bool) Option { return func(s *Settings) { s.HistoryTable = v } }

func WithPondering(v bool) Option { return func(s *Settings) { s.Pondering = v } }

func WithSecondsLimit(v float64) Option { return func(s *Settings) { s.SecondsLimit = v } }

func WithQuiescent(v int) Option { return func(s *Settings) { s.Quiescent = v } }

func WithMinDepthLimit(v int) Option { return func(s *Settings) { s.MinDepthLimit = v } }

func WithMaxDepthLimit(v int) Option { return func(s *Settings) { s.MaxDepthLimit = v } }

func WithWhichAI(v int) Option { return func(s *Settings) { s.WhichAI = v } }

func WithEvenDepthsOnly(v bool) Option { return func(s *Settings) { s.EvenDepthsOnly = v } }

// NewSettings applies opts over DefaultSettings and validates the result,
// the Go equivalent of the original engine's Settings::Validate.
func NewSettings(opts ...Option) (Settings, error) {
	s := DefaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.WhichAI != 1 && s.WhichAI != 2 {
		return Settings{}, fmt.Errorf("turndriver: invalid which_ai %v, want 1 or 2", s.WhichAI)
	}
	if s.Quiescent < 0 {
		return Settings{}, fmt.Errorf("turndriver: quiescent must be >= 0, got %v", s.Quiescent)
	}
	if s.MinDepthLimit < 0 {
		return Settings{}, fmt.Errorf("turndriver: min_depth_limit must be >= 0, got %v", s.MinDepthLimit)
	}
	if s.MaxDepthLimit < 0 {
		return Settings{}, fmt.Errorf("turndriver: max_depth_limit must be >= 0, got %v", s.MaxDepthLimit)
	}
	return s, nil
}

func (s Settings) searchOptions() (search.Options, error) {
	h, err := eval.ParseHeuristic(s.WhichAI)
	if err != nil {
		return search.Options{}, err
	}

	opt := search.Options{
		Random:         s.Random,
		AlphaBeta:      s.AlphaBeta,
		HistoryTable:   s.HistoryTable,
		Quiescent:      s.Quiescent,
		MinDepthLimit:  s.MinDepthLimit,
		WhichAI:        h,
		EvenDepthsOnly: s.EvenDepthsOnly,
	}
	if s.MaxDepthLimit > 0 {
		opt.MaxDepthLimit = lang.Some(s.MaxDepthLimit)
	}
	return opt, nil
}
