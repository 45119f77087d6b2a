package search

// Deadline is consulted by the search loop at every node of an iteration
// whose depth limit L exceeds Options.MinDepthLimit. Implemented by
// pkg/timebudget.Budget.
type Deadline interface {
	// Check returns ErrOutOfTime if the per-turn budget has elapsed.
	Check(depth int) error
}

// PonderStop is consulted at every node of every iteration, whatever
// Options.MinDepthLimit is. Implemented by pkg/ponder.Worker.
type PonderStop interface {
	// CheckStop returns ErrDonePondering if the worker has been asked to stop.
	CheckStop() error
}

// noDeadline and noPonderStop are used when the caller has nothing to check
// against (e.g. tests, or a ponder search that IS the PonderStop itself).
type noDeadline struct{}

func (noDeadline) Check(depth int) error { return nil }

type noPonderStop struct{}

func (noPonderStop) CheckStop() error { return nil }

// NoDeadline is a Deadline that never expires.
var NoDeadline Deadline = noDeadline{}

// NoPonderStop is a PonderStop that never fires.
var NoPonderStop PonderStop = noPonderStop{}
