package search

import "errors"

// ErrOutOfTime is returned from a search in progress once the per-turn time
// budget is exhausted past the minimum-depth floor.
var ErrOutOfTime = errors.New("search: out of time")

// ErrDonePondering is returned from a search in progress once a pondering
// worker has been asked to stop.
var ErrDonePondering = errors.New("search: done pondering")
