package movegen

import "errors"

// ErrCheckmate is raised by Generate when the side to move has no legal
// moves and is in check.
var ErrCheckmate = errors.New("movegen: checkmate")

// ErrStalemate is raised by Generate when the side to move has no legal
// moves and is not in check.
var ErrStalemate = errors.New("movegen: stalemate")
