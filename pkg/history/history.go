// Package history implements the move-ordering history table: a counter
// indexed by (from, to, promotion_index) that biases move generation toward
// squares that have paid off in earlier searches.
//
// Indices are plain square/promotion-index integers rather than board.Square,
// so that this package does not depend on pkg/board; pkg/movegen snapshots
// the counters into each board.Action.
package history

const (
	numSquares  = 64
	numPromos   = 4
)

// Table is a 64x64x4 counter of how often a given move was selected as the
// best child at a node, or caused an alpha-beta cutoff without being the
// best-so-far. It is owned by the search driver rather than held as a
// process-wide singleton and is passed explicitly to each search; the turn
// driver hands the same table to its main search and its ponder worker.
type Table struct {
	counts [numSquares][numSquares][numPromos]uint64
}

// New returns a freshly zeroed history table.
func New() *Table {
	return &Table{}
}

// Get reads the counter for the given move key. Callers pass promotion
// index 0 for non-promoting moves (see board.Action.PromotionIndex).
func (t *Table) Get(from, to int, promotionIndex uint8) uint64 {
	return t.counts[from][to][promotionIndex&0x3]
}

// Increment bumps the counter for the given move key by one.
func (t *Table) Increment(from, to int, promotionIndex uint8) {
	t.counts[from][to][promotionIndex&0x3]++
}

// Reset zeroes every counter. Called at the start of each pondering session;
// ordering under normal play otherwise uses counters as-is across turns.
func (t *Table) Reset() {
	t.counts = [numSquares][numSquares][numPromos]uint64{}
}
