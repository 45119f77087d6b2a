// Package movegen enumerates legal moves for a board.BitPack: per-piece
// attack masks, pin and check detection, castling and en-passant legality,
// and promotion expansion, emitted in the move-ordering defined by
// board.MoveList.
package movegen

import (
	"math/rand"

	"github.com/nthmove/woodpusher/pkg/board"
	"github.com/nthmove/woodpusher/pkg/history"
	"github.com/seekerror/stdlib/pkg/lang"
)

// checker describes one opponent piece currently attacking our king.
type checker struct {
	sq    board.Square
	piece board.Piece
}

// prescan holds the per-position facts computed once before enumeration.
type prescan struct {
	stm, opp     board.Color
	my, their    board.Bitboard
	occ          board.Bitboard
	theirAttacks board.Bitboard
	kingSq       board.Square
	checkers     []checker
	pins         map[board.Square]board.Bitboard
}

// Generate enumerates every legal move for the side to move in bp. h and
// rng feed the play-mode ordering key (history count, RNG tiebreak); in
// testMode, moves are ordered lexicographically instead. Either way, every
// action's History and Random fields are filled from h and rng when they
// are non-nil (rng is advanced once per action). Returns ErrCheckmate or
// ErrStalemate if no legal move exists.
func Generate(bp board.BitPack, h *history.Table, rng *rand.Rand, testMode bool) (*board.MoveList, error) {
	ps := scan(bp)

	var actions []board.Action
	actions = append(actions, generateOfficerMoves(bp, ps)...)
	actions = append(actions, generatePawnMoves(bp, ps)...) // promotions already expanded
	actions = append(actions, generateCastling(bp, ps)...)

	actions = attachMetadata(actions, h, rng)

	if len(actions) == 0 {
		if len(ps.checkers) > 0 {
			return nil, ErrCheckmate
		}
		return nil, ErrStalemate
	}

	fn := board.PlayOrder
	if testMode {
		fn = board.TestOrder
	}
	return board.NewMoveList(actions, fn), nil
}

func scan(bp board.BitPack) prescan {
	stm := bp.SideToMove()
	opp := stm.Opponent()

	ps := prescan{
		stm:   stm,
		opp:   opp,
		my:    bp.ColorOccupancy(stm),
		their: bp.ColorOccupancy(opp),
		pins:  map[board.Square]board.Bitboard{},
	}
	ps.occ = ps.my | ps.their
	ps.kingSq = bp.KingSquare(stm)

	// their_attacks treats our king as transparent, so a slider's ray is
	// still marked on the far side of the king -- the king may not "hide"
	// behind itself when stepping back along a check ray.
	occWithoutKing := ps.occ &^ board.BitMask(ps.kingSq)

	for _, o := range bp.Officers(opp) {
		if o.Captured {
			continue
		}
		ps.theirAttacks |= attackMaskFor(o.Piece, opp, o.Square, occWithoutKing)
		if attackMaskFor(o.Piece, opp, o.Square, ps.occ).IsSet(ps.kingSq) {
			ps.checkers = append(ps.checkers, checker{sq: o.Square, piece: o.Piece})
		}
		if isSlider(o.Piece) {
			if ray, pinnedSq, ok := findPin(o.Square, o.Piece, ps.kingSq, ps.occ, ps.my); ok {
				ps.pins[pinnedSq] = ray
			}
		}
	}
	// A promoted pawn attacks and checks as its promoted piece kind, not as
	// a pawn; its p.Piece already reflects that (see BitPack.Pawns).
	for _, p := range bp.Pawns(opp) {
		if p.Captured {
			continue
		}
		ps.theirAttacks |= attackMaskFor(p.Piece, opp, p.Square, occWithoutKing)
		if attackMaskFor(p.Piece, opp, p.Square, ps.occ).IsSet(ps.kingSq) {
			ps.checkers = append(ps.checkers, checker{sq: p.Square, piece: p.Piece})
		}
		if isSlider(p.Piece) {
			if ray, pinnedSq, ok := findPin(p.Square, p.Piece, ps.kingSq, ps.occ, ps.my); ok {
				ps.pins[pinnedSq] = ray
			}
		}
	}

	return ps
}

// attackMaskFor computes the attack mask for a single piece of the given
// color and kind, dispatching pawn captures (color-dependent direction)
// separately from the occupancy-aware board.Attackboard used by sliders,
// knights and kings.
func attackMaskFor(piece board.Piece, color board.Color, sq board.Square, occ board.Bitboard) board.Bitboard {
	if piece == board.Pawn {
		return board.PawnCaptureboard(color, sq)
	}
	return board.Attackboard(piece, sq, occ)
}

func isSlider(p board.Piece) bool {
	return p == board.Queen || p == board.Rook || p == board.Bishop
}

// findPin walks the ray from a slider at sq toward the king, looking for
// exactly one of our pieces between them. Returns the ray (slider's square
// through the square just short of the king) and the pinned square.
func findPin(sliderSq board.Square, piece board.Piece, kingSq board.Square, occ, mine board.Bitboard) (board.Bitboard, board.Square, bool) {
	dx, dy, ok := rayDirection(sliderSq, kingSq)
	if !ok {
		return 0, 0, false
	}
	if !directionMatches(piece, dx, dy) {
		return 0, 0, false
	}

	ray := board.BitMask(sliderSq)
	var pinnedSq board.Square
	found := 0

	f, r := int(sliderSq.File())+dx, int(sliderSq.Rank())+dy
	for {
		sq := board.NewSquare(board.File(f), board.Rank(r))
		if sq == kingSq {
			break
		}
		if occ.IsSet(sq) {
			found++
			if found > 1 {
				return 0, 0, false
			}
			if !mine.IsSet(sq) {
				return 0, 0, false // blocked by an opponent piece: no pin
			}
			pinnedSq = sq
		}
		ray |= board.BitMask(sq)

		f += dx
		r += dy
		if f < 0 || f > 7 || r < 0 || r > 7 {
			return 0, 0, false // should not happen if kingSq is reached first
		}
	}
	if found != 1 {
		return 0, 0, false
	}
	return ray, pinnedSq, true
}

// rayDirection returns the unit step (dx,dy) from 'from' toward 'to' if they
// are aligned on a rank, file, or diagonal.
func rayDirection(from, to board.Square) (int, int, bool) {
	f0, r0 := int(from.File()), int(from.Rank())
	f1, r1 := int(to.File()), int(to.Rank())
	df, dr := f1-f0, r1-r0

	switch {
	case df == 0 && dr == 0:
		return 0, 0, false
	case df == 0:
		return 0, sign(dr), true
	case dr == 0:
		return sign(df), 0, true
	case abs(df) == abs(dr):
		return sign(df), sign(dr), true
	default:
		return 0, 0, false
	}
}

func directionMatches(piece board.Piece, dx, dy int) bool {
	orthogonal := dx == 0 || dy == 0
	switch piece {
	case board.Queen:
		return true
	case board.Rook:
		return orthogonal
	case board.Bishop:
		return !orthogonal
	default:
		return false
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// destinationMask restricts raw to a pinned piece's ray, if pinned, and
// always excludes our own pieces.
func destinationMask(ps prescan, from board.Square, raw board.Bitboard) board.Bitboard {
	raw &^= ps.my
	if ray, pinned := ps.pins[from]; pinned {
		raw &= ray
	}
	return raw
}

// checkFilter further restricts non-king destinations when the king is
// currently in check.
func (ps prescan) checkFilter(raw board.Bitboard) board.Bitboard {
	switch len(ps.checkers) {
	case 0:
		return raw
	case 1:
		return raw & ps.blockingSquares()
	default:
		return 0 // double check: only king moves are legal
	}
}

func (ps prescan) blockingSquares() board.Bitboard {
	c := ps.checkers[0]
	mask := board.BitMask(c.sq)
	if isSlider(c.piece) {
		if dx, dy, ok := rayDirection(c.sq, ps.kingSq); ok {
			f, r := int(c.sq.File())+dx, int(c.sq.Rank())+dy
			for {
				sq := board.NewSquare(board.File(f), board.Rank(r))
				if sq == ps.kingSq {
					break
				}
				mask |= board.BitMask(sq)
				f += dx
				r += dy
			}
		}
	}
	return mask
}

func generateOfficerMoves(bp board.BitPack, ps prescan) []board.Action {
	var actions []board.Action

	for _, o := range bp.Officers(ps.stm) {
		if o.Captured {
			continue
		}
		if o.Piece == board.King {
			dest := board.KingAttackboard(o.Square) &^ ps.my &^ ps.theirAttacks
			for _, to := range dest.Squares() {
				actions = append(actions, board.Action{From: o.Square, To: to, Slot: lang.Some(o.Slot)})
			}
			continue
		}

		raw := board.Attackboard(o.Piece, o.Square, ps.occ)
		dest := ps.checkFilter(destinationMask(ps, o.Square, raw))
		for _, to := range dest.Squares() {
			actions = append(actions, board.Action{From: o.Square, To: to, Slot: lang.Some(o.Slot)})
		}
	}
	return actions
}

func generatePawnMoves(bp board.BitPack, ps prescan) []board.Action {
	var actions []board.Action
	epSq, epOK := bp.EnPassant()

	for _, p := range bp.Pawns(ps.stm) {
		if p.Captured {
			continue
		}

		if isSlider(p.Piece) || p.Piece == board.Knight {
			// a promoted pawn now moves as its promoted piece kind.
			raw := board.Attackboard(p.Piece, p.Square, ps.occ)
			if p.Piece == board.Knight {
				raw = board.KnightAttackboard(p.Square)
			}
			dest := ps.checkFilter(destinationMask(ps, p.Square, raw))
			for _, to := range dest.Squares() {
				actions = append(actions, board.Action{From: p.Square, To: to, Slot: lang.Some(p.Slot)})
			}
			continue
		}

		var raw board.Bitboard

		// forward pushes, through empty squares only.
		f, r := int(p.Square.File()), int(p.Square.Rank())
		dr := 1
		if ps.stm == board.Black {
			dr = -1
		}
		one := board.NewSquare(board.File(f), board.Rank(r+dr))
		if !ps.occ.IsSet(one) {
			raw |= board.BitMask(one)
			if p.Square.Rank() == board.PawnStartRank(ps.stm) {
				two := board.NewSquare(board.File(f), board.Rank(r+2*dr))
				if !ps.occ.IsSet(two) {
					raw |= board.BitMask(two)
				}
			}
		}

		// diagonal captures, including en passant.
		caps := board.PawnCaptureboard(ps.stm, p.Square)
		raw |= caps & ps.their
		if epOK && caps.IsSet(epSq) {
			raw |= board.BitMask(epSq)
		}

		raw &^= ps.my
		if ray, pinned := ps.pins[p.Square]; pinned {
			raw &= ray
		}

		for _, to := range raw.Squares() {
			isEP := epOK && to == epSq && to.File() != p.Square.File()
			if len(ps.checkers) > 0 {
				c := ps.checkers[0]
				if len(ps.checkers) > 1 {
					continue
				}
				capturedSq := to
				if isEP {
					capturedSq = board.NewSquare(to.File(), p.Square.Rank())
				}
				if !(ps.blockingSquares().IsSet(to) || capturedSq == c.sq) {
					continue
				}
			}
			if to.Rank() == board.PawnPromotionRank(ps.stm) {
				for _, target := range promotionTargets {
					actions = append(actions, board.Action{From: p.Square, To: to, Promoted: true, PromotionTarget: target, Slot: lang.Some(p.Slot)})
				}
			} else {
				actions = append(actions, board.Action{From: p.Square, To: to, Slot: lang.Some(p.Slot)})
			}
		}
	}
	return actions
}

var promotionTargets = []board.Piece{board.Queen, board.Rook, board.Bishop, board.Knight}

func generateCastling(bp board.BitPack, ps prescan) []board.Action {
	if len(ps.checkers) > 0 {
		return nil
	}

	var actions []board.Action
	rank := ps.kingSq.Rank()
	castling := bp.Castling()

	type side struct {
		right           board.Castling
		transit, between board.Bitboard
		kingTo          board.Square
	}
	sides := []side{
		{
			right:   kingSideRight(ps.stm),
			between: board.BitMask(board.NewSquare(board.FileF, rank)) | board.BitMask(board.NewSquare(board.FileG, rank)),
			transit: board.BitMask(board.NewSquare(board.FileF, rank)) | board.BitMask(board.NewSquare(board.FileG, rank)),
			kingTo:  board.NewSquare(board.FileG, rank),
		},
		{
			right:   queenSideRight(ps.stm),
			between: board.BitMask(board.NewSquare(board.FileB, rank)) | board.BitMask(board.NewSquare(board.FileC, rank)) | board.BitMask(board.NewSquare(board.FileD, rank)),
			transit: board.BitMask(board.NewSquare(board.FileC, rank)) | board.BitMask(board.NewSquare(board.FileD, rank)),
			kingTo:  board.NewSquare(board.FileC, rank),
		},
	}

	for _, s := range sides {
		if !castling.IsAllowed(s.right) {
			continue
		}
		if ps.occ&s.between != 0 {
			continue
		}
		if ps.theirAttacks&s.transit != 0 {
			continue
		}
		actions = append(actions, board.Action{From: ps.kingSq, To: s.kingTo})
	}
	return actions
}

func kingSideRight(c board.Color) board.Castling {
	if c == board.White {
		return board.WhiteKingSideCastle
	}
	return board.BlackKingSideCastle
}

func queenSideRight(c board.Color) board.Castling {
	if c == board.White {
		return board.WhiteQueenSideCastle
	}
	return board.BlackQueenSideCastle
}

// attachMetadata snapshots the history-table count and draws an RNG
// tiebreak for every action. Safe to call with a nil history table or RNG
// (e.g. in tests using lexicographic ordering).
func attachMetadata(actions []board.Action, h *history.Table, rng *rand.Rand) []board.Action {
	for i := range actions {
		a := &actions[i]
		if h != nil {
			a.History = h.Get(int(a.From), int(a.To), a.PromotionIndex())
		}
		if rng != nil {
			a.Random = rng.Int63()
		}
	}
	return actions
}
