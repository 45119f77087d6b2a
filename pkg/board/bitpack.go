package board

import "fmt"

// Slot indexes a color's 16 piece slots: king, queen, both rooks, both
// bishops, both knights, then the 8 pawns. Slots are stable across a game —
// a captured piece keeps its slot with its captured flag set, so that
// promoted-pawn "slot identity" carries through to history-table lookups.
type Slot int

const (
	SlotKing Slot = iota
	SlotQueen
	SlotRook1
	SlotRook2
	SlotBishop1
	SlotBishop2
	SlotKnight1
	SlotKnight2
	SlotPawn0
	// SlotPawn0..SlotPawn0+7 cover the 8 pawn slots.
)

const (
	numSlots     = 16
	numPawnSlots = 8
)

// officerOf reports the kind of non-pawn piece in a given officer slot.
// Only valid for slots < SlotPawn0.
func officerOf(s Slot) Piece {
	switch s {
	case SlotKing:
		return King
	case SlotQueen:
		return Queen
	case SlotRook1, SlotRook2:
		return Rook
	case SlotBishop1, SlotBishop2:
		return Bishop
	case SlotKnight1, SlotKnight2:
		return Knight
	default:
		return NoPiece
	}
}

// BitPack is the 36-byte fixed encoding of one position:
//
//   - byte 0..31:  8 slot pairs per color * 2 colors, 2 bytes per pair
//     (White in bytes 0..15, Black in 16..31; officer slots 0..7 interleaved
//     with pawn slots 0..7, so slot k's officer byte and slot k's paired pawn
//     byte are adjacent — see slotByteIndex).
//   - byte 32:     White's 8-bit "promoted?" pawn mask.
//   - byte 33:     Black's 8-bit "promoted?" pawn mask.
//   - byte 34:     en-passant target (6 bits) | en-passant flag (1 bit) | side to move (1 bit).
//   - byte 35:     castling rights, 2 bits per color (queen-rook-moved, king-rook-moved).
//
// Each slot pair packs a captured flag for BOTH its officer and its paired
// pawn into the officer byte, leaving the pawn byte's top bits free to carry
// the pawn's 2-bit promotion target. This is the byte-budget trick that lets
// 16 two-piece slots fit in 32 bytes instead of 64: an officer byte holds
// (square:6, own_captured:1, paired_pawn_captured:1); a pawn byte holds
// (square:6, promotion_target:2).
type BitPack [36]byte

const (
	byteSpecial       = 32 + 2 // 34
	byteCastling      = 32 + 3 // 35
	byWhitePromoted   = 32
	byBlackPromoted   = 33
	specialEPFlagBit  = 1 << 6
	specialSTMBit     = 1 << 7
	specialSquareMask = 0x3f
)

// slotByteIndex returns the byte offsets of the officer half and the paired
// pawn half for slot k (0..7) of the given color. Slot k's officer lives at
// the even offset, its paired pawn at the next (odd) offset.
func slotByteIndex(c Color, k int) (officer, pawn int) {
	base := int(c) * 16
	return base + 2*k, base + 2*k + 1
}

// officerSquare returns the square of the officer in slot k (0..7) for color c.
func (bp *BitPack) officerSquare(c Color, k int) Square {
	i, _ := slotByteIndex(c, k)
	return Square(bp[i] & specialSquareMask)
}

func (bp *BitPack) setOfficerSquare(c Color, k int, sq Square) {
	i, _ := slotByteIndex(c, k)
	bp[i] = (bp[i] &^ specialSquareMask) | byte(sq&specialSquareMask)
}

// officerCaptured reports whether the officer in slot k is captured.
func (bp *BitPack) officerCaptured(c Color, k int) bool {
	i, _ := slotByteIndex(c, k)
	return bp[i]&0x40 != 0
}

func (bp *BitPack) setOfficerCaptured(c Color, k int, v bool) {
	i, _ := slotByteIndex(c, k)
	if v {
		bp[i] |= 0x40
	} else {
		bp[i] &^= 0x40
	}
}

// pawnCaptured reports whether the pawn in slot k is captured. The flag is
// stored in the paired officer byte's top bit.
func (bp *BitPack) pawnCaptured(c Color, k int) bool {
	i, _ := slotByteIndex(c, k)
	return bp[i]&0x80 != 0
}

func (bp *BitPack) setPawnCaptured(c Color, k int, v bool) {
	i, _ := slotByteIndex(c, k)
	if v {
		bp[i] |= 0x80
	} else {
		bp[i] &^= 0x80
	}
}

func (bp *BitPack) pawnSquare(c Color, k int) Square {
	_, j := slotByteIndex(c, k)
	return Square(bp[j] & specialSquareMask)
}

func (bp *BitPack) setPawnSquare(c Color, k int, sq Square) {
	_, j := slotByteIndex(c, k)
	bp[j] = (bp[j] &^ specialSquareMask) | byte(sq&specialSquareMask)
}

// pawnPromotionBits returns the pawn's 2-bit promotion target code, stored
// in the top two bits of its own byte. Meaningful only if Promoted(c, k).
func (bp *BitPack) pawnPromotionBits(c Color, k int) uint8 {
	_, j := slotByteIndex(c, k)
	return (bp[j] >> 6) & 0x3
}

func (bp *BitPack) setPawnPromotionBits(c Color, k int, bits uint8) {
	_, j := slotByteIndex(c, k)
	bp[j] = (bp[j] & 0x3f) | (bits&0x3)<<6
}

// The Set* family below exports the slot mutators above for use by the fen
// package, which assembles a BitPack directly from a parsed piece list
// rather than through Apply.

func (bp *BitPack) SetOfficerSquare(c Color, k int, sq Square)   { bp.setOfficerSquare(c, k, sq) }
func (bp *BitPack) SetOfficerCaptured(c Color, k int, v bool)    { bp.setOfficerCaptured(c, k, v) }
func (bp *BitPack) SetPawnSquare(c Color, k int, sq Square)      { bp.setPawnSquare(c, k, sq) }
func (bp *BitPack) SetPawnCaptured(c Color, k int, v bool)       { bp.setPawnCaptured(c, k, v) }
func (bp *BitPack) SetPawnPromotionBits(c Color, k int, b uint8) { bp.setPawnPromotionBits(c, k, b) }
func (bp *BitPack) SetPromoted(c Color, k int, v bool)           { bp.setPromoted(c, k, v) }
func (bp *BitPack) SetSideToMove(c Color)                        { bp.setSideToMove(c) }
func (bp *BitPack) SetEnPassant(sq Square, ok bool)              { bp.setEnPassant(sq, ok) }

func promotedByteIndex(c Color) int {
	if c == White {
		return byWhitePromoted
	}
	return byBlackPromoted
}

// Promoted reports whether the pawn in slot k (0..7) for color c has been
// promoted.
func (bp *BitPack) Promoted(c Color, k int) bool {
	return bp[promotedByteIndex(c)]&(1<<uint(k)) != 0
}

func (bp *BitPack) setPromoted(c Color, k int, v bool) {
	i := promotedByteIndex(c)
	if v {
		bp[i] |= 1 << uint(k)
	} else {
		bp[i] &^= 1 << uint(k)
	}
}

// SideToMove returns whose turn it is.
func (bp *BitPack) SideToMove() Color {
	if bp[byteSpecial]&specialSTMBit != 0 {
		return Black
	}
	return White
}

func (bp *BitPack) setSideToMove(c Color) {
	if c == Black {
		bp[byteSpecial] |= specialSTMBit
	} else {
		bp[byteSpecial] &^= specialSTMBit
	}
}

// EnPassant returns the en-passant target square and whether it is live.
func (bp *BitPack) EnPassant() (Square, bool) {
	if bp[byteSpecial]&specialEPFlagBit == 0 {
		return NoSquare, false
	}
	return Square(bp[byteSpecial] & specialSquareMask), true
}

func (bp *BitPack) setEnPassant(sq Square, ok bool) {
	if ok {
		bp[byteSpecial] = (bp[byteSpecial] &^ specialSquareMask) | byte(sq&specialSquareMask) | specialEPFlagBit
	} else {
		bp[byteSpecial] &^= specialEPFlagBit | specialSquareMask
	}
}

// Castling returns the castling rights still available.
func (bp *BitPack) Castling() Castling {
	raw := bp[byteCastling]
	var ret Castling
	if raw&(1<<0) == 0 {
		ret |= WhiteQueenSideCastle
	}
	if raw&(1<<1) == 0 {
		ret |= WhiteKingSideCastle
	}
	if raw&(1<<2) == 0 {
		ret |= BlackQueenSideCastle
	}
	if raw&(1<<3) == 0 {
		ret |= BlackKingSideCastle
	}
	return ret
}

// SetCastling overwrites the castling-rights byte wholesale; used by the FEN
// decoder.
func (bp *BitPack) SetCastling(c Castling) {
	var raw byte
	if !c.IsAllowed(WhiteQueenSideCastle) {
		raw |= 1 << 0
	}
	if !c.IsAllowed(WhiteKingSideCastle) {
		raw |= 1 << 1
	}
	if !c.IsAllowed(BlackQueenSideCastle) {
		raw |= 1 << 2
	}
	if !c.IsAllowed(BlackKingSideCastle) {
		raw |= 1 << 3
	}
	bp[byteCastling] = raw
}

func (bp *BitPack) revokeCastling(right Castling) {
	bp.SetCastling(bp.Castling().Revoke(right))
}

// PieceAt returns the piece and color occupying sq, or (NoPiece, White,
// false) if empty. Captured slots are not occupying their last square.
func (bp *BitPack) PieceAt(sq Square) (Piece, Color, bool) {
	for _, c := range [2]Color{White, Black} {
		for k := 0; k < numPawnSlots; k++ {
			if !bp.officerCaptured(c, k) && bp.officerSquare(c, k) == sq {
				return officerOf(Slot(k)), c, true
			}
			if !bp.pawnCaptured(c, k) && bp.pawnSquare(c, k) == sq {
				if bp.Promoted(c, k) {
					return pieceFromPromotionBits(bp.pawnPromotionBits(c, k)), c, true
				}
				return Pawn, c, true
			}
		}
	}
	return NoPiece, White, false
}

// Occupancy returns the bitboard of every occupied square (both colors).
func (bp *BitPack) Occupancy() Bitboard {
	return bp.ColorOccupancy(White) | bp.ColorOccupancy(Black)
}

// ColorOccupancy returns the bitboard of squares occupied by c's pieces.
func (bp *BitPack) ColorOccupancy(c Color) Bitboard {
	var ret Bitboard
	for k := 0; k < numPawnSlots; k++ {
		if !bp.officerCaptured(c, k) {
			ret |= BitMask(bp.officerSquare(c, k))
		}
		if !bp.pawnCaptured(c, k) {
			ret |= BitMask(bp.pawnSquare(c, k))
		}
	}
	return ret
}

// KingSquare returns c's king square. The king is never captured, so this
// always succeeds.
func (bp *BitPack) KingSquare(c Color) Square {
	return bp.officerSquare(c, int(SlotKing))
}

// OfficerSlot describes one live or captured officer for iteration.
type OfficerSlot struct {
	Slot     int
	Piece    Piece
	Square   Square
	Captured bool
}

// PawnSlot describes one live or captured pawn for iteration.
type PawnSlot struct {
	Slot     int
	Piece    Piece // Pawn, or the promoted piece if Promoted
	Square   Square
	Captured bool
	Promoted bool
}

// Officers returns all 8 officer slots for color c, in slot order.
func (bp *BitPack) Officers(c Color) [8]OfficerSlot {
	var ret [8]OfficerSlot
	for k := 0; k < numPawnSlots; k++ {
		ret[k] = OfficerSlot{
			Slot:     k,
			Piece:    officerOf(Slot(k)),
			Square:   bp.officerSquare(c, k),
			Captured: bp.officerCaptured(c, k),
		}
	}
	return ret
}

// Pawns returns all 8 pawn slots for color c, in slot order.
func (bp *BitPack) Pawns(c Color) [8]PawnSlot {
	var ret [8]PawnSlot
	for k := 0; k < numPawnSlots; k++ {
		p := Pawn
		promoted := bp.Promoted(c, k)
		if promoted {
			p = pieceFromPromotionBits(bp.pawnPromotionBits(c, k))
		}
		ret[k] = PawnSlot{
			Slot:     k,
			Piece:    p,
			Square:   bp.pawnSquare(c, k),
			Captured: bp.pawnCaptured(c, k),
			Promoted: promoted,
		}
	}
	return ret
}

// findSlotAt locates the live slot of color c occupying sq, if any. ok is
// false if no live piece of that color sits there. isPawn tells the caller
// which accessor family to use.
func (bp *BitPack) findSlotAt(c Color, sq Square) (k int, isPawn bool, ok bool) {
	for k := 0; k < numPawnSlots; k++ {
		if !bp.officerCaptured(c, k) && bp.officerSquare(c, k) == sq {
			return k, false, true
		}
		if !bp.pawnCaptured(c, k) && bp.pawnSquare(c, k) == sq {
			return k, true, true
		}
	}
	return 0, false, false
}

// Apply mutates the BitPack per the move-application sequence: clear the
// stale en-passant target, resolve any capture, relocate the moving piece
// (handling two-square pawn jumps, promotion and castling), update castling
// rights, and flip the side to move. It returns
// captured_value + (promotion_value - pawn_value), the material delta the
// move is worth from the mover's perspective.
func (bp *BitPack) Apply(a Action) int {
	mover := bp.SideToMove()
	opp := mover.Opponent()

	epTarget, epOK := bp.EnPassant()
	bp.setEnPassant(NoSquare, false)

	k, isPawn, ok := bp.findSlotAt(mover, a.From)
	if !ok {
		panic(fmt.Sprintf("Apply: no %v piece at %v", mover, a.From))
	}

	delta := 0

	// Step 2: resolve capture, including en passant.
	captureSquare := a.To
	isEnPassant := isPawn && epOK && a.To == epTarget && a.From.File() != a.To.File()
	if isEnPassant {
		captureSquare = NewSquare(a.To.File(), a.From.Rank())
	}
	if ck, ckIsPawn, ckOK := bp.findSlotAt(opp, captureSquare); ckOK {
		if ckIsPawn {
			capturedPiece := Pawn
			if bp.Promoted(opp, ck) {
				capturedPiece = pieceFromPromotionBits(bp.pawnPromotionBits(opp, ck))
			}
			bp.setPawnCaptured(opp, ck, true)
			delta += capturedPiece.Value()
		} else {
			bp.setOfficerCaptured(opp, ck, true)
			delta += officerOf(Slot(ck)).Value()
			bp.revokeCastlingForRookLoss(opp, ck)
		}
	}

	// Step 3: move the piece, handling two-square jumps and promotion.
	if isPawn {
		if a.From.Rank() == PawnStartRank(mover) && absRank(a.To.Rank(), a.From.Rank()) == 2 {
			skipped := NewSquare(a.From.File(), Rank((int(a.From.Rank())+int(a.To.Rank()))/2))
			bp.setEnPassant(skipped, true)
		}
		bp.setPawnSquare(mover, k, a.To)
		if a.Promoted {
			bp.setPromoted(mover, k, true)
			bp.setPawnPromotionBits(mover, k, promotionBits(a.PromotionTarget))
			delta += a.PromotionTarget.Value() - Pawn.Value()
		}
	} else {
		bp.setOfficerSquare(mover, k, a.To)
	}

	// Step 4: castling rook relocation.
	if !isPawn && officerOf(Slot(k)) == King {
		df := int(a.To.File()) - int(a.From.File())
		if df == 2 || df == -2 {
			rank := a.From.Rank()
			var rookFrom, rookTo Square
			if df == 2 {
				rookFrom = NewSquare(FileH, rank)
				rookTo = NewSquare(FileF, rank)
			} else {
				rookFrom = NewSquare(FileA, rank)
				rookTo = NewSquare(FileD, rank)
			}
			if rk, _, rookOK := bp.findSlotAt(mover, rookFrom); rookOK {
				bp.setOfficerSquare(mover, rk, rookTo)
			}
		}
	}

	// Step 5: castling-rights bookkeeping for the mover.
	if !isPawn {
		switch officerOf(Slot(k)) {
		case King:
			bp.revokeCastling(kingSide(mover) | queenSide(mover))
		case Rook:
			bp.revokeCastlingForRookLoss(mover, k)
		}
	}

	// Step 6: flip side to move.
	bp.setSideToMove(opp)

	// delta is captured_value + (promotion_value - pawn_value), positive
	// when the move favors the mover; SearchNode applies the alternating
	// sign-by-ply on top of this.
	return delta
}

// revokeCastlingForRookLoss clears c's castling right tied to the rook in
// slot k, if that slot is one of the two rook slots.
func (bp *BitPack) revokeCastlingForRookLoss(c Color, k int) {
	switch Slot(k) {
	case SlotRook1:
		bp.revokeCastling(queenSide(c))
	case SlotRook2:
		bp.revokeCastling(kingSide(c))
	}
}

func absRank(a, b Rank) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}
