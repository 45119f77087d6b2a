package board

// Piece represents a chess piece kind (King, Pawn, etc), color-agnostic.
type Piece uint8

const (
	NoPiece Piece = iota
	Pawn
	Bishop
	Knight
	Rook
	Queen
	King
)

func ParsePiece(r rune) (Piece, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'b', 'B':
		return Bishop, true
	case 'n', 'N':
		return Knight, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPiece, false
	}
}

func (p Piece) IsValid() bool {
	return Pawn <= p && p <= King
}

func (p Piece) String() string {
	switch p {
	case NoPiece:
		return " "
	case Pawn:
		return "p"
	case Bishop:
		return "b"
	case Knight:
		return "n"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// Value returns the point value used for material scoring. Kings are never
// captured and have no meaningful point value for this purpose.
func (p Piece) Value() int {
	switch p {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

// promotionTargets lists the four promotion-eligible pieces in the 2-bit
// encoding order used by BitPack's pawn-slot promotion field.
var promotionTargets = [4]Piece{Queen, Rook, Bishop, Knight}

// promotionBits returns the 2-bit code for a promotion target. Panics if p
// is not a valid promotion target; callers only invoke this for moves that
// MoveGen itself produced, so this indicates an invariant violation.
func promotionBits(p Piece) uint8 {
	for i, t := range promotionTargets {
		if t == p {
			return uint8(i)
		}
	}
	panic("invalid promotion target")
}

// PromotionBits is the exported form of promotionBits, used by the fen
// package when assembling a BitPack from a raw piece list.
func PromotionBits(p Piece) uint8 {
	return promotionBits(p)
}

func pieceFromPromotionBits(bits uint8) Piece {
	return promotionTargets[bits&0x3]
}

// ParsePromotionWord parses a promotion piece name as used on the wire
// ("Queen", "Rook", "Bishop", "Knight"), per the external move-out format.
func ParsePromotionWord(s string) (Piece, bool) {
	switch s {
	case "Queen":
		return Queen, true
	case "Rook":
		return Rook, true
	case "Bishop":
		return Bishop, true
	case "Knight":
		return Knight, true
	default:
		return NoPiece, false
	}
}

// PromotionWord renders a promotion piece in the external move-out format.
func (p Piece) PromotionWord() string {
	switch p {
	case Queen:
		return "Queen"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Knight:
		return "Knight"
	default:
		return ""
	}
}
