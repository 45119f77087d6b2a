// Package fen reads and writes chess positions in Forsyth-Edwards Notation,
// decoding into and encoding from a board.BitPack.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/nthmove/woodpusher/pkg/board"
)

const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type placement struct {
	sq    board.Square
	color board.Color
	piece board.Piece
}

// officerCapacity is the number of slots the canonical 16-slot model
// reserves for each non-pawn piece kind.
var officerCapacity = map[board.Piece]int{
	board.King:   1,
	board.Queen:  1,
	board.Rook:   2,
	board.Bishop: 2,
	board.Knight: 2,
}

// officerOrder fixes which officer kind fills which of the 8 officer slots,
// matching BitPack's documented slot layout (king, queen, r1, r2, b1, b2,
// n1, n2). Within a pair, the lower-file piece fills the first slot, so that
// slot assignment lines up with queen-side/king-side castling rights.
var officerOrder = []board.Piece{board.King, board.Queen, board.Rook, board.Rook, board.Bishop, board.Bishop, board.Knight, board.Knight}

// Decode returns a new BitPack and game-clock fields from a FEN description.
func Decode(str string) (board.BitPack, board.Color, int, int, error) {
	parts := strings.Split(strings.TrimSpace(str), " ")
	if len(parts) != 6 {
		return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid number of sections in FEN: %q", str)
	}

	placements, err := parseBoard(parts[0])
	if err != nil {
		return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid piece placement in FEN %q: %w", str, err)
	}

	active, ok := parseColor(parts[1])
	if !ok {
		return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid active color in FEN: %q", str)
	}

	castling, ok := parseCastling(parts[2])
	if !ok {
		return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid castling in FEN: %q", str)
	}

	ep := board.NoSquare
	hasEP := false
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid en passant in FEN %q: %w", str, err)
		}
		ep = sq
		hasEP = true
	}

	np, err := strconv.Atoi(parts[4])
	if err != nil || np < 0 {
		return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", str)
	}

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 1 {
		return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", str)
	}

	bp, err := assemble(placements, active, castling, ep, hasEP)
	if err != nil {
		return board.BitPack{}, 0, 0, 0, fmt.Errorf("invalid position in FEN %q: %w", str, err)
	}
	return bp, active, np, fm, nil
}

// assemble packs a flat list of placements into the 16-slot-per-color
// BitPack encoding. Officers of a kind beyond the canonical capacity (e.g. a
// second queen) are treated as promoted pawns and placed into free pawn
// slots instead; slots with no corresponding piece are marked captured.
func assemble(placements []placement, active board.Color, castling board.Castling, ep board.Square, hasEP bool) (board.BitPack, error) {
	var bp board.BitPack

	for _, c := range [2]board.Color{board.White, board.Black} {
		var byKind = map[board.Piece][]placement{}
		var pawns []placement
		for _, p := range placements {
			if p.color != c {
				continue
			}
			if p.piece == board.Pawn {
				pawns = append(pawns, p)
				continue
			}
			byKind[p.piece] = append(byKind[p.piece], p)
		}
		if len(byKind[board.King]) != 1 {
			return board.BitPack{}, fmt.Errorf("%v must have exactly one king, found %v", c, len(byKind[board.King]))
		}

		// Sort each kind's placements by file, so pairs assign queen-side
		// first; split off anything beyond the canonical capacity as
		// overflow (promoted pawns).
		var overflow []placement
		filled := map[board.Piece]int{}
		slotOf := map[board.Piece][]placement{}
		for _, kind := range []board.Piece{board.King, board.Queen, board.Rook, board.Bishop, board.Knight} {
			ps := byKind[kind]
			sortByFile(ps)
			cap := officerCapacity[kind]
			if len(ps) > cap {
				overflow = append(overflow, ps[cap:]...)
				ps = ps[:cap]
			}
			slotOf[kind] = ps
		}

		for k, kind := range officerOrder {
			ps := slotOf[kind]
			idx := filled[kind]
			if idx < len(ps) {
				bp.SetOfficerSquare(c, k, ps[idx].sq)
				filled[kind] = idx + 1
			} else {
				bp.SetOfficerCaptured(c, k, true)
			}
		}

		// pawn slots: real pawns first, in FEN scan order (rank 8 down to
		// rank 1, file a to h within a rank), then overflow (promoted)
		// officers by kind (queen, rook, bishop, knight) and file.
		var occupants []placement
		occupants = append(occupants, pawns...)
		occupants = append(occupants, overflow...)
		if len(occupants) > 8 {
			return board.BitPack{}, fmt.Errorf("%v has more than 8 pawn-origin pieces", c)
		}
		for k, p := range occupants {
			bp.SetPawnSquare(c, k, p.sq)
			if p.piece != board.Pawn {
				bp.SetPromoted(c, k, true)
				bp.SetPawnPromotionBits(c, k, board.PromotionBits(p.piece))
			}
		}
		for k := len(occupants); k < 8; k++ {
			bp.SetPawnCaptured(c, k, true)
		}
	}

	bp.SetSideToMove(active)
	bp.SetCastling(castling)
	bp.SetEnPassant(ep, hasEP)
	return bp, nil
}

func sortByFile(ps []placement) {
	for i := 1; i < len(ps); i++ {
		for j := i; j > 0 && ps[j].sq.File() < ps[j-1].sq.File(); j-- {
			ps[j], ps[j-1] = ps[j-1], ps[j]
		}
	}
}

func parseBoard(str string) ([]placement, error) {
	var ret []placement

	rows := strings.Split(str, "/")
	if len(rows) != 8 {
		return nil, fmt.Errorf("expected 8 ranks, found %v", len(rows))
	}

	for i, row := range rows {
		rank := board.Rank8 - board.Rank(i)
		file := board.FileA
		for _, r := range row {
			switch {
			case unicode.IsDigit(r):
				file += board.File(r - '0')
			case unicode.IsLetter(r):
				color, piece, ok := parsePiece(r)
				if !ok {
					return nil, fmt.Errorf("invalid piece %q", r)
				}
				if file > board.FileH {
					return nil, fmt.Errorf("rank %v overflows", rank)
				}
				ret = append(ret, placement{sq: board.NewSquare(file, rank), color: color, piece: piece})
				file++
			default:
				return nil, fmt.Errorf("invalid character %q", r)
			}
		}
		if file != board.FileH+1 {
			return nil, fmt.Errorf("rank %v has wrong number of squares", rank)
		}
	}
	return ret, nil
}

// Encode renders a BitPack and game-clock fields back to FEN.
func Encode(bp board.BitPack, active board.Color, noprogress, fullmoves int) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= int(board.Rank1); r-- {
		blanks := 0
		for f := int(board.FileA); f <= int(board.FileH); f++ {
			sq := board.NewSquare(board.File(f), board.Rank(r))
			piece, color, ok := bp.PieceAt(sq)
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r != int(board.Rank1) {
			sb.WriteString("/")
		}
	}

	turn := printColor(active)
	castling := printCastling(bp.Castling())

	ep := "-"
	if sq, ok := bp.EnPassant(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), turn, castling, ep, noprogress, fullmoves)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling

	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	if c == 0 {
		return "-"
	}

	ret := ""
	if c.IsAllowed(board.WhiteKingSideCastle) {
		ret += "K"
	}
	if c.IsAllowed(board.WhiteQueenSideCastle) {
		ret += "Q"
	}
	if c.IsAllowed(board.BlackKingSideCastle) {
		ret += "k"
	}
	if c.IsAllowed(board.BlackQueenSideCastle) {
		ret += "q"
	}
	return ret
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	switch r {
	case 'P':
		return board.White, board.Pawn, true
	case 'B':
		return board.White, board.Bishop, true
	case 'N':
		return board.White, board.Knight, true
	case 'R':
		return board.White, board.Rook, true
	case 'Q':
		return board.White, board.Queen, true
	case 'K':
		return board.White, board.King, true

	case 'p':
		return board.Black, board.Pawn, true
	case 'b':
		return board.Black, board.Bishop, true
	case 'n':
		return board.Black, board.Knight, true
	case 'r':
		return board.Black, board.Rook, true
	case 'q':
		return board.Black, board.Queen, true
	case 'k':
		return board.Black, board.King, true

	default:
		return 0, 0, false
	}
}

func printPiece(c board.Color, p board.Piece) rune {
	if c == board.White {
		switch p {
		case board.Pawn:
			return 'P'
		case board.Bishop:
			return 'B'
		case board.Knight:
			return 'N'
		case board.Rook:
			return 'R'
		case board.Queen:
			return 'Q'
		case board.King:
			return 'K'
		default:
			return '?'
		}
	}

	switch p {
	case board.Pawn:
		return 'p'
	case board.Bishop:
		return 'b'
	case board.Knight:
		return 'n'
	case board.Rook:
		return 'r'
	case board.Queen:
		return 'q'
	case board.King:
		return 'k'
	default:
		return '?'
	}
}
