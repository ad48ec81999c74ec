package board

import "strings"

// Board is the 8x8 grid of cells indexed [row][col].
// It is a value type: every mutation returns a new Board, so a
// provisional move is just a copy that is dropped when no longer needed.
type Board [Size][Size]Piece

// backRank lists the back-rank piece types from file a to file h.
var backRank = [Size]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
// Black occupies rows 0-1, white rows 6-7.
func NewBoard() Board {
	var b Board
	for col := 0; col < Size; col++ {
		b[0][col] = NewPiece(Black, backRank[col])
		b[1][col] = NewPiece(Black, Pawn)
		b[Size-2][col] = NewPiece(White, Pawn)
		b[Size-1][col] = NewPiece(White, backRank[col])
	}
	return b
}

// StartKingSquare returns the king square of the starting position.
func StartKingSquare(c Color) Square {
	if c == White {
		return Square{Row: Size - 1, Col: 4}
	}
	return Square{Row: 0, Col: 4}
}

// At returns the piece on sq, or NoPiece when sq is off the board.
func (b Board) At(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b[sq.Row][sq.Col]
}

// IsEmpty reports whether sq is an empty on-board cell.
func (b Board) IsEmpty(sq Square) bool {
	return sq.Valid() && b[sq.Row][sq.Col].IsEmpty()
}

// With returns a copy of the board with p placed on sq.
// Off-board squares leave the board unchanged.
func (b Board) With(sq Square, p Piece) Board {
	if sq.Valid() {
		b[sq.Row][sq.Col] = p
	}
	return b
}

// Apply returns the board after moving the piece on from to to.
// The destination is overwritten (capturing whatever stood there) and,
// when promoted is not empty, replaced by the promoted piece.
func (b Board) Apply(from, to Square, promoted Piece) Board {
	if !from.Valid() || !to.Valid() {
		return b
	}
	moving := b[from.Row][from.Col]
	b[from.Row][from.Col] = NoPiece
	if !promoted.IsEmpty() {
		moving = promoted
	}
	b[to.Row][to.Col] = moving
	return b
}

// FindKing scans for the king of color c.
// Returns NoSquare if there is none.
func (b Board) FindKing(c Color) Square {
	king := NewPiece(c, King)
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col] == king {
				return Square{Row: row, Col: col}
			}
		}
	}
	return NoSquare
}

// Count returns the number of pieces of color c.
func (b Board) Count(c Color) int {
	n := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col].Color == c {
				n++
			}
		}
	}
	return n
}

// String renders the board as a grid of two-character cells,
// rank 8 at the top.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n   ")
	for col := 0; col < Size; col++ {
		sb.WriteString(" ")
		sb.WriteByte(Square{Col: col}.FileChar())
		sb.WriteString("   ")
	}
	sb.WriteString("\n")
	for row := 0; row < Size; row++ {
		sb.WriteByte(Square{Row: row}.RankChar())
		sb.WriteString(" |")
		for col := 0; col < Size; col++ {
			sb.WriteString(" ")
			sb.WriteString(b[row][col].String())
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
