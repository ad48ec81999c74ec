// Package board implements the 8x8 chess board, the move notation codec
// and the per-piece legality rules.
package board

import "fmt"

// Size is the number of rows and columns on the board.
const Size = 8

// Notation anchors: row 0 is rank '8', column 0 is file 'a'.
const (
	firstRankChar = '8'
	firstFileChar = 'a'
)

// Square addresses a board cell by row and column.
// Row 0 is rank 8 (black's back rank), column 0 is file a.
type Square struct {
	Row int
	Col int
}

// NoSquare is the null coordinate.
var NoSquare = Square{Row: -1, Col: -1}

// Sq is shorthand for Square{row, col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// Valid reports whether the square is on the board.
func (sq Square) Valid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// Add returns the square offset by dr rows and dc columns.
// The result may be off the board.
func (sq Square) Add(dr, dc int) Square {
	return Square{Row: sq.Row + dr, Col: sq.Col + dc}
}

// FileChar returns the file letter of the square.
func (sq Square) FileChar() byte {
	return byte(firstFileChar + sq.Col)
}

// RankChar returns the rank digit of the square.
func (sq Square) RankChar() byte {
	return byte(firstRankChar - sq.Row)
}

// String returns the algebraic notation for the square (e.g., "e4").
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return string([]byte{sq.FileChar(), sq.RankChar()})
}

// validFileChar and validRankChar check notation alphabets.
func validFileChar(ch byte) bool {
	return ch >= firstFileChar && ch < firstFileChar+Size
}

func validRankChar(ch byte) bool {
	return ch <= firstRankChar && ch > firstRankChar-Size
}

// SquareFromChars converts a file letter and rank digit to a Square.
func SquareFromChars(file, rank byte) (Square, bool) {
	if !validFileChar(file) || !validRankChar(rank) {
		return NoSquare, false
	}
	return Square{Row: int(firstRankChar - rank), Col: int(file - firstFileChar)}, true
}

// ParseSquare parses algebraic notation (e.g., "e4") into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}
	sq, ok := SquareFromChars(s[0], s[1])
	if !ok {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}
	return sq, nil
}

// MustSquare is like ParseSquare but panics on bad input.
// Intended for constants and tests.
func MustSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}
