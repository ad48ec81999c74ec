package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartPlacement is the FEN piece-placement field of the starting position.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"

// ParsePlacement parses a FEN piece-placement field into a Board.
// Only the first whitespace-separated field is read; side to move,
// castling and en passant fields are ignored since the rules here have
// no use for them.
func ParsePlacement(fen string) (Board, error) {
	var b Board

	parts := strings.Fields(fen)
	if len(parts) == 0 {
		return b, fmt.Errorf("invalid FEN: empty")
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != Size {
		return b, fmt.Errorf("invalid piece placement: need %d ranks, got %d", Size, len(ranks))
	}

	// FEN starts from rank 8, which is row 0.
	for row, rankStr := range ranks {
		col := 0
		for i := 0; i < len(rankStr); i++ {
			c := rankStr[i]
			if col >= Size {
				return b, fmt.Errorf("too many squares in rank %c", Square{Row: row}.RankChar())
			}

			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			piece := PieceFromFENChar(c)
			if piece.IsEmpty() {
				return b, fmt.Errorf("invalid piece character: %c", c)
			}
			b[row][col] = piece
			col++
		}

		if col != Size {
			return b, fmt.Errorf("invalid number of squares in rank %c: got %d", Square{Row: row}.RankChar(), col)
		}
	}

	return b, nil
}

// MustParsePlacement is like ParsePlacement but panics on error.
// Intended for tests and fixed positions.
func MustParsePlacement(fen string) Board {
	b, err := ParsePlacement(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// Placement returns the FEN piece-placement field of the board.
func (b Board) Placement() string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		empty := 0
		for col := 0; col < Size; col++ {
			piece := b[row][col]
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(piece.FENChar())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < Size-1 {
			sb.WriteByte('/')
		}
	}

	return sb.String()
}

// MarshalText encodes the board as its FEN placement.
func (b Board) MarshalText() ([]byte, error) {
	return []byte(b.Placement()), nil
}

// UnmarshalText decodes a FEN placement.
func (b *Board) UnmarshalText(text []byte) error {
	parsed, err := ParsePlacement(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
