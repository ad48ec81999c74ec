package engine

import "github.com/hailam/chessdriver/internal/board"

// offset is a (row, col) displacement.
type offset [2]int

var kingOffsets = []offset{
	{1, -1}, {1, 0}, {1, 1},
	{0, -1}, {0, 1},
	{-1, -1}, {-1, 0}, {-1, 1},
}

var knightOffsets = []offset{
	{2, -1}, {2, 1}, {-2, -1}, {-2, 1},
	{1, -2}, {1, 2}, {-1, -2}, {-1, 2},
}

// Ray pieces list every square up to the board edge along each direction,
// whether or not it is on the board; CanMove filters them.
var (
	rookOffsets   = rays([]offset{{1, 0}, {-1, 0}, {0, 1}, {0, -1}})
	bishopOffsets = rays([]offset{{1, 1}, {1, -1}, {-1, -1}, {-1, 1}})
	queenOffsets  = append(append([]offset{}, rookOffsets...), bishopOffsets...)
)

func rays(dirs []offset) []offset {
	out := make([]offset, 0, len(dirs)*board.Size)
	for _, d := range dirs {
		for i := 1; i <= board.Size; i++ {
			out = append(out, offset{d[0] * i, d[1] * i})
		}
	}
	return out
}

// candidateOffsets returns the displacements considered for the piece on
// from. Its length is the tie-break denominator for that piece.
func candidateOffsets(b board.Board, from board.Square) []offset {
	p := b.At(from)

	switch p.Type {
	case board.King:
		return kingOffsets
	case board.Knight:
		return knightOffsets
	case board.Rook:
		return rookOffsets
	case board.Bishop:
		return bishopOffsets
	case board.Queen:
		return queenOffsets
	case board.Pawn:
		return pawnOffsets(b, from, p)
	default:
		return nil
	}
}

// pawnOffsets: one and two steps forward plus each diagonal that currently
// holds an enemy.
func pawnOffsets(b board.Board, from board.Square, p board.Piece) []offset {
	fwd := p.Color.Forward()
	out := make([]offset, 2, 4)
	out[0] = offset{fwd, 0}
	out[1] = offset{2 * fwd, 0}

	for _, dc := range []int{-1, 1} {
		if p.Enemies(b.At(from.Add(fwd, dc))) {
			out = append(out, offset{fwd, dc})
		}
	}
	return out
}
