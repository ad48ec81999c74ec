package board

// CanMove reports whether the piece on from may move to to. Out-of-range
// squares, empty origins and allied destinations are always rejected.
func (b Board) CanMove(from, to Square) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	p := b[from.Row][from.Col]
	if p.IsEmpty() || b[to.Row][to.Col].Color == p.Color {
		return false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col

	switch p.Type {
	case King:
		return dr*dr <= 1 && dc*dc <= 1
	case Knight:
		return (dr*dr == 4 && dc*dc == 1) || (dr*dr == 1 && dc*dc == 4)
	case Rook:
		return b.straightClear(from, to)
	case Bishop:
		return b.diagonalClear(from, to)
	case Queen:
		return b.straightClear(from, to) || b.diagonalClear(from, to)
	case Pawn:
		fwd := p.Color.Forward()
		if dc == 0 && b[to.Row][to.Col].IsEmpty() {
			if dr == fwd {
				return true
			}
			// Two squares from the starting row, both empty.
			if dr == 2*fwd && from.Row == p.Color.PawnRow() && b[from.Row+fwd][from.Col].IsEmpty() {
				return true
			}
		}
		return b.pawnCanCapture(from, to)
	default:
		return false
	}
}

// CanCapture reports whether the piece on from could take whatever stands
// on to. For every rank but the pawn this is the same as CanMove.
func (b Board) CanCapture(from, to Square) bool {
	if b.At(from).Type == Pawn {
		return b.pawnCanCapture(from, to)
	}
	return b.CanMove(from, to)
}

// pawnCanCapture: one step forward and one file sideways onto an enemy.
func (b Board) pawnCanCapture(from, to Square) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	p := b[from.Row][from.Col]
	if !p.Enemies(b[to.Row][to.Col]) {
		return false
	}
	dr, dc := to.Row-from.Row, to.Col-from.Col
	return dr == p.Color.Forward() && dc*dc == 1
}

// CanPromote reports whether moving the piece on from to to would promote
// it, i.e. it is a pawn arriving on its far row.
func (b Board) CanPromote(from, to Square) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	p := b[from.Row][from.Col]
	return p.Type == Pawn && to.Row == p.Color.PromotionRow()
}

// AttackedBy reports whether any piece of color by can capture on sq.
func (b Board) AttackedBy(sq Square, by Color) bool {
	if !sq.Valid() || !by.Valid() {
		return false
	}
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col].Color != by {
				continue
			}
			if b.CanCapture(Square{Row: row, Col: col}, sq) {
				return true
			}
		}
	}
	return false
}

// Attacked reports whether an enemy of the piece on sq can capture it.
// An empty square is never attacked.
func (b Board) Attacked(sq Square) bool {
	p := b.At(sq)
	if p.IsEmpty() {
		return false
	}
	return b.AttackedBy(sq, p.Color.Other())
}
