package board

// straightClear reports whether from and to share exactly one of row or
// column and every square strictly between them is empty.
func (b Board) straightClear(from, to Square) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if (from.Row != to.Row) == (from.Col != to.Col) {
		return false
	}
	return b.rayClear(from, to)
}

// diagonalClear reports whether from and to lie on a common diagonal and
// every square strictly between them is empty.
func (b Board) diagonalClear(from, to Square) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	if abs(to.Row-from.Row) != abs(to.Col-from.Col) {
		return false
	}
	return b.rayClear(from, to)
}

// rayClear walks the interior of a straight or diagonal line. Endpoints
// are never inspected.
func (b Board) rayClear(from, to Square) bool {
	dr := sign(to.Row - from.Row)
	dc := sign(to.Col - from.Col)

	for sq := from.Add(dr, dc); sq != to; sq = sq.Add(dr, dc) {
		if !b[sq.Row][sq.Col].IsEmpty() {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
