package engine

import "github.com/hailam/chessdriver/internal/board"

// loss charges a provisional position for the counterplay it allows.
// next is the board after the candidate, to its destination and mover the
// moving piece.
func (s *Searcher) loss(next board.Board, to board.Square, mover board.Piece, lc LossClass) int {
	switch lc {
	case SelfLoss:
		if next.Attacked(to) {
			return mover.Value()
		}
		return 0
	case AllLoss:
		return s.calcLoss(next, mover.Color)
	default:
		return 0
	}
}

// calcLoss returns the largest gain any single enemy of target could make
// with one reply. Replies are scored with NoLoss, so the lookahead is one
// ply deep. Returns 0 when no enemy gains anything.
func (s *Searcher) calcLoss(b board.Board, target board.Color) int {
	enemyGain := 0
	for row := 0; row < board.Size && enemyGain < board.MaxGain; row++ {
		for col := 0; col < board.Size && enemyGain < board.MaxGain; col++ {
			sq := board.Sq(row, col)
			c := b.At(sq).Color
			if c == board.NoColor || c == target {
				continue
			}
			if g := s.PieceMove(b, sq, NoLoss).Gain; g > enemyGain {
				enemyGain = g
			}
		}
	}
	return enemyGain
}

// Material returns white's material minus black's, kings excluded.
func Material(b board.Board) int {
	total := 0
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			p := b[row][col]
			if p.Type == board.King {
				continue
			}
			switch p.Color {
			case board.White:
				total += p.Value()
			case board.Black:
				total -= p.Value()
			}
		}
	}
	return total
}
