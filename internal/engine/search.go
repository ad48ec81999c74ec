package engine

import "github.com/hailam/chessdriver/internal/board"

// PieceMove returns the best-scoring move for the piece on from, or the
// null Move when it has no acceptable destination.
//
// Each destination scores the value of what it captures plus the
// promotion bonus, minus the loss selected by lc. Capturing a king
// returns immediately with MaxGain. Under AllLoss a candidate that lets
// the opponent take a king is dropped. Equal scores replace the current
// best with probability 1/N, N being the number of candidates listed.
func (s *Searcher) PieceMove(b board.Board, from board.Square, lc LossClass) board.Move {
	p := b.At(from)
	if p.IsEmpty() {
		return board.NullMove()
	}

	offsets := candidateOffsets(b, from)
	n := len(offsets)

	best := board.NullMove()
	bestGain := board.NullGain

	for _, off := range offsets {
		to := from.Add(off[0], off[1])
		if !b.CanMove(from, to) {
			continue
		}
		s.nodes++

		target := b.At(to)
		captured := board.NoPiece
		if p.Enemies(target) {
			captured = target
			if target.Type == board.King {
				return board.NewMove(p, from, to, captured, board.NoPiece, board.MaxGain)
			}
		}

		gain := captured.Value()
		promoted := board.NoPiece
		if b.CanPromote(from, to) {
			gain += board.PromotionBonus
			promoted = board.NewPiece(p.Color, board.Queen)
		}

		if lc != NoLoss {
			// Counterplay is judged with the pawn still unpromoted.
			loss := s.loss(b.Apply(from, to, board.NoPiece), to, p, lc)
			if loss >= board.MaxGain {
				continue
			}
			gain -= loss
		}

		if gain > bestGain || (gain == bestGain && s.rng.IntN(n) == 0) {
			bestGain = gain
			best = board.NewMove(p, from, to, captured, promoted, gain)
		}
	}

	return best
}

// SideMove returns the best move for color c across all its pieces,
// each scored with AllLoss. Equal scores replace the current best with
// probability 1/32. The null Move means the side has no move that keeps
// its king.
func (s *Searcher) SideMove(b board.Board, c board.Color) board.Move {
	if !c.Valid() {
		return board.NullMove()
	}
	if s.workers > 1 {
		return s.sideMoveParallel(b, c)
	}

	best := board.NullMove()
	for row := 0; row < board.Size && best.Gain < board.MaxGain; row++ {
		for col := 0; col < board.Size && best.Gain < board.MaxGain; col++ {
			sq := board.Sq(row, col)
			if b.At(sq).Color != c {
				continue
			}
			best = s.preferSide(best, s.PieceMove(b, sq, AllLoss))
		}
	}
	return best
}

// preferSide applies the side-wide replacement rule.
func (s *Searcher) preferSide(best, m board.Move) board.Move {
	if m.Gain > best.Gain || (m.Gain == best.Gain && s.rng.IntN(sideTieBreak) == 0) {
		return m
	}
	return best
}
