package board

// Move is an immutable move record.
//
// A Move is null when its subject color is NoColor; the null Move is the
// single rejection value used across the engine. Captured and Promoted are
// NoPiece unless the matching flag is set.
type Move struct {
	Subject   Piece
	From      Square
	To        Square
	Capture   bool
	Captured  Piece
	Promotion bool
	Promoted  Piece

	// Gain is the search score of the move; NullGain when never scored.
	Gain int
}

// NullMove returns the null Move.
func NullMove() Move {
	return Move{
		From: NoSquare,
		To:   NoSquare,
		Gain: NullGain,
	}
}

// NewMove builds a Move from explicit fields. A non-empty captured piece
// sets the capture flag and a non-empty promoted piece sets the promotion
// flag. Returns the null Move (with gain NullGain) if the result is not
// structurally valid.
func NewMove(subject Piece, from, to Square, captured, promoted Piece, gain int) Move {
	m := Move{
		Subject:   subject,
		From:      from,
		To:        to,
		Capture:   !captured.IsEmpty(),
		Captured:  captured,
		Promotion: !promoted.IsEmpty(),
		Promoted:  promoted,
		Gain:      gain,
	}
	if !m.valid() {
		return NullMove()
	}
	return m
}

// IsNull reports whether m is the null Move.
func (m Move) IsNull() bool {
	return m.Subject.Color == NoColor
}

// valid performs the structural checks shared by decoding and construction.
func (m Move) valid() bool {
	switch {
	case !m.Subject.Color.Valid() || !m.Subject.Type.Valid():
		return false
	case !m.From.Valid() || !m.To.Valid():
		return false
	case m.From == m.To:
		return false
	}

	if m.Capture {
		if !m.Captured.Color.Valid() || !m.Captured.Type.Valid() {
			return false
		}
		if m.Captured.Color == m.Subject.Color {
			return false
		}
	} else if m.Captured != NoPiece {
		return false
	}

	if m.Promotion {
		if m.Subject.Type != Pawn {
			return false
		}
		if m.Promoted.Color != m.Subject.Color {
			return false
		}
		switch m.Promoted.Type {
		case Queen, Rook, Bishop, Knight:
		default:
			return false
		}
	} else if m.Promoted != NoPiece {
		return false
	}

	return true
}

// String returns the notation of the move.
func (m Move) String() string {
	return EncodeMove(m)
}
