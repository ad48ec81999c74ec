package board

import "strings"

// Move notation layout, one byte per token:
//
//	0 subject color   1 subject rank
//	2 from file       3 from rank
//	4 '-'
//	5 to file         6 to rank
//	7 capture marker  8 captured color   9 captured rank
//	10 promotion marker 11 promoted color 12 promoted rank
//
// Absent effects are written as '*' in all three of their slots,
// e.g. "WPe2-e4******" or "WQd1-h5xBP***" or "WPa7-a8***yWQ".
const NotationLength = 13

// Notation tokens.
const (
	MovementMark  = '-'
	NoEffectMark  = '*'
	CaptureMark   = 'x'
	PromotionMark = 'y'
)

const (
	captureSlot   = 7
	promotionSlot = 10
)

// moveTemplate pads short input. Board coordinates in the template are
// deliberately invalid so a truncated move never decodes.
const moveTemplate = "****-********"

// NullNotation is the encoding of the null Move.
const NullNotation = moveTemplate

// DecodeMove parses a move notation. Whitespace is ignored and input
// shorter than NotationLength is padded with "no effect" tokens.
// Any structural violation yields the null Move; a decoded Move has gain 0.
func DecodeMove(s string) Move {
	s = strings.Join(strings.Fields(s), "")
	if len(s) > NotationLength {
		return NullMove()
	}

	var n [NotationLength]byte
	copy(n[:], moveTemplate)
	copy(n[:], s)

	// A promotion written in the capture slot is moved to its own slot.
	if n[captureSlot] == PromotionMark {
		copy(n[promotionSlot:], n[captureSlot:captureSlot+3])
		n[captureSlot], n[captureSlot+1], n[captureSlot+2] = NoEffectMark, NoEffectMark, NoEffectMark
	}

	if n[4] != MovementMark {
		return NullMove()
	}

	from, ok := SquareFromChars(n[2], n[3])
	if !ok {
		return NullMove()
	}
	to, ok := SquareFromChars(n[5], n[6])
	if !ok {
		return NullMove()
	}

	m := Move{
		Subject: Piece{Color: ColorFromChar(n[0]), Type: PieceTypeFromChar(n[1])},
		From:    from,
		To:      to,
	}

	captured, capture, ok := decodeEffect(n[captureSlot:captureSlot+3], CaptureMark)
	if !ok {
		return NullMove()
	}
	m.Capture, m.Captured = capture, captured

	promoted, promotion, ok := decodeEffect(n[promotionSlot:promotionSlot+3], PromotionMark)
	if !ok {
		return NullMove()
	}
	m.Promotion, m.Promoted = promotion, promoted

	if !m.valid() {
		return NullMove()
	}
	return m
}

// decodeEffect reads a marker/color/rank triple. The returned piece keeps
// unknown codes as NoColor/NoPieceType so validation can reject them.
func decodeEffect(tok []byte, mark byte) (Piece, bool, bool) {
	switch tok[0] {
	case NoEffectMark:
		if tok[1] != NoColorChar || tok[2] != NoPieceTypeChar {
			return NoPiece, false, false
		}
		return NoPiece, false, true
	case mark:
		p := Piece{Color: ColorFromChar(tok[1]), Type: PieceTypeFromChar(tok[2])}
		return p, true, true
	default:
		return NoPiece, false, false
	}
}

// EncodeMove returns the fixed-width notation of m. It never fails; the
// null Move encodes as NullNotation.
func EncodeMove(m Move) string {
	if m.IsNull() || !m.From.Valid() || !m.To.Valid() {
		return NullNotation
	}

	var n [NotationLength]byte
	copy(n[:], moveTemplate)

	n[0] = m.Subject.Color.Char()
	n[1] = m.Subject.Type.Char()
	n[2] = m.From.FileChar()
	n[3] = m.From.RankChar()
	n[4] = MovementMark
	n[5] = m.To.FileChar()
	n[6] = m.To.RankChar()
	if m.Capture {
		n[captureSlot] = CaptureMark
		n[captureSlot+1] = m.Captured.Color.Char()
		n[captureSlot+2] = m.Captured.Type.Char()
	}
	if m.Promotion {
		n[promotionSlot] = PromotionMark
		n[promotionSlot+1] = m.Promoted.Color.Char()
		n[promotionSlot+2] = m.Promoted.Type.Char()
	}

	return string(n[:])
}
