package board

import "fmt"

// MarshalText encodes the color as its notation code.
func (c Color) MarshalText() ([]byte, error) {
	return []byte{c.Char()}, nil
}

// UnmarshalText decodes a notation code. "*" decodes to NoColor.
func (c *Color) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return fmt.Errorf("invalid color: %q", text)
	}
	parsed := ColorFromChar(text[0])
	if parsed == NoColor && text[0] != NoColorChar {
		return fmt.Errorf("invalid color: %q", text)
	}
	*c = parsed
	return nil
}

// MarshalText encodes the square in algebraic notation, "-" when off-board.
func (sq Square) MarshalText() ([]byte, error) {
	return []byte(sq.String()), nil
}

// UnmarshalText decodes algebraic notation or "-".
func (sq *Square) UnmarshalText(text []byte) error {
	if string(text) == "-" {
		*sq = NoSquare
		return nil
	}
	parsed, err := ParseSquare(string(text))
	if err != nil {
		return err
	}
	*sq = parsed
	return nil
}

// MarshalText encodes the move as its notation. The gain is not kept.
func (m Move) MarshalText() ([]byte, error) {
	return []byte(EncodeMove(m)), nil
}

// UnmarshalText decodes a notation; the null notation yields the null Move.
func (m *Move) UnmarshalText(text []byte) error {
	if string(text) == NullNotation {
		*m = NullMove()
		return nil
	}
	decoded := DecodeMove(string(text))
	if decoded.IsNull() {
		return fmt.Errorf("invalid move notation: %q", text)
	}
	*m = decoded
	return nil
}
