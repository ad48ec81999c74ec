package board

// Color represents the color of a piece or player.
// The zero value is NoColor so an empty Board needs no initialization.
type Color uint8

const (
	NoColor Color = iota
	White
	Black
)

// Color codes used by the move notation and board rendering.
const (
	NoColorChar = '*'
	WhiteChar   = 'W'
	BlackChar   = 'B'
)

// Valid reports whether c is White or Black.
func (c Color) Valid() bool {
	return c == White || c == Black
}

// Other returns the opposite color. NoColor has no opposite.
func (c Color) Other() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}

// Forward returns the row step a pawn of this color advances by.
// White moves toward row 0, Black toward row 7.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PawnRow returns the row this color's pawns start on.
func (c Color) PawnRow() int {
	if c == White {
		return Size - 2
	}
	return 1
}

// PromotionRow returns the row on which a pawn of this color promotes.
func (c Color) PromotionRow() int {
	if c == White {
		return 0
	}
	return Size - 1
}

// Char returns the single-character notation code for the color.
func (c Color) Char() byte {
	switch c {
	case White:
		return WhiteChar
	case Black:
		return BlackChar
	default:
		return NoColorChar
	}
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// ColorFromChar converts a notation code to a Color.
func ColorFromChar(ch byte) Color {
	switch ch {
	case WhiteChar:
		return White
	case BlackChar:
		return Black
	default:
		return NoColor
	}
}

// PieceType represents the rank of a chess piece (king, queen, ...).
type PieceType uint8

const (
	NoPieceType PieceType = iota
	King
	Queen
	Bishop
	Knight
	Rook
	Pawn
)

// NoPieceTypeChar is the notation code for "no rank".
const NoPieceTypeChar = '*'

// Valid reports whether pt names one of the six ranks.
func (pt PieceType) Valid() bool {
	return pt >= King && pt <= Pawn
}

// String returns the piece type name.
func (pt PieceType) String() string {
	switch pt {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Char returns the notation code for the piece type (uppercase).
func (pt PieceType) Char() byte {
	chars := []byte{NoPieceTypeChar, 'K', 'Q', 'B', 'N', 'R', 'P'}
	if pt > Pawn {
		return NoPieceTypeChar
	}
	return chars[pt]
}

// PieceTypeFromChar converts an uppercase notation code to a PieceType.
func PieceTypeFromChar(ch byte) PieceType {
	switch ch {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'B':
		return Bishop
	case 'N':
		return Knight
	case 'R':
		return Rook
	case 'P':
		return Pawn
	default:
		return NoPieceType
	}
}

// Material values used for move scoring.
const (
	QueenValue  = 9
	RookValue   = 5
	BishopValue = 3
	KnightValue = 3
	PawnValue   = 1

	// KingValue dominates any sum of other captures.
	KingValue = (QueenValue + BishopValue + KnightValue + RookValue + PawnValue) * 32

	// MaxGain is the score of a move that captures a king.
	MaxGain = KingValue
	// NullGain marks a move that was never found or considered.
	NullGain = -KingValue

	// PromotionBonus is added when a pawn reaches its promotion row.
	// Promotion always selects a queen.
	PromotionBonus = QueenValue - PawnValue
)

// PieceValue returns the material value of the piece type.
var PieceValue = [7]int{0, KingValue, QueenValue, BishopValue, KnightValue, RookValue, PawnValue}

// Value returns the material value of the piece type.
func (pt PieceType) Value() int {
	if pt > Pawn {
		return 0
	}
	return PieceValue[pt]
}

// Piece is an immutable color/rank pair occupying a board cell.
// Invariant: Color == NoColor if and only if Type == NoPieceType.
type Piece struct {
	Color Color
	Type  PieceType
}

// NoPiece is the empty cell.
var NoPiece = Piece{}

// NewPiece creates a Piece, or NoPiece if either half is invalid.
func NewPiece(c Color, pt PieceType) Piece {
	if !c.Valid() || !pt.Valid() {
		return NoPiece
	}
	return Piece{Color: c, Type: pt}
}

// IsEmpty reports whether the cell holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Color == NoColor
}

// Value returns the material value of the piece.
func (p Piece) Value() int {
	return p.Type.Value()
}

// Enemies reports whether both pieces exist and differ in color.
func (p Piece) Enemies(other Piece) bool {
	return p.Color.Valid() && other.Color.Valid() && p.Color != other.Color
}

// String returns the two-character code for the piece, e.g. "WQ" or "**".
func (p Piece) String() string {
	return string([]byte{p.Color.Char(), p.Type.Char()})
}

// FENChar returns the FEN letter for the piece: uppercase for white,
// lowercase for black, 0 for an empty cell.
func (p Piece) FENChar() byte {
	if p.IsEmpty() {
		return 0
	}
	ch := p.Type.Char()
	if p.Color == Black {
		ch += 'a' - 'A'
	}
	return ch
}

// PieceFromFENChar converts a FEN letter to a Piece.
func PieceFromFENChar(ch byte) Piece {
	if ch >= 'a' && ch <= 'z' {
		return NewPiece(Black, PieceTypeFromChar(ch-('a'-'A')))
	}
	return NewPiece(White, PieceTypeFromChar(ch))
}
