package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDecodeMove(t *testing.T) {
	wp := NewPiece(White, Pawn)
	wq := NewPiece(White, Queen)

	tests := []struct {
		name string
		in   string
		want Move
	}{
		{
			name: "quiet",
			in:   "WPe2-e4******",
			want: Move{Subject: wp, From: MustSquare("e2"), To: MustSquare("e4")},
		},
		{
			name: "capture",
			in:   "WQd1-h5xBP***",
			want: Move{Subject: wq, From: MustSquare("d1"), To: MustSquare("h5"),
				Capture: true, Captured: NewPiece(Black, Pawn)},
		},
		{
			name: "promotion",
			in:   "WPa7-a8***yWQ",
			want: Move{Subject: wp, From: MustSquare("a7"), To: MustSquare("a8"),
				Promotion: true, Promoted: wq},
		},
		{
			name: "capture and promotion",
			in:   "BPb2-a1xWRyBN",
			want: Move{Subject: NewPiece(Black, Pawn), From: MustSquare("b2"), To: MustSquare("a1"),
				Capture: true, Captured: NewPiece(White, Rook),
				Promotion: true, Promoted: NewPiece(Black, Knight)},
		},
		{
			name: "padded",
			in:   "WNg1-f3",
			want: Move{Subject: NewPiece(White, Knight), From: MustSquare("g1"), To: MustSquare("f3")},
		},
		{
			name: "promotion in capture slot",
			in:   "WPa7-a8yWQ",
			want: Move{Subject: wp, From: MustSquare("a7"), To: MustSquare("a8"),
				Promotion: true, Promoted: wq},
		},
		{
			name: "whitespace",
			in:   " WP e2 - e3 \t",
			want: Move{Subject: wp, From: MustSquare("e2"), To: MustSquare("e3")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, DecodeMove(tt.in)); diff != "" {
				t.Errorf("DecodeMove(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestDecodeMoveRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too long", "WPe2-e4*******"},
		{"bad color", "XPe2-e4******"},
		{"no color", "*Pe2-e4******"},
		{"bad rank", "WZe2-e4******"},
		{"bad file", "WPi2-e4******"},
		{"bad row", "WPe9-e4******"},
		{"missing dash", "WPe2+e4******"},
		{"same square", "WPe2-e2******"},
		{"short", "WPe2-e"},
		{"garbage effect", "WPe2-e4?*****"},
		{"half empty effect", "WPe2-e4*B****"},
		{"capture own color", "WQd1-h5xWP***"},
		{"capture no color", "WQd1-h5x*P***"},
		{"capture no rank", "WQd1-h5xB****"},
		{"wrong promotion marker", "WPa7-a8***xWQ"},
		{"promote non pawn", "WRa7-a8***yWQ"},
		{"promote to king", "WPa7-a8***yWK"},
		{"promote to pawn", "WPa7-a8***yWP"},
		{"promote to enemy", "WPa7-a8***yBQ"},
		{"capture marker in promotion slot", "WPa7-b8xBRxWQ"},
		{"null notation", NullNotation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeMove(tt.in); !got.IsNull() {
				t.Errorf("DecodeMove(%q) = %v, want null", tt.in, got)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	moves := []Move{
		NewMove(NewPiece(White, Pawn), MustSquare("e2"), MustSquare("e3"), NoPiece, NoPiece, 0),
		NewMove(NewPiece(Black, Queen), MustSquare("d8"), MustSquare("h4"), NewPiece(White, Pawn), NoPiece, 0),
		NewMove(NewPiece(White, Pawn), MustSquare("g7"), MustSquare("h8"), NewPiece(Black, Rook), NewPiece(White, Queen), 0),
		NewMove(NewPiece(Black, King), MustSquare("e8"), MustSquare("f7"), NoPiece, NoPiece, 0),
	}

	for _, m := range moves {
		enc := EncodeMove(m)
		if len(enc) != NotationLength {
			t.Errorf("EncodeMove(%v) has length %d", m, len(enc))
		}
		if diff := cmp.Diff(m, DecodeMove(enc)); diff != "" {
			t.Errorf("round trip of %s mismatch (-want +got):\n%s", enc, diff)
		}
	}
}

func TestEncodeMove(t *testing.T) {
	tests := []struct {
		m    Move
		want string
	}{
		{NullMove(), NullNotation},
		{NewMove(NewPiece(White, Pawn), MustSquare("e2"), MustSquare("e4"), NoPiece, NoPiece, 3), "WPe2-e4******"},
		{NewMove(NewPiece(White, Queen), MustSquare("d1"), MustSquare("h5"), NewPiece(Black, Pawn), NoPiece, 1), "WQd1-h5xBP***"},
		{NewMove(NewPiece(White, Pawn), MustSquare("a7"), MustSquare("a8"), NoPiece, NewPiece(White, Queen), 8), "WPa7-a8***yWQ"},
	}

	for _, tt := range tests {
		if got := EncodeMove(tt.m); got != tt.want {
			t.Errorf("EncodeMove() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewMoveInvalid(t *testing.T) {
	if m := NewMove(NoPiece, MustSquare("e2"), MustSquare("e3"), NoPiece, NoPiece, 0); !m.IsNull() {
		t.Errorf("move without subject = %v, want null", m)
	}
	if m := NewMove(NewPiece(White, Rook), MustSquare("a1"), MustSquare("a8"), NoPiece, NewPiece(White, Queen), 0); !m.IsNull() {
		t.Errorf("rook promotion = %v, want null", m)
	}
	if m := NullMove(); m.Gain != NullGain || m.From != NoSquare {
		t.Errorf("NullMove() = %+v", m)
	}
}
