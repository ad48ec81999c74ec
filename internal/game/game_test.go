package game

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hailam/chessdriver/internal/board"
	"github.com/hailam/chessdriver/internal/engine"
)

func newGame(t *testing.T, human board.Color) *Game {
	t.Helper()
	g, err := New(human, engine.NewSeededSearcher(42))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func gameFrom(t *testing.T, placement string, human board.Color) *Game {
	t.Helper()
	g, err := FromBoard(board.MustParsePlacement(placement), human, human, engine.NewSeededSearcher(42))
	if err != nil {
		t.Fatalf("FromBoard failed: %v", err)
	}
	return g
}

func TestNewGame(t *testing.T) {
	if _, err := New(board.NoColor, nil); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("New(NoColor) error = %v, want ErrInvalidColor", err)
	}

	g := newGame(t, board.Black)
	if g.Human() != board.Black || g.Engine() != board.White || g.Turn() != board.Black {
		t.Errorf("sides: human %v engine %v turn %v", g.Human(), g.Engine(), g.Turn())
	}
	if g.State() != InProgress {
		t.Errorf("State() = %v, want InProgress", g.State())
	}
	if !g.LastMove().IsNull() {
		t.Errorf("LastMove() = %v, want null", g.LastMove())
	}
	if err := g.VerifyKings(); err != nil {
		t.Errorf("VerifyKings() = %v", err)
	}
}

func TestOpeningMove(t *testing.T) {
	g := newGame(t, board.White)
	m := board.DecodeMove("WP e2-e4")

	got := g.ApplyMove(m, true, board.White, true)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Fatalf("ApplyMove mismatch (-want +got):\n%s", diff)
	}

	b := g.Board()
	if b.At(board.MustSquare("e4")) != board.NewPiece(board.White, board.Pawn) || !b.IsEmpty(board.MustSquare("e2")) {
		t.Errorf("board after e2-e4:\n%s", b)
	}
	if g.Turn() != board.Black {
		t.Errorf("Turn() = %v, want Black", g.Turn())
	}
	if diff := cmp.Diff(m, g.LastMove()); diff != "" {
		t.Errorf("LastMove mismatch (-want +got):\n%s", diff)
	}

	// e2 is now empty.
	before := g.Snapshot()
	if got := g.ApplyMove(board.DecodeMove("WP e2-e4"), true, board.White, true); !got.IsNull() {
		t.Errorf("repeated e2-e4 = %v, want null", got)
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("rejected move changed the game (-before +after):\n%s", diff)
	}
}

func TestValidationRejects(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		color    board.Color
	}{
		{"wrong acting color", "WPe2-e3", board.Black},
		{"wrong subject rank", "WNe2-e3", board.White},
		{"illegal geometry", "WNg1-g3", board.White},
		{"own piece in the way", "WRa1-a3", board.White},
		{"phantom capture", "WNg1-f3xBP***", board.White},
		{"phantom promotion", "WPe2-e3***yWQ", board.White},
		{"opponent piece", "BPe7-e6", board.White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGame(t, board.White)
			if got := g.ApplyMove(board.DecodeMove(tt.notation), true, tt.color, true); !got.IsNull() {
				t.Errorf("ApplyMove(%s) = %v, want null", tt.notation, got)
			}
			if g.Board() != board.NewBoard() {
				t.Error("rejected move changed the board")
			}
		})
	}
}

func TestCaptureMustBeDeclared(t *testing.T) {
	g := gameFrom(t, "4k3/8/8/3p4/4P3/8/8/4K3", board.White)

	if got := g.ApplyMove(board.DecodeMove("WPe4-d5"), true, board.White, true); !got.IsNull() {
		t.Errorf("undeclared capture accepted: %v", got)
	}
	if got := g.ApplyMove(board.DecodeMove("WPe4-d5xBN***"), true, board.White, true); !got.IsNull() {
		t.Errorf("capture of the wrong rank accepted: %v", got)
	}
	if got := g.ApplyMove(board.DecodeMove("WPe4-d5xBP***"), true, board.White, true); got.IsNull() {
		t.Fatal("declared capture rejected")
	}
	if got := g.Board().At(board.MustSquare("d5")); got != board.NewPiece(board.White, board.Pawn) {
		t.Errorf("d5 holds %v", got)
	}
}

func TestPromotion(t *testing.T) {
	const placement = "k7/4P3/8/8/8/8/8/K7"

	g := gameFrom(t, placement, board.White)
	if got := g.ApplyMove(board.DecodeMove("WPe7-e8"), true, board.White, true); !got.IsNull() {
		t.Errorf("promotion without marker accepted: %v", got)
	}

	tests := []struct {
		notation string
		want     board.PieceType
	}{
		{"WPe7-e8***yWQ", board.Queen},
		{"WPe7-e8yWQ", board.Queen},
		{"WPe7-e8***yWN", board.Knight},
	}
	for _, tt := range tests {
		g := gameFrom(t, placement, board.White)
		if got := g.ApplyMove(board.DecodeMove(tt.notation), true, board.White, true); got.IsNull() {
			t.Errorf("ApplyMove(%s) rejected", tt.notation)
			continue
		}
		if got := g.Board().At(board.MustSquare("e8")); got != board.NewPiece(board.White, tt.want) {
			t.Errorf("%s: e8 holds %v, want white %v", tt.notation, got, tt.want)
		}
	}

	// The new queen checks along the back rank.
	g = gameFrom(t, placement, board.White)
	g.ApplyMove(board.DecodeMove("WPe7-e8***yWQ"), true, board.White, true)
	if check, c := g.Check(); !check || c != board.Black {
		t.Errorf("Check() = %v, %v, want true, Black", check, c)
	}
	if mate, _ := g.Checkmate(); mate {
		t.Error("king on a8 can still step to a7")
	}
}

func TestNullMoveIsNoOp(t *testing.T) {
	g := newGame(t, board.White)
	g.ApplyMove(board.DecodeMove("WPd2-d3"), true, board.White, true)
	before := g.Snapshot()

	if got := g.ApplyMove(board.NullMove(), true, board.White, true); !got.IsNull() {
		t.Errorf("ApplyMove(null) = %v", got)
	}
	if got := g.ApplyMove(board.NullMove(), false, board.Black, false); !got.IsNull() {
		t.Errorf("ApplyMove(null) without validation = %v", got)
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("null move changed the game (-before +after):\n%s", diff)
	}
}

func TestSelfCheck(t *testing.T) {
	// The rook on e2 is pinned against the king by the rook on e8.
	const placement = "4r2k/8/8/8/8/8/4R3/4K3"
	m := board.DecodeMove("WRe2-d2")

	g := gameFrom(t, placement, board.White)
	before := g.Snapshot()
	if got := g.ApplyMove(m, true, board.White, true); !got.IsNull() {
		t.Errorf("self-check accepted: %v", got)
	}
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("rejected self-check changed the game (-before +after):\n%s", diff)
	}

	g = gameFrom(t, placement, board.White)
	if got := g.ApplyMove(m, false, board.White, true); got.IsNull() {
		t.Fatal("self-check rejected with the policy off")
	}
	want := Status{Check: true, CheckedColor: board.White, Checkmate: true, CheckmatedColor: board.White}
	if diff := cmp.Diff(want, g.Status()); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
	if g.State() != Over {
		t.Errorf("State() = %v, want Over", g.State())
	}
}

func TestCheckmate(t *testing.T) {
	g := gameFrom(t, "7k/8/6K1/8/8/8/8/R7", board.White)

	if got := g.ApplyMove(board.DecodeMove("WRa1-a8"), true, board.White, true); got.IsNull() {
		t.Fatal("mating move rejected")
	}
	want := Status{Check: true, CheckedColor: board.Black, Checkmate: true, CheckmatedColor: board.Black}
	if diff := cmp.Diff(want, g.Status()); diff != "" {
		t.Errorf("status mismatch (-want +got):\n%s", diff)
	}
	if g.State() != Over {
		t.Errorf("State() = %v, want Over", g.State())
	}
}

func TestLoneKingHasNoMove(t *testing.T) {
	g := gameFrom(t, "7k/6Q1/6K1/8/8/8/8/8", board.White)
	before := g.Board()

	m := g.PickSideMove(board.Black)
	if !m.IsNull() || m.Gain != board.NullGain {
		t.Errorf("PickSideMove(Black) = %v gain %d, want null", m, m.Gain)
	}
	if g.Board() != before {
		t.Error("PickSideMove changed the board")
	}
}

func TestKingCache(t *testing.T) {
	g := gameFrom(t, "4k3/8/8/8/8/8/8/4K3", board.White)

	if got := g.ApplyMove(board.DecodeMove("WKe1-d2"), true, board.White, true); got.IsNull() {
		t.Fatal("king move rejected")
	}
	if got := g.KingSquare(board.White); got != board.MustSquare("d2") {
		t.Errorf("KingSquare(White) = %v, want d2", got)
	}
	if got := g.KingSquare(board.NoColor); got != board.NoSquare {
		t.Errorf("KingSquare(NoColor) = %v", got)
	}
	if err := g.VerifyKings(); err != nil {
		t.Errorf("VerifyKings() = %v", err)
	}
	if got, want := g.KingSquare(board.White), g.Board().FindKing(board.White); got != want {
		t.Errorf("cached %v, scanned %v", got, want)
	}
}

func TestEngineMove(t *testing.T) {
	g := newGame(t, board.White)
	g.ApplyMove(board.DecodeMove("WPe2-e4"), true, board.White, true)

	m := g.PlayEngineMove()
	if m.IsNull() || m.Subject.Color != board.Black {
		t.Fatalf("PlayEngineMove() = %v", m)
	}
	if g.Board().At(m.To).Color != board.Black {
		t.Errorf("engine move %v not on the board", m)
	}
	if g.Turn() != board.White {
		t.Errorf("Turn() = %v, want White", g.Turn())
	}
	if err := g.VerifyKings(); err != nil {
		t.Errorf("VerifyKings() = %v", err)
	}
}

func TestSnapshotRestore(t *testing.T) {
	g := newGame(t, board.White)
	g.ApplyMove(board.DecodeMove("WPe2-e4"), true, board.White, true)
	g.ApplyMove(board.DecodeMove("BPd7-d5"), true, board.Black, true)
	g.ApplyMove(board.DecodeMove("WPe4-d5xBP***"), true, board.White, true)

	data, err := json.Marshal(g.Snapshot())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	restored, err := Restore(snap, nil)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if diff := cmp.Diff(g.Snapshot(), restored.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRestoreRejectsBadKings(t *testing.T) {
	snap := newGame(t, board.White).Snapshot()
	snap.WhiteKing = board.MustSquare("d1")

	if _, err := Restore(snap, nil); !errors.Is(err, ErrInconsistentSnapshot) {
		t.Errorf("Restore error = %v, want ErrInconsistentSnapshot", err)
	}

	snap.Human = board.NoColor
	if _, err := Restore(snap, nil); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("Restore error = %v, want ErrInvalidColor", err)
	}

	if _, err := FromBoard(board.MustParsePlacement("8/8/8/8/8/8/8/4K3"), board.White, board.White, nil); !errors.Is(err, ErrInconsistentSnapshot) {
		t.Errorf("FromBoard without a black king error = %v", err)
	}
}
