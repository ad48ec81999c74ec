package storage

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/hailam/chessdriver/internal/board"
	"github.com/hailam/chessdriver/internal/engine"
	"github.com/hailam/chessdriver/internal/game"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory(nil)
	if err != nil {
		t.Fatalf("OpenInMemory failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	s := openTestStorage(t)

	g, err := game.New(board.White, engine.NewSeededSearcher(1))
	if err != nil {
		t.Fatalf("game.New failed: %v", err)
	}
	if g.ApplyMove(board.DecodeMove("WPe2-e3"), true, board.White, true).IsNull() {
		t.Fatal("opening move rejected")
	}
	snap := g.Snapshot()

	want := SessionRecord{
		Game:        &snap,
		Started:     true,
		PlayerTurn:  false,
		Plies:       1,
		NoSelfCheck: true,
	}
	if err := s.SaveSession("abc", want); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	got, err := s.LoadSession("abc")
	if err != nil {
		t.Fatalf("LoadSession failed: %v", err)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(SessionRecord{}, "UpdatedAt")); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionNotFound(t *testing.T) {
	s := openTestStorage(t)

	if _, err := s.LoadSession("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadSession(missing) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteSession(t *testing.T) {
	s := openTestStorage(t)

	for _, id := range []string{"one", "two"} {
		if err := s.SaveSession(id, SessionRecord{}); err != nil {
			t.Fatalf("SaveSession(%s) failed: %v", id, err)
		}
	}
	if err := s.DeleteSession("one"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}

	if _, err := s.LoadSession("one"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted session still loads, err = %v", err)
	}
	ids, err := s.SessionIDs()
	if err != nil {
		t.Fatalf("SessionIDs failed: %v", err)
	}
	if diff := cmp.Diff([]string{"two"}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordResult(t *testing.T) {
	s := openTestStorage(t)

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.GamesPlayed != 0 || stats.HumanWinRate() != 0 {
		t.Errorf("fresh stats = %+v, want zero", stats)
	}

	results := []GameResult{
		{Human: board.White, Winner: board.White, Plies: 12},
		{Human: board.Black, Winner: board.White, Resigned: true, Plies: 3},
		{Human: board.Black, Winner: board.White, Plies: 40},
		{Human: board.White, Winner: board.White, Plies: 7},
	}
	for _, r := range results {
		if err := s.RecordResult(r); err != nil {
			t.Fatalf("RecordResult failed: %v", err)
		}
	}

	got, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	want := &GameStats{
		GamesPlayed:  4,
		HumanWins:    2,
		EngineWins:   2,
		Resignations: 1,
		TotalPlies:   62,
		LongestGame:  40,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if rate := got.HumanWinRate(); rate != 50 {
		t.Errorf("HumanWinRate() = %.2f, want 50", rate)
	}
}

func TestOpenOnDisk(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, nil)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := s.RecordResult(GameResult{Human: board.White, Winner: board.Black}); err != nil {
		t.Fatalf("RecordResult failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	s, err = Open(dir, nil)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats failed: %v", err)
	}
	if stats.GamesPlayed != 1 || stats.EngineWins != 1 {
		t.Errorf("stats after reopen = %+v", stats)
	}
}

func TestDataPaths(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("XDG_DATA_HOME is only honored on unix-like systems")
	}
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if want := filepath.Join(base, appName, "db"); dbDir != want {
		t.Errorf("GetDatabaseDir() = %q, want %q", dbDir, want)
	}
	if _, err := os.Stat(dbDir); err != nil {
		t.Errorf("database directory was not created: %v", err)
	}
}
