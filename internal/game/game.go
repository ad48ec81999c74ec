// Package game owns a board and applies moves to it, deriving check and
// checkmate after every accepted move.
package game

import (
	"errors"

	"github.com/hailam/chessdriver/internal/board"
	"github.com/hailam/chessdriver/internal/engine"
)

var (
	// ErrInvalidColor is returned for a side that is neither white nor black.
	ErrInvalidColor = errors.New("invalid color")
	// ErrInconsistentSnapshot is returned when a snapshot's cached king
	// squares do not match its board.
	ErrInconsistentSnapshot = errors.New("inconsistent snapshot")
)

// State is the lifecycle phase of a game.
type State uint8

const (
	NotStarted State = iota
	InProgress
	Over
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case InProgress:
		return "InProgress"
	case Over:
		return "Over"
	default:
		return "NotStarted"
	}
}

// Status is the check/checkmate outcome derived after a move.
type Status struct {
	Check           bool
	CheckedColor    board.Color
	Checkmate       bool
	CheckmatedColor board.Color
}

// Game is a single game between a human side and an engine side.
// Only ApplyMove mutates it.
type Game struct {
	board    board.Board
	lastMove board.Move
	status   Status

	// kings caches each side's king square, indexed by color.
	kings [3]board.Square

	human  board.Color
	engine board.Color
	turn   board.Color

	searcher *engine.Searcher
}

// New starts a game from the standard position. The human plays color
// human and moves first. A nil searcher gets a time-seeded one.
func New(human board.Color, searcher *engine.Searcher) (*Game, error) {
	if !human.Valid() {
		return nil, ErrInvalidColor
	}
	if searcher == nil {
		searcher = engine.NewSearcher(nil)
	}

	g := &Game{
		board:    board.NewBoard(),
		lastMove: board.NullMove(),
		human:    human,
		engine:   human.Other(),
		turn:     human,
		searcher: searcher,
	}
	g.kings[board.White] = board.StartKingSquare(board.White)
	g.kings[board.Black] = board.StartKingSquare(board.Black)
	return g, nil
}

// ApplyMove plays m for color and returns it, or returns the null Move
// when it is rejected. Nothing changes on rejection.
//
// With validate set, m is checked against the live board: the pieces it
// names must be where it says, the piece must be able to make the move,
// and its capture and promotion flags must match what the move actually
// does. With noSelfCheck set a move leaving the mover's king capturable
// is rejected; otherwise it is recorded as the mover being checkmated.
func (g *Game) ApplyMove(m board.Move, noSelfCheck bool, color board.Color, validate bool) board.Move {
	if m.IsNull() || m.Subject.Color != color {
		return board.NullMove()
	}
	if validate && !g.legal(m) {
		return board.NullMove()
	}

	promoted := board.NoPiece
	if m.Promotion {
		promoted = m.Promoted
	}
	next := g.board.Apply(m.From, m.To, promoted)

	kings := g.kings
	if m.Subject.Type == board.King {
		kings[color] = m.To
	}

	status, ok := g.deriveStatus(next, kings, color, noSelfCheck)
	if !ok {
		return board.NullMove()
	}

	g.board = next
	g.kings = kings
	g.status = status
	g.lastMove = m
	g.turn = color.Other()
	return m
}

// legal re-derives m from the live board.
func (g *Game) legal(m board.Move) bool {
	origin := g.board.At(m.From)
	dest := g.board.At(m.To)

	if origin.Color != m.Subject.Color || origin.Type != m.Subject.Type {
		return false
	}
	if dest.Type != m.Captured.Type {
		return false
	}
	if !g.board.CanMove(m.From, m.To) {
		return false
	}

	mustCapture := origin.Enemies(dest) && g.board.CanCapture(m.From, m.To)
	if m.Capture != mustCapture {
		return false
	}

	mustPromote := g.board.CanPromote(m.From, m.To)
	return m.Promotion == mustPromote
}

// deriveStatus computes check and checkmate for the mover, then the
// opponent, stopping at the first side that is in check or has no move
// that keeps its king. ok is false when the mover checked itself and
// that is disallowed.
func (g *Game) deriveStatus(next board.Board, kings [3]board.Square, mover board.Color, noSelfCheck bool) (Status, bool) {
	for _, c := range [2]board.Color{mover, mover.Other()} {
		check := next.AttackedBy(kings[c], c.Other())

		if check && c == mover {
			if noSelfCheck {
				return Status{}, false
			}
			return Status{Check: true, CheckedColor: c, Checkmate: true, CheckmatedColor: c}, true
		}

		mate := g.searcher.SideMove(next, c).Gain == board.NullGain
		if check || mate {
			st := Status{Check: check, Checkmate: mate}
			if check {
				st.CheckedColor = c
			}
			if mate {
				st.CheckmatedColor = c
			}
			return st, true
		}
	}
	return Status{}, true
}

// PickSideMove returns the search's choice for color without playing it.
func (g *Game) PickSideMove(color board.Color) board.Move {
	return g.searcher.SideMove(g.board, color)
}

// PlayEngineMove searches for and plays the engine side's move. Engine
// moves are trusted and may check themselves, which ends the game.
func (g *Game) PlayEngineMove() board.Move {
	return g.ApplyMove(g.PickSideMove(g.engine), false, g.engine, false)
}

// Board returns a copy of the current board.
func (g *Game) Board() board.Board {
	return g.board
}

// LastMove returns the most recently applied move, or the null Move.
func (g *Game) LastMove() board.Move {
	return g.lastMove
}

// Status returns the check/checkmate outcome of the last move.
func (g *Game) Status() Status {
	return g.status
}

// Check reports whether a side is in check and which.
func (g *Game) Check() (bool, board.Color) {
	return g.status.Check, g.status.CheckedColor
}

// Checkmate reports whether a side is checkmated and which.
func (g *Game) Checkmate() (bool, board.Color) {
	return g.status.Checkmate, g.status.CheckmatedColor
}

// KingSquare returns the cached king square of color c.
func (g *Game) KingSquare(c board.Color) board.Square {
	if !c.Valid() {
		return board.NoSquare
	}
	return g.kings[c]
}

// Human returns the human side's color.
func (g *Game) Human() board.Color {
	return g.human
}

// Engine returns the engine side's color.
func (g *Game) Engine() board.Color {
	return g.engine
}

// Turn returns the color expected to move next. Turn order is advisory;
// callers enforce it.
func (g *Game) Turn() board.Color {
	return g.turn
}

// State returns the lifecycle phase.
func (g *Game) State() State {
	switch {
	case g == nil || !g.human.Valid():
		return NotStarted
	case g.status.Checkmate:
		return Over
	default:
		return InProgress
	}
}

// Searcher returns the searcher the game uses.
func (g *Game) Searcher() *engine.Searcher {
	return g.searcher
}

// VerifyKings checks the king cache against a scan of the board.
func (g *Game) VerifyKings() error {
	for _, c := range [2]board.Color{board.White, board.Black} {
		if g.board.At(g.kings[c]) != board.NewPiece(c, board.King) {
			return ErrInconsistentSnapshot
		}
	}
	return nil
}
