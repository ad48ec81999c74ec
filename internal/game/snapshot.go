package game

import (
	"fmt"

	"github.com/hailam/chessdriver/internal/board"
	"github.com/hailam/chessdriver/internal/engine"
)

// Snapshot is the serializable state of a Game.
type Snapshot struct {
	Board           board.Board  `json:"board"`
	LastMove        board.Move   `json:"last_move"`
	Check           bool         `json:"check"`
	CheckedColor    board.Color  `json:"checked_color"`
	Checkmate       bool         `json:"checkmate"`
	CheckmatedColor board.Color  `json:"checkmated_color"`
	WhiteKing       board.Square `json:"white_king"`
	BlackKing       board.Square `json:"black_king"`
	Human           board.Color  `json:"human"`
	Turn            board.Color  `json:"turn"`
}

// Snapshot captures the game's state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Board:           g.board,
		LastMove:        g.lastMove,
		Check:           g.status.Check,
		CheckedColor:    g.status.CheckedColor,
		Checkmate:       g.status.Checkmate,
		CheckmatedColor: g.status.CheckmatedColor,
		WhiteKing:       g.kings[board.White],
		BlackKing:       g.kings[board.Black],
		Human:           g.human,
		Turn:            g.turn,
	}
}

// Restore rebuilds a game from a snapshot. The cached king squares must
// hold the matching kings unless the game is already over.
func Restore(s Snapshot, searcher *engine.Searcher) (*Game, error) {
	if !s.Human.Valid() {
		return nil, ErrInvalidColor
	}
	if searcher == nil {
		searcher = engine.NewSearcher(nil)
	}

	g := &Game{
		board:    s.Board,
		lastMove: s.LastMove,
		status: Status{
			Check:           s.Check,
			CheckedColor:    s.CheckedColor,
			Checkmate:       s.Checkmate,
			CheckmatedColor: s.CheckmatedColor,
		},
		human:    s.Human,
		engine:   s.Human.Other(),
		turn:     s.Turn,
		searcher: searcher,
	}
	g.kings[board.White] = s.WhiteKing
	g.kings[board.Black] = s.BlackKing

	if !g.status.Checkmate {
		if err := g.VerifyKings(); err != nil {
			return nil, fmt.Errorf("restore game: %w", err)
		}
	}
	return g, nil
}

// FromBoard starts a game on an arbitrary position, locating the kings
// by scanning. turn is the side expected to move first.
func FromBoard(b board.Board, human, turn board.Color, searcher *engine.Searcher) (*Game, error) {
	if !human.Valid() || !turn.Valid() {
		return nil, ErrInvalidColor
	}
	return Restore(Snapshot{
		Board:     b,
		LastMove:  board.NullMove(),
		WhiteKing: b.FindKing(board.White),
		BlackKing: b.FindKing(board.Black),
		Human:     human,
		Turn:      turn,
	}, searcher)
}
