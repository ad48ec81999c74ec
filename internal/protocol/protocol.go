// Package protocol implements the fixed-width command protocol spoken by
// the console player and the network server.
//
// A command is a two-digit code optionally followed by a space and an
// argument:
//
//	00 <W|B>        start a game, human plays the given color and moves first
//	01              render the board
//	02 <notation>   play a human move
//	03              let the engine move
//	04              resign
//
// Every reply ends with a newline and carries one of the response codes.
package protocol

import (
	"strings"

	"go.uber.org/zap"

	"github.com/hailam/chessdriver/internal/board"
	"github.com/hailam/chessdriver/internal/engine"
	"github.com/hailam/chessdriver/internal/game"
	"github.com/hailam/chessdriver/internal/storage"
)

// Command codes.
const (
	CmdStart  = "00"
	CmdBoard  = "01"
	CmdMove   = "02"
	CmdEngine = "03"
	CmdResign = "04"
	CmdQuit   = "quit"
)

// Response codes.
const (
	RespOK         = "OK"
	RespCheck      = "CHECK"
	RespMate       = "MATE"
	RespIllegal    = "ILLMOVE"
	RespBadFormat  = "INVFMT"
	RespOutOfTurn  = "OOT"
	RespNoGame     = "NOGAME"
	RespUnknownCmd = "UNKCMD"
)

// argOffset is where a command's argument starts ("02 " is 3 bytes).
const argOffset = 3

// MaxCommandLen is the longest accepted command.
const MaxCommandLen = argOffset + board.NotationLength

// Config holds the session knobs.
type Config struct {
	// NoSelfCheck rejects human moves that leave their own king capturable.
	NoSelfCheck bool
	// Workers is the number of goroutines for the engine's side search.
	Workers int
	// Seed fixes the engine's tie-breaks; 0 seeds from the clock.
	Seed uint64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		NoSelfCheck: true,
		Workers:     1,
	}
}

// Recorder receives the results of finished games.
type Recorder interface {
	RecordResult(result storage.GameResult) error
}

// Session is one player's conversation with the engine.
type Session struct {
	cfg        Config
	game       *game.Game
	started    bool
	playerTurn bool
	plies      int

	recorder Recorder
	logger   *zap.Logger
}

// NewSession creates a session with no game running.
func NewSession(cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{cfg: cfg, logger: logger}
}

// SetRecorder sets where finished games are reported.
func (s *Session) SetRecorder(r Recorder) {
	s.recorder = r
}

// Game returns the current game, or nil before the first start.
func (s *Session) Game() *game.Game {
	return s.game
}

// Started reports whether a game is running.
func (s *Session) Started() bool {
	return s.started
}

// PlayerTurn reports whether the human is expected to move next.
func (s *Session) PlayerTurn() bool {
	return s.playerTurn
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Handle executes one command line and returns the full reply.
func (s *Session) Handle(line string) string {
	line = strings.TrimRight(line, "\r\n")
	resp := s.dispatch(line)
	s.logger.Debug("command handled",
		zap.String("command", line),
		zap.String("response", strings.TrimSpace(resp)),
	)
	return resp
}

func (s *Session) dispatch(line string) string {
	if line == "" || len(line) > MaxCommandLen {
		return reply(RespUnknownCmd)
	}

	switch {
	case line == CmdResign:
		return s.handleResign()
	case line == CmdEngine:
		return s.handleEngineMove()
	case strings.HasPrefix(line, CmdMove+" "):
		return s.handleMove(line[argOffset:])
	case line == CmdBoard:
		return s.handleBoard()
	case strings.HasPrefix(line, CmdStart+" ") && len(line) == argOffset+1:
		return s.handleStart(line[argOffset])
	default:
		return reply(RespUnknownCmd)
	}
}

// handleStart begins a new game with the human on color code ch.
func (s *Session) handleStart(ch byte) string {
	human := board.ColorFromChar(ch)
	g, err := game.New(human, s.newSearcher())
	if err != nil {
		return reply(RespUnknownCmd)
	}

	s.game = g
	s.started = true
	s.playerTurn = true
	s.plies = 0
	s.logger.Info("game started", zap.Stringer("human", human))
	return reply(RespOK)
}

func (s *Session) newSearcher() *engine.Searcher {
	var searcher *engine.Searcher
	if s.cfg.Seed != 0 {
		searcher = engine.NewSeededSearcher(s.cfg.Seed)
	} else {
		searcher = engine.NewSearcher(nil)
	}
	searcher.SetWorkers(s.cfg.Workers)
	return searcher
}

// handleBoard renders the board.
func (s *Session) handleBoard() string {
	if !s.started {
		return reply(RespNoGame)
	}
	return s.game.Board().String()
}

// handleMove plays a human move.
func (s *Session) handleMove(notation string) string {
	if !s.started {
		return reply(RespNoGame)
	}
	if !s.playerTurn {
		return reply(RespOutOfTurn)
	}

	m := board.DecodeMove(notation)
	if m.IsNull() {
		return reply(RespBadFormat)
	}
	human := s.game.Human()
	if m.Subject.Color != human {
		return reply(RespIllegal)
	}

	if s.game.ApplyMove(m, s.cfg.NoSelfCheck, human, true).IsNull() {
		s.logger.Info("move rejected", zap.Stringer("move", m))
		return reply(RespIllegal)
	}

	s.plies++
	s.playerTurn = false
	return reply(s.statusFor(s.game.Engine()))
}

// handleEngineMove lets the engine play and reports the move.
func (s *Session) handleEngineMove() string {
	if !s.started {
		return reply(RespNoGame)
	}
	if s.playerTurn {
		return reply(RespOutOfTurn)
	}

	searcher := s.game.Searcher()
	searcher.Reset()
	m := s.game.PlayEngineMove()
	s.playerTurn = true
	s.logger.Debug("engine move",
		zap.Stringer("move", m),
		zap.String("score", engine.ScoreToString(m.Gain)),
		zap.Uint64("nodes", searcher.Nodes()),
		zap.Int("workers", searcher.Workers()),
	)

	if m.IsNull() {
		// No move keeps the engine's king.
		s.finish(s.game.Human(), false)
		return reply(board.NullNotation) + reply(RespMate)
	}

	s.plies++
	return reply(m.String()) + reply(s.statusFor(s.game.Human()))
}

// handleResign ends the game in the engine's favor.
func (s *Session) handleResign() string {
	if !s.started {
		return reply(RespNoGame)
	}
	s.finish(s.game.Engine(), true)
	return reply(RespOK)
}

// statusFor turns the game status into a response code from the point of
// view of the side that just moved; opponent is the other side.
func (s *Session) statusFor(opponent board.Color) string {
	st := s.game.Status()
	switch {
	case st.Checkmate:
		s.finish(st.CheckmatedColor.Other(), false)
		return RespMate
	case st.Check && st.CheckedColor == opponent:
		return RespCheck
	default:
		return RespOK
	}
}

// finish stops the game and reports its result.
func (s *Session) finish(winner board.Color, resigned bool) {
	s.started = false
	s.logger.Info("game over",
		zap.Stringer("winner", winner),
		zap.Bool("resigned", resigned),
		zap.Int("plies", s.plies),
	)
	if s.recorder == nil {
		return
	}
	result := storage.GameResult{
		Human:    s.game.Human(),
		Winner:   winner,
		Resigned: resigned,
		Plies:    s.plies,
	}
	if err := s.recorder.RecordResult(result); err != nil {
		s.logger.Warn("failed to record game result", zap.Error(err))
	}
}

func reply(code string) string {
	return code + "\n"
}
