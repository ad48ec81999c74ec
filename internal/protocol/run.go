package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/hailam/chessdriver/internal/game"
	"github.com/hailam/chessdriver/internal/storage"
)

// Run reads commands from in until EOF or "quit" and writes replies to
// out. A non-empty prompt is printed before each command. With echoBoard
// set the board is printed after every move that was accepted.
func (s *Session) Run(in io.Reader, out io.Writer, prompt string, echoBoard bool) error {
	scanner := bufio.NewScanner(in)

	for {
		if prompt != "" {
			fmt.Fprint(out, prompt)
		}
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == CmdQuit {
			fmt.Fprint(out, reply(RespOK))
			return nil
		}

		resp := s.Handle(line)
		fmt.Fprint(out, resp)

		if echoBoard && s.game != nil && movedWith(line, resp) {
			fmt.Fprint(out, s.game.Board().String())
		}
	}

	return scanner.Err()
}

// movedWith reports whether line was a move command that was played.
func movedWith(line, resp string) bool {
	if !strings.HasPrefix(line, CmdMove) && line != CmdEngine {
		return false
	}
	code := strings.TrimSpace(resp)
	if i := strings.LastIndexByte(code, '\n'); i >= 0 {
		code = code[i+1:]
	}
	switch code {
	case RespOK, RespCheck, RespMate:
		return true
	default:
		return false
	}
}

// Record captures the session for persistence.
func (s *Session) Record() storage.SessionRecord {
	rec := storage.SessionRecord{
		Started:     s.started,
		PlayerTurn:  s.playerTurn,
		Plies:       s.plies,
		NoSelfCheck: s.cfg.NoSelfCheck,
	}
	if s.game != nil {
		snap := s.game.Snapshot()
		rec.Game = &snap
	}
	return rec
}

// RestoreSession rebuilds a session from a record. The record's
// self-check policy overrides cfg.
func RestoreSession(rec storage.SessionRecord, cfg Config, logger *zap.Logger) (*Session, error) {
	s := NewSession(cfg, logger)
	s.cfg.NoSelfCheck = rec.NoSelfCheck
	s.started = rec.Started
	s.playerTurn = rec.PlayerTurn
	s.plies = rec.Plies

	if rec.Game != nil {
		g, err := game.Restore(*rec.Game, s.newSearcher())
		if err != nil {
			return nil, fmt.Errorf("restore session: %w", err)
		}
		s.game = g
	} else if s.started {
		return nil, fmt.Errorf("restore session: started without a game: %w", game.ErrInconsistentSnapshot)
	}
	return s, nil
}
