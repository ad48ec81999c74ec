package server

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hailam/chessdriver/internal/board"
	"github.com/hailam/chessdriver/internal/engine"
	"github.com/hailam/chessdriver/internal/protocol"
	"github.com/hailam/chessdriver/internal/storage"
)

var (
	// ErrGameNotFound is returned for an unknown game id.
	ErrGameNotFound = errors.New("game not found")
	// ErrInvalidColor is returned when a game is created with a bad color.
	ErrInvalidColor = errors.New("color must be W or B")
)

// entry guards one session; commands on a game are serialized.
// A deleted entry is never saved again.
type entry struct {
	mu      sync.Mutex
	session *protocol.Session
	deleted bool
}

// Manager owns the live sessions and writes each change through to storage.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	store  *storage.Storage
	cfg    protocol.Config
	logger *zap.Logger
}

// NewManager creates a manager backed by store.
func NewManager(store *storage.Storage, cfg protocol.Config, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		sessions: make(map[string]*entry),
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// Create starts a game with the human on color ("W" or "B") and returns
// its id.
func (m *Manager) Create(color string) (string, error) {
	color = strings.TrimSpace(color)
	if len(color) != 1 || !board.ColorFromChar(color[0]).Valid() {
		return "", ErrInvalidColor
	}

	id := uuid.New().String()
	s := protocol.NewSession(m.cfg, m.logger.With(zap.String("game_id", id)))
	s.SetRecorder(m.store)
	if resp := s.Handle(protocol.CmdStart + " " + color); resp != protocol.RespOK+"\n" {
		return "", fmt.Errorf("start game: %s", strings.TrimSpace(resp))
	}

	if err := m.store.SaveSession(id, s.Record()); err != nil {
		return "", fmt.Errorf("save game %s: %w", id, err)
	}

	m.mu.Lock()
	m.sessions[id] = &entry{session: s}
	m.mu.Unlock()

	m.logger.Info("game created", zap.String("game_id", id), zap.String("human", color))
	return id, nil
}

// Exec runs one protocol command against a game and returns the reply.
func (m *Manager) Exec(id, command string) (string, error) {
	e, err := m.lookup(id)
	if err != nil {
		return "", err
	}
	return m.exec(id, e, command)
}

func (m *Manager) exec(id string, e *entry, command string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return "", ErrGameNotFound
	}

	resp := e.session.Handle(command)
	if err := m.store.SaveSession(id, e.session.Record()); err != nil {
		return resp, fmt.Errorf("save game %s: %w", id, err)
	}
	return resp, nil
}

// State returns a view of a game.
func (m *Manager) State(id string) (GameState, error) {
	e, err := m.lookup(id)
	if err != nil {
		return GameState{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return newGameState(id, e.session), nil
}

// Delete resigns a running game, then drops it from memory and storage.
func (m *Manager) Delete(id string) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return ErrGameNotFound
	}
	if e.session.Started() {
		e.session.Handle(protocol.CmdResign)
	}
	e.deleted = true

	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()

	if err := m.store.DeleteSession(id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	m.logger.Info("game deleted", zap.String("game_id", id))
	return nil
}

// Stats returns the aggregate results of finished games.
func (m *Manager) Stats() (*storage.GameStats, error) {
	return m.store.LoadStats()
}

// lookup finds a session in memory, falling back to storage.
func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return e, nil
	}

	rec, err := m.store.LoadSession(id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}

	s, err := protocol.RestoreSession(rec, m.cfg, m.logger.With(zap.String("game_id", id)))
	if err != nil {
		return nil, err
	}
	s.SetRecorder(m.store)

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have loaded it meanwhile.
	if e, ok := m.sessions[id]; ok {
		return e, nil
	}
	e = &entry{session: s}
	m.sessions[id] = e
	m.logger.Debug("game loaded from storage", zap.String("game_id", id))
	return e, nil
}

// GameState is the JSON view of a game.
type GameState struct {
	ID              string      `json:"game_id"`
	Started         bool        `json:"started"`
	PlayerTurn      bool        `json:"player_turn"`
	Human           board.Color `json:"human"`
	Board           string      `json:"board"`
	LastMove        string      `json:"last_move"`
	Check           bool        `json:"check"`
	CheckedColor    board.Color `json:"checked_color"`
	Checkmate       bool        `json:"checkmate"`
	CheckmatedColor board.Color `json:"checkmated_color"`
	Material        int         `json:"material"`
	WhitePieces     int         `json:"white_pieces"`
	BlackPieces     int         `json:"black_pieces"`
}

func newGameState(id string, s *protocol.Session) GameState {
	st := GameState{
		ID:         id,
		Started:    s.Started(),
		PlayerTurn: s.PlayerTurn(),
		LastMove:   board.NullNotation,
	}
	g := s.Game()
	if g == nil {
		return st
	}

	status := g.Status()
	b := g.Board()
	st.Human = g.Human()
	st.Board = b.Placement()
	st.LastMove = board.EncodeMove(g.LastMove())
	st.Check = status.Check
	st.CheckedColor = status.CheckedColor
	st.Checkmate = status.Checkmate
	st.CheckmatedColor = status.CheckmatedColor
	st.Material = engine.Material(b)
	st.WhitePieces = b.Count(board.White)
	st.BlackPieces = b.Count(board.Black)
	return st
}
