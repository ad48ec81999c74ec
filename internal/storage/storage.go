package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"

	"github.com/hailam/chessdriver/internal/board"
	"github.com/hailam/chessdriver/internal/game"
)

// Storage keys
const (
	keyStats      = "stats"
	sessionPrefix = "session/"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// SessionRecord is a persisted protocol session.
type SessionRecord struct {
	Game        *game.Snapshot `json:"game,omitempty"`
	Started     bool           `json:"started"`
	PlayerTurn  bool           `json:"player_turn"`
	Plies       int            `json:"plies"`
	NoSelfCheck bool           `json:"no_self_check"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// GameResult represents the result of a completed game.
type GameResult struct {
	Human    board.Color
	Winner   board.Color
	Resigned bool
	Plies    int
}

// GameStats stores aggregate results.
type GameStats struct {
	GamesPlayed  int `json:"games_played"`
	HumanWins    int `json:"human_wins"`
	EngineWins   int `json:"engine_wins"`
	Resignations int `json:"resignations"`
	TotalPlies   int `json:"total_plies"`
	LongestGame  int `json:"longest_game"`
}

// HumanWinRate returns the human win rate as a percentage (0-100).
func (s *GameStats) HumanWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.HumanWins) / float64(s.GamesPlayed) * 100
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db     *badger.DB
	logger *zap.Logger
}

// Open opens (creating if needed) a database in dir.
func Open(dir string, logger *zap.Logger) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts, logger)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory(logger *zap.Logger) (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, logger)
}

func open(opts badger.Options, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db, logger: logger}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession stores a session under id.
func (s *Storage) SaveSession(id string, rec SessionRecord) error {
	rec.UpdatedAt = time.Now()
	return s.put(sessionPrefix+id, rec)
}

// LoadSession loads the session stored under id.
func (s *Storage) LoadSession(id string) (SessionRecord, error) {
	var rec SessionRecord
	err := s.get(sessionPrefix+id, &rec)
	return rec, err
}

// DeleteSession removes the session stored under id.
func (s *Storage) DeleteSession(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(sessionPrefix + id))
	})
}

// SessionIDs lists every stored session id.
func (s *Storage) SessionIDs() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(sessionPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(sessionPrefix):]))
		}
		return nil
	})
	return ids, err
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := &GameStats{}
	if err := s.get(keyStats, stats); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return stats, nil
}

// RecordResult records a completed game and updates statistics.
// It satisfies the protocol's result recorder.
func (s *Storage) RecordResult(result GameResult) error {
	return s.db.Update(func(txn *badger.Txn) error {
		stats := &GameStats{}
		item, err := txn.Get([]byte(keyStats))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
		case err != nil:
			return err
		default:
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, stats)
			}); err != nil {
				return err
			}
		}

		stats.GamesPlayed++
		stats.TotalPlies += result.Plies
		if result.Plies > stats.LongestGame {
			stats.LongestGame = result.Plies
		}
		if result.Resigned {
			stats.Resignations++
		}
		if result.Winner == result.Human {
			stats.HumanWins++
		} else {
			stats.EngineWins++
		}

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		s.logger.Debug("recorded game result",
			zap.Stringer("winner", result.Winner),
			zap.Int("games_played", stats.GamesPlayed),
		)
		return txn.Set([]byte(keyStats), data)
	})
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}
