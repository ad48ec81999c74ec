// Package engine selects moves with a shallow greedy search: every
// candidate is scored by what it captures or promotes minus what the
// opponent could win in reply.
package engine

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/hailam/chessdriver/internal/board"
)

// LossClass selects how much counterplay a candidate is charged for.
type LossClass uint8

const (
	// NoLoss ignores the opponent entirely.
	NoLoss LossClass = iota
	// SelfLoss charges the moved piece's value if it can be taken on arrival.
	SelfLoss
	// AllLoss charges the best single enemy reply anywhere on the board.
	AllLoss
)

// String returns the loss class name.
func (lc LossClass) String() string {
	switch lc {
	case NoLoss:
		return "NoLoss"
	case SelfLoss:
		return "SelfLoss"
	case AllLoss:
		return "AllLoss"
	default:
		return "Unknown"
	}
}

// sideTieBreak is the fixed denominator for replacing an equally scored
// move in a side-wide search, independent of how many pieces the side has.
const sideTieBreak = 32

// Rand is the randomness source used for tie-breaks.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Uint64() uint64
}

// Searcher finds moves for single pieces and whole sides.
// A Searcher is not safe for concurrent use; parallel side search gives
// every worker its own Searcher.
type Searcher struct {
	rng     Rand
	workers int
	nodes   uint64
}

// NewSearcher creates a searcher drawing tie-breaks from rng.
// A nil rng is replaced by a time-seeded source.
func NewSearcher(rng Rand) *Searcher {
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1))
	}
	return &Searcher{rng: rng, workers: 1}
}

// NewSeededSearcher creates a searcher with a reproducible source.
func NewSeededSearcher(seed uint64) *Searcher {
	return NewSearcher(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// SetWorkers sets how many goroutines a side-wide search may use.
// Values below 2 keep the search sequential.
func (s *Searcher) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	s.workers = n
}

// Workers returns the configured worker count.
func (s *Searcher) Workers() int {
	return s.workers
}

// Nodes returns the number of candidate moves scored since the last Reset.
func (s *Searcher) Nodes() uint64 {
	return s.nodes
}

// Reset clears the node counter.
func (s *Searcher) Reset() {
	s.nodes = 0
}

// ScoreToString converts a gain to a human-readable string.
func ScoreToString(gain int) string {
	switch {
	case gain >= board.MaxGain:
		return "king capture"
	case gain <= board.NullGain:
		return "no move"
	default:
		return strconv.Itoa(gain)
	}
}
