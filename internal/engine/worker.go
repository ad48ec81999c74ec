package engine

import (
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessdriver/internal/board"
)

// Worker scores one piece of a side-wide search on its own board copy
// with its own random source.
type Worker struct {
	id       int
	pos      board.Board
	origin   board.Square
	searcher *Searcher
}

// WorkerResult is the best move one worker found for its piece.
type WorkerResult struct {
	WorkerID int
	Move     board.Move
	Nodes    uint64
}

// NewWorker creates a worker for the piece on origin. The board is copied.
func NewWorker(id int, pos board.Board, origin board.Square, seed uint64) *Worker {
	return &Worker{
		id:       id,
		pos:      pos,
		origin:   origin,
		searcher: NewSearcher(rand.New(rand.NewPCG(seed, uint64(id)))),
	}
}

// ID returns the worker's ID.
func (w *Worker) ID() int {
	return w.id
}

// Run performs the piece search.
func (w *Worker) Run() WorkerResult {
	m := w.searcher.PieceMove(w.pos, w.origin, AllLoss)
	return WorkerResult{
		WorkerID: w.id,
		Move:     m,
		Nodes:    w.searcher.Nodes(),
	}
}

// sideMoveParallel fans the pieces of c out to workers and merges their
// results in row-major piece order with the side-wide tie-break. Seeds
// are drawn from s before any worker starts, so a seeded searcher stays
// reproducible.
func (s *Searcher) sideMoveParallel(b board.Board, c board.Color) board.Move {
	var workers []*Worker
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			sq := board.Sq(row, col)
			if b.At(sq).Color != c {
				continue
			}
			workers = append(workers, NewWorker(len(workers), b, sq, s.rng.Uint64()))
		}
	}

	results := make([]WorkerResult, len(workers))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, w := range workers {
		g.Go(func() error {
			results[i] = w.Run()
			return nil
		})
	}
	// Piece searches never fail; Wait only joins the workers.
	if err := g.Wait(); err != nil {
		return board.NullMove()
	}

	best := board.NullMove()
	for _, r := range results {
		s.nodes += r.Nodes
		if best.Gain >= board.MaxGain {
			continue
		}
		best = s.preferSide(best, r.Move)
	}
	return best
}
