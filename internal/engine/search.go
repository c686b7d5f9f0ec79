package engine

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/hailam/checkersplay/internal/board"
)

// Result is the outcome of a search.
type Result struct {
	// Moves is the principal sequence, alternating colors from the side to move.
	Moves []board.Move
	Score float64
	Nodes uint64
}

// Searcher performs the exhaustive fixed-depth search.
//
// Every node keeps the child with the lowest score, whichever side is to move.
// Leaves are scored from the perspective of the side to move at the leaf; the
// evaluator is symmetric between the colors, so the minimum is taken at every level.
// Capture series are not continued inside the tree: every move hands the turn to
// the opponent.
type Searcher struct {
	mode    ScoringMode
	workers int
	nodes   atomic.Uint64
}

// NewSearcher creates a searcher. Root moves are searched on up to workers goroutines.
func NewSearcher(mode ScoringMode, workers int) *Searcher {
	if workers < 1 {
		workers = 1
	}
	return &Searcher{mode: mode, workers: workers}
}

// Nodes returns the number of nodes visited by the last search.
func (s *Searcher) Nodes() uint64 {
	return s.nodes.Load()
}

// BestSequence searches depth plies from b with us to move and returns the best
// sequence found. Depth 0 returns the evaluation of b with no moves.
// If us has no legal move, or no line scores below Infinity, Moves is empty.
//
// Each root move is searched with its own source, derived from src in move order
// before any subtree runs, so the result does not depend on the worker count.
func (s *Searcher) BestSequence(b board.Board, us board.Color, depth int, src Source) Result {
	s.nodes.Store(0)

	if depth <= 0 {
		score, _ := s.search(b, us, 0, src)
		return Result{Score: score, Nodes: s.nodes.Load()}
	}

	s.nodes.Add(1)
	moves := board.GenerateMoves(b, us, src)

	type branch struct {
		score float64
		seq   []board.Move
	}
	branches := make([]branch, moves.Len())
	sources := make([]Source, moves.Len())
	for i := range sources {
		sources[i] = derive(src)
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, m := range moves.Moves {
		i, m := i, m // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			score, seq := s.search(board.MakeMove(b, m), us.Other(), depth-1, sources[i])
			branches[i] = branch{score: score, seq: seq}
			return nil
		})
	}
	_ = g.Wait()

	best := Result{Score: Infinity}
	for i, br := range branches {
		if br.score < best.Score {
			best.Score = br.score
			best.Moves = append([]board.Move{moves.Moves[i]}, br.seq...)
		}
	}
	best.Nodes = s.nodes.Load()
	return best
}

// search returns the lowest score reachable from b with toMove to move,
// and the sequence leading to it.
func (s *Searcher) search(b board.Board, toMove board.Color, depth int, src Source) (float64, []board.Move) {
	s.nodes.Add(1)

	if depth == 0 {
		return Evaluate(b, toMove, s.mode), nil
	}

	moves := board.GenerateMoves(b, toMove, src)

	best := float64(Infinity)
	var bestSeq []board.Move
	for _, m := range moves.Moves {
		score, seq := s.search(board.MakeMove(b, m), toMove.Other(), depth-1, src)
		if score < best {
			best = score
			bestSeq = append([]board.Move{m}, seq...)
		}
	}
	return best, bestSeq
}

// BestMove returns the move of us whose resulting board scores lowest from the
// perspective of us, chosen uniformly among ties. Unlike a depth-1 BestSequence,
// which scores the result from the opponent's side, it ranks moves by our own score.
func (s *Searcher) BestMove(b board.Board, us board.Color, src Source) (board.Move, float64, bool) {
	return s.bestAmong(b, us, board.GenerateMoves(b, us, src), src)
}

// BestContinuation picks the next capture of a series from sq,
// using the same one-ply rule as BestMove.
func (s *Searcher) BestContinuation(b board.Board, sq board.Square, us board.Color, src Source) (board.Move, float64, bool) {
	moves := board.GenerateColorSquareMoves(b, sq, us)
	if !moves.HaveBeats {
		return board.NoMove, Infinity, false
	}
	return s.bestAmong(b, us, moves, src)
}

func (s *Searcher) bestAmong(b board.Board, us board.Color, moves board.MoveList, src Source) (board.Move, float64, bool) {
	s.nodes.Store(0)
	if moves.Len() == 0 {
		return board.NoMove, Infinity, false
	}

	var best []board.Move
	bestScore := float64(Infinity)
	for _, m := range moves.Moves {
		s.nodes.Add(1)
		score := Evaluate(board.MakeMove(b, m), us, s.mode)
		switch {
		case score < bestScore:
			bestScore = score
			best = append(best[:0], m)
		case score == bestScore:
			best = append(best, m)
		}
	}
	return best[src.Intn(len(best))], bestScore, true
}
