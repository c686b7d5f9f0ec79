package engine

import (
	"time"

	"github.com/hailam/checkersplay/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Color board.Color
	Depth int
	Score float64
	Nodes uint64
	Time  time.Duration
	PV    []board.Move
}

// Options configures the engine.
type Options struct {
	WhiteDepth int         // search depth when playing white
	BlackDepth int         // search depth when playing black
	Scoring    ScoringMode // evaluation formula
	NoRandom   bool        // fix the random source to seed 0
	Workers    int         // goroutines for root moves
}

// DefaultOptions returns the engine defaults.
func DefaultOptions() Options {
	return Options{
		WhiteDepth: 3,
		BlackDepth: 3,
		Scoring:    ScoringNumber,
		Workers:    1,
	}
}

// Engine is the checkers AI: configuration plus a searcher and its random source.
// An Engine serves one caller at a time.
type Engine struct {
	opts     Options
	src      Source
	searcher *Searcher

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:     opts,
		src:      NewGameSource(opts.NoRandom),
		searcher: NewSearcher(opts.Scoring, opts.Workers),
	}
}

// Options returns the current configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// SetDepth sets the search depth used when playing color c.
func (e *Engine) SetDepth(c board.Color, depth int) {
	if depth < 0 {
		depth = 0
	}
	if c == board.White {
		e.opts.WhiteDepth = depth
	} else {
		e.opts.BlackDepth = depth
	}
}

// Depth returns the search depth used when playing color c.
func (e *Engine) Depth(c board.Color) int {
	if c == board.White {
		return e.opts.WhiteDepth
	}
	return e.opts.BlackDepth
}

// SetScoringMode sets the evaluation formula.
func (e *Engine) SetScoringMode(mode ScoringMode) {
	e.opts.Scoring = mode
	e.searcher = NewSearcher(mode, e.opts.Workers)
}

// SetWorkers sets the number of goroutines used for root moves.
func (e *Engine) SetWorkers(n int) {
	e.opts.Workers = n
	e.searcher = NewSearcher(e.opts.Scoring, n)
}

// SetNoRandom switches between the fixed and the clock-seeded random source.
func (e *Engine) SetNoRandom(noRandom bool) {
	e.opts.NoRandom = noRandom
	e.src = NewGameSource(noRandom)
}

// SetSource replaces the random source.
func (e *Engine) SetSource(src Source) {
	e.src = src
}

// source returns the random source for one top-level call. Without randomization
// every call starts from seed 0, so identical positions get identical answers.
func (e *Engine) source() Source {
	if e.opts.NoRandom {
		return NewSource(0)
	}
	return e.src
}

// FindBestTurns returns the principal sequence for color c at its configured depth.
func (e *Engine) FindBestTurns(b board.Board, c board.Color) []board.Move {
	return e.Search(b, c, e.Depth(c)).Moves
}

// Search runs a fixed-depth search and reports it through OnInfo.
func (e *Engine) Search(b board.Board, c board.Color, depth int) Result {
	start := time.Now()
	res := e.searcher.BestSequence(b, c, depth, e.source())

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Color: c,
			Depth: depth,
			Score: res.Score,
			Nodes: res.Nodes,
			Time:  time.Since(start),
			PV:    res.Moves,
		})
	}
	return res
}

// FindFirstBestTurn returns the best one-ply move for color c, ties broken at random.
func (e *Engine) FindFirstBestTurn(b board.Board, c board.Color) (board.Move, bool) {
	m, _, ok := e.searcher.BestMove(b, c, e.source())
	return m, ok
}

// FindContinuation returns the next capture of a series from sq, if there is one.
func (e *Engine) FindContinuation(b board.Board, sq board.Square, c board.Color) (board.Move, bool) {
	m, _, ok := e.searcher.BestContinuation(b, sq, c, e.source())
	return m, ok
}

// Evaluate returns the static evaluation of b from the perspective of c.
func (e *Engine) Evaluate(b board.Board, c board.Color) float64 {
	return Evaluate(b, c, e.opts.Scoring)
}

// Perft performs a perft test (for debugging move generation).
func (e *Engine) Perft(b board.Board, c board.Color, depth int) uint64 {
	return board.Perft(b, c, depth)
}
