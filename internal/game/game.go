// Package game implements a checkers game session: turn order, capture series,
// undo and the end-of-game rules.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hailam/checkersplay/internal/board"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrGameOver      = errors.New("game is over")
)

// DefaultMaxTurns is the ply limit after which a game is drawn.
const DefaultMaxTurns = 120

// Result is the outcome of a game.
type Result int

const (
	Ongoing Result = iota
	WhiteWins
	BlackWins
	Draw
)

// String returns the result name.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "WhiteWins"
	case BlackWins:
		return "BlackWins"
	case Draw:
		return "Draw"
	default:
		return "Ongoing"
	}
}

// Winner returns the winning color, or NoColor for draws and unfinished games.
func (r Result) Winner() board.Color {
	switch r {
	case WhiteWins:
		return board.White
	case BlackWins:
		return board.Black
	default:
		return board.NoColor
	}
}

func winFor(c board.Color) Result {
	if c == board.White {
		return WhiteWins
	}
	return BlackWins
}

// Options configures a game.
type Options struct {
	MaxTurns int // plies before a draw; 0 disables the limit
}

// state is the part of a game restored by Undo.
type state struct {
	board   board.Board
	turn    int
	pending board.Square
}

// step is one applied move with the state it was played from.
type step struct {
	before state
	move   board.Move
	series int // position within a capture series, 0 for quiet moves
}

// Game is a game session. It is not safe for concurrent use.
type Game struct {
	ID uuid.UUID

	state
	first    board.Color
	steps    []step
	maxTurns int
	result   Result
}

// New starts a game from the starting position with white to move.
func New(opts Options) *Game {
	return NewFromBoard(board.NewBoard(), board.White, opts)
}

// NewFromBoard starts a game from b with side to move.
func NewFromBoard(b board.Board, side board.Color, opts Options) *Game {
	g := &Game{
		ID:       uuid.New(),
		state:    state{board: b, pending: board.NoSquare},
		first:    side,
		maxTurns: opts.MaxTurns,
	}
	g.updateResult()
	return g
}

// Board returns the current board.
func (g *Game) Board() board.Board {
	return g.board
}

// Turn returns the number of completed plies.
func (g *Game) Turn() int {
	return g.turn
}

// MaxTurns returns the ply limit.
func (g *Game) MaxTurns() int {
	return g.maxTurns
}

// SideToMove returns the color whose move it is.
func (g *Game) SideToMove() board.Color {
	if g.turn%2 == 0 {
		return g.first
	}
	return g.first.Other()
}

// Pending returns the square of the piece that must continue a capture series.
func (g *Game) Pending() (board.Square, bool) {
	return g.pending, g.pending.IsValid()
}

// Result returns the game outcome so far.
func (g *Game) Result() Result {
	return g.result
}

// IsOver returns true once the game has a result.
func (g *Game) IsOver() bool {
	return g.result != Ongoing
}

// LegalMoves returns the moves available now: the continuation captures while a
// series is pending, otherwise every legal move of the side to move.
func (g *Game) LegalMoves() board.MoveList {
	if g.pending.IsValid() {
		return board.GenerateColorSquareMoves(g.board, g.pending, g.SideToMove())
	}
	return board.GenerateMoves(g.board, g.SideToMove(), nil)
}

// History returns the moves played so far, captures of a series one by one.
func (g *Game) History() []board.Move {
	out := make([]board.Move, len(g.steps))
	for i, s := range g.steps {
		out[i] = s.move
	}
	return out
}

// Play applies m for the side to move. Only origin and destination of m are
// significant. After a capture the same side keeps the turn while the capturing
// piece can capture again.
func (g *Game) Play(m board.Move) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if _, err := board.Apply(g.board, m); err != nil {
		return err
	}

	legal, ok := g.LegalMoves().Find(m)
	if !ok {
		return fmt.Errorf("%w: %v for %v", ErrIllegalMove, m, g.SideToMove())
	}

	s := step{before: g.state, move: legal}
	if legal.IsCapture() {
		s.series = 1
		if n := len(g.steps); n > 0 && g.pending.IsValid() {
			s.series = g.steps[n-1].series + 1
		}
	}
	g.steps = append(g.steps, s)

	g.board = board.MakeMove(g.board, legal)
	if legal.IsCapture() && board.HasCapture(g.board, legal.To) {
		g.pending = legal.To
		return nil
	}
	g.pending = board.NoSquare
	g.turn++
	g.updateResult()
	return nil
}

// PlaySequence plays the leading moves of seq that belong to the current ply:
// the first move and then, while a capture series is pending, each following move
// that continues it. It returns the number of moves played.
func (g *Game) PlaySequence(seq []board.Move) (int, error) {
	turn := g.turn
	for i, m := range seq {
		if i > 0 && (g.turn != turn || !g.LegalMoves().Contains(m)) {
			return i, nil
		}
		if err := g.Play(m); err != nil {
			return i, err
		}
	}
	return len(seq), nil
}

// Undo takes back the last move. A capture series is taken back as a whole,
// including one that is still pending.
func (g *Game) Undo() error {
	n := len(g.steps)
	if n == 0 {
		return ErrNothingToUndo
	}

	count := max(1, g.steps[n-1].series)
	count = min(count, n)

	g.state = g.steps[n-count].before
	g.steps = g.steps[:n-count]
	g.result = Ongoing
	return nil
}

func (g *Game) updateResult() {
	switch {
	case g.maxTurns > 0 && g.turn >= g.maxTurns:
		g.result = Draw
	case g.LegalMoves().Len() == 0:
		g.result = winFor(g.SideToMove().Other())
	default:
		g.result = Ongoing
	}
}
