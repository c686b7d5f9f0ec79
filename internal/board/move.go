package board

import (
	"fmt"
	"strings"
)

// Move is a single step of a piece: a quiet move or one capture.
// A multi-capture is a series of Moves by the same side.
type Move struct {
	From     Square
	To       Square
	Captured Square // NoSquare for quiet moves
}

// NoMove represents an invalid or null move.
var NoMove = Move{From: NoSquare, To: NoSquare, Captured: NoSquare}

// NewMove creates a quiet move.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Captured: NoSquare}
}

// NewCapture creates a move that removes the piece on captured.
func NewCapture(from, to, captured Square) Move {
	return Move{From: from, To: to, Captured: captured}
}

// IsCapture returns true if this move removes an opposing piece.
func (m Move) IsCapture() bool {
	return m.Captured.IsValid()
}

// Equal compares origin and destination only; the captured square is derived.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To
}

// String returns the move as "c3-d4" for quiet moves and "c3xe5" for captures.
func (m Move) String() string {
	if !m.From.IsValid() || !m.To.IsValid() {
		return "0000"
	}
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	return m.From.String() + sep + m.To.String()
}

// ParseMove parses "c3d4", "c3-d4", "c3xe5" or "5,2-4,3" into a move without
// a captured square. Resolve it against generated moves with MoveList.Find.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)

	var from, to string
	switch {
	case strings.ContainsAny(s, "-x"):
		i := strings.IndexAny(s, "-x")
		from, to = s[:i], s[i+1:]
	case len(s) == 4:
		from, to = s[:2], s[2:]
	default:
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	fromSq, err := ParseSquare(from)
	if err != nil {
		return NoMove, err
	}
	toSq, err := ParseSquare(to)
	if err != nil {
		return NoMove, err
	}

	return NewMove(fromSq, toSq), nil
}

// MoveList is the result of move generation.
type MoveList struct {
	Moves []Move

	// HaveBeats is set when capture-only mode was active: every move is a capture.
	HaveBeats bool
}

// Len returns the number of moves in the list.
func (ml MoveList) Len() int {
	return len(ml.Moves)
}

// Get returns the move at index i.
func (ml MoveList) Get(i int) Move {
	return ml.Moves[i]
}

// Swap swaps two moves in the list.
func (ml MoveList) Swap(i, j int) {
	ml.Moves[i], ml.Moves[j] = ml.Moves[j], ml.Moves[i]
}

// Find returns the generated move with the same origin and destination as m.
func (ml MoveList) Find(m Move) (Move, bool) {
	for _, g := range ml.Moves {
		if g.Equal(m) {
			return g, true
		}
	}
	return NoMove, false
}

// Contains returns true if the list holds a move equal to m.
func (ml MoveList) Contains(m Move) bool {
	_, ok := ml.Find(m)
	return ok
}

// Origins returns the distinct squares that have at least one move.
func (ml MoveList) Origins() []Square {
	var out []Square
	seen := make(map[Square]bool, len(ml.Moves))
	for _, m := range ml.Moves {
		if !seen[m.From] {
			seen[m.From] = true
			out = append(out, m.From)
		}
	}
	return out
}

// Strings returns the moves in notation form.
func (ml MoveList) Strings() []string {
	out := make([]string, len(ml.Moves))
	for i, m := range ml.Moves {
		out[i] = m.String()
	}
	return out
}
