package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMove is returned by Apply when the origin is empty or the destination is occupied.
var ErrInvalidMove = errors.New("invalid move")

// Board is a snapshot of piece placement indexed [row][col].
// It is a value: assignment copies it, and every transform returns a new Board.
type Board [Size][Size]Cell

// NewBoard returns the starting position: black men on the dark squares of rows 0-2,
// white men on the dark squares of rows 5-7.
func NewBoard() Board {
	var b Board
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if !NewSquare(row, col).IsDark() {
				continue
			}
			if row < 3 {
				b[row][col] = BlackMan
			}
			if row > 4 {
				b[row][col] = WhiteMan
			}
		}
	}
	return b
}

// PieceAt returns the cell at sq. Off-board squares read as Empty.
func (b Board) PieceAt(sq Square) Cell {
	if !sq.IsValid() {
		return Empty
	}
	return b[sq.Row][sq.Col]
}

// IsEmpty returns true if sq is on the board and unoccupied.
func (b Board) IsEmpty(sq Square) bool {
	return sq.IsValid() && b[sq.Row][sq.Col] == Empty
}

// With returns a copy of the board with p placed on sq.
func (b Board) With(sq Square, p Cell) Board {
	b[sq.Row][sq.Col] = p
	return b
}

// Count returns the number of men and kings of color c.
func (b Board) Count(c Color) (men, kings int) {
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			p := b[row][col]
			if p.Color() != c {
				continue
			}
			if p.IsKing() {
				kings++
			} else {
				men++
			}
		}
	}
	return men, kings
}

// Apply validates m against the board and returns the successor board.
// It is the entry point for externally supplied moves; generated moves can use MakeMove.
func Apply(b Board, m Move) (Board, error) {
	if !m.From.IsValid() || !m.To.IsValid() {
		return b, fmt.Errorf("%w: %s is off the board", ErrInvalidMove, m)
	}
	if b.PieceAt(m.To) != Empty {
		return b, fmt.Errorf("%w: destination %s is occupied", ErrInvalidMove, m.To)
	}
	if b.PieceAt(m.From) == Empty {
		return b, fmt.Errorf("%w: origin %s is empty", ErrInvalidMove, m.From)
	}
	return MakeMove(b, m), nil
}

// MakeMove returns the board after m without validation.
// The captured piece is removed and a man reaching its promotion row is crowned.
func MakeMove(b Board, m Move) Board {
	if m.IsCapture() {
		b[m.Captured.Row][m.Captured.Col] = Empty
	}

	p := b[m.From.Row][m.From.Col]
	if p.IsMan() && m.To.Row == p.Color().PromotionRow() {
		p = p.Promote()
	}

	b[m.To.Row][m.To.Col] = p
	b[m.From.Row][m.From.Col] = Empty
	return b
}

// String returns a visual representation of the board.
func (b Board) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < Size; row++ {
		fmt.Fprintf(&sb, "%d  ", Size-row)
		for col := 0; col < Size; col++ {
			sb.WriteString(b[row][col].String())
			sb.WriteString(" ")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n")
	return sb.String()
}
