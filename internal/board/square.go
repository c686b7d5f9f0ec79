// Package board implements the checkers board, move application and move generation.
package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Size is the number of rows and columns on the board.
const Size = 8

// Square addresses a cell by row and column, both in [0,7].
// Row 0 is black's back rank; white promotes on it.
type Square struct {
	Row int
	Col int
}

// NoSquare is used where a square is absent (quiet moves, no pending capture).
var NoSquare = Square{Row: -1, Col: -1}

// NewSquare creates a square from row and column.
func NewSquare(row, col int) Square {
	return Square{Row: row, Col: col}
}

// IsValid returns true if the square lies on the board.
func (sq Square) IsValid() bool {
	return sq.Row >= 0 && sq.Row < Size && sq.Col >= 0 && sq.Col < Size
}

// IsDark returns true for the playable squares.
func (sq Square) IsDark() bool {
	return (sq.Row+sq.Col)%2 == 1
}

// Add returns the square offset by the given direction.
func (sq Square) Add(d Direction) Square {
	return Square{Row: sq.Row + d.DRow, Col: sq.Col + d.DCol}
}

// String returns algebraic notation: files a-h left to right,
// ranks 8 (row 0) down to 1 (row 7).
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.Col, Size-sq.Row)
}

// ParseSquare parses either algebraic notation ("c3") or a "row,col" pair ("5,2").
func ParseSquare(s string) (Square, error) {
	if row, col, ok := strings.Cut(s, ","); ok {
		r, err := strconv.Atoi(strings.TrimSpace(row))
		if err != nil {
			return NoSquare, fmt.Errorf("invalid square: %s", s)
		}
		c, err := strconv.Atoi(strings.TrimSpace(col))
		if err != nil {
			return NoSquare, fmt.Errorf("invalid square: %s", s)
		}
		sq := NewSquare(r, c)
		if !sq.IsValid() {
			return NoSquare, fmt.Errorf("invalid square: %s", s)
		}
		return sq, nil
	}

	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	col := int(s[0] - 'a')
	rank := int(s[1] - '0')

	sq := NewSquare(Size-rank, col)
	if col < 0 || col >= Size || rank < 1 || rank > Size {
		return NoSquare, fmt.Errorf("invalid square: %s", s)
	}

	return sq, nil
}

// Direction is a diagonal step.
type Direction struct {
	DRow int
	DCol int
}

// Diagonals lists the four diagonal directions.
var Diagonals = [4]Direction{
	{-1, -1},
	{-1, 1},
	{1, -1},
	{1, 1},
}
