package board

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNotation is returned when a board string cannot be parsed.
var ErrInvalidNotation = errors.New("invalid board notation")

// StartNotation is the notation of the starting position.
const StartNotation = "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/w1w1w1w1/1w1w1w1w/w1w1w1w1"

// ParseBoard parses board notation: eight rows separated by '/', row 0 first.
// Each row lists its cells left to right using '.', 'w', 'b', 'W', 'B';
// a digit 1-8 stands for that many empty cells.
func ParseBoard(s string) (Board, error) {
	var b Board

	rows := strings.Split(strings.TrimSpace(s), "/")
	if len(rows) != Size {
		return b, fmt.Errorf("%w: need %d rows, got %d", ErrInvalidNotation, Size, len(rows))
	}

	for row, rowStr := range rows {
		col := 0
		for i := 0; i < len(rowStr); i++ {
			c := rowStr[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}

			p, ok := CellFromChar(c)
			if !ok {
				return b, fmt.Errorf("%w: unknown piece %q in row %d", ErrInvalidNotation, c, row)
			}
			if col >= Size {
				return b, fmt.Errorf("%w: row %d is too long", ErrInvalidNotation, row)
			}
			b[row][col] = p
			col++
		}
		if col != Size {
			return b, fmt.Errorf("%w: row %d has %d cells", ErrInvalidNotation, row, col)
		}
	}

	return b, nil
}

// Notation returns the compressed notation of the board.
func (b Board) Notation() string {
	var sb strings.Builder

	for row := 0; row < Size; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < Size; col++ {
			p := b[row][col]
			if p == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	return sb.String()
}
