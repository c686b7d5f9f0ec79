package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// Forward returns the row delta of a man moving toward the opponent's back rank.
// White moves toward row 0, black toward row 7.
func (c Color) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// PromotionRow returns the row on which a man of this color is crowned.
func (c Color) PromotionRow() int {
	if c == White {
		return 0
	}
	return 7
}

// ParseColor parses "w", "white", "b" or "black".
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w", "W", "white", "White":
		return White, true
	case "b", "B", "black", "Black":
		return Black, true
	default:
		return NoColor, false
	}
}

// Cell is the content of one board square.
// Non-empty values encode color in their parity (odd = white, even = black)
// and promotion in their magnitude (>= 3 = king).
type Cell uint8

const (
	Empty Cell = iota
	WhiteMan
	BlackMan
	WhiteKing
	BlackKing
)

// NewMan returns the man of the given color.
func NewMan(c Color) Cell {
	if c == White {
		return WhiteMan
	}
	return BlackMan
}

// NewKing returns the king of the given color.
func NewKing(c Color) Cell {
	if c == White {
		return WhiteKing
	}
	return BlackKing
}

// IsEmpty returns true if no piece occupies the cell.
func (p Cell) IsEmpty() bool {
	return p == Empty
}

// IsKing returns true for promoted pieces.
func (p Cell) IsKing() bool {
	return p >= WhiteKing
}

// IsMan returns true for unpromoted pieces.
func (p Cell) IsMan() bool {
	return p == WhiteMan || p == BlackMan
}

// Color returns the Color of the piece.
func (p Cell) Color() Color {
	if p == Empty || p > BlackKing {
		return NoColor
	}
	if p%2 == 1 {
		return White
	}
	return Black
}

// Promote returns the king form of a man. Kings are returned unchanged.
func (p Cell) Promote() Cell {
	if p.IsMan() {
		return p + 2
	}
	return p
}

// String returns the notation character for the cell.
// Lowercase for men, uppercase for kings.
func (p Cell) String() string {
	return string(p.Char())
}

// Char returns the notation byte for the cell.
func (p Cell) Char() byte {
	chars := []byte{'.', 'w', 'b', 'W', 'B'}
	if p > BlackKing {
		return '?'
	}
	return chars[p]
}

// CellFromChar converts a notation character to a Cell.
func CellFromChar(c byte) (Cell, bool) {
	switch c {
	case '.':
		return Empty, true
	case 'w':
		return WhiteMan, true
	case 'b':
		return BlackMan, true
	case 'W':
		return WhiteKing, true
	case 'B':
		return BlackKing, true
	default:
		return Empty, false
	}
}
