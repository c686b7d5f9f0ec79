package board

// Shuffler reorders n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// GenerateMoves generates the legal moves of color c.
// If any piece can capture, only captures are returned and HaveBeats is set.
// The final order is shuffled with rng; a nil rng keeps generation order
// (row-major by origin square).
func GenerateMoves(b Board, c Color, rng Shuffler) MoveList {
	var ml MoveList
	var local []Move

	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if b[row][col].Color() != c {
				continue
			}

			var beats bool
			local, beats = b.appendSquareMoves(local[:0], NewSquare(row, col))

			if beats && !ml.HaveBeats {
				// Switch to capture-only mode: drop the quiet moves found so far
				ml.Moves = ml.Moves[:0]
				ml.HaveBeats = true
			}
			if beats == ml.HaveBeats {
				ml.Moves = append(ml.Moves, local...)
			}
		}
	}

	if rng != nil && len(ml.Moves) > 1 {
		rng.Shuffle(len(ml.Moves), ml.Swap)
	}
	return ml
}

// GenerateSquareMoves generates the moves of the piece on sq, ignoring the rest of
// its side. Used to continue a capture series from the landing square.
func GenerateSquareMoves(b Board, sq Square) MoveList {
	var ml MoveList
	ml.Moves, ml.HaveBeats = b.appendSquareMoves(nil, sq)
	return ml
}

// GenerateColorSquareMoves is GenerateSquareMoves restricted to pieces of color c.
func GenerateColorSquareMoves(b Board, sq Square, c Color) MoveList {
	if b.PieceAt(sq).Color() != c {
		return MoveList{}
	}
	return GenerateSquareMoves(b, sq)
}

// HasCapture returns true if the piece on sq can capture.
func HasCapture(b Board, sq Square) bool {
	_, beats := b.appendSquareMoves(nil, sq)
	return beats
}

// appendSquareMoves appends the moves of the piece on sq to moves.
// When the piece has captures only the captures are appended and beats is true.
func (b Board) appendSquareMoves(moves []Move, sq Square) ([]Move, bool) {
	p := b.PieceAt(sq)
	if p == Empty {
		return moves, false
	}

	n := len(moves)
	if p.IsKing() {
		moves = b.appendKingCaptures(moves, sq, p.Color())
		if len(moves) > n {
			return moves, true
		}
		return b.appendKingSlides(moves, sq), false
	}

	moves = b.appendManCaptures(moves, sq, p.Color())
	if len(moves) > n {
		return moves, true
	}
	return b.appendManSteps(moves, sq, p.Color()), false
}

// appendManCaptures adds jumps over an adjacent opposing piece in any of the
// four directions, backward included.
func (b Board) appendManCaptures(moves []Move, sq Square, us Color) []Move {
	for _, d := range Diagonals {
		over := sq.Add(d)
		to := over.Add(d)
		if !b.IsEmpty(to) {
			continue
		}
		victim := b.PieceAt(over)
		if victim != Empty && victim.Color() != us {
			moves = append(moves, NewCapture(sq, to, over))
		}
	}
	return moves
}

// appendManSteps adds the quiet steps onto the two forward diagonals.
func (b Board) appendManSteps(moves []Move, sq Square, us Color) []Move {
	dr := us.Forward()
	for _, dc := range [2]int{-1, 1} {
		to := sq.Add(Direction{DRow: dr, DCol: dc})
		if b.IsEmpty(to) {
			moves = append(moves, NewMove(sq, to))
		}
	}
	return moves
}

// appendKingCaptures walks each ray. The first occupied square decides the ray:
// an own piece blocks it, an opposing piece may be captured by landing on any
// empty square beyond it, up to the next piece or the edge.
func (b Board) appendKingCaptures(moves []Move, sq Square, us Color) []Move {
	for _, d := range Diagonals {
		victim := NoSquare
		for to := sq.Add(d); to.IsValid(); to = to.Add(d) {
			p := b[to.Row][to.Col]
			if p == Empty {
				if victim.IsValid() {
					moves = append(moves, NewCapture(sq, to, victim))
				}
				continue
			}
			if victim.IsValid() || p.Color() == us {
				break
			}
			victim = to
		}
	}
	return moves
}

// appendKingSlides adds every empty square along each ray until blocked.
func (b Board) appendKingSlides(moves []Move, sq Square) []Move {
	for _, d := range Diagonals {
		for to := sq.Add(d); b.IsEmpty(to); to = to.Add(d) {
			moves = append(moves, NewMove(sq, to))
		}
	}
	return moves
}

// Perft counts the leaf nodes of the move tree to the given depth, alternating colors
// after every move. It is the standard check of move generation.
func Perft(b Board, c Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := GenerateMoves(b, c, nil)
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for _, m := range moves.Moves {
		nodes += Perft(MakeMove(b, m), c.Other(), depth-1)
	}
	return nodes
}
