package board

import (
	"math/rand"
	"testing"
)

func TestInitialMoves(t *testing.T) {
	b := NewBoard()

	for _, c := range []Color{White, Black} {
		moves := GenerateMoves(b, c, nil)
		if moves.Len() != 7 {
			t.Errorf("%v: got %d moves, want 7: %v", c, moves.Len(), moves.Strings())
		}
		if moves.HaveBeats {
			t.Errorf("%v: HaveBeats set on the starting position", c)
		}
		for _, m := range moves.Moves {
			if m.IsCapture() {
				t.Errorf("%v: unexpected capture %v", c, m)
			}
		}
	}
}

func TestForcedCapture(t *testing.T) {
	var b Board
	b = b.With(NewSquare(5, 4), WhiteMan)
	b = b.With(NewSquare(4, 3), BlackMan)

	want := NewCapture(NewSquare(5, 4), NewSquare(3, 2), NewSquare(4, 3))

	t.Run("minimal board", func(t *testing.T) {
		moves := GenerateMoves(b, White, nil)
		if moves.Len() != 1 || moves.Get(0) != want {
			t.Fatalf("got %v, want [%v]", moves.Strings(), want)
		}
		if !moves.HaveBeats {
			t.Error("HaveBeats not set")
		}
	})

	t.Run("quiet moves of other pieces are dropped", func(t *testing.T) {
		// (2,1) is scanned before the capturing man, (7,0) after it
		withOthers := b.With(NewSquare(7, 0), WhiteMan).With(NewSquare(2, 1), WhiteMan)
		moves := GenerateMoves(withOthers, White, nil)
		if moves.Len() != 1 || moves.Get(0) != want {
			t.Fatalf("got %v, want [%v]", moves.Strings(), want)
		}
	})
}

func TestManCapturesBackward(t *testing.T) {
	var b Board
	b = b.With(NewSquare(3, 2), WhiteMan)
	b = b.With(NewSquare(4, 3), BlackMan)

	moves := GenerateSquareMoves(b, NewSquare(3, 2))
	want := NewCapture(NewSquare(3, 2), NewSquare(5, 4), NewSquare(4, 3))
	if !moves.HaveBeats || moves.Len() != 1 || moves.Get(0) != want {
		t.Fatalf("got %v (beats=%v), want [%v]", moves.Strings(), moves.HaveBeats, want)
	}
}

func TestManQuietMovesAreForward(t *testing.T) {
	tests := []struct {
		name  string
		piece Cell
		from  Square
		want  []Square
	}{
		{"white moves toward row 0", WhiteMan, NewSquare(4, 3), []Square{{3, 2}, {3, 4}}},
		{"black moves toward row 7", BlackMan, NewSquare(3, 2), []Square{{4, 1}, {4, 3}}},
		{"edge column has one step", WhiteMan, NewSquare(5, 0), []Square{{4, 1}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var b Board
			b = b.With(tc.from, tc.piece)
			moves := GenerateSquareMoves(b, tc.from)
			if moves.Len() != len(tc.want) {
				t.Fatalf("got %v, want %d moves", moves.Strings(), len(tc.want))
			}
			for _, to := range tc.want {
				if !moves.Contains(NewMove(tc.from, to)) {
					t.Errorf("missing move to %v in %v", to, moves.Strings())
				}
			}
		})
	}
}

func TestManCannotJumpOwnPiece(t *testing.T) {
	var b Board
	b = b.With(NewSquare(5, 4), WhiteMan)
	b = b.With(NewSquare(4, 3), WhiteMan)

	moves := GenerateSquareMoves(b, NewSquare(5, 4))
	if moves.HaveBeats {
		t.Fatalf("jump over own piece generated: %v", moves.Strings())
	}
}

func TestKingFlyingCapture(t *testing.T) {
	var b Board
	b = b.With(NewSquare(7, 0), WhiteKing)
	b = b.With(NewSquare(5, 2), BlackMan)

	moves := GenerateMoves(b, White, nil)
	if !moves.HaveBeats {
		t.Fatalf("HaveBeats not set: %v", moves.Strings())
	}

	// Every empty square behind the captured man is a landing square
	for _, to := range []Square{{4, 3}, {3, 4}, {2, 5}, {1, 6}, {0, 7}} {
		m, ok := moves.Find(NewMove(NewSquare(7, 0), to))
		if !ok {
			t.Errorf("missing capture landing on %v", to)
			continue
		}
		if m.Captured != NewSquare(5, 2) {
			t.Errorf("capture to %v removes %v, want (5,2)", to, m.Captured)
		}
	}
	if moves.Len() != 5 {
		t.Errorf("got %d captures, want 5: %v", moves.Len(), moves.Strings())
	}
}

func TestKingCaptureStopsAtNextPiece(t *testing.T) {
	var b Board
	b = b.With(NewSquare(7, 0), BlackKing)
	b = b.With(NewSquare(5, 2), WhiteMan)
	b = b.With(NewSquare(2, 5), WhiteMan)

	moves := GenerateSquareMoves(b, NewSquare(7, 0))
	if moves.Len() != 2 {
		t.Fatalf("got %v, want landings on (4,3) and (3,4)", moves.Strings())
	}
	for _, m := range moves.Moves {
		if m.Captured != NewSquare(5, 2) {
			t.Errorf("%v captures %v, want (5,2)", m, m.Captured)
		}
	}
}

func TestKingCannotCaptureTwoInARow(t *testing.T) {
	var b Board
	b = b.With(NewSquare(7, 0), WhiteKing)
	b = b.With(NewSquare(6, 1), BlackMan)
	b = b.With(NewSquare(5, 2), BlackMan)

	moves := GenerateSquareMoves(b, NewSquare(7, 0))
	if moves.HaveBeats || moves.Len() != 0 {
		t.Fatalf("got %v, want no moves", moves.Strings())
	}
}

func TestKingBlockedByOwnPiece(t *testing.T) {
	var b Board
	b = b.With(NewSquare(7, 0), WhiteKing)
	b = b.With(NewSquare(5, 2), WhiteMan)
	b = b.With(NewSquare(4, 3), BlackMan)

	moves := GenerateSquareMoves(b, NewSquare(7, 0))
	if moves.HaveBeats {
		t.Fatalf("capture through own piece: %v", moves.Strings())
	}
	if moves.Len() != 1 || !moves.Contains(NewMove(NewSquare(7, 0), NewSquare(6, 1))) {
		t.Fatalf("got %v, want only the slide to (6,1)", moves.Strings())
	}
}

func TestKingSlides(t *testing.T) {
	var b Board
	b = b.With(NewSquare(4, 3), BlackKing)

	moves := GenerateSquareMoves(b, NewSquare(4, 3))
	// 3 + 3 + 4 + 3 squares along the four rays
	if moves.Len() != 13 {
		t.Fatalf("got %d slides, want 13: %v", moves.Len(), moves.Strings())
	}
}

func TestEmptyAndForeignSquares(t *testing.T) {
	b := NewBoard()
	if got := GenerateSquareMoves(b, NewSquare(4, 1)); got.Len() != 0 {
		t.Errorf("empty square generated %v", got.Strings())
	}
	if got := GenerateColorSquareMoves(b, NewSquare(5, 0), Black); got.Len() != 0 {
		t.Errorf("white piece generated moves for black: %v", got.Strings())
	}
	if got := GenerateColorSquareMoves(b, NewSquare(5, 0), White); got.Len() != 1 {
		t.Errorf("got %v, want one move", got.Strings())
	}
}

func TestShuffleIsSeeded(t *testing.T) {
	b := NewBoard()
	a := GenerateMoves(b, White, rand.New(rand.NewSource(42)))
	c := GenerateMoves(b, White, rand.New(rand.NewSource(42)))
	for i := range a.Moves {
		if a.Moves[i] != c.Moves[i] {
			t.Fatalf("same seed gave different orders: %v vs %v", a.Strings(), c.Strings())
		}
	}
}

// TestRandomPlayouts checks the capture-only and promotion invariants on positions
// reached by random play.
func TestRandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for game := 0; game < 50; game++ {
		b := NewBoard()
		side := White
		for ply := 0; ply < 150; ply++ {
			moves := GenerateMoves(b, side, rng)
			if moves.Len() == 0 {
				break
			}

			for _, m := range moves.Moves {
				if m.IsCapture() != moves.HaveBeats {
					t.Fatalf("game %d ply %d: move %v in list with HaveBeats=%v", game, ply, m, moves.HaveBeats)
				}
			}

			b = MakeMove(b, moves.Get(rng.Intn(moves.Len())))
			for col := 0; col < Size; col++ {
				if b[0][col] == WhiteMan || b[7][col] == BlackMan {
					t.Fatalf("game %d ply %d: uncrowned man on the back rank:%s", game, ply, b)
				}
			}
			side = side.Other()
		}
	}
}

func TestPerftStartingPosition(t *testing.T) {
	b := NewBoard()

	tests := []struct {
		depth    int
		expected uint64
	}{
		{1, 7},
		{2, 49},
	}

	for _, tc := range tests {
		t.Run("", func(t *testing.T) {
			got := Perft(b, White, tc.depth)
			if got != tc.expected {
				t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
			}
		})
	}
}
