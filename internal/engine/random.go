package engine

import (
	"math/rand"
	"time"
)

// Source supplies the randomness of the search: move-order shuffles and
// tie-breaks. It is not safe for concurrent use; parallel branches derive their own.
type Source interface {
	Shuffle(n int, swap func(i, j int))
	Intn(n int) int
	Uint64() uint64
}

// NewSource returns a deterministic source: the same seed reproduces the same choices.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}

// NewGameSource returns the source used for play. With noRandom set it is seeded
// with 0 so every game repeats; otherwise it is seeded from the clock.
func NewGameSource(noRandom bool) Source {
	if noRandom {
		return NewSource(0)
	}
	return NewSource(time.Now().UnixNano())
}

// derive returns a new independent source seeded from src.
func derive(src Source) Source {
	return NewSource(int64(src.Uint64()))
}
