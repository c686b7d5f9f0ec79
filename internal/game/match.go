package game

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hailam/checkersplay/internal/board"
)

// Match runs a game between two players.
type Match struct {
	Game  *Game
	White Player
	Black Player

	// Delay is waited before every move, captures of a series included.
	Delay time.Duration

	// Callbacks
	OnMove func(board.Color, board.Move)
}

// NewMatch creates a match on g.
func NewMatch(g *Game, white, black Player) *Match {
	return &Match{Game: g, White: white, Black: black}
}

// Run plays until the game ends or ctx is cancelled.
func (m *Match) Run(ctx context.Context) (Result, error) {
	g := m.Game
	start := time.Now()
	log.Printf("[GAME] %s started, %v to move", g.ID, g.SideToMove())

	for !g.IsOver() {
		side := g.SideToMove()
		player := m.White
		if side == board.Black {
			player = m.Black
		}

		seq, err := player.Think(ctx, g)
		if err != nil {
			return g.Result(), fmt.Errorf("%v: %w", side, err)
		}
		if len(seq) == 0 {
			return g.Result(), fmt.Errorf("%v: %w", side, ErrNoMove)
		}

		if err := m.wait(ctx); err != nil {
			return g.Result(), err
		}

		history := len(g.History())
		n, err := g.PlaySequence(seq)
		for _, mv := range g.History()[history:] {
			if m.OnMove != nil {
				m.OnMove(side, mv)
			}
		}
		if err != nil {
			return g.Result(), fmt.Errorf("%v played %v: %w", side, seq[n], err)
		}
	}

	log.Printf("[GAME] %s finished after %d turns: %v (%v)",
		g.ID, g.Turn(), g.Result(), time.Since(start).Round(time.Millisecond))
	return g.Result(), nil
}

func (m *Match) wait(ctx context.Context) error {
	if m.Delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(m.Delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
