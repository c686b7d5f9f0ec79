package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
)

func newBot(depth int) *BotPlayer {
	opts := engine.DefaultOptions()
	opts.WhiteDepth = depth
	opts.BlackDepth = depth
	opts.NoRandom = true
	return NewBotPlayer(engine.NewEngine(opts))
}

func TestMatchSelfPlay(t *testing.T) {
	g := New(Options{MaxTurns: 60})
	m := NewMatch(g, newBot(2), newBot(1))

	var moves int
	m.OnMove = func(c board.Color, mv board.Move) {
		moves++
	}

	res, err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res == Ongoing || res != g.Result() {
		t.Errorf("result = %v, game result %v", res, g.Result())
	}
	if moves != len(g.History()) {
		t.Errorf("OnMove called %d times, history has %d moves", moves, len(g.History()))
	}
	if res != Draw && g.LegalMoves().Len() != 0 {
		t.Error("game won while the loser still has moves")
	}
}

func TestMatchBotCompletesCaptureSeries(t *testing.T) {
	g := NewFromBoard(chainBoard(), board.White, Options{})
	m := NewMatch(g, newBot(2), &ScriptPlayer{})

	// Black has no script, so the match stops on black's first turn
	_, err := m.Run(context.Background())
	if !errors.Is(err, ErrNoMove) {
		t.Fatalf("got %v, want ErrNoMove", err)
	}

	hist := g.History()
	if len(hist) != 2 || !hist[0].IsCapture() || !hist[1].IsCapture() {
		t.Fatalf("history = %v, want a two-capture series", hist)
	}
	if g.SideToMove() != board.Black {
		t.Errorf("side = %v, want Black", g.SideToMove())
	}
}

func TestMatchScripted(t *testing.T) {
	g := New(Options{MaxTurns: 2})
	white := &ScriptPlayer{Moves: []board.Move{board.NewMove(sq(5, 0), sq(4, 1))}}
	black := &ScriptPlayer{Moves: []board.Move{board.NewMove(sq(2, 1), sq(3, 2))}}

	res, err := NewMatch(g, white, black).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res != Draw {
		t.Errorf("result = %v, want Draw", res)
	}
}

func TestMatchIllegalScript(t *testing.T) {
	g := New(Options{})
	white := &ScriptPlayer{Moves: []board.Move{board.NewMove(sq(5, 0), sq(3, 2))}}

	_, err := NewMatch(g, white, &ScriptPlayer{}).Run(context.Background())
	if !errors.Is(err, ErrIllegalMove) {
		t.Errorf("got %v, want ErrIllegalMove", err)
	}
}

func TestMatchCancelled(t *testing.T) {
	g := New(Options{})
	m := NewMatch(g, newBot(1), newBot(1))
	m.Delay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if len(g.History()) != 0 {
		t.Error("moves played after cancellation")
	}
}
