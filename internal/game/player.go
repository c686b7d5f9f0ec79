package game

import (
	"context"
	"errors"
	"log"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
)

// ErrNoMove is returned by a player that has nothing to play.
var ErrNoMove = errors.New("player has no move")

// Player chooses moves for one side. Think returns a sequence whose leading
// moves are played with Game.PlaySequence.
type Player interface {
	Think(ctx context.Context, g *Game) ([]board.Move, error)
}

// BotPlayer plays with the engine at the depth configured for its color.
type BotPlayer struct {
	Engine *engine.Engine
}

// NewBotPlayer creates a bot backed by eng.
func NewBotPlayer(eng *engine.Engine) *BotPlayer {
	return &BotPlayer{Engine: eng}
}

// Think searches the current position. While a capture series is pending it only
// picks the next capture. When the search finds no line, it falls back to the best
// one-ply move.
func (p *BotPlayer) Think(ctx context.Context, g *Game) ([]board.Move, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	side := g.SideToMove()
	if sq, ok := g.Pending(); ok {
		m, ok := p.Engine.FindContinuation(g.Board(), sq, side)
		if !ok {
			return nil, ErrNoMove
		}
		return []board.Move{m}, nil
	}

	seq := p.Engine.FindBestTurns(g.Board(), side)
	if len(seq) > 0 {
		return seq, nil
	}

	log.Printf("[AI] No line found for %v at depth %d, using best single move", side, p.Engine.Depth(side))
	m, ok := p.Engine.FindFirstBestTurn(g.Board(), side)
	if !ok {
		return nil, ErrNoMove
	}
	return []board.Move{m}, nil
}

// ScriptPlayer plays a fixed list of moves in order.
type ScriptPlayer struct {
	Moves []board.Move
	next  int
}

// Think returns the next scripted move.
func (p *ScriptPlayer) Think(ctx context.Context, g *Game) ([]board.Move, error) {
	if p.next >= len(p.Moves) {
		return nil, ErrNoMove
	}
	m := p.Moves[p.next]
	p.next++
	return []board.Move{m}, nil
}
