// Package protocol implements a line-based text protocol for driving the engine,
// in the spirit of UCI.
package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/game"
)

var errQuit = errors.New("quit")

// Protocol reads commands from in and writes responses to out.
// Diagnostics go to errOut.
//
// A side marked as a bot plays automatically while the other side is human:
// each human move is answered with a "botmove" line.
type Protocol struct {
	engine   *engine.Engine
	bot      *game.BotPlayer
	game     *game.Game
	maxTurns int
	bots     [2]bool // indexed by board.Color

	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

// New creates a protocol handler on stdin and stdout.
func New(eng *engine.Engine, maxTurns int) *Protocol {
	p := &Protocol{
		engine:   eng,
		bot:      game.NewBotPlayer(eng),
		maxTurns: maxTurns,
		in:       os.Stdin,
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	p.game = game.New(game.Options{MaxTurns: maxTurns})
	return p
}

// SetIO replaces the input and output streams.
func (p *Protocol) SetIO(in io.Reader, out, errOut io.Writer) {
	p.in = in
	p.out = out
	p.errOut = errOut
}

// SetBots marks which sides the engine plays.
func (p *Protocol) SetBots(white, black bool) {
	p.bots[board.White] = white
	p.bots[board.Black] = black
}

// Game returns the current game.
func (p *Protocol) Game() *game.Game {
	return p.game
}

// Run processes commands until "quit" or the end of input.
func (p *Protocol) Run() error {
	scanner := bufio.NewScanner(p.in)

	for scanner.Scan() {
		if err := p.Execute(scanner.Text()); err == errQuit {
			return nil
		}
	}
	return scanner.Err()
}

// Execute handles a single command line. Command failures are reported on out
// as "error ..." lines; only quit is returned.
func (p *Protocol) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	parts := strings.Fields(line)
	cmd := parts[0]
	args := parts[1:]

	var err error
	switch cmd {
	case "isready":
		p.println("readyok")
	case "newgame":
		p.game = game.New(game.Options{MaxTurns: p.maxTurns})
		err = p.playBots()
	case "position":
		err = p.handlePosition(args)
	case "moves":
		p.handleMoves()
	case "play":
		err = p.handlePlay(args)
	case "go":
		err = p.handleGo(args)
	case "best":
		p.handleBest()
	case "eval":
		p.handleEval()
	case "undo":
		err = p.handleUndo()
	case "setoption":
		err = p.handleSetOption(args)
	case "quit":
		return errQuit
	// Debug commands
	case "d":
		p.handleDisplay()
	case "perft":
		err = p.handlePerft(args)
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		p.println("error " + err.Error())
	}
	return nil
}

func (p *Protocol) println(s string) {
	fmt.Fprintln(p.out, s)
}

// handlePosition sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves c3-d4 f6-e5
//   - position <notation> [w|b]
//   - position <notation> [w|b] moves ...
func (p *Protocol) handlePosition(args []string) error {
	if len(args) == 0 {
		return errors.New("position: missing board")
	}

	var b board.Board
	if args[0] == "startpos" {
		b = board.NewBoard()
	} else {
		var err error
		if b, err = board.ParseBoard(args[0]); err != nil {
			return err
		}
	}
	args = args[1:]

	side := board.White
	if len(args) > 0 && args[0] != "moves" {
		c, ok := board.ParseColor(args[0])
		if !ok {
			return fmt.Errorf("position: invalid side %q", args[0])
		}
		side = c
		args = args[1:]
	}

	g := game.NewFromBoard(b, side, game.Options{MaxTurns: p.maxTurns})
	if len(args) > 0 && args[0] == "moves" {
		if err := playAll(g, args[1:]); err != nil {
			return err
		}
	}

	p.game = g
	return p.playBots()
}

func playAll(g *game.Game, moves []string) error {
	for _, s := range moves {
		m, err := board.ParseMove(s)
		if err != nil {
			return err
		}
		if err := g.Play(m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Protocol) handleMoves() {
	legal := p.game.LegalMoves()
	p.println(strings.TrimSpace("moves " + strings.Join(legal.Strings(), " ")))
}

func (p *Protocol) handlePlay(args []string) error {
	if len(args) == 0 {
		return errors.New("play: missing move")
	}
	if err := playAll(p.game, args); err != nil {
		return err
	}
	if err := p.playBots(); err != nil {
		return err
	}
	if p.game.IsOver() {
		p.println("result " + p.game.Result().String())
	}
	return nil
}

// botToMove returns true when the side to move is a bot facing a human.
func (p *Protocol) botToMove() bool {
	side := p.game.SideToMove()
	return p.bots[side] && !p.bots[side.Other()]
}

// playBots plays the bot's plies, capture series included, until a human is to move.
func (p *Protocol) playBots() error {
	g := p.game
	for !g.IsOver() && p.botToMove() {
		turn := g.Turn()
		var played []board.Move
		for !g.IsOver() && g.Turn() == turn {
			seq, err := p.bot.Think(context.Background(), g)
			if err != nil {
				return err
			}
			n := len(g.History())
			if _, err := g.PlaySequence(seq); err != nil {
				return err
			}
			played = append(played, g.History()[n:]...)
		}
		p.println("botmove " + strings.Join(moveStrings(played), " "))
	}
	return nil
}

// handleUndo takes back the last move. Against a bot its reply is taken back
// together with the human move before it.
func (p *Protocol) handleUndo() error {
	if err := p.game.Undo(); err != nil {
		return err
	}
	if p.botToMove() {
		if err := p.game.Undo(); err != nil && !errors.Is(err, game.ErrNothingToUndo) {
			return err
		}
	}
	return p.playBots()
}

// handleGo searches the current position for the side to move.
// Format: go [depth N]
func (p *Protocol) handleGo(args []string) error {
	g := p.game
	if g.IsOver() {
		return game.ErrGameOver
	}

	side := g.SideToMove()
	depth := p.engine.Depth(side)
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				d, err := strconv.Atoi(args[i+1])
				if err != nil || d < 0 {
					return fmt.Errorf("go: invalid depth %q", args[i+1])
				}
				depth = d
				i++
			}
		}
	}

	// A pending capture series is finished one capture at a time
	if sq, ok := g.Pending(); ok {
		m, ok := p.engine.FindContinuation(g.Board(), sq, side)
		if !ok {
			p.println("bestmove 0000")
			return nil
		}
		p.println("bestmove " + m.String())
		return nil
	}

	p.engine.OnInfo = p.sendInfo
	defer func() { p.engine.OnInfo = nil }()

	res := p.engine.Search(g.Board(), side, depth)
	if len(res.Moves) > 0 {
		p.println("bestseq " + strings.Join(moveStrings(res.Moves), " "))
		p.println("bestmove " + res.Moves[0].String())
		return nil
	}

	// No line found: fall back to the best single move
	if m, ok := p.engine.FindFirstBestTurn(g.Board(), side); ok {
		p.println("bestmove " + m.String())
		return nil
	}
	p.println("bestmove 0000")
	return nil
}

func (p *Protocol) handleBest() {
	g := p.game
	side := g.SideToMove()
	if sq, ok := g.Pending(); ok {
		if m, ok := p.engine.FindContinuation(g.Board(), sq, side); ok {
			p.println("bestmove " + m.String())
			return
		}
	} else if m, ok := p.engine.FindFirstBestTurn(g.Board(), side); ok {
		p.println("bestmove " + m.String())
		return
	}
	p.println("bestmove 0000")
}

func (p *Protocol) handleEval() {
	g := p.game
	score := p.engine.Evaluate(g.Board(), g.SideToMove())
	p.println("score " + engine.ScoreToString(score))
}

func (p *Protocol) handleDisplay() {
	g := p.game
	p.println(g.Board().String())
	p.println("Notation: " + g.Board().Notation())
	p.println(fmt.Sprintf("Side: %v  Turn: %d/%d  Result: %v", g.SideToMove(), g.Turn(), g.MaxTurns(), g.Result()))
	if sq, ok := g.Pending(); ok {
		p.println("Pending: " + sq.String())
	}

	var origins []string
	for _, sq := range g.LegalMoves().Origins() {
		origins = append(origins, sq.String())
	}
	p.println(strings.TrimSpace("Movable: " + strings.Join(origins, " ")))
}

// sendInfo outputs search info.
func (p *Protocol) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))
	parts = append(parts, "score "+engine.ScoreToString(info.Score))
	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	if len(info.PV) > 0 {
		parts = append(parts, "pv "+strings.Join(moveStrings(info.PV), " "))
	}

	p.println("info " + strings.Join(parts, " "))
}

func moveStrings(moves []board.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

// handleSetOption processes "setoption" commands.
func (p *Protocol) handleSetOption(args []string) error {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	// Handle options
	switch strings.ToLower(name) {
	case "whitebotlevel", "whitedepth":
		d, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("setoption %s: %w", name, err)
		}
		p.engine.SetDepth(board.White, d)
	case "blackbotlevel", "blackdepth":
		d, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("setoption %s: %w", name, err)
		}
		p.engine.SetDepth(board.Black, d)
	case "botscoringtype", "scoringtype":
		p.engine.SetScoringMode(engine.ParseScoringMode(value))
	case "norandom":
		p.engine.SetNoRandom(strings.ToLower(value) == "true")
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("setoption %s: invalid value %q", name, value)
		}
		p.engine.SetWorkers(n)
	case "iswhitebot", "isblackbot":
		c := board.White
		if strings.ToLower(name) == "isblackbot" {
			c = board.Black
		}
		p.bots[c] = strings.ToLower(value) == "true"
		return p.playBots()
	case "maxnumturns":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("setoption %s: invalid value %q", name, value)
		}
		p.maxTurns = n
		fmt.Fprintf(p.errOut, "info string MaxNumTurns %d applies from the next game\n", n)
	default:
		return fmt.Errorf("unknown option: %s", name)
	}
	return nil
}

// handlePerft runs a perft test.
func (p *Protocol) handlePerft(args []string) error {
	depth := 5
	if len(args) > 0 {
		d, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("perft: invalid depth %q", args[0])
		}
		depth = d
	}

	g := p.game
	start := time.Now()
	nodes := p.engine.Perft(g.Board(), g.SideToMove(), depth)
	elapsed := time.Since(start)

	p.println(fmt.Sprintf("Nodes: %d", nodes))
	p.println(fmt.Sprintf("Time: %v", elapsed))
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		p.println(fmt.Sprintf("NPS: %.0f", nps))
	}
	return nil
}
