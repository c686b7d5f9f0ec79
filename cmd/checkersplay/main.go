package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"time"

	"github.com/hailam/checkersplay/internal/board"
	"github.com/hailam/checkersplay/internal/engine"
	"github.com/hailam/checkersplay/internal/game"
	"github.com/hailam/checkersplay/internal/protocol"
	"github.com/hailam/checkersplay/internal/storage"
)

var (
	settingsPath = flag.String("settings", "", "settings.json to load (default: settings.json in the data directory, if present)")
	dbDir        = flag.String("db", "", "database directory (default: platform data directory)")
	noDB         = flag.Bool("nodb", false, "do not open the preferences database")
	selfPlay     = flag.Int("selfplay", 0, "play this many bot-vs-bot games instead of reading commands")
	workers      = flag.Int("workers", 1, "goroutines used for root moves")
	cpuprofile   = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	store := openStorage()
	if store != nil {
		defer store.Close()
	}

	prefs := loadPreferences(store)
	eng := engine.NewEngine(engineOptions(prefs))

	if *selfPlay > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		runSelfPlay(ctx, eng, prefs, store, *selfPlay)
		return
	}

	// Create and run protocol handler
	p := protocol.New(eng, prefs.MaxNumTurns)
	p.SetBots(prefs.IsWhiteBot, prefs.IsBlackBot)
	if err := p.Run(); err != nil {
		log.Printf("Input error: %v", err)
	}
}

func openStorage() *storage.Storage {
	if *noDB {
		return nil
	}

	var store *storage.Storage
	var err error
	if *dbDir != "" {
		store, err = storage.Open(*dbDir)
	} else {
		store, err = storage.NewStorage()
	}
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
		return nil
	}
	return store
}

// loadPreferences layers stored preferences, then the settings file.
func loadPreferences(store *storage.Storage) *storage.Preferences {
	prefs := storage.DefaultPreferences()
	if store != nil {
		stored, err := store.LoadPreferences()
		if err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			prefs = stored
		}
	}

	path := *settingsPath
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = storage.GetSettingsPath(); err != nil {
			return prefs
		}
	}

	err := storage.ApplySettingsFile(path, prefs)
	switch {
	case err == nil:
		log.Printf("Settings loaded from %s", path)
		if store != nil {
			if err := store.SavePreferences(prefs); err != nil {
				log.Printf("Warning: Failed to save preferences: %v", err)
			}
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// No settings file in the data directory
	default:
		log.Printf("Warning: Failed to load settings: %v", err)
	}
	return prefs
}

func engineOptions(prefs *storage.Preferences) engine.Options {
	opts := engine.DefaultOptions()
	opts.WhiteDepth = prefs.WhiteBotLevel
	opts.BlackDepth = prefs.BlackBotLevel
	opts.Scoring = engine.ParseScoringMode(prefs.ScoringType)
	opts.NoRandom = prefs.NoRandom
	opts.Workers = *workers
	return opts
}

func runSelfPlay(ctx context.Context, eng *engine.Engine, prefs *storage.Preferences, store *storage.Storage, games int) {
	eng.OnInfo = func(info engine.SearchInfo) {
		log.Printf("[AI] %v depth=%d score=%s nodes=%d time=%v",
			info.Color, info.Depth, engine.ScoreToString(info.Score), info.Nodes, info.Time.Round(time.Millisecond))
	}
	bot := game.NewBotPlayer(eng)

	for i := 0; i < games; i++ {
		g := game.New(game.Options{MaxTurns: prefs.MaxNumTurns})
		m := game.NewMatch(g, bot, bot)
		m.Delay = prefs.BotDelay()
		m.OnMove = func(c board.Color, mv board.Move) {
			log.Printf("[GAME] %v plays %v", c, mv)
		}

		start := time.Now()
		res, err := m.Run(ctx)
		if err != nil {
			log.Printf("[GAME] %s stopped: %v", g.ID, err)
			return
		}
		log.Printf("[GAME] game %d/%d: %v in %d turns", i+1, games, res, g.Turn())

		if store == nil {
			continue
		}
		err = store.RecordGame(storage.GameResult{
			Outcome:    outcome(res),
			Turns:      g.Turn(),
			WhiteLevel: eng.Depth(board.White),
			BlackLevel: eng.Depth(board.Black),
			Duration:   time.Since(start),
		})
		if err != nil {
			log.Printf("Warning: Failed to record game: %v", err)
		}
	}

	if store != nil {
		if stats, err := store.LoadStats(); err == nil {
			log.Printf("Stats: %d games, white %d, black %d, draws %d, %.1f turns on average",
				stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws, stats.AverageTurns())
		}
	}
}

func outcome(r game.Result) storage.Outcome {
	switch r {
	case game.WhiteWins:
		return storage.OutcomeWhiteWin
	case game.BlackWins:
		return storage.OutcomeBlackWin
	default:
		return storage.OutcomeDraw
	}
}
