package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
)

// Preferences stores bot and game settings.
type Preferences struct {
	WhiteBotLevel int    `json:"white_bot_level"`
	BlackBotLevel int    `json:"black_bot_level"`
	IsWhiteBot    bool   `json:"is_white_bot"`
	IsBlackBot    bool   `json:"is_black_bot"`
	ScoringType   string `json:"scoring_type"` // "Number" or "NumberAndPotential"
	NoRandom      bool   `json:"no_random"`
	BotDelayMS    int    `json:"bot_delay_ms"`
	MaxNumTurns   int    `json:"max_num_turns"`

	LastPlayed time.Time `json:"last_played"`
}

// DefaultPreferences returns default preferences
func DefaultPreferences() *Preferences {
	return &Preferences{
		WhiteBotLevel: 3,
		BlackBotLevel: 3,
		IsWhiteBot:    false,
		IsBlackBot:    true,
		ScoringType:   "NumberAndPotential",
		NoRandom:      false,
		BotDelayMS:    0,
		MaxNumTurns:   120,
	}
}

// BotDelay returns the delay between bot moves.
func (p *Preferences) BotDelay() time.Duration {
	return time.Duration(p.BotDelayMS) * time.Millisecond
}

// Outcome is the result of a finished game.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomeWhiteWin
	OutcomeBlackWin
)

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int            `json:"games_played"`
	WhiteWins     int            `json:"white_wins"`
	BlackWins     int            `json:"black_wins"`
	Draws         int            `json:"draws"`
	WinsByLevel   map[string]int `json:"wins_by_level"`
	TotalTurns    int            `json:"total_turns"`
	LongestGame   int            `json:"longest_game"`
	TotalPlayTime time.Duration  `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{
		WinsByLevel: make(map[string]int),
	}
}

// GameResult describes a completed game.
type GameResult struct {
	Outcome    Outcome
	Turns      int
	WhiteLevel int // 0 for a human player
	BlackLevel int
	Duration   time.Duration
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens or creates the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", dir, err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// get decodes the value at key into v. A missing key leaves v untouched.
func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// SavePreferences saves preferences
func (s *Storage) SavePreferences(prefs *Preferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*Preferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	if err := s.get(keyStats, stats); err != nil {
		return stats, err
	}
	if stats.WinsByLevel == nil {
		stats.WinsByLevel = make(map[string]int)
	}
	return stats, nil
}

// RecordGame records a completed game and updates statistics
func (s *Storage) RecordGame(result GameResult) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.GamesPlayed++
	stats.TotalTurns += result.Turns
	stats.TotalPlayTime += result.Duration
	if result.Turns > stats.LongestGame {
		stats.LongestGame = result.Turns
	}

	// Level key for stats, winner's level first
	switch result.Outcome {
	case OutcomeWhiteWin:
		stats.WhiteWins++
		stats.WinsByLevel[levelKey(result.WhiteLevel, result.BlackLevel)]++
	case OutcomeBlackWin:
		stats.BlackWins++
		stats.WinsByLevel[levelKey(result.BlackLevel, result.WhiteLevel)]++
	default:
		stats.Draws++
	}

	return s.SaveStats(stats)
}

func levelKey(winner, loser int) string {
	return fmt.Sprintf("%dv%d", winner, loser)
}

// AverageTurns returns the mean game length in plies.
func (s *GameStats) AverageTurns() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.GamesPlayed)
}

// WhiteWinRate returns white's win rate as a percentage (0-100)
func (s *GameStats) WhiteWinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.WhiteWins) / float64(s.GamesPlayed) * 100
}
