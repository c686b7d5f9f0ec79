package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) (*Storage, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, dir
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.WhiteBotLevel != 3 || prefs.BlackBotLevel != 3 {
			t.Errorf("Expected bot levels 3/3, got %d/%d", prefs.WhiteBotLevel, prefs.BlackBotLevel)
		}
		if prefs.IsWhiteBot || !prefs.IsBlackBot {
			t.Errorf("Expected a human white player against a black bot")
		}
		if prefs.MaxNumTurns != 120 {
			t.Errorf("Expected 120 max turns, got %d", prefs.MaxNumTurns)
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.WhiteWinRate() != 0 || stats.AverageTurns() != 0 {
			t.Errorf("Expected zero rates for no games")
		}
	})

	t.Run("WinRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			WhiteWins:   5,
			BlackWins:   3,
			Draws:       2,
			TotalTurns:  450,
		}
		if rate := stats.WhiteWinRate(); rate != 50 {
			t.Errorf("Expected 50%% win rate, got %.2f%%", rate)
		}
		if avg := stats.AverageTurns(); avg != 45 {
			t.Errorf("Expected 45 average turns, got %.2f", avg)
		}
	})
}

func TestPreferencesMissingKey(t *testing.T) {
	s, _ := openTemp(t)
	defer s.Close()

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	want := DefaultPreferences()
	if prefs.WhiteBotLevel != want.WhiteBotLevel || prefs.ScoringType != want.ScoringType {
		t.Errorf("Expected defaults, got %+v", prefs)
	}
}

func TestPreferencesPersist(t *testing.T) {
	s, dir := openTemp(t)

	prefs := DefaultPreferences()
	prefs.WhiteBotLevel = 5
	prefs.IsWhiteBot = true
	prefs.NoRandom = true
	prefs.ScoringType = "Number"
	prefs.BotDelayMS = 250
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.WhiteBotLevel != 5 || !got.IsWhiteBot || !got.NoRandom || got.ScoringType != "Number" {
		t.Errorf("Preferences not restored: %+v", got)
	}
	if got.BotDelay() != 250*time.Millisecond {
		t.Errorf("Expected 250ms delay, got %v", got.BotDelay())
	}
	if got.LastPlayed.IsZero() {
		t.Errorf("Expected LastPlayed to be set")
	}
}

func TestRecordGame(t *testing.T) {
	s, _ := openTemp(t)
	defer s.Close()

	results := []GameResult{
		{Outcome: OutcomeWhiteWin, Turns: 40, WhiteLevel: 4, BlackLevel: 2, Duration: time.Second},
		{Outcome: OutcomeBlackWin, Turns: 60, WhiteLevel: 4, BlackLevel: 2, Duration: time.Second},
		{Outcome: OutcomeDraw, Turns: 120, WhiteLevel: 3, BlackLevel: 3, Duration: time.Second},
		{Outcome: OutcomeWhiteWin, Turns: 20, WhiteLevel: 4, BlackLevel: 2, Duration: time.Second},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.GamesPlayed != 4 || stats.WhiteWins != 2 || stats.BlackWins != 1 || stats.Draws != 1 {
		t.Errorf("Unexpected counts: %+v", stats)
	}
	if stats.WinsByLevel["4v2"] != 2 || stats.WinsByLevel["2v4"] != 1 {
		t.Errorf("Unexpected wins by level: %v", stats.WinsByLevel)
	}
	if stats.LongestGame != 120 || stats.TotalTurns != 240 {
		t.Errorf("Expected longest 120 and total 240, got %d and %d", stats.LongestGame, stats.TotalTurns)
	}
	if stats.TotalPlayTime != 4*time.Second {
		t.Errorf("Expected 4s play time, got %v", stats.TotalPlayTime)
	}
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	data := `{
		"WindowSize": {"Width": 0, "Hight": 0},
		"Bot": {
			"IsWhiteBot": true,
			"IsBlackBot": true,
			"WhiteBotLevel": 1,
			"BlackBotLevel": 4,
			"BotScoringType": "Number",
			"BotDelayMS": 10,
			"NoRandom": true,
			"Optimization": "O0"
		},
		"Game": {"MaxNumTurns": 80}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	prefs, err := LoadSettingsFile(path)
	if err != nil {
		t.Fatalf("LoadSettingsFile: %v", err)
	}
	if !prefs.IsWhiteBot || !prefs.IsBlackBot || !prefs.NoRandom {
		t.Errorf("Bot flags not loaded: %+v", prefs)
	}
	if prefs.WhiteBotLevel != 1 || prefs.BlackBotLevel != 4 || prefs.BotDelayMS != 10 {
		t.Errorf("Bot numbers not loaded: %+v", prefs)
	}
	if prefs.ScoringType != "Number" || prefs.MaxNumTurns != 80 {
		t.Errorf("Scoring or turns not loaded: %+v", prefs)
	}
}

func TestApplySettingsFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"Bot": {"BlackBotLevel": 6}}`), 0644); err != nil {
		t.Fatal(err)
	}

	prefs := DefaultPreferences()
	prefs.WhiteBotLevel = 2
	if err := ApplySettingsFile(path, prefs); err != nil {
		t.Fatalf("ApplySettingsFile: %v", err)
	}
	if prefs.BlackBotLevel != 6 || prefs.WhiteBotLevel != 2 || prefs.MaxNumTurns != 120 {
		t.Errorf("Expected only the black level to change, got %+v", prefs)
	}
}

func TestLoadSettingsFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadSettingsFile(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("Expected a not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"Bot": `), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettingsFile(bad); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	// Test that GetDataDir returns a valid path
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	settings, err := GetSettingsPath()
	if err != nil {
		t.Fatalf("GetSettingsPath failed: %v", err)
	}
	if filepath.Dir(settings) != dataDir {
		t.Errorf("Settings file %s is outside %s", settings, dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}
