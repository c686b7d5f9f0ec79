package storage

import (
	"encoding/json"
	"fmt"
	"os"
)

// settingsFile mirrors settings.json. Fields left out of the file keep their
// current value; unknown sections are ignored.
type settingsFile struct {
	Bot struct {
		IsWhiteBot     *bool   `json:"IsWhiteBot"`
		IsBlackBot     *bool   `json:"IsBlackBot"`
		WhiteBotLevel  *int    `json:"WhiteBotLevel"`
		BlackBotLevel  *int    `json:"BlackBotLevel"`
		BotScoringType *string `json:"BotScoringType"`
		BotDelayMS     *int    `json:"BotDelayMS"`
		NoRandom       *bool   `json:"NoRandom"`
	} `json:"Bot"`
	Game struct {
		MaxNumTurns *int `json:"MaxNumTurns"`
	} `json:"Game"`
}

// LoadSettingsFile reads a settings.json file on top of the default preferences.
func LoadSettingsFile(path string) (*Preferences, error) {
	prefs := DefaultPreferences()
	if err := ApplySettingsFile(path, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// ApplySettingsFile overrides prefs with the values present in a settings.json file:
//
//	{"Bot": {"IsWhiteBot": false, "WhiteBotLevel": 3, "BotScoringType": "NumberAndPotential", ...},
//	 "Game": {"MaxNumTurns": 120}}
func ApplySettingsFile(path string, prefs *Preferences) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var f settingsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	setBool(&prefs.IsWhiteBot, f.Bot.IsWhiteBot)
	setBool(&prefs.IsBlackBot, f.Bot.IsBlackBot)
	setBool(&prefs.NoRandom, f.Bot.NoRandom)
	setInt(&prefs.WhiteBotLevel, f.Bot.WhiteBotLevel)
	setInt(&prefs.BlackBotLevel, f.Bot.BlackBotLevel)
	setInt(&prefs.BotDelayMS, f.Bot.BotDelayMS)
	setInt(&prefs.MaxNumTurns, f.Game.MaxNumTurns)
	if f.Bot.BotScoringType != nil {
		prefs.ScoringType = *f.Bot.BotScoringType
	}
	return nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
