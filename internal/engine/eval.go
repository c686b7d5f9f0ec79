// Package engine implements the checkers position evaluator and move search.
package engine

import (
	"fmt"

	"github.com/hailam/checkersplay/internal/board"
)

// Infinity is the score of a position in which the evaluated side has no material.
// It doubles as the "nothing found yet" bound of the search.
const Infinity = 1e9

// Evaluation constants
const (
	kingWeight          = 4    // ScoringNumber
	kingWeightPotential = 5    // ScoringNumberAndPotential
	advancementBonus    = 0.05 // per row a man has advanced
)

// ScoringMode selects the evaluation formula.
type ScoringMode int

const (
	// ScoringNumber counts material only, kings weigh 4 men.
	ScoringNumber ScoringMode = iota
	// ScoringNumberAndPotential also rewards men for advancing, kings weigh 5 men.
	ScoringNumberAndPotential
)

// String returns the configuration name of the mode.
func (m ScoringMode) String() string {
	switch m {
	case ScoringNumberAndPotential:
		return "NumberAndPotential"
	default:
		return "Number"
	}
}

// ParseScoringMode parses a scoring mode name. Any name other than
// "NumberAndPotential" selects the default material count, as an empty or
// unknown setting does.
func ParseScoringMode(s string) ScoringMode {
	if s == "NumberAndPotential" {
		return ScoringNumberAndPotential
	}
	return ScoringNumber
}

// Evaluate scores b from the perspective of color us. Lower is better for us.
// It returns 0 when the opponent has no material and Infinity when we have none;
// otherwise the ratio of the opponent's weighted material to ours.
func Evaluate(b board.Board, us board.Color, mode ScoringMode) float64 {
	var w, wk, bl, bk float64
	for row := 0; row < board.Size; row++ {
		for col := 0; col < board.Size; col++ {
			switch b[row][col] {
			case board.WhiteMan:
				w++
				if mode == ScoringNumberAndPotential {
					w += advancementBonus * float64(7-row)
				}
			case board.BlackMan:
				bl++
				if mode == ScoringNumberAndPotential {
					bl += advancementBonus * float64(row)
				}
			case board.WhiteKing:
				wk++
			case board.BlackKing:
				bk++
			}
		}
	}

	// Counts are kept black-major: own in (bl, bk), opponent in (w, wk)
	if us == board.White {
		w, bl = bl, w
		wk, bk = bk, wk
	}

	if w+wk == 0 {
		return 0
	}
	if bl+bk == 0 {
		return Infinity
	}

	k := float64(kingWeight)
	if mode == ScoringNumberAndPotential {
		k = kingWeightPotential
	}
	return (w + wk*k) / (bl + bk*k)
}

// ScoreToString formats a score for display.
func ScoreToString(score float64) string {
	switch {
	case score >= Infinity:
		return "lost"
	case score == 0:
		return "won"
	default:
		return fmt.Sprintf("%.4f", score)
	}
}
