// Package stats records finished games and summarises a player's history.
package stats

import (
	"math"

	"github.com/robalobadob/numberdle/internal/game"
)

// recentWindow is how many solved games feed the rolling average.
const recentWindow = 10

// Summary is the per-player aggregate shown after a game.
type Summary struct {
	Played        int     `json:"played"`
	Wins          int     `json:"wins"`
	WinRate       float64 `json:"winRate"`
	LastSolved    int     `json:"lastSolved,omitempty"`
	Last10Average float64 `json:"last10Average,omitempty"`
	CurrentStreak int     `json:"currentStreak"`
	MaxStreak     int     `json:"maxStreak"`
	// Distribution[i] counts wins that took i+1 guesses.
	Distribution [game.MaxAttempts]int `json:"distribution"`
}

// Summarize folds records, oldest first, into a Summary.
// LastSolved and Last10Average stay zero until the first win.
func Summarize(records []Record) Summary {
	var s Summary
	var solved []int
	streak := 0
	for _, r := range records {
		s.Played++
		if !r.Won {
			streak = 0
			continue
		}
		s.Wins++
		streak++
		s.MaxStreak = max(s.MaxStreak, streak)
		if r.Attempts >= 1 && r.Attempts <= game.MaxAttempts {
			s.Distribution[r.Attempts-1]++
		}
		solved = append(solved, r.Attempts)
	}
	s.CurrentStreak = streak
	if s.Played > 0 {
		s.WinRate = round2(float64(s.Wins) / float64(s.Played))
	}
	if n := len(solved); n > 0 {
		s.LastSolved = solved[n-1]
		window := solved[max(0, n-recentWindow):]
		sum := 0
		for _, a := range window {
			sum += a
		}
		s.Last10Average = round2(float64(sum) / float64(len(window)))
	}
	return s
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
