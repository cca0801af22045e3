// internal/game/types.go
//
// Core type definitions for the Numberdle engine.
// Defines:
//   - Mark / Feedback: per-digit result of a guess (green/yellow/gray).
//   - Mode: ruleset deciding how strictly a guess must respect earlier feedback.
//   - Status: coarse lifecycle of a game.
//   - GuessRecord: one immutable entry of the guess history.

package game

import (
	"fmt"
	"strings"
)

const (
	// Length is the number of digits in a secret and in every guess.
	Length = 5
	// MaxAttempts is the number of guesses a player gets.
	MaxAttempts = 6
	// MaxSecret is the largest secret value (inclusive).
	MaxSecret = 99999
)

// Mark represents the evaluation result for a single digit in a guess.
//   - "green":  digit is correct and in the correct position.
//   - "yellow": digit exists in the secret but belongs elsewhere.
//   - "gray":   no unmatched copy of the digit is left in the secret.
type Mark string

const (
	Green  Mark = "green"
	Yellow Mark = "yellow"
	Gray   Mark = "gray"
)

// Feedback is the per-position result for one guess.
type Feedback [Length]Mark

// Solved reports whether every tile is green.
func (f Feedback) Solved() bool {
	for _, m := range f {
		if m != Green {
			return false
		}
	}
	return true
}

// String renders the feedback as G/Y/_ characters, handy in logs and tests.
func (f Feedback) String() string {
	var b strings.Builder
	for _, m := range f {
		switch m {
		case Green:
			b.WriteByte('G')
		case Yellow:
			b.WriteByte('Y')
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Mode selects the validation ruleset for a game.
type Mode int

const (
	Normal Mode = iota
	Hard
	Ultra
)

var modeNames = [...]string{Normal: "normal", Hard: "hard", Ultra: "ultra"}

func (m Mode) String() string {
	if m < Normal || m > Ultra {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts "normal", "hard" or "ultra" in any case. Empty means Normal.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	case "ultra":
		return Ultra, nil
	}
	return Normal, fmt.Errorf("unknown mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Status is the lifecycle state of a game.
type Status string

const (
	InProgress Status = "in_progress"
	Won        Status = "won"
	Lost       Status = "lost"
)

// Terminal reports whether no more guesses are accepted.
func (s Status) Terminal() bool { return s == Won || s == Lost }

// GuessRecord is one submitted guess and its feedback. Round is 1-based.
type GuessRecord struct {
	Round    int      `json:"round"`
	Guess    string   `json:"guess"`
	Feedback Feedback `json:"feedback"`
}
