// internal/game/engine.go
//
// Game session for a single Numberdle game.
// Responsibilities:
//   - Create games with a fixed secret and mode.
//   - Per guess: format check → mode rules → score → record → hints → win/loss.
//   - Expose read-only views of history, status and (once over) the secret.
//
// Notes:
//   - A Game is owned by one caller at a time and does no locking.
//   - The constraint summary is recomputed from history after each guess.
package game

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Game holds the state of a single session.
type Game struct {
	ID        string
	Mode      Mode
	CreatedAt time.Time

	secret  string
	history []GuessRecord
	summary Summary
	status  Status
}

// Turn is what a caller gets back for an accepted guess.
type Turn struct {
	Round     int      `json:"round"`
	Feedback  Feedback `json:"feedback"`
	Hints     []string `json:"hints"`
	Status    Status   `json:"status"`
	Remaining int      `json:"remaining"`
}

// Result is the end-of-game record handed to statistics.
type Result struct {
	GameID   string `json:"gameId"`
	Mode     Mode   `json:"mode"`
	Won      bool   `json:"won"`
	Attempts int    `json:"attempts"`
	Secret   string `json:"secret"`
}

// New constructs a game. If secret is empty a random one is drawn.
func New(mode Mode, secret string) (*Game, error) {
	if secret == "" {
		secret = RandomSecret()
	}
	if !IsNumberString(secret) {
		return nil, fmt.Errorf("secret %q: %w", secret, ErrInvalidFormat)
	}
	if mode < Normal || mode > Ultra {
		return nil, fmt.Errorf("unknown mode %d", int(mode))
	}
	return &Game{
		ID:        uuid.NewString(),
		Mode:      mode,
		CreatedAt: time.Now().UTC(),
		secret:    secret,
		summary:   NewSummary(),
		status:    InProgress,
	}, nil
}

// ApplyGuess validates and scores a guess, mutating the game state.
//
// Rejections leave the game untouched and consume no attempt:
//   - ErrGameOver once the game is won or lost.
//   - ErrInvalidFormat unless the guess is exactly five digits.
//   - *RuleViolation when Hard/Ultra rules forbid the guess.
//
// State transitions:
//   - All tiles green → Won.
//   - Else the sixth recorded guess → Lost.
func (g *Game) ApplyGuess(candidate string) (*Turn, error) {
	if g.status.Terminal() {
		return nil, ErrGameOver
	}
	guess, err := NormalizeGuess(candidate)
	if err != nil {
		return nil, err
	}
	if len(g.history) > 0 {
		if err := Validate(g.summary, g.Mode, guess); err != nil {
			return nil, err
		}
	}

	fb := Evaluate(g.secret, guess)
	round := len(g.history) + 1
	g.history = append(g.history, GuessRecord{Round: round, Guess: guess, Feedback: fb})
	g.summary = Accumulate(g.history)

	var hints []string
	switch {
	case fb.Solved():
		g.status = Won
	default:
		hints = GenerateHints(g.secret, guess, fb, round)
		if round >= MaxAttempts {
			g.status = Lost
		}
	}

	return &Turn{
		Round:     round,
		Feedback:  fb,
		Hints:     hints,
		Status:    g.status,
		Remaining: g.Remaining(),
	}, nil
}

// GiveUp ends an in-progress game as lost.
func (g *Game) GiveUp() error {
	if g.status.Terminal() {
		return ErrGameOver
	}
	g.status = Lost
	return nil
}

// Status reports the lifecycle state.
func (g *Game) Status() Status { return g.status }

// Attempts is the number of recorded guesses.
func (g *Game) Attempts() int { return len(g.history) }

// Remaining is MaxAttempts minus the recorded guesses.
func (g *Game) Remaining() int { return MaxAttempts - len(g.history) }

// History returns a copy of the guess records.
func (g *Game) History() []GuessRecord {
	out := make([]GuessRecord, len(g.history))
	copy(out, g.history)
	return out
}

// Summary returns the constraint summary of the current history.
func (g *Game) Summary() Summary { return g.summary }

// Secret reveals the secret once the game is over.
func (g *Game) Secret() (string, bool) {
	if !g.status.Terminal() {
		return "", false
	}
	return g.secret, true
}

// Result returns the end-of-game record once the game is over.
func (g *Game) Result() (Result, bool) {
	if !g.status.Terminal() {
		return Result{}, false
	}
	return Result{
		GameID:   g.ID,
		Mode:     g.Mode,
		Won:      g.status == Won,
		Attempts: len(g.history),
		Secret:   g.secret,
	}, true
}
