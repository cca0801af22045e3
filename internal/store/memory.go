// internal/store/memory.go
//
// In-memory home for live game sessions.
// Games only live while they are being played; finished games are handed to
// the stats package and can be evicted.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID together with their owner.
//   - Concurrency-safe via RWMutex; Update runs a mutation under the write lock,
//     so one game is never mutated by two requests at once.
//   - Idle games older than the configured TTL are dropped by Sweep.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/numberdle/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("game not found")

// Store defines the persistence interface for live game sessions.
type Store interface {
	// Save persists or replaces a game for owner.
	Save(ctx context.Context, owner string, g *game.Game) error

	// Get retrieves a game by ID together with its owner.
	Get(ctx context.Context, id string) (*game.Game, string, error)

	// Update runs fn on the stored game while holding exclusive access to it.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete drops a game. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error
}

type entry struct {
	game    *game.Game
	owner   string
	touched time.Time
}

// Memory is an in-memory map-based Store implementation.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*entry
	now   func() time.Time
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]*entry), now: time.Now}
}

func (m *Memory) Save(ctx context.Context, owner string, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{game: g, owner: owner, touched: m.now()}
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*game.Game, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e.game, e.owner, nil
	}
	return nil, "", ErrNotFound
}

func (m *Memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.game)
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// Sweep drops games not touched within ttl and returns how many went.
func (m *Memory) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.touched.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}

// Len reports how many games are held.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
