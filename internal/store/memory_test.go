package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/numberdle/internal/game"
)

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	g, err := game.New(game.Normal, "12345")
	require.NoError(t, err)

	require.NoError(t, m.Save(ctx, "anon-1", g))
	got, owner, err := m.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Equal(t, "anon-1", owner)

	require.NoError(t, m.Delete(ctx, g.ID))
	_, _, err = m.Get(ctx, g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, m.Delete(ctx, "missing"))
}

func TestMemory_UpdateSerialisesGuesses(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	g, err := game.New(game.Normal, "00000")
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, "u", g))

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted, over := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := m.Update(ctx, g.ID, func(g *game.Game) error {
				_, err := g.ApplyGuess("11111")
				return err
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, game.ErrGameOver):
				over++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, game.MaxAttempts, accepted)
	assert.Equal(t, 20-game.MaxAttempts, over)
	assert.Equal(t, game.Lost, g.Status())

	assert.ErrorIs(t, m.Update(ctx, "missing", func(*game.Game) error { return nil }), ErrNotFound)
}

func TestMemory_Sweep(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	old, _ := game.New(game.Normal, "11111")
	require.NoError(t, m.Save(ctx, "a", old))
	now = now.Add(2 * time.Hour)
	fresh, _ := game.New(game.Normal, "22222")
	require.NoError(t, m.Save(ctx, "b", fresh))

	assert.Equal(t, 1, m.Sweep(time.Hour))
	assert.Equal(t, 1, m.Len())
	_, _, err := m.Get(ctx, fresh.ID)
	assert.NoError(t, err)
}
