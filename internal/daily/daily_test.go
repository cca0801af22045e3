package daily

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/numberdle/internal/database"
	"github.com/robalobadob/numberdle/internal/game"
)

func TestSecret(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 1, 0, time.UTC)
	s := Secret(day, "salt")
	assert.True(t, game.IsNumberString(s), s)

	// same UTC day, different clock and zone
	later := time.Date(2025, 6, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, s, Secret(later, "salt"))
	assert.Equal(t, s, Secret(later.In(time.FixedZone("E", 3*3600)), "salt"))
	assert.Equal(t, s, SecretFor("2025-06-01", "salt"))

	// other days and salts move the secret at least somewhere across a week
	distinct := map[string]bool{}
	for i := 0; i < 7; i++ {
		distinct[Secret(day.AddDate(0, 0, i), "salt")] = true
	}
	assert.Greater(t, len(distinct), 1)
	assert.NotEqual(t, s, Secret(day, "pepper"))
}

func TestDateKey(t *testing.T) {
	ts := time.Date(2025, 12, 31, 23, 30, 0, 0, time.FixedZone("W", -2*3600))
	assert.Equal(t, "2026-01-01", DateKey(ts))
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	db, err := database.OpenMigrated(ctx, filepath.Join(t.TempDir(), "daily.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := NewStore(db)
	_, err = db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at) VALUES ('bob', 'bobby', 'x', '2025-06-01T00:00:00Z')`)
	require.NoError(t, err)

	played, err := s.AlreadyPlayed(ctx, "alice", "2025-06-01")
	require.NoError(t, err)
	assert.False(t, played)

	for _, r := range []Result{
		{OwnerID: "alice", Date: "2025-06-01", Mode: game.Normal, Won: true, Attempts: 4, ElapsedMs: 1000},
		{OwnerID: "bob", Date: "2025-06-01", Mode: game.Ultra, Won: true, Attempts: 3, ElapsedMs: 9000},
		{OwnerID: "carol", Date: "2025-06-01", Mode: game.Hard, Won: true, Attempts: 4, ElapsedMs: 500},
		{OwnerID: "dave", Date: "2025-06-01", Mode: game.Normal, Won: false, Attempts: 6, ElapsedMs: 100},
		{OwnerID: "erin", Date: "2025-06-02", Mode: game.Normal, Won: true, Attempts: 1, ElapsedMs: 100},
	} {
		ok, err := s.InsertResult(ctx, r)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := s.InsertResult(ctx, Result{OwnerID: "alice", Date: "2025-06-01", Mode: game.Normal, Won: true, Attempts: 1})
	require.NoError(t, err)
	assert.False(t, ok, "one result per owner and day")

	played, err = s.AlreadyPlayed(ctx, "alice", "2025-06-01")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := s.Leaderboard(ctx, "2025-06-01", 0)
	require.NoError(t, err)
	var owners []string
	for _, e := range top {
		owners = append(owners, e.OwnerID)
	}
	assert.Equal(t, []string{"bob", "carol", "alice"}, owners)
	assert.Equal(t, game.Ultra, top[0].Mode)
	assert.Equal(t, "bobby", top[0].Player)
	assert.Empty(t, top[1].Player, "guests have no public name")

	raw, err := json.Marshal(top[0])
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"bob"`)
	assert.Contains(t, string(raw), `"player":"bobby"`)
}
