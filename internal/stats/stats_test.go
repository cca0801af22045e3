package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/numberdle/internal/database"
	"github.com/robalobadob/numberdle/internal/game"
)

func rec(won bool, attempts int) Record { return Record{Won: won, Attempts: attempts} }

func TestSummarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Summary{}, Summarize(nil))
	})

	t.Run("mixed history", func(t *testing.T) {
		got := Summarize([]Record{
			rec(true, 3), rec(true, 4), rec(false, 6), rec(true, 2), rec(true, 5), rec(true, 5),
		})
		want := Summary{
			Played:        6,
			Wins:          5,
			WinRate:       0.83,
			LastSolved:    5,
			Last10Average: 3.8,
			CurrentStreak: 3,
			MaxStreak:     3,
			Distribution:  [game.MaxAttempts]int{0, 1, 1, 1, 2, 0},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("summary mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("average covers the last ten wins only", func(t *testing.T) {
		var recs []Record
		recs = append(recs, rec(true, 6), rec(true, 6))
		for i := 0; i < 10; i++ {
			recs = append(recs, rec(true, 2))
		}
		s := Summarize(recs)
		assert.Equal(t, 2.0, s.Last10Average)
		assert.Equal(t, 12, s.CurrentStreak)
	})

	t.Run("loss resets the current streak", func(t *testing.T) {
		s := Summarize([]Record{rec(true, 1), rec(true, 1), rec(false, 6)})
		assert.Zero(t, s.CurrentStreak)
		assert.Equal(t, 2, s.MaxStreak)
		assert.Equal(t, 1, s.LastSolved)
	})
}

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenMigrated(context.Background(), filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestStore_InsertHistoryRecent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, r := range []Record{
		{GameID: "g1", Mode: game.Normal, Won: true, Attempts: 4, Secret: "12345"},
		{GameID: "g2", Mode: game.Hard, Won: false, Attempts: 6, Secret: "00042"},
		{GameID: "g3", Mode: game.Ultra, Won: true, Attempts: 2, Secret: "99999", Daily: true},
	} {
		r.Owner = "alice"
		r.FinishedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.Insert(ctx, r))
	}
	require.NoError(t, s.Insert(ctx, Record{Owner: "bob", GameID: "b1", Mode: game.Normal, Won: true, Attempts: 1, Secret: "11111", FinishedAt: base}))
	// duplicate game id is ignored
	require.NoError(t, s.Insert(ctx, Record{Owner: "alice", GameID: "g1", Mode: game.Normal, Won: false, Attempts: 6, Secret: "12345", FinishedAt: base}))

	hist, err := s.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"g1", "g2", "g3"}, []string{hist[0].GameID, hist[1].GameID, hist[2].GameID})
	assert.Equal(t, game.Ultra, hist[2].Mode)
	assert.True(t, hist[2].Daily)
	assert.Equal(t, "00042", hist[1].Secret)
	assert.True(t, hist[0].FinishedAt.Equal(base))

	recent, err := s.Recent(ctx, "alice", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "g3", recent[0].GameID)

	sum, err := s.Summary(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Played)
	assert.Equal(t, 2, sum.LastSolved)
	assert.Equal(t, 1, sum.CurrentStreak)
}

func TestStore_Claim(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	now := time.Now()
	require.NoError(t, s.Insert(ctx, Record{Owner: "anon-1", GameID: "a", Mode: game.Normal, Won: true, Attempts: 3, Secret: "12345", FinishedAt: now}))
	require.NoError(t, s.Insert(ctx, Record{Owner: "anon-1", GameID: "b", Mode: game.Normal, Won: true, Attempts: 3, Secret: "12345", FinishedAt: now}))

	n, err := s.Claim(ctx, "anon-1", "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	hist, err := s.History(ctx, "anon-1")
	require.NoError(t, err)
	assert.Empty(t, hist)
	hist, err = s.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, hist, 2)

	n, err = s.Claim(ctx, "", "user-1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFromResult(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	r := FromResult("me", game.Result{GameID: "g", Mode: game.Hard, Won: true, Attempts: 3, Secret: "55555"}, true, at)
	assert.Equal(t, "me", r.Owner)
	assert.True(t, r.Daily)
	assert.Equal(t, time.UTC, r.FinishedAt.Location())
}
