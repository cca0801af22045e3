package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	db, err := Open(filepath.Join(t.TempDir(), "nested", "n.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	first, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_daily.sql"}, first)

	second, err := Migrate(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, second)

	for _, table := range []string{"users", "results", "daily_results"} {
		var name string
		err := db.QueryRowContext(ctx,
			`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		assert.NoError(t, err, table)
	}
}

func TestSelfManaged(t *testing.T) {
	assert.True(t, selfManaged("begin transaction; create table x(a); commit;"))
	assert.True(t, selfManaged("PRAGMA foreign_keys = OFF;"))
	assert.False(t, selfManaged("CREATE TABLE x(a);"))
}
