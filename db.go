package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/numberdle/internal/database"
)

// openDB opens the configured SQLite file and applies pending migrations.
func openDB(ctx context.Context) (*sql.DB, error) {
	db, err := database.OpenMigrated(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("database %s: %w", cfg.Database.Path, err)
	}
	log.Debug().Str("path", cfg.Database.Path).Msg("database ready")
	return db, nil
}
