package daily

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/robalobadob/numberdle/internal/game"
)

// Result is one player's finished daily game.
type Result struct {
	OwnerID   string    `json:"ownerId"`
	Date      string    `json:"date"`
	Mode      game.Mode `json:"mode"`
	Won       bool      `json:"won"`
	Attempts  int       `json:"attempts"`
	ElapsedMs int64     `json:"elapsedMs"`
}

// Entry is a leaderboard row. Player is the username for signed-in owners
// and empty for guests; owner ids never leave the server.
type Entry struct {
	OwnerID   string    `json:"-"`
	Player    string    `json:"player,omitempty"`
	Mode      game.Mode `json:"mode"`
	Attempts  int       `json:"attempts"`
	ElapsedMs int64     `json:"elapsedMs"`
}

// Store reads and writes the daily_results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// AlreadyPlayed reports whether owner finished the daily game for date.
func (s *Store) AlreadyPlayed(ctx context.Context, ownerID, date string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM daily_results WHERE owner_id=? AND date=?`, ownerID, date,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("daily played: %w", err)
	}
	return n > 0, nil
}

// InsertResult records r. Only the first result per owner and date is kept;
// the return value reports whether r was stored.
func (s *Store) InsertResult(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO daily_results (owner_id, date, mode, won, attempts, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.OwnerID, r.Date, r.Mode.String(), r.Won, r.Attempts, r.ElapsedMs)
	if err != nil {
		return false, fmt.Errorf("insert daily result: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Leaderboard returns the winners for date, fewest attempts first, then
// fastest. A non-positive limit means 20.
func (s *Store) Leaderboard(ctx context.Context, date string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT d.owner_id, COALESCE(u.username, ''), d.mode, d.attempts, d.elapsed_ms
        FROM daily_results d
        LEFT JOIN users u ON u.id = d.owner_id
        WHERE d.date=? AND d.won=1
        ORDER BY d.attempts ASC, d.elapsed_ms ASC, d.created_at ASC
        LIMIT ?`, date, limit)
	if err != nil {
		return nil, fmt.Errorf("daily leaderboard: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		var mode string
		if err := rows.Scan(&e.OwnerID, &e.Player, &mode, &e.Attempts, &e.ElapsedMs); err != nil {
			return nil, err
		}
		if e.Mode, err = game.ParseMode(mode); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
