package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robalobadob/numberdle/internal/game"
)

// timeLayout sorts lexically in SQLite.
const timeLayout = "2006-01-02T15:04:05.000Z"

// Record is one finished game.
type Record struct {
	Owner      string    `json:"-"`
	GameID     string    `json:"gameId"`
	Mode       game.Mode `json:"mode"`
	Won        bool      `json:"won"`
	Attempts   int       `json:"attempts"`
	Secret     string    `json:"secret"`
	Daily      bool      `json:"daily"`
	FinishedAt time.Time `json:"finishedAt"`
}

// FromResult builds a Record for owner from a finished game.
func FromResult(owner string, res game.Result, daily bool, at time.Time) Record {
	return Record{
		Owner:      owner,
		GameID:     res.GameID,
		Mode:       res.Mode,
		Won:        res.Won,
		Attempts:   res.Attempts,
		Secret:     res.Secret,
		Daily:      daily,
		FinishedAt: at.UTC(),
	}
}

// Store persists records in the results table.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores r. Recording the same game twice keeps the first row.
func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (game_id, owner_id, mode, won, attempts, secret, daily, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.Owner, r.Mode.String(), r.Won, r.Attempts, r.Secret, r.Daily,
		r.FinishedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert result %s: %w", r.GameID, err)
	}
	return nil
}

// History returns every record of owner, oldest first.
func (s *Store) History(ctx context.Context, owner string) ([]Record, error) {
	return s.query(ctx, `
        SELECT game_id, owner_id, mode, won, attempts, secret, daily, finished_at
        FROM results WHERE owner_id=? ORDER BY finished_at ASC, rowid ASC`, owner)
}

// Recent returns up to limit records of owner, newest first.
func (s *Store) Recent(ctx context.Context, owner string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.query(ctx, `
        SELECT game_id, owner_id, mode, won, attempts, secret, daily, finished_at
        FROM results WHERE owner_id=? ORDER BY finished_at DESC, rowid DESC LIMIT ?`, owner, limit)
}

// Summary loads owner's history and summarises it.
func (s *Store) Summary(ctx context.Context, owner string) (Summary, error) {
	recs, err := s.History(ctx, owner)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(recs), nil
}

// Claim moves every record of a guest id over to a signed-in user.
func (s *Store) Claim(ctx context.Context, anonID, userID string) (int64, error) {
	if anonID == "" || userID == "" {
		return 0, nil
	}
	res, err := s.db.ExecContext(ctx, `UPDATE results SET owner_id=? WHERE owner_id=?`, userID, anonID)
	if err != nil {
		return 0, fmt.Errorf("claim results: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		var r Record
		var mode, finished string
		if err := rows.Scan(&r.GameID, &r.Owner, &mode, &r.Won, &r.Attempts, &r.Secret, &r.Daily, &finished); err != nil {
			return nil, err
		}
		if r.Mode, err = game.ParseMode(mode); err != nil {
			return nil, fmt.Errorf("result %s: %w", r.GameID, err)
		}
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
