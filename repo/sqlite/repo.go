// Package sqlite provides a role event history backed by a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"github.com/mktierney/rolecall"
)

//go:embed schema.sql
var schema string

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) (*Repository, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &Repository{
		db: db,
	}, nil
}

func (r *Repository) Record(ctx context.Context, entry rolecall.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO role_events (guild_id, user_id, role, action, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.GuildID, entry.UserID, entry.Role, entry.Action, entry.At)
	return err
}

func (r *Repository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM role_events WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
