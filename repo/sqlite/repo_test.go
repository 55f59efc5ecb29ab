package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mktierney/rolecall"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectExec(`CREATE TABLE`).WillReturnResult(sqlmock.NewResult(0, 0))

	repo, err := NewRepository(db)
	require.NoError(t, err)

	return repo, mock
}

func TestRecord(t *testing.T) {
	repo, mock := newTestRepository(t)

	at := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(`INSERT INTO role_events`).
		WithArgs("guild-1", "user-1", "Red", rolecall.HistoryGrant, at).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Record(context.Background(), rolecall.HistoryEntry{
		GuildID: "guild-1",
		UserID:  "user-1",
		Role:    "Red",
		Action:  rolecall.HistoryGrant,
		At:      at,
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneOlderThan(t *testing.T) {
	repo, mock := newTestRepository(t)

	cutoff := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM role_events`).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	pruned, err := repo.PruneOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), pruned)

	assert.NoError(t, mock.ExpectationsWereMet())
}
