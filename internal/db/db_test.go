package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countUsers(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"users", "tracked_rows"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
	}

	var idx string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_tracked_rows_user'`).Scan(&idx)
	require.NoError(t, err)
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	_, err := db.Exec(`INSERT INTO tracked_rows (id, user_name, seq, row_date, start_time, end_time, total, created_at)
		VALUES ('r1', 'ghost', 1, '1/1/2026', '08:00:00', '09:00:00', '01:00:00', 'now')`)
	assert.Error(t, err, "rows must reference an existing user")
}

func TestOpen_SetsBusyTimeout(t *testing.T) {
	db := openTestDB(t)

	var ms int
	require.NoError(t, db.QueryRow(`PRAGMA busy_timeout`).Scan(&ms))
	assert.Equal(t, 5000, ms)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trax.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.FileExists(t, path)
}

func TestInTx_CommitOnSuccess(t *testing.T) {
	db := openTestDB(t)
	tx := NewTransactor(db)

	err := tx.InTx(context.Background(), func(ctx context.Context, conn Conn) error {
		_, err := conn.ExecContext(ctx, `INSERT INTO users (name, created_at) VALUES ('alice', 'now')`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countUsers(t, db))
}

func TestInTx_RollbackOnError(t *testing.T) {
	db := openTestDB(t)
	tx := NewTransactor(db)
	boom := errors.New("deliberate failure")

	err := tx.InTx(context.Background(), func(ctx context.Context, conn Conn) error {
		if _, err := conn.ExecContext(ctx, `INSERT INTO users (name, created_at) VALUES ('bob', 'now')`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countUsers(t, db))
}

func TestInTx_RollbackOnPanic(t *testing.T) {
	db := openTestDB(t)
	tx := NewTransactor(db)

	assert.Panics(t, func() {
		_ = tx.InTx(context.Background(), func(ctx context.Context, conn Conn) error {
			_, _ = conn.ExecContext(ctx, `INSERT INTO users (name, created_at) VALUES ('carol', 'now')`)
			panic("boom")
		})
	})
	assert.Equal(t, 0, countUsers(t, db))
}
