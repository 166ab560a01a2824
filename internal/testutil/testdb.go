package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/trax/internal/db"
	"github.com/stretchr/testify/require"
)

// OpenTestDB returns a migrated in-memory trax database, closed with the test.
func OpenTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Open(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}
