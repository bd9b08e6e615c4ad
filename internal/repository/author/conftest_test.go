package author

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/crudex/internal/db"
)

// openTestDB opens a file-backed SQLite database with the author table.
func openTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "crudex.db") + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	d, err := db.Open(db.Config{Driver: db.DriverSQLite, DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, d.EnsureSchema(context.Background(), Schema(db.DriverSQLite)...))
	return d
}
