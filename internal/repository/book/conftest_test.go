package book

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/crudex/internal/db"
	"github.com/kailas-cloud/crudex/internal/domain/library"
	"github.com/kailas-cloud/crudex/internal/repository/author"
)

// openTestDB opens a file-backed SQLite database with both tables and
// foreign keys enforced.
func openTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "crudex.db") + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)"
	d, err := db.Open(db.Config{Driver: db.DriverSQLite, DSN: dsn, MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	ctx := context.Background()
	require.NoError(t, d.EnsureSchema(ctx, author.Schema(db.DriverSQLite)...))
	require.NoError(t, d.EnsureSchema(ctx, Schema(db.DriverSQLite)...))
	return d
}

func seedAuthor(t *testing.T, d *db.DB, name string) int64 {
	t.Helper()
	id, err := author.New(d).Insert(context.Background(), library.Author{Name: name})
	require.NoError(t, err)
	return id
}
