package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSQLiteFilePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "micro.db")

	b, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, b.SetItem(ctx, "todo", `[1]`))
	require.NoError(t, b.Close())

	require.ErrorIs(t, b.SetItem(ctx, "todo", "x"), ErrClosed)

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.GetItem(ctx, "todo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[1]`, v)
}

func TestSQLBackendSharedDB(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	b := NewSQLBackend(db, WithSQLTable("custom_items"))
	require.NoError(t, b.Migrate(ctx))
	require.NoError(t, b.Migrate(ctx), "migrate is idempotent")
	require.NoError(t, b.SetItem(ctx, "k", "v1"))
	require.NoError(t, b.SetItem(ctx, "k", "v2"))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM custom_items`).Scan(&n))
	require.Equal(t, 1, n)

	// Closing a backend over a caller-owned database leaves it open.
	require.NoError(t, b.Close())
	require.NoError(t, db.PingContext(ctx))
}

func TestPlaceholders(t *testing.T) {
	require.Equal(t, "?", NewSQLBackend(nil).placeholder(2))
	require.Equal(t, "$2", NewSQLBackend(nil, WithSQLDialect(DialectPostgreSQL)).placeholder(2))
}
