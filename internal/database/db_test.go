package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndEnsureSchema(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db))
	// running it twice must be harmless
	require.NoError(t, EnsureSchema(ctx, db))

	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients").Scan(&n))
	require.Zero(t, n)
}

func TestOpenSQLite_File(t *testing.T) {
	db, err := OpenSQLite(t.TempDir() + "/clients.db")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, EnsureSchema(context.Background(), db))
}
