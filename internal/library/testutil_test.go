package library

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/admit/internal/migrations"
	"github.com/vmunix/admit/pkg/quality"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err, "open db")
	// Every pooled connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, migrations.Apply(context.Background(), db), "apply schema")
	return db
}

// ptr is a helper to create pointer to value
func ptr[T any](v T) *T {
	return &v
}

func qm(t *testing.T, family quality.Family, name string, rev quality.Revision) quality.Model {
	t.Helper()
	q, err := quality.Lookup(family, name)
	require.NoError(t, err)
	return quality.Model{Quality: q, Revision: rev}
}

func createTestMovie(t *testing.T, store *Store) *Item {
	t.Helper()
	it := &Item{Family: quality.FamilyMovie, Title: "Fight Club", Year: 1999}
	require.NoError(t, store.AddItem(context.Background(), it), "create test movie")
	return it
}
