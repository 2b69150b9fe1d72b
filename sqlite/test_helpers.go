package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// NewTestStore returns an in-memory SqlStore with all migrations applied,
// closed automatically when the test finishes.
func NewTestStore(t *testing.T) *SqlStore {
	t.Helper()

	store, err := NewSqlStore(InmemPath, zaptest.NewLogger(t))
	require.NoError(t, err, "unable to open in-memory database")
	t.Cleanup(func() { store.Close() })

	require.NoError(t, NewMigrator(store, zaptest.NewLogger(t)).Up(context.Background(), Migrations))

	return store
}
