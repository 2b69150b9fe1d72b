package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	t.Parallel()

	store := NewTestStore(t)

	v, err := store.userVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	tables, err := store.tableNames()
	require.NoError(t, err)
	assert.Contains(t, tables, "flavors")
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()

	store := NewTestStore(t)

	// a second Up must not attempt to re-run applied scripts
	require.NoError(t, NewMigrator(store, store.log).Up(context.Background(), Migrations))

	v, err := store.userVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestFlush(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewTestStore(t)

	err := store.execTrans(ctx, `INSERT INTO flavors (id, name, extension_id) VALUES ("0000000000000001", "Forum", "org.xwiki.contrib:forum-flavor")`)
	require.NoError(t, err)

	var count int
	require.NoError(t, store.DB.Get(&count, `SELECT COUNT(*) FROM flavors`))
	require.Equal(t, 1, count)

	store.Flush(ctx)

	require.NoError(t, store.DB.Get(&count, `SELECT COUNT(*) FROM flavors`))
	assert.Equal(t, 0, count)
}
