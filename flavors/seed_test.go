package flavors_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xwikiorgci/application-wikiflavor/flavors"
)

const seedCatalog = `
[[flavor]]
name = "Knowledge Base"
description = "A wiki preloaded with knowledge base applications."
extension-id = "org.xwiki.contrib:kb-flavor"
version = "1.4"

[[flavor]]
name = "Forum"
extension-id = "org.xwiki.contrib:forum-flavor"
version = "2.0"
`

func writeSeedFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flavors.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
	return path
}

func TestSeed(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	log := zaptest.NewLogger(t)
	ctx := context.Background()
	path := writeSeedFile(t, seedCatalog)

	added, err := flavors.Seed(ctx, log, svc, path)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	got, err := svc.FindFlavors(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Forum", got[0].Name)
	assert.Equal(t, "org.xwiki.contrib:forum-flavor", got[0].ExtensionID)

	// seeding again is a no-op for known extension ids
	added, err = flavors.Seed(ctx, log, svc, path)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestSeedBadFile(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	log := zaptest.NewLogger(t)

	_, err := flavors.Seed(context.Background(), log, svc, writeSeedFile(t, "not [valid toml"))
	assert.Error(t, err)

	_, err = flavors.Seed(context.Background(), log, svc, filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
