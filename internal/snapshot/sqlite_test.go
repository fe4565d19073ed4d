package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenSQLite(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	defer repo.Close()

	data, err := repo.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, repo.Save(ctx, DefaultKey, []byte(`{"version":1}`)))
	require.NoError(t, repo.Save(ctx, DefaultKey, []byte(`{"version":1,"resume":{}}`)))

	data, err = repo.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"resume":{}}`, string(data))

	require.NoError(t, repo.Delete(ctx, DefaultKey))
	data, err = repo.Load(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.NoError(t, repo.Delete(ctx, DefaultKey))
}

func TestSQLiteRepository_PersisterRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "snapshots.db")
	repo, err := OpenSQLite(path)
	require.NoError(t, err)

	s := populatedStore(t)
	require.NoError(t, NewPersister(repo).Save(ctx, s.State()))
	require.NoError(t, repo.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	restored, ok := Restore(ctx, reopened, DefaultKey)
	require.True(t, ok)
	assert.Equal(t, s.State().Resume, restored.Resume)
}
