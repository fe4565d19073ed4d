//go:build integration

package snapshot

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRepository_SaveLoad(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	repo, err := ConnectRedis(ctx, url, "resume-builder-test:")
	if err != nil {
		t.Skipf("Skipping test: redis not available: %v", err)
	}
	defer repo.Close()

	key := t.Name()
	data, err := repo.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, data)

	require.NoError(t, repo.Save(ctx, key, []byte(`{"version":1}`)))
	data, err = repo.Load(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1}`, string(data))

	require.NoError(t, repo.Delete(ctx, key))
	data, err = repo.Load(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, data)
}
