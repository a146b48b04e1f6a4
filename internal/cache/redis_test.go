package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("Skipping test - no redis configured")
	}

	ctx := context.Background()
	client := NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0)
	defer client.Close()

	store, err := NewRedisStore(ctx, client, "yatube-test:")
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx))

	require.NoError(t, store.Set(ctx, "page:/", []byte("feed"), time.Minute))
	got, ok := store.Get(ctx, "page:/")
	require.True(t, ok)
	assert.Equal(t, "feed", string(got))

	require.NoError(t, store.Clear(ctx))
	_, ok = store.Get(ctx, "page:/")
	assert.False(t, ok)
}
