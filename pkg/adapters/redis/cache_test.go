package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mdrender"
	"github.com/aretw0/mdrender/pkg/adapters/redis"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/aretw0/mdrender/pkg/ui"
)

func setup(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisCache_Contract(t *testing.T) {
	_, client := setup(t)
	ports.RunRenderCacheContract(t, redis.NewFromClient(client))
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	mr, client := setup(t)

	cache := redis.NewFromClient(client, redis.WithTTL(time.Second))
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", "# Title\n\n"))
	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\n", got)

	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
}

func TestRedisCache_Prefix(t *testing.T) {
	mr, client := setup(t)

	cache := redis.NewFromClient(client, redis.WithPrefix("docs:"))
	require.NoError(t, cache.Set(context.Background(), "abc", "x"))

	assert.True(t, mr.Exists("docs:abc"))
	require.NoError(t, cache.Ping(context.Background()))
}

func TestRedisCache_BacksRenderer(t *testing.T) {
	mr, client := setup(t)
	cache := redis.NewFromClient(client)

	r := mdrender.New(mdrender.WithCache(cache))
	desc := ui.H("h2", nil, ui.Text("Shared"))

	got, err := r.RenderToString(context.Background(), desc)
	require.NoError(t, err)
	assert.Equal(t, "## Shared\n\n", got)

	key, err := ui.Hash(desc)
	require.NoError(t, err)
	stored, err := mr.Get("mdrender:render:" + key)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}
