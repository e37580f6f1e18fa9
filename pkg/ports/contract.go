package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRenderCacheContract runs a suite of tests to verify that a RenderCache
// implementation adheres to the interface contract.
func RunRenderCacheContract(t *testing.T, cache RenderCache) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Set and Get", func(t *testing.T) {
		err := cache.Set(ctx, key, "# Title\n\n")
		require.NoError(t, err, "Set should not return error")

		got, err := cache.Get(ctx, key)
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, "# Title\n\n", got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, "first"))
		require.NoError(t, cache.Set(ctx, key, "second"))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "second", got)
	})

	t.Run("Empty Markdown Is A Hit", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key+"-empty", ""))
		defer func() { _ = cache.Delete(ctx, key+"-empty") }()

		got, err := cache.Get(ctx, key+"-empty")
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})

	t.Run("Get Missing", func(t *testing.T) {
		_, err := cache.Get(ctx, "missing-"+key)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, "x"))
		require.NoError(t, cache.Delete(ctx, key), "Delete should not return error")

		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, ErrCacheMiss, "Get after Delete should miss")

		assert.NoError(t, cache.Delete(ctx, key), "Delete of a missing key is not an error")
	})
}
