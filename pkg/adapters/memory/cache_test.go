package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mdrender/pkg/ports"
)

func TestMemoryCache_Contract(t *testing.T) {
	ports.RunRenderCacheContract(t, NewCache())
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	c := NewCache(WithTTL(time.Minute))
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", "# Title\n\n"))
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\n", got)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ports.ErrCacheMiss)
	assert.Equal(t, 0, c.Len(), "expired entries are dropped on read")
}
