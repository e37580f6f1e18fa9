package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/mdrender"
	"github.com/aretw0/mdrender/pkg/adapters/memory"
	"github.com/aretw0/mdrender/pkg/adapters/redis"
	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/observability"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// CacheOptions selects the render cache.
type CacheOptions struct {
	// RedisAddr enables the Redis cache when set.
	RedisAddr string
	// TTL expires cached entries; zero keeps them forever.
	TTL time.Duration
	// Memory enables the in-process cache when Redis is not configured.
	Memory bool
}

// createRenderer wires the logger, hooks and cache into a Renderer.
// The returned cleanup releases the cache connection.
func createRenderer(ctx context.Context, logger *slog.Logger, debug bool, cacheOpts CacheOptions, reg prometheus.Registerer) (*mdrender.Renderer, func(), error) {
	opts := []mdrender.Option{mdrender.WithLogger(logger)}
	cleanup := func() {}

	var hooks []domain.LifecycleHooks
	if debug {
		hooks = append(hooks, observability.LogHooks(logger))
	}
	if reg != nil {
		hooks = append(hooks, observability.NewMetrics(reg).Hooks())
	}
	if len(hooks) > 0 {
		opts = append(opts, mdrender.WithLifecycleHooks(observability.Combine(hooks...)))
	}

	cache, closeCache, err := createCache(ctx, logger, cacheOpts)
	if err != nil {
		return nil, cleanup, err
	}
	if cache != nil {
		opts = append(opts, mdrender.WithCache(cache))
		cleanup = closeCache
	}

	return mdrender.New(opts...), cleanup, nil
}

func createCache(ctx context.Context, logger *slog.Logger, opts CacheOptions) (ports.RenderCache, func(), error) {
	switch {
	case opts.RedisAddr != "":
		c := redis.New(opts.RedisAddr, "", 0, redis.WithTTL(opts.TTL))
		if err := c.Ping(ctx); err != nil {
			_ = c.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
		}
		logger.Debug("render cache enabled", "backend", "redis", "addr", opts.RedisAddr, "ttl", opts.TTL)
		return c, func() { _ = c.Close() }, nil
	case opts.Memory:
		logger.Debug("render cache enabled", "backend", "memory", "ttl", opts.TTL)
		return memory.NewCache(memory.WithTTL(opts.TTL)), func() {}, nil
	}
	return nil, func() {}, nil
}
