package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by RenderCache.Get when no entry exists.
var ErrCacheMiss = errors.New("render cache miss")

// RenderCache stores rendered markdown keyed by a description hash.
type RenderCache interface {
	// Get returns ErrCacheMiss when the key is absent or expired.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, markdown string) error
	Delete(ctx context.Context, key string) error
}
