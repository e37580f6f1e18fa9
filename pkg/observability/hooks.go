package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/mdrender/pkg/domain"
)

// LogHooks writes one structured line per render event.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRenderStart: func(_ context.Context, e *domain.RenderEvent) {
			logger.Debug("render_start", "render_id", e.RenderID)
		},
		OnCommit: func(_ context.Context, e *domain.CommitEvent) {
			logger.Debug("commit", "render_id", e.RenderID, "mutations", e.Mutations, "nodes", e.Nodes)
		},
		OnRenderComplete: func(_ context.Context, e *domain.RenderEvent) {
			if e.Err != nil {
				logger.Error("render_complete", "render_id", e.RenderID, "duration", e.Duration, "error", e.Err)
				return
			}
			logger.Info("render_complete",
				"render_id", e.RenderID,
				"bytes", e.Bytes,
				"duration", e.Duration,
				"cached", e.Cached,
			)
		},
	}
}

// Combine returns hooks that call each of the given hook sets in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, s := range sets {
		out.OnRenderStart = chain(out.OnRenderStart, s.OnRenderStart)
		out.OnCommit = chain(out.OnCommit, s.OnCommit)
		out.OnRenderComplete = chain(out.OnRenderComplete, s.OnRenderComplete)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
