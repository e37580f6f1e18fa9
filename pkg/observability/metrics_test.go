package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mdrender"
	"github.com/aretw0/mdrender/pkg/adapters/memory"
	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/observability"
	"github.com/aretw0/mdrender/pkg/ui"
)

func TestMetrics_RecordsRenders(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	r := mdrender.New(
		mdrender.WithLifecycleHooks(m.Hooks()),
		mdrender.WithCache(memory.NewCache()),
	)
	ctx := context.Background()
	desc := ui.H("p", nil, ui.Text("counted"))

	for i := 0; i < 2; i++ {
		_, err := r.RenderToString(ctx, desc)
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("success", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("success", "true")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Mutations), "one histogram series")

	count, err := testutil.GatherAndCount(reg, "mdrender_renders_total", "mdrender_render_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestMetrics_RecordsFailures(t *testing.T) {
	m := observability.NewMetrics(nil)
	hooks := observability.Combine(m.Hooks(), domain.LifecycleHooks{
		OnCommit: func(context.Context, *domain.CommitEvent) { panic("fail the callback") },
	})

	_, err := mdrender.New(mdrender.WithLifecycleHooks(hooks)).
		RenderToString(context.Background(), ui.H("p", nil, ui.Text("x")))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Renders.WithLabelValues("error", "false")))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := mdrender.New(mdrender.WithLifecycleHooks(observability.LogHooks(logger))).
		RenderToString(context.Background(), ui.H("h1", nil, ui.Text("logged")))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "msg=render_start")
	assert.Contains(t, out, "msg=commit")
	assert.Contains(t, out, "msg=render_complete")
	assert.Contains(t, out, "bytes=10")
}

func TestCombine_CallsInOrder(t *testing.T) {
	var calls []string
	record := func(name string) domain.LifecycleHooks {
		return domain.LifecycleHooks{
			OnRenderStart: func(context.Context, *domain.RenderEvent) { calls = append(calls, name) },
		}
	}

	hooks := observability.Combine(record("a"), domain.LifecycleHooks{}, record("b"))
	hooks.OnRenderStart(context.Background(), &domain.RenderEvent{})

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Nil(t, hooks.OnCommit)
}
