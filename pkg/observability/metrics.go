package observability

import (
	"context"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/mdrender/pkg/domain"
)

// Metrics holds the render collectors.
type Metrics struct {
	Renders   *prometheus.CounterVec
	Duration  *prometheus.HistogramVec
	Mutations prometheus.Histogram
	Bytes     prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mdrender_renders_total",
				Help: "Total number of finished renders",
			},
			[]string{"outcome", "cached"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mdrender_render_duration_seconds",
				Help:    "Duration of renders from submission to result",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"cached"},
		),
		Mutations: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mdrender_commit_mutations",
				Help:    "Host mutations applied per commit",
				Buckets: prometheus.ExponentialBuckets(1, 4, 6),
			},
		),
		Bytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mdrender_output_bytes",
				Help:    "Size of rendered markdown",
				Buckets: prometheus.ExponentialBuckets(64, 4, 7),
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Renders, m.Duration, m.Mutations, m.Bytes)
	}
	return m
}

// Hooks records every render event into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCommit: func(_ context.Context, e *domain.CommitEvent) {
			m.Mutations.Observe(float64(e.Mutations))
		},
		OnRenderComplete: func(_ context.Context, e *domain.RenderEvent) {
			cached := strconv.FormatBool(e.Cached)
			outcome := "success"
			if e.Err != nil {
				outcome = "error"
			}
			m.Renders.WithLabelValues(outcome, cached).Inc()
			m.Duration.WithLabelValues(cached).Observe(e.Duration.Seconds())
			if e.Err == nil {
				m.Bytes.Observe(float64(e.Bytes))
			}
		},
	}
}
