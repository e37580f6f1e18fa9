package mdrender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/mdrender/internal/logging"
	"github.com/aretw0/mdrender/pkg/adapters/doctree"
	"github.com/aretw0/mdrender/pkg/domain"
	"github.com/aretw0/mdrender/pkg/markdown"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/aretw0/mdrender/pkg/reconciler"
	"github.com/aretw0/mdrender/pkg/ui"
)

// Renderer renders descriptions to markdown. Each call to Render owns its
// own document tree, host and reconciler root, so a Renderer may be shared
// between goroutines.
type Renderer struct {
	logger       *slog.Logger
	hooks        domain.LifecycleHooks
	cache        ports.RenderCache
	strictSubmit bool
}

var _ ports.Renderer = (*Renderer)(nil)

// Option defines a functional option for configuring the Renderer.
type Option func(*Renderer)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Renderer) {
		r.hooks = hooks
	}
}

// WithCache stores rendered markdown keyed by the description hash.
// Descriptions holding function components are never cached.
func WithCache(cache ports.RenderCache) Option {
	return func(r *Renderer) {
		r.cache = cache
	}
}

// WithStrictSubmit makes a failed submission reject the result instead of
// resolving it to an empty string.
func WithStrictSubmit() Option {
	return func(r *Renderer) {
		r.strictSubmit = true
	}
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Render submits desc to a fresh reconciler root and flushes it
// synchronously. The returned Result resolves with the serialized tree once
// the host reports the commit.
func (r *Renderer) Render(ctx context.Context, desc ui.Node) *Result {
	id := uuid.NewString()
	logger := r.logger.With("render_id", id)
	start := time.Now()
	res := newResult()

	r.emitStart(ctx, id)

	key := r.cacheKey(logger, desc)
	if md, ok := r.cached(ctx, logger, key); ok {
		res.onSettle = func(md string, err error) { r.emitComplete(ctx, id, start, md, true, err) }
		res.settle(md, nil)
		return res
	}

	res.onSettle = func(md string, err error) {
		if err == nil {
			r.store(ctx, logger, key, md)
		}
		r.emitComplete(ctx, id, start, md, false, err)
	}

	host := doctree.New(doctree.WithLogger(logger))
	rec, err := reconciler.New[*domain.Element, domain.Node, *doctree.HostContext, domain.Props](host,
		reconciler.WithLogger(logger),
		reconciler.WithErrorHandler(func(err error) { r.submitFailed(logger, res, err) }),
	)
	if err != nil {
		r.submitFailed(logger, res, err)
		return res
	}

	root := rec.CreateContainer(domain.NewContainer())
	err = root.UpdateContainerSync(desc, func() { r.commitDone(ctx, id, host, res) })
	if err != nil {
		r.submitFailed(logger, res, err)
	}
	return res
}

// RenderToString renders desc and waits for the markdown.
func (r *Renderer) RenderToString(ctx context.Context, desc ui.Node) (string, error) {
	return r.Render(ctx, desc).Wait(ctx)
}

var defaultRenderer = New()

// RenderToMarkdownString renders desc with the default renderer.
func RenderToMarkdownString(ctx context.Context, desc ui.Node) (string, error) {
	return defaultRenderer.RenderToString(ctx, desc)
}

// commitDone is the completion callback handed to the reconciler.
func (r *Renderer) commitDone(ctx context.Context, id string, host *doctree.Host, res *Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res.settle("", fmt.Errorf("error in commit callback: %v", rec))
		}
	}()

	if !host.Completed() {
		res.settle("", fmt.Errorf("error in commit callback: %w", domain.ErrCommitIncomplete))
		return
	}
	root := host.LastRoot()
	if r.hooks.OnCommit != nil {
		r.hooks.OnCommit(ctx, &domain.CommitEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventCommit, RenderID: id},
			Mutations: host.Mutations(),
			Nodes:     countNodes(root),
		})
	}

	md, err := markdown.Serialize(root)
	if err != nil {
		res.settle("", fmt.Errorf("error in commit callback: %w", err))
		return
	}
	res.settle(md, nil)
}

// submitFailed settles a result whose submission failed before the
// completion callback could run.
func (r *Renderer) submitFailed(logger *slog.Logger, res *Result, err error) {
	logger.Error("render submission failed", "error", err)
	if r.strictSubmit {
		res.settle("", fmt.Errorf("submit render: %w", err))
		return
	}
	res.settle("", nil)
}

func (r *Renderer) cacheKey(logger *slog.Logger, desc ui.Node) string {
	if r.cache == nil {
		return ""
	}
	key, err := ui.Hash(desc)
	if err != nil {
		logger.Debug("description not cacheable", "error", err)
		return ""
	}
	return key
}

func (r *Renderer) cached(ctx context.Context, logger *slog.Logger, key string) (string, bool) {
	if key == "" {
		return "", false
	}
	md, err := r.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			logger.Warn("render cache lookup failed", "error", err)
		}
		return "", false
	}
	logger.Debug("render cache hit", "key", key)
	return md, true
}

func (r *Renderer) store(ctx context.Context, logger *slog.Logger, key, md string) {
	if key == "" {
		return
	}
	if err := r.cache.Set(ctx, key, md); err != nil {
		logger.Warn("render cache store failed", "error", err)
	}
}

func (r *Renderer) emitStart(ctx context.Context, id string) {
	if r.hooks.OnRenderStart == nil {
		return
	}
	r.hooks.OnRenderStart(ctx, &domain.RenderEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRenderStart, RenderID: id},
	})
}

func (r *Renderer) emitComplete(ctx context.Context, id string, start time.Time, md string, cached bool, err error) {
	if r.hooks.OnRenderComplete == nil {
		return
	}
	r.hooks.OnRenderComplete(ctx, &domain.RenderEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventRenderComplete, RenderID: id},
		Bytes:     len(md),
		Duration:  time.Since(start),
		Cached:    cached,
		Err:       err,
	})
}

func countNodes(root *domain.Element) int {
	n := 0
	domain.Walk(root, func(domain.Node, int) bool {
		n++
		return true
	})
	return n - 1
}
