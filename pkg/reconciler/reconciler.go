package reconciler

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/mdrender/internal/logging"
	"github.com/aretw0/mdrender/pkg/ports"
	"github.com/aretw0/mdrender/pkg/ui"
)

// MaxDepth bounds how deep descriptions may nest, components included.
const MaxDepth = 1024

// Reconciler drives one host. It is safe to create many roots from it.
type Reconciler[C any, N comparable, Ctx any, U any] struct {
	host    ports.HostConfig[C, N, Ctx, U]
	logger  *slog.Logger
	onError func(error)
}

// Option configures a Reconciler.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	onError func(error)
}

// WithLogger sets the logger used for render and commit tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithErrorHandler receives failures of flushes that ran from the host's
// timeout rather than from FlushSync, which has no caller to return them to.
func WithErrorHandler(fn func(error)) Option {
	return func(c *config) {
		c.onError = fn
	}
}

// New creates a reconciler for host. Only mutation-mode hosts are supported.
func New[C any, N comparable, Ctx any, U any](host ports.HostConfig[C, N, Ctx, U], opts ...Option) (*Reconciler[C, N, Ctx, U], error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = logging.NewNop()
	}
	if !host.SupportsMutation() {
		return nil, ErrMutationUnsupported
	}
	cfg.logger.Debug("reconciler created",
		"persistence", host.SupportsPersistence(),
		"hydration", host.SupportsHydration(),
		"microtasks", host.SupportsMicrotasks(),
		"primary", host.IsPrimaryRenderer(),
	)
	return &Reconciler[C, N, Ctx, U]{host: host, logger: cfg.logger, onError: cfg.onError}, nil
}

// CreateContainer creates a root rendering into container.
func (r *Reconciler[C, N, Ctx, U]) CreateContainer(container C) *Root[C, N, Ctx, U] {
	return &Root[C, N, Ctx, U]{
		r:         r,
		container: container,
		timer:     r.host.NoTimeout(),
	}
}

// Root is a mounted container and its committed fiber tree.
type Root[C any, N comparable, Ctx any, U any] struct {
	r         *Reconciler[C, N, Ctx, U]
	container C

	mu        sync.Mutex
	current   []*fiber[N]
	placed    []N
	mounted   bool
	unmounted bool

	pending   *update
	timer     ports.TimeoutHandle
	scheduled bool
	gen       uint64
}

type update struct {
	desc      ui.Node
	callbacks []func()
}

// Container returns the host container this root renders into.
func (root *Root[C, N, Ctx, U]) Container() C {
	return root.container
}

// UpdateContainer queues desc for rendering. Pending updates are batched:
// only the latest description is rendered, and every queued callback runs
// after the commit that includes it.
func (root *Root[C, N, Ctx, U]) UpdateContainer(desc ui.Node, callback func()) error {
	root.mu.Lock()
	defer root.mu.Unlock()

	if err := root.enqueue(desc, callback); err != nil {
		return err
	}
	if !root.scheduled {
		root.gen++
		gen := root.gen
		root.timer = root.r.host.ScheduleTimeout(func() { root.flushScheduled(gen) }, 0)
		root.scheduled = true
	}
	return nil
}

// UpdateContainerSync queues desc and commits it on the calling goroutine
// without scheduling a deferred flush. Callbacks, including callback, have
// run by the time it returns.
func (root *Root[C, N, Ctx, U]) UpdateContainerSync(desc ui.Node, callback func()) error {
	root.mu.Lock()
	if err := root.enqueue(desc, callback); err != nil {
		root.mu.Unlock()
		return err
	}
	root.cancelScheduled()
	callbacks, err := root.performWork()
	root.mu.Unlock()

	if err != nil {
		return err
	}
	return root.r.runCallbacks(callbacks)
}

// enqueue records desc as the pending update. The caller holds root.mu.
func (root *Root[C, N, Ctx, U]) enqueue(desc ui.Node, callback func()) error {
	if root.unmounted {
		return ErrRootUnmounted
	}
	if root.pending == nil {
		root.pending = &update{}
	}
	root.pending.desc = desc
	if callback != nil {
		root.pending.callbacks = append(root.pending.callbacks, callback)
	}
	root.r.logger.Debug("update scheduled", "element", desc.Label(), "priority", root.r.host.CurrentEventPriority())
	return nil
}

// FlushSync renders and commits any pending update on the calling goroutine,
// cancelling the scheduled flush.
func (root *Root[C, N, Ctx, U]) FlushSync() error {
	root.mu.Lock()
	root.cancelScheduled()
	callbacks, err := root.performWork()
	root.mu.Unlock()

	if err != nil {
		return err
	}
	return root.r.runCallbacks(callbacks)
}

// Unmount removes everything the root rendered and rejects further updates.
func (root *Root[C, N, Ctx, U]) Unmount() error {
	err := root.UpdateContainerSync(ui.Empty, nil)
	if errors.Is(err, ErrRootUnmounted) {
		return err
	}

	root.mu.Lock()
	root.unmounted = true
	root.mu.Unlock()
	return err
}

func (root *Root[C, N, Ctx, U]) flushScheduled(gen uint64) {
	root.mu.Lock()
	if gen != root.gen || !root.scheduled {
		root.mu.Unlock()
		return
	}
	root.scheduled = false
	callbacks, err := root.performWork()
	root.mu.Unlock()

	if err == nil {
		err = root.r.runCallbacks(callbacks)
	}
	if err != nil {
		root.r.logger.Error("scheduled flush failed", "error", err)
		if root.r.onError != nil {
			root.r.onError(err)
		}
	}
}

func (root *Root[C, N, Ctx, U]) cancelScheduled() {
	if !root.scheduled {
		return
	}
	root.r.host.CancelTimeout(root.timer)
	root.timer = root.r.host.NoTimeout()
	root.scheduled = false
}

// performWork runs the render and commit phases for the pending update.
// The caller holds root.mu.
func (root *Root[C, N, Ctx, U]) performWork() ([]func(), error) {
	if root.pending == nil {
		return nil, nil
	}
	u := root.pending
	root.pending = nil

	p := newPass(root.r, root.container)
	if !root.mounted {
		p.queue("clearContainer", func() { p.host.ClearContainer(root.container) })
	}

	children, desired, err := p.renderRoot(root.current, u.desc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	p.place(p.containerSlots(), root.placed, desired)

	if err := p.commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	root.current = children
	root.placed = desired
	root.mounted = true
	return u.callbacks, nil
}

func (r *Reconciler[C, N, Ctx, U]) runCallbacks(callbacks []func()) error {
	var errs []error
	for _, cb := range callbacks {
		if err := protect("callback", cb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// protect runs fn and converts a panic into an error naming phase.
func protect(phase string, fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if e, ok := rec.(error); ok {
				err = fmt.Errorf("%s: %w", phase, e)
				return
			}
			err = fmt.Errorf("%s: %v", phase, rec)
		}
	}()
	fn()
	return nil
}
