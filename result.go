package mdrender

import (
	"context"
	"sync"
)

// Result is the deferred outcome of a render. It resolves exactly once.
type Result struct {
	done chan struct{}
	once sync.Once

	markdown string
	err      error

	// onSettle runs inside the single resolution, before waiters are released.
	onSettle func(markdown string, err error)
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// Done is closed once the result is available.
func (r *Result) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the render settles or ctx is done. A cancelled ctx only
// stops the wait; the render itself keeps running to completion.
func (r *Result) Wait(ctx context.Context) (string, error) {
	select {
	case <-r.done:
		return r.markdown, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// settle resolves the result. Later calls are ignored and report false.
func (r *Result) settle(markdown string, err error) bool {
	settled := false
	r.once.Do(func() {
		defer close(r.done)
		r.markdown, r.err = markdown, err
		settled = true
		if r.onSettle != nil {
			r.onSettle(markdown, err)
		}
	})
	return settled
}
