// Package engine mounts, patches and destroys virtual trees on a live surface.
//
// Mount instantiates live nodes for an unmounted tree, Destroy tears a
// mounted tree down, and Patch reconciles a mounted tree against a new one in
// place, reusing live nodes whose kind, tag and key still match. Components
// defined with Define own private state and re-render through Patch when
// their state or props change.
//
// All operations are synchronous. Lifecycle notifications such as OnMounted
// are queued while an operation runs and flushed when the outermost
// operation returns, so a component's children are attached before its
// notification fires.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/krow/pkg/sched"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// Engine reconciles virtual trees against a Surface.
type Engine struct {
	surface  surface.Surface
	queue    *sched.Queue
	logger   *slog.Logger
	observer Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithObserver sets the observer notified of engine activity.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// WithQueue shares a deferred-job queue between engines.
func WithQueue(q *sched.Queue) Option {
	return func(e *Engine) {
		if q != nil {
			e.queue = q
		}
	}
}

// New creates an Engine for s.
func New(s surface.Surface, opts ...Option) *Engine {
	e := &Engine{
		surface:  s,
		queue:    sched.New(),
		logger:   slog.Default(),
		observer: NopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Surface returns the live surface the engine writes to.
func (e *Engine) Surface() surface.Surface { return e.surface }

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger { return e.logger }

// Queue returns the deferred-job queue.
func (e *Engine) Queue() *sched.Queue { return e.queue }

// run executes fn as a top-level operation: deferred jobs queued while it
// runs are flushed once the outermost operation returns.
func (e *Engine) run(fn func() error) error {
	e.queue.Enter()
	err := fn()
	if ferr := e.queue.Exit(); ferr != nil {
		e.observer.JobFailed(ferr)
		e.logger.Error("deferred job failed", "error", ferr)
		if err == nil {
			err = ferr
		} else {
			err = fmt.Errorf("%w; deferred: %w", err, ferr)
		}
	}
	return err
}

// Mount mounts v as the last child of host. owner is the component whose view
// v belongs to, or nil at the root.
func (e *Engine) Mount(v *vdom.VNode, host surface.Node, owner *Component) error {
	return e.run(func() error {
		return e.mountRoot(v, host, nil, owner)
	})
}

// MountAt mounts v at index within host, appending when index is past the
// last child. A negative index is an error.
func (e *Engine) MountAt(v *vdom.VNode, host surface.Node, index int, owner *Component) error {
	if index < 0 {
		return fmt.Errorf("mount at %d: %w", index, ErrNegativeIndex)
	}
	return e.run(func() error {
		return e.mountRoot(v, host, e.surface.ChildAt(host, index), owner)
	})
}

// Destroy unmounts v, detaching its live nodes and removing its listeners.
func (e *Engine) Destroy(v *vdom.VNode) error {
	return e.run(func() error {
		return e.destroy(v, true)
	})
}

// Patch reconciles the mounted tree old against the unmounted tree next under
// host and returns the tree now mounted: next, with live nodes carried over
// from old wherever they could be reused.
func (e *Engine) Patch(old, next *vdom.VNode, host surface.Node, owner *Component) (*vdom.VNode, error) {
	var out *vdom.VNode
	err := e.run(func() error {
		var err error
		after := e.nodeAfter(old, nil)
		out, err = e.patch(old, next, host, after, owner)
		if out != nil && out.El != nil {
			e.settle(out, &anchor{end: after})
		}
		return err
	})
	return out, err
}

func (e *Engine) mountRoot(v *vdom.VNode, host, before surface.Node, owner *Component) error {
	if err := e.mount(v, host, before, owner); err != nil {
		return err
	}
	if v != nil {
		e.settle(v, &anchor{end: before})
	}
	return nil
}
