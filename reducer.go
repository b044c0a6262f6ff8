package krow

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/krow/pkg/dispatch"
	"github.com/vango-dev/krow/pkg/engine"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// Reducer derives the next state from the current state and a command
// payload.
type Reducer[S any] func(state S, payload any) S

// Emit dispatches a command from a view.
type Emit func(command string, payload any)

// View renders the whole application from its state.
type View[S any] func(state S, emit Emit) *vdom.VNode

// ReducerApp keeps a single state value in sync with its view. Views emit
// commands, reducers turn them into new states, and every command is followed
// by a re-render patched against the mounted view.
type ReducerApp[S any] struct {
	cfg        Config
	eng        *engine.Engine
	dispatcher *dispatch.Dispatcher

	state    S
	view     View[S]
	reducers map[string]Reducer[S]

	vnode     *vdom.VNode
	host      surface.Node
	mounted   bool
	subs      []dispatch.Unsubscribe
	renderErr error
}

// NewReducerApp creates an application from an initial state, a view and
// the reducers handling each command.
func NewReducerApp[S any](s surface.Surface, state S, view View[S], reducers map[string]Reducer[S], opts ...Option) *ReducerApp[S] {
	cfg := buildConfig(opts)
	rs := make(map[string]Reducer[S], len(reducers))
	for k, r := range reducers {
		rs[k] = r
	}
	return &ReducerApp[S]{
		cfg:        cfg,
		eng:        engine.New(s, cfg.engineOptions()...),
		dispatcher: dispatch.New(dispatch.WithLogger(cfg.Logger)),
		state:      state,
		view:       view,
		reducers:   rs,
	}
}

// Mount subscribes the reducers and renders the view as the last child of
// host.
func (a *ReducerApp[S]) Mount(ctx context.Context, host surface.Node) error {
	_, span := a.cfg.Tracer.Start(ctx, "krow.mount")
	defer span.End()

	if a.mounted {
		return endSpan(span, fmt.Errorf("mount: %w", ErrAppMounted))
	}

	for name, r := range a.reducers {
		a.subs = append(a.subs, a.dispatcher.Subscribe(name, func(payload any) {
			a.state = r(a.state, payload)
		}))
	}
	a.subs = append(a.subs, a.dispatcher.AfterEveryCommand(a.render))

	v := a.view(a.state, a.Emit)
	if err := a.eng.Mount(v, host, nil); err != nil {
		a.unsubscribe()
		return endSpan(span, err)
	}
	a.vnode = v
	a.host = host
	a.mounted = true
	return endSpan(span, nil)
}

// Unmount destroys the view and drops the reducer subscriptions.
func (a *ReducerApp[S]) Unmount(ctx context.Context) error {
	_, span := a.cfg.Tracer.Start(ctx, "krow.unmount")
	defer span.End()

	if !a.mounted {
		return endSpan(span, fmt.Errorf("unmount: %w", ErrAppNotMounted))
	}
	err := a.eng.Destroy(a.vnode)
	a.unsubscribe()
	a.vnode = nil
	a.host = nil
	a.mounted = false
	return endSpan(span, err)
}

func (a *ReducerApp[S]) unsubscribe() {
	for _, unsub := range a.subs {
		unsub()
	}
	a.subs = nil
}

// Dispatch runs the reducers for command, re-renders and returns the
// re-render error, if any.
func (a *ReducerApp[S]) Dispatch(command string, payload any) error {
	_, span := a.cfg.Tracer.Start(context.Background(), "krow.dispatch",
		trace.WithAttributes(attribute.String("krow.command", command)),
	)
	defer span.End()

	a.renderErr = nil
	handled := a.dispatcher.Dispatch(command, payload)
	span.SetAttributes(attribute.Bool("krow.handled", handled))
	return endSpan(span, a.renderErr)
}

// Emit is Dispatch for views; errors are logged.
func (a *ReducerApp[S]) Emit(command string, payload any) {
	if err := a.Dispatch(command, payload); err != nil {
		a.cfg.Logger.Error("command failed", "command", command, "error", err)
	}
}

// render patches the mounted view against a fresh render of the state.
func (a *ReducerApp[S]) render() {
	if !a.mounted {
		return
	}
	next := a.view(a.state, a.Emit)
	patched, err := a.eng.Patch(a.vnode, next, a.host, nil)
	if patched != nil {
		a.vnode = patched
	}
	a.renderErr = err
}

// State returns the current state.
func (a *ReducerApp[S]) State() S { return a.state }

// Mounted reports whether the application is mounted.
func (a *ReducerApp[S]) Mounted() bool { return a.mounted }

// Dispatcher returns the command dispatcher, for subscribing extra handlers.
func (a *ReducerApp[S]) Dispatcher() *dispatch.Dispatcher { return a.dispatcher }
