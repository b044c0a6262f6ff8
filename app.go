package krow

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/krow/pkg/engine"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// App mounts a root component onto a surface.
type App struct {
	cfg  Config
	eng  *engine.Engine
	root *engine.Definition

	vnode   *vdom.VNode
	host    surface.Node
	mounted bool
}

// NewApp creates an application rendering root on s.
func NewApp(s surface.Surface, root *engine.Definition, opts ...Option) *App {
	cfg := buildConfig(opts)
	return &App{
		cfg:  cfg,
		eng:  engine.New(s, cfg.engineOptions()...),
		root: root,
	}
}

// Mount renders the root component as the last child of host.
func (a *App) Mount(ctx context.Context, host surface.Node) error {
	_, span := a.cfg.Tracer.Start(ctx, "krow.mount",
		trace.WithAttributes(attribute.String("krow.component", a.root.Name())),
	)
	defer span.End()

	if a.mounted {
		return endSpan(span, fmt.Errorf("mount %s: %w", a.root.Name(), ErrAppMounted))
	}

	v := vdom.Comp(a.root, a.cfg.Props)
	err := a.eng.Mount(v, host, nil)
	if v.Mounted() {
		// A failing OnMounted hook still leaves the view attached.
		a.vnode = v
		a.host = host
		a.mounted = true
	}
	if err != nil {
		a.cfg.Logger.Error("mount failed", "component", a.root.Name(), "error", err)
	}
	return endSpan(span, err)
}

// Unmount destroys the view.
func (a *App) Unmount(ctx context.Context) error {
	_, span := a.cfg.Tracer.Start(ctx, "krow.unmount",
		trace.WithAttributes(attribute.String("krow.component", a.root.Name())),
	)
	defer span.End()

	if !a.mounted {
		return endSpan(span, fmt.Errorf("unmount %s: %w", a.root.Name(), ErrAppNotMounted))
	}
	err := a.eng.Destroy(a.vnode)
	a.vnode = nil
	a.host = nil
	a.mounted = false
	return endSpan(span, err)
}

// Mounted reports whether the application is mounted.
func (a *App) Mounted() bool { return a.mounted }

// Root returns the root component instance, or nil when not mounted.
func (a *App) Root() *engine.Component {
	if !a.mounted {
		return nil
	}
	c, _ := a.vnode.Instance.(*engine.Component)
	return c
}

// Engine returns the reconciliation engine.
func (a *App) Engine() *engine.Engine { return a.eng }

// endSpan records err on span and returns it.
func endSpan(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
