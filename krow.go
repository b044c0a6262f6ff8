// Package krow is a small virtual-DOM UI runtime.
//
// Views are trees of *VNode built with the helpers in pkg/vdom. An App mounts
// a root component onto a live surface and keeps it in sync: components
// re-render when their state or props change, and the engine patches the
// live tree in place, reusing nodes wherever kind, tag and key match.
//
//	counter := krow.MustDefine(krow.Spec{
//	    Name:  "Counter",
//	    State: func(krow.Props) krow.State { return krow.State{"n": 0} },
//	    Render: func(c *krow.Component) *krow.VNode {
//	        return vdom.Button(vdom.OnClick(vdom.Call("inc")), vdom.Textf("%d", c.Get("n")))
//	    },
//	    Methods: map[string]krow.Method{
//	        "inc": func(c *krow.Component, _ ...any) error { return c.Set("n", c.Get("n").(int)+1) },
//	    },
//	})
//
//	app := krow.NewApp(dom, counter)
//	err := app.Mount(ctx, dom.Body())
//
// ReducerApp offers the older state + view + reducers model, where commands
// emitted by the view update a single state value and trigger a re-render.
package krow

import (
	"context"

	"github.com/vango-dev/krow/pkg/engine"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// =============================================================================
// Core types (re-exported)
// =============================================================================

type (
	// VNode is a virtual node.
	VNode = vdom.VNode

	// Props are the values a parent passes to a component.
	Props = vdom.Props

	// Component is a live component instance.
	Component = engine.Component

	// Definition is a validated component description.
	Definition = engine.Definition

	// Spec describes a component for Define.
	Spec = engine.Spec

	// State is a component's private state.
	State = engine.State

	// Method is a named component method.
	Method = engine.Method

	// Observer receives engine activity notifications.
	Observer = engine.Observer
)

// Define validates a component spec.
var Define = engine.Define

// MustDefine is like Define but panics on error.
var MustDefine = engine.MustDefine

// Application is a mountable program: an App or a ReducerApp.
type Application interface {
	Mount(ctx context.Context, host surface.Node) error
	Unmount(ctx context.Context) error
	Mounted() bool
}

var (
	_ Application = (*App)(nil)
	_ Application = (*ReducerApp[struct{}])(nil)
)
