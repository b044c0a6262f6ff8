package vdom

import (
	"fmt"

	"github.com/vango-dev/krow/pkg/surface"
)

// Handler is an event handler. Handlers compare by identity, so a node
// cloned from another keeps equal handlers while a fresh render produces new
// ones. Method handlers compare by method name.
type Handler struct {
	fn     func(payload any) error
	method string
}

// Handle wraps fn into a Handler. fn may be func(), func() error,
// func(any), func(any) error, func(surface.Event), a *Handler, or a method
// name (string).
func Handle(fn any) *Handler {
	switch f := fn.(type) {
	case nil:
		return nil
	case *Handler:
		return f
	case func():
		return &Handler{fn: func(any) error { f(); return nil }}
	case func() error:
		return &Handler{fn: func(any) error { return f() }}
	case func(any):
		return &Handler{fn: func(p any) error { f(p); return nil }}
	case func(any) error:
		return &Handler{fn: f}
	case func(surface.Event):
		return &Handler{fn: func(p any) error {
			if ev, ok := p.(surface.Event); ok {
				f(ev)
				return nil
			}
			f(surface.Event{Value: p})
			return nil
		}}
	case string:
		return Call(f)
	default:
		panic(fmt.Sprintf("vdom: unsupported handler type %T", fn))
	}
}

// Call refers to a named method of the owning component. The engine resolves
// it when the handler runs.
func Call(method string) *Handler {
	return &Handler{method: method}
}

// Method returns the method name for Call handlers, or "".
func (h *Handler) Method() string {
	if h == nil {
		return ""
	}
	return h.method
}

// Func returns the wrapped function, or nil for method handlers.
func (h *Handler) Func() func(payload any) error {
	if h == nil {
		return nil
	}
	return h.fn
}

// SameHandler reports whether a and b are interchangeable.
func SameHandler(a, b *Handler) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.method != "" && a.method == b.method
}
