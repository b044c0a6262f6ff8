package engine

import (
	"fmt"
	"sort"

	"github.com/vango-dev/krow/pkg/diff"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// addListeners registers every handler in on against el and returns the
// listener handles keyed by event name.
func (e *Engine) addListeners(el surface.Node, on vdom.Events, owner *Component) map[string]surface.Listener {
	if len(on) == 0 {
		return nil
	}
	events := make([]string, 0, len(on))
	for ev := range on {
		events = append(events, ev)
	}
	sort.Strings(events)

	out := make(map[string]surface.Listener, len(on))
	for _, ev := range events {
		if on[ev] == nil {
			continue
		}
		out[ev] = e.surface.AddEventListener(el, ev, e.bindHandler(on[ev], owner))
	}
	return out
}

func (e *Engine) removeListeners(v *vdom.VNode) {
	for ev, l := range v.Listeners {
		e.surface.RemoveEventListener(v.El, ev, l)
	}
	v.Listeners = nil
}

// patchListeners unregisters removed and changed handlers, registers added
// and changed ones, and carries unchanged listener handles over to next.
func (e *Engine) patchListeners(el surface.Node, old, next *vdom.VNode, owner *Component) map[string]surface.Listener {
	d := diff.Objects(old.On, next.On, vdom.SameHandler)

	out := make(map[string]surface.Listener, len(next.On))
	for ev, l := range old.Listeners {
		out[ev] = l
	}
	for _, list := range [][]string{d.Removed, d.Updated} {
		for _, ev := range list {
			if l, ok := out[ev]; ok {
				e.surface.RemoveEventListener(el, ev, l)
				delete(out, ev)
			}
		}
	}
	for _, list := range [][]string{d.Added, d.Updated} {
		for _, ev := range list {
			if h := next.On[ev]; h != nil {
				out[ev] = e.surface.AddEventListener(el, ev, e.bindHandler(h, owner))
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// bindHandler adapts h to a surface callback. Each event runs as a top-level
// operation so re-renders it triggers flush their deferred jobs.
func (e *Engine) bindHandler(h *vdom.Handler, owner *Component) surface.EventFunc {
	return func(ev surface.Event) {
		err := e.run(func() error {
			return e.invoke(h, owner, ev)
		})
		if err != nil {
			e.logger.Error("event handler failed", "event", ev.Type, "error", err)
		}
	}
}

// invoke runs h with payload. Method handlers resolve against owner.
func (e *Engine) invoke(h *vdom.Handler, owner *Component, payload any) error {
	if m := h.Method(); m != "" {
		if owner == nil {
			return fmt.Errorf("call %q outside a component: %w", m, ErrUnknownMethod)
		}
		return owner.Call(m, payload)
	}
	if fn := h.Func(); fn != nil {
		return fn(payload)
	}
	return nil
}
