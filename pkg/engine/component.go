package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"reflect"

	"github.com/vango-dev/krow/pkg/diff"
	"github.com/vango-dev/krow/pkg/dispatch"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// Component is a live instance of a Definition. It is mounted at most once;
// after Unmount every update returns ErrComponentUnmounted.
type Component struct {
	eng *Engine
	def *Definition

	props vdom.Props
	state State

	vnode  *vdom.VNode
	host   surface.Node
	anchor *anchor

	// patchAfter is the node following c while its parent is patching it;
	// anchor still describes the parent's previous children then.
	patchAfter surface.Node
	patching   bool

	mounted bool
	dead    bool

	parent   *Component
	handlers vdom.Events
	events   *dispatch.Dispatcher
	subs     map[string]dispatch.Unsubscribe
	emitErrs []error

	slot     []*vdom.VNode
	usesSlot bool
	slotSeen bool
}

// NewComponent creates an unmounted root component of def.
func (e *Engine) NewComponent(def *Definition, props vdom.Props) *Component {
	return e.newComponent(def, props, nil, nil)
}

func (e *Engine) newComponent(def *Definition, props vdom.Props, handlers vdom.Events, parent *Component) *Component {
	p := make(vdom.Props, len(props))
	maps.Copy(p, props)

	var st State
	if def.state != nil {
		st = def.state(p)
	}
	if st == nil {
		st = State{}
	}

	return &Component{
		eng:      e,
		def:      def,
		props:    p,
		state:    st,
		parent:   parent,
		handlers: handlers,
		events:   dispatch.New(dispatch.WithLogger(e.logger)),
		subs:     make(map[string]dispatch.Unsubscribe),
	}
}

// Name returns the definition name.
func (c *Component) Name() string { return c.def.name }

// Definition returns the component's definition.
func (c *Component) Definition() *Definition { return c.def }

// Props returns the current props. Callers must not modify the map.
func (c *Component) Props() vdom.Props { return c.props }

// Prop returns a single prop value.
func (c *Component) Prop(name string) any { return c.props[name] }

// State returns the current state. Callers must not modify the map; use
// UpdateState.
func (c *Component) State() State { return c.state }

// Get returns a single state value.
func (c *Component) Get(name string) any { return c.state[name] }

// Parent returns the component whose view contains c, or nil at the root.
func (c *Component) Parent() *Component { return c.parent }

// Mounted reports whether c is currently mounted.
func (c *Component) Mounted() bool { return c.mounted }

// View returns the most recently rendered view.
func (c *Component) View() *vdom.VNode { return c.vnode }

// Host returns the live node c is mounted into.
func (c *Component) Host() surface.Node { return c.host }

// Elements returns the top-level live nodes of c's view in order, flattening
// fragments and nested components.
func (c *Component) Elements() []surface.Node {
	if !c.mounted {
		return nil
	}
	return c.eng.liveNodes(c.vnode)
}

// FirstElement returns the first top-level live node of c's view, or nil.
func (c *Component) FirstElement() surface.Node {
	if c.vnode == nil {
		return nil
	}
	return c.eng.firstLive(c.vnode)
}

// Offset returns the index of c's first element within its host, or -1 when
// the view is empty.
func (c *Component) Offset() int {
	first := c.FirstElement()
	if first == nil {
		return -1
	}
	return c.eng.surface.IndexOf(c.host, first)
}

// Slot returns the content supplied between the component's tags, or
// defaults when none was supplied. Render functions call it where the
// content belongs.
func (c *Component) Slot(defaults ...any) *vdom.VNode {
	c.slotSeen = true
	if len(c.slot) == 0 {
		return vdom.Slot(defaults...)
	}
	// Slot content belongs to the parent's render and may already be live
	// from a previous render of this view.
	kids := make([]any, 0, len(c.slot))
	for _, k := range c.slot {
		kids = append(kids, vdom.Clone(k))
	}
	return vdom.Slot(kids...)
}

// render returns the view and whether it placed slot content.
func (c *Component) render() (*vdom.VNode, bool) {
	c.slotSeen = false
	v := c.def.render(c)
	if v == nil {
		v = vdom.Fragment()
	}
	c.eng.observer.Rendered(c.def.name)
	return v, c.slotSeen
}

// Mount renders c and mounts it at index within host, appending when index is
// past the last child.
func (c *Component) Mount(host surface.Node, index int) error {
	if index < 0 {
		return fmt.Errorf("mount %s at %d: %w", c.def.name, index, ErrNegativeIndex)
	}
	return c.eng.run(func() error {
		return c.mount(host, c.eng.surface.ChildAt(host, index))
	})
}

// Unmount destroys c's view and discards its state.
func (c *Component) Unmount() error {
	return c.eng.run(func() error {
		return c.unmount(true)
	})
}

func (c *Component) mount(host, before surface.Node) error {
	if c.mounted {
		return fmt.Errorf("mount %s: %w", c.def.name, ErrAlreadyMounted)
	}
	if c.dead {
		return fmt.Errorf("mount %s: %w", c.def.name, ErrComponentUnmounted)
	}

	v, usesSlot := c.render()
	c.usesSlot = usesSlot
	if err := c.eng.mount(v, host, before, c); err != nil {
		return err
	}
	c.vnode = v
	c.host = host
	c.anchor = &anchor{end: before}
	c.mounted = true
	c.eng.settle(v, &anchor{owner: c})
	for event, h := range c.handlers {
		c.subscribe(event, h)
	}

	if c.def.onMounted != nil {
		c.eng.queue.Enqueue(func() error {
			if err := c.def.onMounted(c); err != nil {
				return fmt.Errorf("%s onMounted: %w", c.def.name, err)
			}
			return nil
		})
	}
	c.eng.logger.Debug("component mounted", "component", c.def.name)
	return nil
}

func (c *Component) unmount(detach bool) error {
	if !c.mounted {
		return fmt.Errorf("unmount %s: %w", c.def.name, ErrNotMounted)
	}
	if err := c.eng.destroy(c.vnode, detach); err != nil {
		return err
	}
	for event, unsub := range c.subs {
		unsub()
		delete(c.subs, event)
	}
	c.vnode = nil
	c.host = nil
	c.anchor = nil
	c.mounted = false
	c.dead = true
	c.state = nil
	c.eng.logger.Debug("component unmounted", "component", c.def.name)
	return nil
}

// UpdateState merges s into the state and re-renders.
func (c *Component) UpdateState(s State) error {
	if !c.mounted {
		return fmt.Errorf("update state of %s: %w", c.def.name, ErrComponentUnmounted)
	}
	maps.Copy(c.state, s)
	return c.eng.run(c.rerender)
}

// Set is UpdateState for a single key.
func (c *Component) Set(name string, value any) error {
	return c.UpdateState(State{name: value})
}

// UpdateProps merges props into the current props and re-renders, unless the
// result is deeply equal to the current props.
func (c *Component) UpdateProps(props vdom.Props) error {
	return c.eng.run(func() error {
		return c.updateProps(props, false)
	})
}

func (c *Component) updateProps(props vdom.Props, force bool) error {
	if !c.mounted {
		return fmt.Errorf("update props of %s: %w", c.def.name, ErrComponentUnmounted)
	}
	merged := make(vdom.Props, len(c.props)+len(props))
	maps.Copy(merged, c.props)
	maps.Copy(merged, props)
	if !force && reflect.DeepEqual(merged, c.props) {
		return nil
	}
	c.props = merged
	return c.rerender()
}

// rerender renders the view again and patches it against the mounted one.
func (c *Component) rerender() error {
	if !c.mounted {
		return fmt.Errorf("render %s: %w", c.def.name, ErrComponentUnmounted)
	}
	next, usesSlot := c.render()
	c.usesSlot = usesSlot
	patched, err := c.eng.patch(c.vnode, next, c.host, c.after(), c)
	if patched != nil {
		c.vnode = patched
		c.eng.settle(patched, &anchor{owner: c})
	}
	return err
}

// after returns the live node following c's region in its host.
func (c *Component) after() surface.Node {
	if n := c.eng.nodeAfter(c.vnode, nil); n != nil {
		return n
	}
	if c.patching {
		return c.patchAfter
	}
	n := c.eng.resolve(c.anchor)
	if n != nil && c.eng.surface.Parent(n) != c.host {
		return nil
	}
	return n
}

// Call runs the named method with c bound.
func (c *Component) Call(name string, args ...any) error {
	m, ok := c.def.methods[name]
	if !ok {
		return fmt.Errorf("%s.%s: %w", c.def.name, name, ErrUnknownMethod)
	}
	return m(c, args...)
}

// Emit notifies the handlers the parent attached for event. Handler errors
// are joined and returned.
func (c *Component) Emit(event string, payload any) error {
	return c.eng.run(func() error {
		prev := c.emitErrs
		c.emitErrs = nil
		c.events.Dispatch(event, payload)
		err := errors.Join(c.emitErrs...)
		c.emitErrs = prev
		return err
	})
}

func (c *Component) subscribe(event string, h *vdom.Handler) {
	if h == nil {
		return
	}
	c.subs[event] = c.events.Subscribe(event, func(payload any) {
		if err := c.eng.invoke(h, c.parent, payload); err != nil {
			c.emitErrs = append(c.emitErrs, fmt.Errorf("%s %q handler: %w", c.def.name, event, err))
		}
	})
}

// rewireHandlers replaces the parent-supplied handlers, re-subscribing only
// the events whose handler changed.
func (c *Component) rewireHandlers(next vdom.Events) {
	d := diff.Objects(c.handlers, next, vdom.SameHandler)
	for _, list := range [][]string{d.Removed, d.Updated} {
		for _, event := range list {
			if unsub, ok := c.subs[event]; ok {
				unsub()
				delete(c.subs, event)
			}
		}
	}
	if c.mounted {
		for _, list := range [][]string{d.Added, d.Updated} {
			for _, event := range list {
				c.subscribe(event, next[event])
			}
		}
	}
	c.handlers = next
}

// LogValue implements slog.LogValuer.
func (c *Component) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", c.def.name),
		slog.Bool("mounted", c.mounted),
	)
}
