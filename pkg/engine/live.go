package engine

import (
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// liveNodes returns the top-level live nodes v occupies in its host, in order.
func (e *Engine) liveNodes(v *vdom.VNode) []surface.Node {
	var out []surface.Node
	e.collectLive(v, &out)
	return out
}

func (e *Engine) collectLive(v *vdom.VNode, out *[]surface.Node) {
	if v == nil || v.El == nil {
		return
	}
	switch v.Kind {
	case vdom.KindText, vdom.KindElement:
		*out = append(*out, v.El)
	case vdom.KindFragment, vdom.KindSlot:
		for _, c := range v.Children {
			e.collectLive(c, out)
		}
	case vdom.KindComponent:
		if c, ok := v.Instance.(*Component); ok && c.vnode != nil {
			e.collectLive(c.vnode, out)
		}
	}
}

func (e *Engine) firstLive(v *vdom.VNode) surface.Node {
	if v == nil || v.El == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindText, vdom.KindElement:
		return v.El
	case vdom.KindFragment, vdom.KindSlot:
		for _, c := range v.Children {
			if n := e.firstLive(c); n != nil {
				return n
			}
		}
	case vdom.KindComponent:
		if c, ok := v.Instance.(*Component); ok {
			return e.firstLive(c.vnode)
		}
	}
	return nil
}

func (e *Engine) lastLive(v *vdom.VNode) surface.Node {
	if v == nil || v.El == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindText, vdom.KindElement:
		return v.El
	case vdom.KindFragment, vdom.KindSlot:
		for i := len(v.Children) - 1; i >= 0; i-- {
			if n := e.lastLive(v.Children[i]); n != nil {
				return n
			}
		}
	case vdom.KindComponent:
		if c, ok := v.Instance.(*Component); ok {
			return e.lastLive(c.vnode)
		}
	}
	return nil
}

// firstLiveFrom returns the first live node among nodes[i:], or fallback.
func (e *Engine) firstLiveFrom(nodes []*vdom.VNode, i int, fallback surface.Node) surface.Node {
	for ; i < len(nodes); i++ {
		if n := e.firstLive(nodes[i]); n != nil {
			return n
		}
	}
	return fallback
}

// nodeAfter returns the live node following v's region, or fallback when v
// occupies no live nodes.
func (e *Engine) nodeAfter(v *vdom.VNode, fallback surface.Node) surface.Node {
	last := e.lastLive(v)
	if last == nil {
		return fallback
	}
	return e.surface.NextSibling(last)
}

// anchor locates the live node that follows a component's region. It is
// structural rather than a cached node, so it stays correct when siblings
// re-render on their own.
type anchor struct {
	// kids and index place the component (or an enclosing fragment) in its
	// child list; siblings after index are searched first.
	kids  []*vdom.VNode
	index int

	// outer is consulted when no later sibling has live nodes.
	outer *anchor

	// owner is set when the region is the root of owner's view; the search
	// continues after owner's own region.
	owner *Component

	// end is the fixed node closing the search, nil for the end of host.
	end surface.Node
}

// resolve returns the live node before which content at a should be inserted.
func (e *Engine) resolve(a *anchor) surface.Node {
	for a != nil {
		if a.owner != nil {
			a = a.owner.anchor
			continue
		}
		if n := e.firstLiveFrom(a.kids, a.index+1, nil); n != nil {
			return n
		}
		if a.outer == nil {
			return a.end
		}
		a = a.outer
	}
	return nil
}

// settleList records on every component among kids where it sits, so a
// component whose view is empty can still re-render into the right position.
func (e *Engine) settleList(kids []*vdom.VNode, outer *anchor) {
	for i, kid := range kids {
		if kid == nil {
			continue
		}
		e.settle(kid, &anchor{kids: kids, index: i, outer: outer})
	}
}

func (e *Engine) settle(v *vdom.VNode, a *anchor) {
	switch v.Kind {
	case vdom.KindFragment, vdom.KindSlot:
		e.settleList(v.Children, a)
	case vdom.KindComponent:
		if c, ok := v.Instance.(*Component); ok {
			c.anchor = a
		}
	}
}
