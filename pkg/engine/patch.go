package engine

import (
	"fmt"

	"github.com/vango-dev/krow/pkg/diff"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// patch reconciles old (mounted) against next (unmounted) under host. next is
// the live node following old's region, used when old has to be replaced or
// when a fragment grows at its end.
func (e *Engine) patch(old, next *vdom.VNode, host, after surface.Node, owner *Component) (*vdom.VNode, error) {
	if old == nil || old.El == nil {
		return nil, fmt.Errorf("patch %s: %w", describeOrNil(old), ErrNotMounted)
	}
	if next == nil {
		return nil, fmt.Errorf("patch %s: nil replacement: %w", describe(old), ErrUnknownKind)
	}
	if next.El != nil {
		return nil, fmt.Errorf("patch with %s: %w", describe(next), ErrAlreadyMounted)
	}

	if !vdom.SameNode(old, next) {
		return next, e.replace(old, next, host, after, owner)
	}

	next.El = old.El

	switch next.Kind {
	case vdom.KindText:
		if old.Text != next.Text {
			e.surface.SetText(next.El, next.Text)
		}

	case vdom.KindElement:
		e.patchAttributes(next.El, old, next)
		e.patchClasses(next.El, old.Class, next.Class)
		e.patchStyles(next.El, old.Style, next.Style)
		next.Listeners = e.patchListeners(next.El, old, next, owner)
		old.Listeners = nil
		if err := e.patchChildren(old.Children, next.Children, next.El, nil, owner); err != nil {
			return next, err
		}
		e.settleList(next.Children, nil)

	case vdom.KindFragment, vdom.KindSlot:
		next.El = host
		if err := e.patchChildren(old.Children, next.Children, host, after, owner); err != nil {
			return next, err
		}

	case vdom.KindComponent:
		if err := e.patchComponent(old, next, after); err != nil {
			return next, err
		}

	default:
		return next, fmt.Errorf("patch kind %d: %w", next.Kind, ErrUnknownKind)
	}

	old.El = nil
	e.observer.Patched(next.Kind, true)
	return next, nil
}

// replace destroys old and mounts next where old was.
func (e *Engine) replace(old, next *vdom.VNode, host, after surface.Node, owner *Component) error {
	anchor := e.nodeAfter(old, after)
	e.logger.Debug("replacing node", "old", describe(old), "new", describe(next))
	if err := e.destroy(old, true); err != nil {
		return err
	}
	if err := e.mount(next, host, anchor, owner); err != nil {
		return err
	}
	e.observer.Patched(next.Kind, false)
	return nil
}

func (e *Engine) patchComponent(old, next *vdom.VNode, after surface.Node) error {
	c, ok := old.Instance.(*Component)
	if !ok {
		return fmt.Errorf("patch %s: %w", describe(old), ErrComponentUnmounted)
	}
	next.Instance = c
	old.Instance = nil

	c.rewireHandlers(next.On)

	// A view that shows slot content re-renders whenever content is supplied,
	// since the content is part of its input.
	force := c.usesSlot && (len(old.Children) > 0 || len(next.Children) > 0)
	c.slot = next.Children

	c.patching, c.patchAfter = true, after
	err := c.updateProps(next.Props, force)
	c.patching, c.patchAfter = false, nil
	if err != nil {
		return err
	}
	next.El = c.FirstElement()
	if next.El == nil {
		next.El = c.host
	}
	return nil
}

// patchChildren reconciles two child lists rendered under host. end is the
// live node after the region the children occupy, nil for the end of host.
func (e *Engine) patchChildren(oldKids, newKids []*vdom.VNode, host, end surface.Node, owner *Component) error {
	ops := diff.Sequence(oldKids, newKids, vdom.SameNode)

	// work mirrors the differ's working sequence: after each op it holds the
	// mounted node at every position.
	work := make([]*vdom.VNode, len(oldKids))
	copy(work, oldKids)

	for _, op := range ops {
		switch op.Kind {
		case diff.OpRemove:
			if err := e.destroy(work[op.Index], true); err != nil {
				return err
			}
			work = removeAt(work, op.Index)

		case diff.OpAdd:
			anchor := e.firstLiveFrom(work, op.Index, end)
			if err := e.mount(op.Item, host, anchor, owner); err != nil {
				return err
			}
			work = insertAt(work, op.Index, op.Item)

		case diff.OpMove:
			child := work[op.From]
			work = removeAt(work, op.From)
			work = insertAt(work, op.Index, child)

			anchor := e.firstLiveFrom(work, op.Index+1, end)
			for _, n := range e.liveNodes(child) {
				e.surface.InsertBefore(host, n, anchor)
			}
			patched, err := e.patch(child, newKids[op.Index], host, anchor, owner)
			if err != nil {
				return err
			}
			work[op.Index] = patched

		case diff.OpNoop:
			anchor := e.firstLiveFrom(work, op.Index+1, end)
			patched, err := e.patch(work[op.Index], newKids[op.Index], host, anchor, owner)
			if err != nil {
				return err
			}
			work[op.Index] = patched
		}
	}
	return nil
}

func removeAt(s []*vdom.VNode, i int) []*vdom.VNode {
	return append(s[:i], s[i+1:]...)
}

func insertAt(s []*vdom.VNode, i int, v *vdom.VNode) []*vdom.VNode {
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func describeOrNil(v *vdom.VNode) string {
	if v == nil {
		return "<nil>"
	}
	return describe(v)
}
