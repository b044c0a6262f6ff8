package engine

import (
	"fmt"

	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// mount creates live nodes for v and inserts them under host before the
// reference node (appending when before is nil).
func (e *Engine) mount(v *vdom.VNode, host, before surface.Node, owner *Component) error {
	if v == nil {
		return nil
	}
	if v.El != nil {
		return fmt.Errorf("mount %s: %w", describe(v), ErrAlreadyMounted)
	}

	switch v.Kind {
	case vdom.KindText:
		n := e.surface.CreateText(v.Text)
		v.El = n
		e.surface.InsertBefore(host, n, before)

	case vdom.KindElement:
		if err := e.mountElement(v, host, before, owner); err != nil {
			return err
		}

	case vdom.KindFragment, vdom.KindSlot:
		v.El = host
		for _, child := range v.Children {
			if err := e.mount(child, host, before, owner); err != nil {
				return err
			}
		}

	case vdom.KindComponent:
		if err := e.mountComponent(v, host, before, owner); err != nil {
			return err
		}

	default:
		return fmt.Errorf("mount kind %d: %w", v.Kind, ErrUnknownKind)
	}

	e.observer.Mounted(v.Kind)
	return nil
}

func (e *Engine) mountElement(v *vdom.VNode, host, before surface.Node, owner *Component) error {
	el := e.surface.CreateElement(v.Tag)
	e.setAttributes(el, v)
	v.Listeners = e.addListeners(el, v.On, owner)
	v.El = el

	for _, child := range v.Children {
		if err := e.mount(child, el, nil, owner); err != nil {
			return err
		}
	}
	e.settleList(v.Children, nil)
	e.surface.InsertBefore(host, el, before)
	return nil
}

func (e *Engine) mountComponent(v *vdom.VNode, host, before surface.Node, owner *Component) error {
	def, ok := v.Comp.(*Definition)
	if !ok {
		return fmt.Errorf("mount %s: %w", describe(v), ErrForeignComponent)
	}

	c := e.newComponent(def, v.Props, v.On, owner)
	c.slot = v.Children
	if err := c.mount(host, before); err != nil {
		return err
	}

	v.Instance = c
	v.El = c.FirstElement()
	if v.El == nil {
		// Empty views have no element of their own; like fragments they
		// report their host.
		v.El = host
	}
	return nil
}

func describe(v *vdom.VNode) string {
	switch v.Kind {
	case vdom.KindElement:
		return "<" + v.Tag + ">"
	case vdom.KindComponent:
		if v.Comp != nil {
			return "component " + v.Comp.Name()
		}
		return "component"
	default:
		return v.Kind.String()
	}
}
