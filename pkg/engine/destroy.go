package engine

import (
	"fmt"

	"github.com/vango-dev/krow/pkg/vdom"
)

// destroy unmounts v. When detach is false the caller has already removed an
// ancestor from the surface, so only listeners and references are cleared.
func (e *Engine) destroy(v *vdom.VNode, detach bool) error {
	if v == nil {
		return nil
	}
	if v.El == nil {
		return fmt.Errorf("destroy %s: %w", describe(v), ErrNotMounted)
	}

	switch v.Kind {
	case vdom.KindText:
		if detach {
			e.surface.Remove(v.El)
		}

	case vdom.KindElement:
		if detach {
			e.surface.Remove(v.El)
		}
		e.removeListeners(v)
		for _, child := range v.Children {
			if err := e.destroy(child, false); err != nil {
				return err
			}
		}

	case vdom.KindFragment, vdom.KindSlot:
		for _, child := range v.Children {
			if err := e.destroy(child, detach); err != nil {
				return err
			}
		}

	case vdom.KindComponent:
		c, ok := v.Instance.(*Component)
		if !ok {
			return fmt.Errorf("destroy %s: %w", describe(v), ErrNotMounted)
		}
		if err := c.unmount(detach); err != nil {
			return err
		}
		v.Instance = nil

	default:
		return fmt.Errorf("destroy kind %d: %w", v.Kind, ErrUnknownKind)
	}

	v.El = nil
	e.observer.Destroyed(v.Kind)
	return nil
}
