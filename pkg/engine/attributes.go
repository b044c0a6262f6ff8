package engine

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"

	"github.com/vango-dev/krow/pkg/diff"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// setAttributes applies v's attributes, classes and styles to a fresh element.
func (e *Engine) setAttributes(el surface.Node, v *vdom.VNode) {
	keys := make([]string, 0, len(v.Attrs))
	for k := range v.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.setAttr(el, k, v.Attrs[k])
	}
	for _, c := range v.Class {
		e.surface.AddClass(el, c)
	}
	props := make([]string, 0, len(v.Style))
	for p := range v.Style {
		props = append(props, p)
	}
	sort.Strings(props)
	for _, p := range props {
		e.surface.SetStyle(el, p, v.Style[p])
	}
}

// setAttr writes a single attribute. nil and false remove it, true sets it
// empty (boolean attribute).
func (e *Engine) setAttr(el surface.Node, name string, value any) {
	switch v := value.(type) {
	case nil:
		e.surface.RemoveAttribute(el, name)
	case bool:
		if v {
			e.surface.SetAttribute(el, name, "")
		} else {
			e.surface.RemoveAttribute(el, name)
		}
	default:
		e.surface.SetAttribute(el, name, attrString(value))
	}
}

func (e *Engine) patchAttributes(el surface.Node, old, next *vdom.VNode) {
	d := diff.Objects(old.Attrs, next.Attrs, sameValue)
	for _, k := range d.Removed {
		e.surface.RemoveAttribute(el, k)
	}
	for _, k := range d.Added {
		e.setAttr(el, k, next.Attrs[k])
	}
	for _, k := range d.Updated {
		e.setAttr(el, k, next.Attrs[k])
	}
}

func (e *Engine) patchClasses(el surface.Node, old, next []string) {
	d := diff.Arrays(old, next)
	for _, c := range d.Removed {
		e.surface.RemoveClass(el, c)
	}
	for _, c := range d.Added {
		e.surface.AddClass(el, c)
	}
}

func (e *Engine) patchStyles(el surface.Node, old, next map[string]string) {
	d := diff.Objects(old, next, func(a, b string) bool { return a == b })
	for _, p := range d.Removed {
		e.surface.RemoveStyle(el, p)
	}
	for _, p := range d.Added {
		e.surface.SetStyle(el, p, next[p])
	}
	for _, p := range d.Updated {
		e.surface.SetStyle(el, p, next[p])
	}
}

// sameValue is strict equality for comparable values; anything else (slices,
// maps, funcs) counts as changed.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// attrString converts an attribute value to its string form.
func attrString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
