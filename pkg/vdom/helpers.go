package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return &VNode{
		Kind:     KindFragment,
		Children: collectChildren(children),
	}
}

// Comp creates a component node. Attr arguments become props (Key sets the
// reconciliation key), EventAttr arguments subscribe to events the component
// emits, and child nodes become the content its slot is filled with.
func Comp(def Definition, args ...any) *VNode {
	node := &VNode{
		Kind:     KindComponent,
		Comp:     def,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	var children []any
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			node.applyProp(v)
		case []Attr:
			for _, a := range v {
				node.applyProp(a)
			}
		case Props:
			for k, val := range v {
				node.applyProp(Attr{Key: k, Value: val})
			}
		case EventAttr:
			node.addEvent(v)
		default:
			children = append(children, arg)
		}
	}
	node.Children = collectChildren(children)
	return node
}

func (v *VNode) applyProp(a Attr) {
	switch a.Key {
	case "":
	case "key":
		v.Key = fmt.Sprint(a.Value)
	default:
		v.Props[a.Key] = a.Value
	}
}

// Slot marks where a component's view receives the content supplied by its
// instantiator. The given children are shown when no content was supplied.
// Views normally call the engine's Component.Slot, which also records that the
// render produced a slot; a slot nobody fills mounts its defaults.
func Slot(defaults ...any) *VNode {
	return &VNode{
		Kind:     KindSlot,
		Children: collectChildren(defaults),
	}
}

func collectChildren(args []any) []*VNode {
	out := make([]*VNode, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case []*VNode:
			out = appendNodes(out, v)
		case string:
			out = append(out, Text(v))
		default:
			panic(fmt.Sprintf("vdom: unsupported child %T", arg))
		}
	}
	return out
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// IfElse returns the first node if condition is true, the second otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return nil
}

// Range maps items to nodes, dropping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// Repeat calls fn n times and collects the nodes.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	out := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// Clone returns a deep copy of v without any mounted state. Handlers and
// attribute values are shared, so the copy patches against v as unchanged.
func Clone(v *VNode) *VNode {
	if v == nil {
		return nil
	}
	c := &VNode{
		Kind: v.Kind,
		Tag:  v.Tag,
		Key:  v.Key,
		Text: v.Text,
		Comp: v.Comp,
	}
	if v.Attrs != nil {
		c.Attrs = make(Attrs, len(v.Attrs))
		for k, val := range v.Attrs {
			c.Attrs[k] = val
		}
	}
	if v.Class != nil {
		c.Class = append([]string(nil), v.Class...)
	}
	if v.Style != nil {
		c.Style = make(map[string]string, len(v.Style))
		for k, val := range v.Style {
			c.Style[k] = val
		}
	}
	if v.On != nil {
		c.On = make(Events, len(v.On))
		for k, h := range v.On {
			c.On[k] = h
		}
	}
	if v.Props != nil {
		c.Props = make(Props, len(v.Props))
		for k, val := range v.Props {
			c.Props[k] = val
		}
	}
	if v.Children != nil {
		c.Children = make([]*VNode, len(v.Children))
		for i, child := range v.Children {
			c.Children[i] = Clone(child)
		}
	}
	return c
}

// Walk visits v and its descendants depth first. fn receives each node with
// its parent and its index in the parent's Children; returning false skips
// the node's children. Component slot content is visited like any children.
func Walk(v *VNode, fn func(node, parent *VNode, index int) bool) {
	walk(v, nil, -1, fn)
}

func walk(v, parent *VNode, index int, fn func(node, parent *VNode, index int) bool) {
	if v == nil {
		return
	}
	if !fn(v, parent, index) {
		return
	}
	for i := 0; i < len(v.Children); i++ {
		walk(v.Children[i], v, i, fn)
	}
}

// Flatten returns children with fragments replaced by their own children,
// recursively.
func Flatten(children []*VNode) []*VNode {
	out := make([]*VNode, 0, len(children))
	for _, c := range children {
		if c.Kind == KindFragment {
			out = append(out, Flatten(c.Children)...)
			continue
		}
		out = append(out, c)
	}
	return out
}
