package memdom

import (
	"fmt"
	"sync/atomic"

	"github.com/vango-dev/krow/pkg/surface"
)

var nextID atomic.Uint64

// eventArg is what listeners receive; it aliases surface.Event.
type eventArg = surface.Event

// DOM is an in-memory Surface.
type DOM struct {
	body      *Node
	nodes     map[uint64]*Node
	listeners int
	writes    int
}

// New creates a DOM with an empty <body> root.
func New() *DOM {
	d := &DOM{nodes: make(map[uint64]*Node)}
	d.body = d.newNode(ElementNode, "body", "")
	d.writes = 0
	return d
}

var _ surface.Surface = (*DOM)(nil)

// Body returns the root element.
func (d *DOM) Body() *Node { return d.body }

// Lookup returns the node with the given id.
func (d *DOM) Lookup(id uint64) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// Identify returns the id of a surface node, or zero for foreign values.
// It is suitable as a surface.Recorder Identify function.
func (d *DOM) Identify(n surface.Node) uint64 {
	if node, ok := n.(*Node); ok && node != nil {
		return node.id
	}
	return 0
}

// ListenerCount is the number of listeners currently registered anywhere.
func (d *DOM) ListenerCount() int { return d.listeners }

// Writes is the number of mutating calls made since New or ResetWrites.
func (d *DOM) Writes() int { return d.writes }

// ResetWrites zeroes the write counter.
func (d *DOM) ResetWrites() { d.writes = 0 }

func (d *DOM) newNode(kind NodeKind, tag, text string) *Node {
	n := &Node{
		id:   nextID.Add(1),
		kind: kind,
		tag:  tag,
		text: text,
	}
	if kind == ElementNode {
		n.attrs = make(map[string]string)
		n.styles = make(map[string]string)
		n.handlers = make(map[string][]*listener)
	}
	d.nodes[n.id] = n
	d.writes++
	return n
}

func node(n surface.Node) *Node {
	switch v := n.(type) {
	case *Node:
		return v
	case nil:
		return nil
	default:
		panic(fmt.Sprintf("memdom: foreign node %T", n))
	}
}

func element(n surface.Node) *Node {
	el := node(n)
	if el == nil || el.kind != ElementNode {
		panic(fmt.Sprintf("memdom: %v is not an element", n))
	}
	return el
}

func (d *DOM) CreateElement(tag string) surface.Node {
	return d.newNode(ElementNode, tag, "")
}

func (d *DOM) CreateText(text string) surface.Node {
	return d.newNode(TextNode, "", text)
}

func (d *DOM) SetText(n surface.Node, text string) {
	t := node(n)
	if t.kind != TextNode {
		panic("memdom: SetText on element")
	}
	t.text = text
	d.writes++
}

func (d *DOM) SetAttribute(n surface.Node, name, value string) {
	element(n).attrs[name] = value
	d.writes++
}

func (d *DOM) RemoveAttribute(n surface.Node, name string) {
	delete(element(n).attrs, name)
	d.writes++
}

func (d *DOM) AddClass(n surface.Node, class string) {
	el := element(n)
	d.writes++
	if el.HasClass(class) {
		return
	}
	el.classes = append(el.classes, class)
}

func (d *DOM) RemoveClass(n surface.Node, class string) {
	el := element(n)
	d.writes++
	for i, c := range el.classes {
		if c == class {
			el.classes = append(el.classes[:i], el.classes[i+1:]...)
			return
		}
	}
}

func (d *DOM) SetStyle(n surface.Node, property, value string) {
	element(n).styles[property] = value
	d.writes++
}

func (d *DOM) RemoveStyle(n surface.Node, property string) {
	delete(element(n).styles, property)
	d.writes++
}

func (d *DOM) AddEventListener(n surface.Node, event string, fn surface.EventFunc) surface.Listener {
	el := element(n)
	l := &listener{event: event, fn: fn}
	el.handlers[event] = append(el.handlers[event], l)
	d.listeners++
	d.writes++
	return l
}

func (d *DOM) RemoveEventListener(n surface.Node, event string, h surface.Listener) {
	el := element(n)
	l, ok := h.(*listener)
	if !ok {
		return
	}
	d.writes++
	ls := el.handlers[event]
	for i, cur := range ls {
		if cur == l {
			el.handlers[event] = append(ls[:i], ls[i+1:]...)
			if len(el.handlers[event]) == 0 {
				delete(el.handlers, event)
			}
			d.listeners--
			return
		}
	}
}

func (d *DOM) InsertBefore(parent, child, ref surface.Node) {
	p := element(parent)
	c := node(child)
	r := node(ref)
	if r != nil && r.parent != p {
		panic(fmt.Sprintf("memdom: reference node #%d is not a child of #%d", r.id, p.id))
	}
	if r == c {
		return
	}

	c.detach()
	c.parent = p
	d.writes++

	if r == nil {
		p.children = append(p.children, c)
		return
	}
	i := p.indexOf(r)
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = c
}

func (d *DOM) Remove(n surface.Node) {
	c := node(n)
	if c == nil || c.parent == nil {
		return
	}
	c.detach()
	d.writes++
}

func (d *DOM) ChildAt(parent surface.Node, index int) surface.Node {
	p := element(parent)
	if index < 0 || index >= len(p.children) {
		return nil
	}
	return p.children[index]
}

func (d *DOM) IndexOf(parent, child surface.Node) int {
	p := element(parent)
	c := node(child)
	if c == nil {
		return -1
	}
	return p.indexOf(c)
}

func (d *DOM) NextSibling(n surface.Node) surface.Node {
	c := node(n)
	if c == nil || c.parent == nil {
		return nil
	}
	i := c.parent.indexOf(c)
	if i+1 >= len(c.parent.children) {
		return nil
	}
	return c.parent.children[i+1]
}

func (d *DOM) Parent(n surface.Node) surface.Node {
	c := node(n)
	if c == nil || c.parent == nil {
		return nil
	}
	return c.parent
}

// Dispatch fires event on target and bubbles it up through its ancestors.
// Listeners registered or removed during dispatch take effect for the next
// node up, not the one being processed. It returns the number of listeners run.
func (d *DOM) Dispatch(target *Node, event string, value any) int {
	ev := surface.Event{Type: event, Target: target, Value: value}
	ran := 0
	for n := target; n != nil; n = n.parent {
		if n.kind != ElementNode {
			continue
		}
		ls := append([]*listener(nil), n.handlers[event]...)
		for _, l := range ls {
			l.fn(ev)
			ran++
		}
	}
	return ran
}
