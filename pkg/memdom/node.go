package memdom

import "sort"

// NodeKind distinguishes element and text nodes.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// Node is a live node. Fields are read-only outside this package.
type Node struct {
	id       uint64
	kind     NodeKind
	tag      string
	text     string
	attrs    map[string]string
	classes  []string
	styles   map[string]string
	handlers map[string][]*listener
	parent   *Node
	children []*Node
}

type listener struct {
	event string
	fn    func(ev eventArg)
}

// ID returns the node's unique id.
func (n *Node) ID() uint64 { return n.id }

// Kind returns whether n is an element or a text node.
func (n *Node) Kind() NodeKind { return n.kind }

// Tag returns the element tag, or "#text".
func (n *Node) Tag() string {
	if n.kind == TextNode {
		return "#text"
	}
	return n.tag
}

// Text returns a text node's content.
func (n *Node) Text() string { return n.text }

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns a copy of the attribute map.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Classes returns the class list in insertion order.
func (n *Node) Classes() []string {
	out := make([]string, len(n.classes))
	copy(out, n.classes)
	return out
}

// HasClass reports whether class is in the class list.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// Style returns an inline style property.
func (n *Node) Style(property string) (string, bool) {
	v, ok := n.styles[property]
	return v, ok
}

// StyleProperties returns the sorted names of the inline style properties.
func (n *Node) StyleProperties() []string {
	out := make([]string, 0, len(n.styles))
	for k := range n.styles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ListenerCount returns how many listeners are registered on n for event,
// or on any event when event is empty.
func (n *Node) ListenerCount(event string) int {
	if event != "" {
		return len(n.handlers[event])
	}
	total := 0
	for _, ls := range n.handlers {
		total += len(ls)
	}
	return total
}

// TextContent concatenates the text of n and its descendants.
func (n *Node) TextContent() string {
	if n.kind == TextNode {
		return n.text
	}
	var out []byte
	for _, c := range n.children {
		out = append(out, c.TextContent()...)
	}
	return string(out)
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}
