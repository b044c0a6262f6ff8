package memdom

// QueryAll returns every descendant element of root with the given tag,
// in document order. An empty tag matches all elements.
func (d *DOM) QueryAll(root *Node, tag string) []*Node {
	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, c := range n.children {
			if c.kind == ElementNode && (tag == "" || c.tag == tag) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

// QueryFirst returns the first descendant element with the given tag.
func (d *DOM) QueryFirst(root *Node, tag string) *Node {
	all := d.QueryAll(root, tag)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// QueryAttr returns the first descendant element whose attribute name equals value.
func (d *DOM) QueryAttr(root *Node, name, value string) *Node {
	for _, n := range d.QueryAll(root, "") {
		if v, ok := n.attrs[name]; ok && v == value {
			return n
		}
	}
	return nil
}
