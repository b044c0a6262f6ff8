package vdom

import (
	"fmt"
	"strings"
)

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element node. Arguments can be: nil, Attr, []Attr,
// EventAttr, *VNode, []*VNode, or string (shorthand for a text node).
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    make(Attrs),
		Children: make([]*VNode, 0),
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
			continue
		case Attr:
			node.applyAttr(v)
		case []Attr:
			for _, a := range v {
				node.applyAttr(a)
			}
		case EventAttr:
			node.addEvent(v)
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			node.Children = appendNodes(node.Children, v)
		case string:
			node.Children = append(node.Children, Text(v))
		default:
			panic(fmt.Sprintf("vdom: unsupported element argument %T", arg))
		}
	}

	return node
}

func (v *VNode) applyAttr(a Attr) {
	switch a.Key {
	case "":
		return
	case "key":
		v.Key = fmt.Sprint(a.Value)
	case "class":
		switch c := a.Value.(type) {
		case string:
			v.Class = append(v.Class, strings.Fields(c)...)
		case []string:
			for _, s := range c {
				v.Class = append(v.Class, strings.Fields(s)...)
			}
		}
	case "style":
		if v.Style == nil {
			v.Style = make(map[string]string)
		}
		switch s := a.Value.(type) {
		case map[string]string:
			for k, val := range s {
				v.Style[k] = val
			}
		case string:
			for k, val := range ParseStyle(s) {
				v.Style[k] = val
			}
		}
	default:
		if v.Attrs == nil {
			v.Attrs = make(Attrs)
		}
		v.Attrs[a.Key] = a.Value
	}
}

func (v *VNode) addEvent(e EventAttr) {
	if e.Event == "" || e.Handler == nil {
		return
	}
	if v.On == nil {
		v.On = make(Events)
	}
	v.On[e.Event] = e.Handler
}

func appendNodes(dst, src []*VNode) []*VNode {
	for _, c := range src {
		if c != nil {
			dst = append(dst, c)
		}
	}
	return dst
}

// ParseStyle parses an inline style declaration such as "color: red; margin: 0".
func ParseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out[name] = strings.TrimSpace(value)
	}
	return out
}

// Document structure and sectioning

func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Article(args ...any) *VNode { return El("article", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func H3(args ...any) *VNode      { return El("h3", args...) }

// Text content

func Div(args ...any) *VNode    { return El("div", args...) }
func P(args ...any) *VNode      { return El("p", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func Ul(args ...any) *VNode     { return El("ul", args...) }
func Ol(args ...any) *VNode     { return El("ol", args...) }
func Li(args ...any) *VNode     { return El("li", args...) }
func A(args ...any) *VNode      { return El("a", args...) }
func Strong(args ...any) *VNode { return El("strong", args...) }

// Forms

func Form(args ...any) *VNode     { return El("form", args...) }
func Button(args ...any) *VNode   { return El("button", args...) }
func Input(args ...any) *VNode    { return El("input", args...) }
func Label(args ...any) *VNode    { return El("label", args...) }
func Textarea(args ...any) *VNode { return El("textarea", args...) }

// Tables

func Table(args ...any) *VNode { return El("table", args...) }
func Tr(args ...any) *VNode    { return El("tr", args...) }
func Td(args ...any) *VNode    { return El("td", args...) }
