package vdom

import "github.com/vango-dev/krow/pkg/surface"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText      Kind = iota // Plain text
	KindElement               // <div>, <button>, etc.
	KindFragment              // Grouping without wrapper
	KindComponent             // Component placeholder
	KindSlot                  // Substituted with the instantiator's content
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindSlot:
		return "Slot"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
//
// The fields below Instance describe mounted state and are owned by the
// engine: El is nil exactly when the node is unmounted. A fragment's El is the
// live node of its host, never a node of its own.
type VNode struct {
	Kind     Kind
	Tag      string            // Element tag name
	Attrs    Attrs             // Element attributes, excluding class, style and key
	Class    []string          // Element class list
	Style    map[string]string // Element inline style
	On       Events            // Element listeners or component event handlers
	Key      string            // Reconciliation key
	Text     string            // For KindText
	Children []*VNode          // Children; slot content for components; default content for slots
	Comp     Definition        // For KindComponent
	Props    Props             // For KindComponent

	El        surface.Node
	Listeners map[string]surface.Listener
	Instance  Instance
}

// Attrs holds element attribute values.
type Attrs map[string]any

// Props holds component props.
type Props map[string]any

// Events maps an event name to its handler.
type Events map[string]*Handler

// Definition identifies a component type. Two component nodes refer to the
// same component when their Definitions are equal.
type Definition interface {
	Name() string
}

// Instance is the live component behind a mounted component node.
type Instance interface {
	// Elements returns the top-level live nodes of the component's view.
	Elements() []surface.Node
}

// Mounted reports whether v has a live node.
func (v *VNode) Mounted() bool {
	return v != nil && v.El != nil
}

// SameNode reports whether a and b describe the same node for reconciliation:
// same kind, same tag or component definition, and same key.
func SameNode(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement:
		return a.Tag == b.Tag && a.Key == b.Key
	case KindComponent:
		return a.Comp == b.Comp && a.Key == b.Key
	default:
		return true
	}
}
