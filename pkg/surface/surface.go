// Package surface defines the live rendering surface the engine mutates.
//
// A Surface is an opaque mutable tree. The engine never inspects nodes beyond
// the primitives below; everything it needs to reconcile a virtual tree is
// expressed as creation, attribute, listener and placement calls.
package surface

// Node is a live node owned by a Surface.
type Node any

// Listener is the removable handle returned by AddEventListener.
type Listener any

// Event is delivered to listener callbacks.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Target is the node the event was dispatched on.
	Target Node

	// Value carries an optional payload, e.g. the value of an input.
	Value any
}

// EventFunc is a listener callback.
type EventFunc func(Event)

// Surface is the set of synchronous primitives a live tree must provide.
type Surface interface {
	CreateElement(tag string) Node
	CreateText(text string) Node
	SetText(n Node, text string)

	SetAttribute(n Node, name, value string)
	RemoveAttribute(n Node, name string)
	AddClass(n Node, class string)
	RemoveClass(n Node, class string)
	SetStyle(n Node, property, value string)
	RemoveStyle(n Node, property string)

	AddEventListener(n Node, event string, fn EventFunc) Listener
	RemoveEventListener(n Node, event string, l Listener)

	// InsertBefore places child under parent before ref, appending when ref is
	// nil. A child that is already attached is moved.
	InsertBefore(parent, child, ref Node)
	// Remove detaches n from its parent. Detached nodes are ignored.
	Remove(n Node)

	// ChildAt returns the index-th child of parent, or nil when out of range.
	ChildAt(parent Node, index int) Node
	// IndexOf returns the position of child under parent, or -1.
	IndexOf(parent, child Node) int
	// NextSibling returns the node following n under its parent, or nil.
	NextSibling(n Node) Node
	// Parent returns the node n is attached to, or nil.
	Parent(n Node) Node
}
