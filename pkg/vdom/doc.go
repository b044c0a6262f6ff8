// Package vdom provides the virtual node model.
//
// A VNode is a tagged union over five kinds: Text, Element, Fragment,
// Component and Slot. Elements carry attributes, a class list, an inline style
// map and event handlers; components carry a Definition, props, handlers for
// the events they emit, and the content their slot is filled with.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P(Text("Content")),
//	    OnClick(handler),
//	)
//
// Components are instantiated with Comp:
//
//	Comp(TodoItem, Key(todo.ID), Prop("todo", todo), On("remove", Call("remove")))
//
// # Reconciliation
//
// SameNode is the equality used to match children across renders: kind,
// tag (or component definition) and key must agree. Once mounted by the
// engine a node's El, Listeners and Instance fields are populated; Clone
// produces an unmounted copy.
package vdom
