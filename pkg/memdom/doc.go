// Package memdom is an in-memory live tree implementing surface.Surface.
//
// It models the subset of a browser DOM the engine touches: element and text
// nodes, attributes, an ordered class list, inline styles and event listeners
// with bubbling dispatch. Every node gets a process-unique id so journals and
// remote clients can address it.
//
//	dom := memdom.New()
//	app.Mount(dom.Body())
//	dom.Dispatch(dom.QueryFirst(dom.Body(), "button"), "click", nil)
//	fmt.Println(dom.HTML(dom.Body()))
package memdom
