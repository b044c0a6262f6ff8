package vdom

// EventAttr registers a handler for an event. On elements it becomes a live
// listener; on components it subscribes to events the component emits.
type EventAttr struct {
	Event   string
	Handler *Handler
}

// On registers fn for event. fn accepts the forms listed on Handle.
func On(event string, fn any) EventAttr {
	return EventAttr{Event: event, Handler: Handle(fn)}
}

// OnClick handles click events.
func OnClick(fn any) EventAttr { return On("click", fn) }

// OnInput handles input events.
func OnInput(fn any) EventAttr { return On("input", fn) }

// OnChange handles change events.
func OnChange(fn any) EventAttr { return On("change", fn) }

// OnSubmit handles form submit events.
func OnSubmit(fn any) EventAttr { return On("submit", fn) }

// OnKeyDown handles keydown events.
func OnKeyDown(fn any) EventAttr { return On("keydown", fn) }

// OnDblClick handles double-click events.
func OnDblClick(fn any) EventAttr { return On("dblclick", fn) }

// OnBlur handles blur events.
func OnBlur(fn any) EventAttr { return On("blur", fn) }
