package demo

import (
	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/vdom"
)

// Counter shows a count and a button incrementing it.
var Counter = krow.MustDefine(krow.Spec{
	Name: "Counter",
	State: func(p krow.Props) krow.State {
		start, _ := p["start"].(int)
		return krow.State{"count": start}
	},
	Render: func(c *krow.Component) *krow.VNode {
		return vdom.Fragment(
			vdom.P(vdom.Textf("Count: %d", c.Get("count"))),
			vdom.Button(vdom.OnClick(vdom.Call("increment")), "Increment"),
		)
	},
	Methods: map[string]krow.Method{
		"increment": func(c *krow.Component, _ ...any) error {
			return c.Set("count", c.Get("count").(int)+1)
		},
	},
})
