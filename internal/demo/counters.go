package demo

import (
	"slices"

	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/vdom"
)

// KeyedCounter is a counter that asks its parent to remove it.
var KeyedCounter = krow.MustDefine(krow.Spec{
	Name: "KeyedCounter",
	State: func(krow.Props) krow.State {
		return krow.State{"count": 0}
	},
	Render: func(c *krow.Component) *krow.VNode {
		return vdom.Div(
			vdom.Class("counter"),
			vdom.Span(vdom.Textf("#%d: %d", c.Prop("id"), c.Get("count"))),
			vdom.Button(vdom.OnClick(vdom.Call("increment")), "Add"),
			vdom.Button(vdom.OnClick(vdom.Call("remove")), "Remove"),
		)
	},
	Methods: map[string]krow.Method{
		"increment": func(c *krow.Component, _ ...any) error {
			return c.Set("count", c.Get("count").(int)+1)
		},
		"remove": func(c *krow.Component, _ ...any) error {
			return c.Emit("remove", c.Prop("id"))
		},
	},
})

// Counters keeps a list of KeyedCounter children keyed by id, so removing
// one keeps the state of the others.
var Counters = krow.MustDefine(krow.Spec{
	Name: "Counters",
	State: func(krow.Props) krow.State {
		return krow.State{"ids": []int{1, 2, 3}, "next": 4}
	},
	Render: func(c *krow.Component) *krow.VNode {
		ids := c.Get("ids").([]int)
		return vdom.Div(
			vdom.Button(vdom.OnClick(vdom.Call("add")), "New counter"),
			vdom.Range(ids, func(id int, _ int) *krow.VNode {
				return vdom.Comp(KeyedCounter,
					vdom.Key(id),
					vdom.Prop("id", id),
					vdom.On("remove", vdom.Call("remove")),
				)
			}),
		)
	},
	Methods: map[string]krow.Method{
		"add": func(c *krow.Component, _ ...any) error {
			ids := c.Get("ids").([]int)
			next := c.Get("next").(int)
			return c.UpdateState(krow.State{
				"ids":  append(slices.Clone(ids), next),
				"next": next + 1,
			})
		},
		"remove": func(c *krow.Component, args ...any) error {
			id, _ := firstArg(args).(int)
			ids := slices.DeleteFunc(slices.Clone(c.Get("ids").([]int)), func(v int) bool { return v == id })
			return c.Set("ids", ids)
		},
	},
})
