package demo

import (
	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/vdom"
)

// ListItem renders its "item" prop as a list entry.
var ListItem = krow.MustDefine(krow.Spec{
	Name: "ListItem",
	Render: func(c *krow.Component) *krow.VNode {
		item, _ := c.Prop("item").(string)
		return vdom.Li(item)
	},
})

// List renders the "items" prop through ListItem children.
var List = krow.MustDefine(krow.Spec{
	Name: "List",
	Render: func(c *krow.Component) *krow.VNode {
		items, _ := c.Prop("items").([]string)
		return vdom.Fragment(
			vdom.H1("List of items"),
			vdom.Ul(vdom.Range(items, func(item string, _ int) *krow.VNode {
				return vdom.Comp(ListItem, vdom.Key(item), vdom.Prop("item", item))
			})),
		)
	},
})
