package demo

import (
	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/vdom"
)

// Card frames the content placed between its tags.
var Card = krow.MustDefine(krow.Spec{
	Name: "Card",
	Render: func(c *krow.Component) *krow.VNode {
		title, _ := c.Prop("title").(string)
		return vdom.Div(
			vdom.Class("card"),
			vdom.H2(title),
			vdom.Div(vdom.Class("card-body"), c.Slot(vdom.P(vdom.Class("empty"), "Nothing here yet."))),
		)
	},
})

// CardPage fills one card through its slot and leaves another empty.
var CardPage = krow.MustDefine(krow.Spec{
	Name: "CardPage",
	State: func(krow.Props) krow.State {
		return krow.State{"likes": 0}
	},
	Render: func(c *krow.Component) *krow.VNode {
		likes := c.Get("likes").(int)
		return vdom.Fragment(
			vdom.Comp(Card, vdom.Prop("title", "Welcome"),
				vdom.P("This paragraph was supplied by the page."),
				vdom.Button(
					vdom.OnClick(func() error { return c.Set("likes", likes+1) }),
					vdom.Textf("Likes: %d", likes),
				),
			),
			vdom.Comp(Card, vdom.Prop("title", "Empty")),
		)
	},
})
