package demo

import (
	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// InputField emits "input-data" with the input's value on every keystroke.
var InputField = krow.MustDefine(krow.Spec{
	Name: "InputField",
	Render: func(c *krow.Component) *krow.VNode {
		return vdom.Input(vdom.Type("search"), vdom.Placeholder("Search"), vdom.OnInput(vdom.Call("changed")))
	},
	Methods: map[string]krow.Method{
		"changed": func(c *krow.Component, args ...any) error {
			return c.Emit("input-data", eventValue(args))
		},
	},
})

// SearchField echoes what is typed into its InputField child.
var SearchField = krow.MustDefine(krow.Spec{
	Name: "SearchField",
	State: func(krow.Props) krow.State {
		return krow.State{"query": ""}
	},
	Render: func(c *krow.Component) *krow.VNode {
		query, _ := c.Get("query").(string)
		return vdom.Fragment(
			vdom.H1("Search Field"),
			vdom.Comp(InputField, vdom.On("input-data", vdom.Call("search"))),
			vdom.If(query != "", vdom.P(vdom.Textf("Searching for %q", query))),
		)
	},
	Methods: map[string]krow.Method{
		"search": func(c *krow.Component, args ...any) error {
			q, _ := firstArg(args).(string)
			return c.Set("query", q)
		},
	},
})

func firstArg(args []any) any {
	if len(args) == 0 {
		return nil
	}
	return args[0]
}

// eventValue extracts the string value carried by a surface event argument.
func eventValue(args []any) string {
	switch v := firstArg(args).(type) {
	case surface.Event:
		s, _ := v.Value.(string)
		return s
	case string:
		return v
	default:
		return ""
	}
}
