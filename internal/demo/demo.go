// Package demo holds the sample applications served by `krow serve` and
// rendered by `krow render`.
package demo

import (
	"sort"

	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/surface"
)

// Demo is a named sample application.
type Demo struct {
	Name        string
	Description string

	// New builds a fresh, unmounted instance on s.
	New func(s surface.Surface, opts ...krow.Option) krow.Application
}

var demos = map[string]Demo{}

func register(d Demo) {
	if _, dup := demos[d.Name]; dup {
		panic("demo: duplicate name " + d.Name)
	}
	demos[d.Name] = d
}

func init() {
	register(Demo{
		Name:        "counter",
		Description: "A component with local state and a click handler",
		New: func(s surface.Surface, opts ...krow.Option) krow.Application {
			return krow.NewApp(s, Counter, opts...)
		},
	})
	register(Demo{
		Name:        "todos",
		Description: "Reducer-driven todo list with inline editing",
		New: func(s surface.Surface, opts ...krow.Option) krow.Application {
			return NewTodos(s, opts...)
		},
	})
	register(Demo{
		Name:        "list",
		Description: "A list rendered through keyed child components",
		New: func(s surface.Surface, opts ...krow.Option) krow.Application {
			opts = append([]krow.Option{krow.WithProps(krow.Props{"items": []string{"foo", "bar", "baz"}})}, opts...)
			return krow.NewApp(s, List, opts...)
		},
	})
	register(Demo{
		Name:        "search",
		Description: "A child input emitting its value to the parent",
		New: func(s surface.Surface, opts ...krow.Option) krow.Application {
			return krow.NewApp(s, SearchField, opts...)
		},
	})
	register(Demo{
		Name:        "counters",
		Description: "Keyed stateful counters that can be removed",
		New: func(s surface.Surface, opts ...krow.Option) krow.Application {
			return krow.NewApp(s, Counters, opts...)
		},
	})
	register(Demo{
		Name:        "card",
		Description: "Cards filled through slots, with fallback content",
		New: func(s surface.Surface, opts ...krow.Option) krow.Application {
			return krow.NewApp(s, CardPage, opts...)
		},
	})
	register(Demo{
		Name:        "tictactoe",
		Description: "Reducer-driven tic-tac-toe board",
		New: func(s surface.Surface, opts ...krow.Option) krow.Application {
			return NewTicTacToe(s, opts...)
		},
	})
}

// Lookup returns the demo called name.
func Lookup(name string) (Demo, bool) {
	d, ok := demos[name]
	return d, ok
}

// Names returns the registered demo names, sorted.
func Names() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every demo, sorted by name.
func All() []Demo {
	names := Names()
	out := make([]Demo, len(names))
	for i, name := range names {
		out[i] = demos[name]
	}
	return out
}
