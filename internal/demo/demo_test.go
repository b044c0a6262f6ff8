package demo

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/krow/pkg/memdom"
)

func mountDemo(t *testing.T, name string) *memdom.DOM {
	t.Helper()
	d, ok := Lookup(name)
	if !ok {
		t.Fatalf("Lookup(%q) failed", name)
	}
	dom := memdom.New()
	app := d.New(dom)
	if err := app.Mount(context.Background(), dom.Body()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}
	t.Cleanup(func() {
		if app.Mounted() {
			_ = app.Unmount(context.Background())
		}
	})
	return dom
}

func button(t *testing.T, d *memdom.DOM, root *memdom.Node, label string) *memdom.Node {
	t.Helper()
	for _, b := range d.QueryAll(root, "button") {
		if strings.TrimSpace(b.TextContent()) == label {
			return b
		}
	}
	t.Fatalf("no button %q in %s", label, d.HTML(root))
	return nil
}

func withClass(d *memdom.DOM, root *memdom.Node, tag, class string) []*memdom.Node {
	var out []*memdom.Node
	for _, n := range d.QueryAll(root, tag) {
		if n.HasClass(class) {
			out = append(out, n)
		}
	}
	return out
}

func texts(nodes []*memdom.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.TextContent()
	}
	return out
}

func TestNames(t *testing.T) {
	want := []string{"card", "counter", "counters", "list", "search", "tictactoe", "todos"}
	if diff := cmp.Diff(want, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
	if len(All()) != len(want) {
		t.Errorf("All() returned %d demos", len(All()))
	}
	if _, ok := Lookup("nope"); ok {
		t.Error("Lookup(nope) succeeded")
	}
}

func TestEveryDemoUnmountsCleanly(t *testing.T) {
	for _, d := range All() {
		t.Run(d.Name, func(t *testing.T) {
			dom := memdom.New()
			app := d.New(dom)
			ctx := context.Background()
			if err := app.Mount(ctx, dom.Body()); err != nil {
				t.Fatalf("Mount() error = %v", err)
			}
			if len(dom.Body().Children()) == 0 {
				t.Fatal("nothing was rendered")
			}
			if err := app.Unmount(ctx); err != nil {
				t.Fatalf("Unmount() error = %v", err)
			}
			if got := dom.InnerHTML(dom.Body()); got != "" {
				t.Errorf("body after unmount = %q", got)
			}
			if n := dom.ListenerCount(); n != 0 {
				t.Errorf("%d listeners left", n)
			}
		})
	}
}

func TestCounter(t *testing.T) {
	d := mountDemo(t, "counter")
	btn := button(t, d, d.Body(), "Increment")
	d.Dispatch(btn, "click", nil)
	d.Dispatch(btn, "click", nil)

	if got := d.QueryFirst(d.Body(), "p").TextContent(); got != "Count: 2" {
		t.Errorf("text = %q, want Count: 2", got)
	}
}

func TestList(t *testing.T) {
	d := mountDemo(t, "list")
	want := `<h1>List of items</h1><ul><li>foo</li><li>bar</li><li>baz</li></ul>`
	if got := d.InnerHTML(d.Body()); got != want {
		t.Errorf("html = %s\nwant %s", got, want)
	}
}

func TestSearch(t *testing.T) {
	d := mountDemo(t, "search")
	if d.QueryFirst(d.Body(), "p") != nil {
		t.Fatal("echo shown before typing")
	}

	d.Dispatch(d.QueryFirst(d.Body(), "input"), "input", "go")

	p := d.QueryFirst(d.Body(), "p")
	if p == nil {
		t.Fatalf("no echo in %s", d.InnerHTML(d.Body()))
	}
	if got := p.TextContent(); got != `Searching for "go"` {
		t.Errorf("echo = %q", got)
	}
}

func TestCountersKeepStateWhenSiblingRemoved(t *testing.T) {
	d := mountDemo(t, "counters")
	counters := withClass(d, d.Body(), "div", "counter")
	if len(counters) != 3 {
		t.Fatalf("got %d counters, want 3", len(counters))
	}

	d.Dispatch(button(t, d, counters[1], "Add"), "click", nil)
	d.Dispatch(button(t, d, counters[0], "Remove"), "click", nil)

	left := withClass(d, d.Body(), "div", "counter")
	want := []string{"#2: 1AddRemove", "#3: 0AddRemove"}
	if diff := cmp.Diff(want, texts(left)); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
	if left[0] != counters[1] {
		t.Error("surviving counter was recreated")
	}

	d.Dispatch(button(t, d, d.Body(), "New counter"), "click", nil)
	if got := len(withClass(d, d.Body(), "div", "counter")); got != 3 {
		t.Errorf("got %d counters after add, want 3", got)
	}
}

func TestCardSlots(t *testing.T) {
	d := mountDemo(t, "card")
	cards := withClass(d, d.Body(), "div", "card")
	if len(cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(cards))
	}
	if len(withClass(d, cards[0], "p", "empty")) != 0 {
		t.Error("filled card shows fallback content")
	}
	if len(withClass(d, cards[1], "p", "empty")) != 1 {
		t.Error("empty card lacks fallback content")
	}

	d.Dispatch(button(t, d, cards[0], "Likes: 0"), "click", nil)
	button(t, d, cards[0], "Likes: 1")
	if !strings.Contains(cards[0].TextContent(), "supplied by the page") {
		t.Errorf("slot content lost: %s", d.HTML(cards[0]))
	}
}

func TestTodosAddEditRemove(t *testing.T) {
	d := mountDemo(t, "todos")
	body := d.Body()

	add := button(t, d, body, "Add")
	if _, disabled := add.Attr("disabled"); !disabled {
		t.Error("Add enabled with an empty input")
	}

	input := d.QueryAttr(body, "id", "todo-input")
	d.Dispatch(input, "input", "Buy milk")
	if _, disabled := add.Attr("disabled"); disabled {
		t.Error("Add still disabled")
	}
	d.Dispatch(add, "click", nil)

	items := d.QueryAll(d.QueryFirst(body, "ul"), "li")
	if got := items[len(items)-1].TextContent(); got != "Buy milkDone" {
		t.Errorf("last todo = %q", got)
	}
	if v, _ := input.Attr("value"); v != "" {
		t.Errorf("input value = %q, want empty", v)
	}

	d.Dispatch(d.QueryFirst(items[0], "span"), "dblclick", nil)
	editor := d.QueryFirst(d.QueryFirst(body, "ul"), "li")
	if !editor.HasClass("editing") {
		t.Fatalf("first todo not in edit mode: %s", d.HTML(editor))
	}
	d.Dispatch(d.QueryFirst(editor, "input"), "input", "Walk the cat")
	d.Dispatch(button(t, d, editor, "Save"), "click", nil)

	first := d.QueryFirst(d.QueryFirst(body, "ul"), "li")
	if got := first.TextContent(); got != "Walk the catDone" {
		t.Errorf("edited todo = %q", got)
	}

	d.Dispatch(button(t, d, first, "Done"), "click", nil)
	if got := len(d.QueryAll(d.QueryFirst(body, "ul"), "li")); got != 3 {
		t.Errorf("got %d todos, want 3", got)
	}
}

func TestTodoReducers(t *testing.T) {
	tests := []struct {
		name    string
		command string
		payload any
		check   func(t *testing.T, s TodoState)
	}{
		{
			name:    "short todo is rejected",
			command: "add-todo",
			check: func(t *testing.T, s TodoState) {
				if len(s.Todos) != 3 {
					t.Errorf("todos = %v", s.Todos)
				}
			},
		},
		{
			name:    "remove out of range is ignored",
			command: "remove-todo",
			payload: 7,
			check: func(t *testing.T, s TodoState) {
				if len(s.Todos) != 3 {
					t.Errorf("todos = %v", s.Todos)
				}
			},
		},
		{
			name:    "remove middle",
			command: "remove-todo",
			payload: 1,
			check: func(t *testing.T, s TodoState) {
				want := []string{"Walk the dog", "Cook lunch"}
				if diff := cmp.Diff(want, s.Todos); diff != "" {
					t.Errorf("todos mismatch (-want +got):\n%s", diff)
				}
			},
		},
		{
			name:    "cancel editing",
			command: "cancel-editing-todo",
			check: func(t *testing.T, s TodoState) {
				if s.Edit.Index != -1 {
					t.Errorf("edit index = %d", s.Edit.Index)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := InitialTodos()
			s := TodoReducers[tt.command](start, tt.payload)
			tt.check(t, s)
			if diff := cmp.Diff(InitialTodos().Todos, start.Todos); diff != "" {
				t.Errorf("reducer mutated its input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTicTacToe(t *testing.T) {
	d := mountDemo(t, "tictactoe")
	cell := func(r, c int) *memdom.Node {
		return d.QueryAll(d.QueryAll(d.Body(), "tr")[r], "td")[c]
	}
	status := func() string { return d.QueryFirst(d.Body(), "p").TextContent() }

	if got := status(); got != "Next: X" {
		t.Errorf("status = %q", got)
	}
	for _, m := range []Move{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}} {
		d.Dispatch(cell(m.Row, m.Column), "click", nil)
	}
	if got := status(); got != "Winner: X" {
		t.Errorf("status = %q, want Winner: X", got)
	}

	d.Dispatch(cell(2, 2), "click", nil)
	if got := cell(2, 2).TextContent(); got != " " {
		t.Errorf("move accepted after the game ended: %q", got)
	}

	d.Dispatch(button(t, d, d.Body(), "Restart"), "click", nil)
	if got := cell(0, 0).TextContent(); got != " " {
		t.Errorf("cell after restart = %q", got)
	}
}
