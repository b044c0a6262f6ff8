package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/krow/pkg/memdom"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

func newTestEngine(t *testing.T) (*Engine, *memdom.DOM) {
	t.Helper()
	d := memdom.New()
	return New(d), d
}

func TestMountElementTree(t *testing.T) {
	e, d := newTestEngine(t)

	clicks := 0
	v := vdom.Div(
		vdom.ID("root"),
		vdom.Class("box", "wide"),
		vdom.Style("color", "red"),
		vdom.H1("Title"),
		vdom.Button(vdom.OnClick(func() { clicks++ }), "Go"),
		vdom.Input(vdom.Type("text"), vdom.Disabled()),
	)
	if err := e.Mount(v, d.Body(), nil); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	want := `<div class="box wide" id="root" style="color: red"><h1>Title</h1><button>Go</button><input disabled="" type="text"></div>`
	if got := d.InnerHTML(d.Body()); got != want {
		t.Errorf("html mismatch:\n got: %s\nwant: %s", got, want)
	}
	if !v.Mounted() {
		t.Error("root should be mounted")
	}

	d.Dispatch(d.QueryFirst(d.Body(), "button"), "click", nil)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestMountAt(t *testing.T) {
	e, d := newTestEngine(t)
	for _, tag := range []string{"a", "b", "c"} {
		if err := e.Mount(vdom.El(tag), d.Body(), nil); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name  string
		index int
		want  string
	}{
		{"front", 0, "<p></p><a></a><b></b><c></c>"},
		{"middle", 2, "<p></p><a></a><p></p><b></b><c></c>"},
		{"past end appends", 99, "<p></p><a></a><p></p><b></b><c></c><p></p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := e.MountAt(vdom.P(), d.Body(), tt.index, nil); err != nil {
				t.Fatalf("MountAt(%d) error = %v", tt.index, err)
			}
			if got := d.InnerHTML(d.Body()); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}

	err := e.MountAt(vdom.P(), d.Body(), -1, nil)
	if !errors.Is(err, ErrNegativeIndex) {
		t.Errorf("MountAt(-1) error = %v, want ErrNegativeIndex", err)
	}
}

func TestProtocolErrors(t *testing.T) {
	e, d := newTestEngine(t)

	v := vdom.Div("x")
	if err := e.Mount(v, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	if err := e.Mount(v, d.Body(), nil); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("second Mount() error = %v, want ErrAlreadyMounted", err)
	}
	if err := e.Destroy(v); err != nil {
		t.Fatal(err)
	}
	if err := e.Destroy(v); !errors.Is(err, ErrNotMounted) {
		t.Errorf("second Destroy() error = %v, want ErrNotMounted", err)
	}
	if _, err := e.Patch(v, vdom.Div(), d.Body(), nil); !errors.Is(err, ErrNotMounted) {
		t.Errorf("Patch(unmounted) error = %v, want ErrNotMounted", err)
	}
	if err := e.Mount(&vdom.VNode{Kind: vdom.Kind(42)}, d.Body(), nil); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Mount(bad kind) error = %v, want ErrUnknownKind", err)
	}
}

func TestDestroyRoundTrip(t *testing.T) {
	e, d := newTestEngine(t)

	v := vdom.Div(
		vdom.OnClick(func() {}),
		vdom.Ul(
			vdom.Li(vdom.OnClick(func() {}), "one"),
			vdom.Li(vdom.On("mouseover", func() {}), "two"),
		),
		vdom.Fragment(vdom.Text("a"), vdom.Span(vdom.OnInput(func() {}))),
	)
	if err := e.Mount(v, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	if got := d.ListenerCount(); got != 4 {
		t.Fatalf("ListenerCount() = %d, want 4", got)
	}

	if err := e.Destroy(v); err != nil {
		t.Fatalf("Destroy() error = %v", err)
	}
	if got := d.ListenerCount(); got != 0 {
		t.Errorf("ListenerCount() after destroy = %d, want 0", got)
	}
	if got := len(d.Body().Children()); got != 0 {
		t.Errorf("body has %d children after destroy", got)
	}
	vdom.Walk(v, func(n, _ *vdom.VNode, _ int) bool {
		if n.El != nil || n.Listeners != nil {
			t.Errorf("%v still holds live references", n.Kind)
		}
		return true
	})
}

func TestPatchIdenticalCopyWritesNothing(t *testing.T) {
	d := memdom.New()
	rec := surface.NewRecorder(d, d.Identify)
	e := New(rec)

	onClick := vdom.Handle(func() {})
	v := vdom.Div(
		vdom.Class("a", "b"),
		vdom.Style("margin", "0"),
		vdom.AttrOf("data-n", 3),
		vdom.On("click", onClick),
		vdom.Ul(
			vdom.Li(vdom.Key("1"), "one"),
			vdom.Li(vdom.Key("2"), "two"),
		),
		vdom.Fragment("x", vdom.Span("y")),
	)
	if err := e.Mount(v, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	rec.Reset()
	d.ResetWrites()

	next, err := e.Patch(v, vdom.Clone(v), d.Body(), nil)
	if err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
	if ops := rec.Ops(); len(ops) != 0 {
		t.Errorf("identical patch recorded writes: %v", ops)
	}
	if d.Writes() != 0 {
		t.Errorf("Writes() = %d, want 0", d.Writes())
	}
	if !next.Mounted() || v.Mounted() {
		t.Error("patch should hand the live node from old to next")
	}
}

func TestPatchElement(t *testing.T) {
	e, d := newTestEngine(t)

	first, second := 0, 0
	old := vdom.Div(
		vdom.ID("x"),
		vdom.TitleAttr("old"),
		vdom.Class("keep", "drop"),
		vdom.Style("color", "red"),
		vdom.Style("margin", "0"),
		vdom.OnClick(func() { first++ }),
		"hello",
	)
	if err := e.Mount(old, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	el := d.QueryFirst(d.Body(), "div")

	next := vdom.Div(
		vdom.ID("x"),
		vdom.AttrOf("data-v", 2),
		vdom.Class("keep", "add"),
		vdom.Style("color", "blue"),
		vdom.OnClick(func() { second++ }),
		"world",
	)
	if _, err := e.Patch(old, next, d.Body(), nil); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}

	if got := d.QueryFirst(d.Body(), "div"); got != el {
		t.Fatal("element was replaced instead of reused")
	}
	want := `<div class="keep add" data-v="2" id="x" style="color: blue">world</div>`
	if got := d.HTML(el); got != want {
		t.Errorf("got %s, want %s", got, want)
	}

	d.Dispatch(el, "click", nil)
	if first != 0 || second != 1 {
		t.Errorf("handlers ran first=%d second=%d, want 0 and 1", first, second)
	}
	if got := el.ListenerCount("click"); got != 1 {
		t.Errorf("click listeners = %d, want 1", got)
	}
}

func TestPatchBooleanAttributes(t *testing.T) {
	e, d := newTestEngine(t)

	old := vdom.Button(vdom.DisabledIf(true))
	if err := e.Mount(old, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	next := vdom.Button(vdom.DisabledIf(false))
	if _, err := e.Patch(old, next, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	if got := d.InnerHTML(d.Body()); got != "<button></button>" {
		t.Errorf("got %s", got)
	}
}

func TestPatchReplacesDifferentNodes(t *testing.T) {
	tests := []struct {
		name string
		old  *vdom.VNode
		next *vdom.VNode
		want string
	}{
		{"tag change", vdom.Div("a"), vdom.Span("b"), "<span>b</span><hr>"},
		{"text to element", vdom.Text("a"), vdom.P("b"), "<p>b</p><hr>"},
		{"element to text", vdom.P("a"), vdom.Text("b"), "b<hr>"},
		{"key change", vdom.Div(vdom.Key("1"), "a"), vdom.Div(vdom.Key("2"), "b"), "<div>b</div><hr>"},
		{"element to fragment", vdom.Div("a"), vdom.Fragment("b", vdom.El("i")), "b<i></i><hr>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, d := newTestEngine(t)
			if err := e.Mount(tt.old, d.Body(), nil); err != nil {
				t.Fatal(err)
			}
			if err := e.Mount(vdom.El("hr"), d.Body(), nil); err != nil {
				t.Fatal(err)
			}
			if _, err := e.Patch(tt.old, tt.next, d.Body(), nil); err != nil {
				t.Fatalf("Patch() error = %v", err)
			}
			if got := d.InnerHTML(d.Body()); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPatchFragmentKeepsSiblingOrder(t *testing.T) {
	e, d := newTestEngine(t)

	old := vdom.Div(vdom.Fragment("a", "b"), vdom.Span("end"))
	if err := e.Mount(old, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	span := d.QueryFirst(d.Body(), "span")

	next := vdom.Div(vdom.Fragment("a", "b", vdom.El("em", "c")), vdom.Span("end"))
	if _, err := e.Patch(old, next, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	if got, want := d.InnerHTML(d.Body()), "<div>ab<em>c</em><span>end</span></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if d.QueryFirst(d.Body(), "span") != span {
		t.Error("sibling after fragment was not reused")
	}

	shrunk := vdom.Div(vdom.Fragment("b"), vdom.Span("end"))
	if _, err := e.Patch(next, shrunk, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	if got, want := d.InnerHTML(d.Body()), "<div>b<span>end</span></div>"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func keyedList(keys ...string) *vdom.VNode {
	items := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Key(k), k)
	}
	return vdom.Ul(items)
}

func TestKeyedReorderReusesNodes(t *testing.T) {
	e, d := newTestEngine(t)

	old := keyedList("a", "b", "c", "d")
	if err := e.Mount(old, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	before := map[string]*memdom.Node{}
	for _, li := range d.QueryAll(d.Body(), "li") {
		before[li.TextContent()] = li
	}

	next := keyedList("d", "b", "e", "a")
	if _, err := e.Patch(old, next, d.Body(), nil); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}

	var got []string
	for _, li := range d.QueryAll(d.Body(), "li") {
		got = append(got, li.TextContent())
		if prev, ok := before[li.TextContent()]; ok && prev != li {
			t.Errorf("item %q was recreated", li.TextContent())
		}
	}
	if diff := cmp.Diff([]string{"d", "b", "e", "a"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if before["c"].Parent() != nil {
		t.Error("removed item is still attached")
	}
}

func TestRandomKeyedPatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	alphabet := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	pick := func() []string {
		perm := rng.Perm(len(alphabet))
		n := rng.Intn(len(alphabet) + 1)
		out := make([]string, n)
		for i := range out {
			out[i] = alphabet[perm[i]]
		}
		return out
	}
	render := func(keys []string, round int) *vdom.VNode {
		items := make([]*vdom.VNode, len(keys))
		for i, k := range keys {
			items[i] = vdom.Li(vdom.Key(k), vdom.Class("r"+fmt.Sprint(round%2)), k)
		}
		return vdom.Div(vdom.P("head"), vdom.Fragment(items), vdom.P("tail"))
	}

	e, d := newTestEngine(t)
	cur := render(pick(), 0)
	if err := e.Mount(cur, d.Body(), nil); err != nil {
		t.Fatal(err)
	}

	for round := 1; round <= 300; round++ {
		keys := pick()
		live := map[string]*memdom.Node{}
		for _, li := range d.QueryAll(d.Body(), "li") {
			live[li.TextContent()] = li
		}

		next := render(keys, round)
		patched, err := e.Patch(cur, next, d.Body(), nil)
		if err != nil {
			t.Fatalf("round %d: Patch() error = %v", round, err)
		}
		cur = patched

		fresh := memdom.New()
		if err := New(fresh).Mount(render(keys, round), fresh.Body(), nil); err != nil {
			t.Fatal(err)
		}
		if got, want := d.InnerHTML(d.Body()), fresh.InnerHTML(fresh.Body()); got != want {
			t.Fatalf("round %d: keys %v\n got: %s\nwant: %s", round, keys, got, want)
		}
		for _, li := range d.QueryAll(d.Body(), "li") {
			if prev, ok := live[li.TextContent()]; ok && prev != li {
				t.Fatalf("round %d: %q was recreated", round, li.TextContent())
			}
		}
	}
}

func TestRandomSiblingRerenders(t *testing.T) {
	ids := []string{"t0", "t1", "t2", "t3", "t4", "t5"}
	sw := func(id string) *vdom.VNode { return vdom.Comp(switchDef, vdom.Prop("id", id)) }
	build := func() *vdom.VNode {
		return vdom.Div(
			vdom.P("head"),
			vdom.Fragment(sw("t0"), vdom.Fragment(sw("t1"), sw("t2")), sw("t3")),
			vdom.Section(sw("t4"), vdom.Fragment(sw("t5"))),
			vdom.P("tail"),
		)
	}

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e, d := newTestEngine(t)
		cur := build()
		if err := e.Mount(cur, d.Body(), nil); err != nil {
			t.Fatal(err)
		}
		modes := map[string]int{}

		for round := 0; round < 100; round++ {
			if round%10 == 9 {
				patched, err := e.Patch(cur, build(), d.Body(), nil)
				if err != nil {
					t.Fatalf("seed %d round %d: Patch() error = %v", seed, round, err)
				}
				cur = patched
			} else {
				id := ids[rng.Intn(len(ids))]
				mode := rng.Intn(3)
				if err := components(cur)[id].Set("mode", mode); err != nil {
					t.Fatalf("seed %d round %d: %v", seed, round, err)
				}
				modes[id] = mode
			}

			want := "<div><p>head</p>"
			for _, id := range ids[:4] {
				want += switchHTML(id, modes[id])
			}
			want += "<section>" + switchHTML("t4", modes["t4"]) + switchHTML("t5", modes["t5"]) + "</section><p>tail</p></div>"
			if got := d.InnerHTML(d.Body()); got != want {
				t.Fatalf("seed %d round %d: modes %v\n got: %s\nwant: %s", seed, round, modes, got, want)
			}
		}
	}
}

type countingObserver struct {
	NopObserver
	mounted, destroyed, reused, replaced int
	rendered                             map[string]int
	failed                               []error
}

func (o *countingObserver) Mounted(vdom.Kind)   { o.mounted++ }
func (o *countingObserver) Destroyed(vdom.Kind) { o.destroyed++ }
func (o *countingObserver) Patched(_ vdom.Kind, reused bool) {
	if reused {
		o.reused++
	} else {
		o.replaced++
	}
}
func (o *countingObserver) Rendered(name string) {
	if o.rendered == nil {
		o.rendered = map[string]int{}
	}
	o.rendered[name]++
}
func (o *countingObserver) JobFailed(err error) { o.failed = append(o.failed, err) }

func TestObserverCounts(t *testing.T) {
	d := memdom.New()
	obs := &countingObserver{}
	e := New(d, WithObserver(obs))

	old := vdom.Div(vdom.Span("a"), vdom.P("b"))
	if err := e.Mount(old, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	if obs.mounted != 5 {
		t.Errorf("mounted = %d, want 5", obs.mounted)
	}

	next := vdom.Div(vdom.Span("a"), vdom.El("em", "c"))
	if _, err := e.Patch(old, next, d.Body(), nil); err != nil {
		t.Fatal(err)
	}
	// div, span, "a" reused; p replaced by em.
	if obs.reused != 3 || obs.replaced != 0 {
		t.Errorf("reused=%d replaced=%d, want 3 and 0", obs.reused, obs.replaced)
	}
	if obs.destroyed != 2 {
		t.Errorf("destroyed = %d, want 2", obs.destroyed)
	}
}
