package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestElAttributes(t *testing.T) {
	click := Handle(func() {})
	n := Button(
		ID("save"),
		Class("btn primary", "big"),
		ClassIf(false, "hidden"),
		ClassIf(true, "active"),
		Style("color", "red"),
		StyleAttr("margin: 0; padding : 1px"),
		Key("k1"),
		On("click", click),
		nil,
		"Save",
	)

	if n.Kind != KindElement || n.Tag != "button" {
		t.Fatalf("unexpected node %v/%s", n.Kind, n.Tag)
	}
	if d := cmp.Diff([]string{"btn", "primary", "big", "active"}, n.Class); d != "" {
		t.Errorf("Class mismatch (-want +got):\n%s", d)
	}
	wantStyle := map[string]string{"color": "red", "margin": "0", "padding": "1px"}
	if d := cmp.Diff(wantStyle, n.Style); d != "" {
		t.Errorf("Style mismatch (-want +got):\n%s", d)
	}
	if n.Key != "k1" {
		t.Errorf("Key = %q", n.Key)
	}
	if _, ok := n.Attrs["key"]; ok {
		t.Error("key leaked into attributes")
	}
	if n.Attrs["id"] != "save" {
		t.Errorf("id = %v", n.Attrs["id"])
	}
	if n.On["click"] != click {
		t.Error("click handler not registered")
	}
	if len(n.Children) != 1 || n.Children[0].Kind != KindText || n.Children[0].Text != "Save" {
		t.Errorf("children = %+v", n.Children)
	}
}

func TestElChildren(t *testing.T) {
	items := []string{"a", "b"}
	n := Ul(Range(items, func(s string, i int) *VNode { return Li(Key(s), s) }), If(false, Li()))
	if len(n.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(n.Children))
	}
	if n.Children[1].Key != "b" {
		t.Errorf("second key = %q", n.Children[1].Key)
	}
}

func TestElPanicsOnUnsupported(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported argument")
		}
	}()
	Div(3.14)
}

func TestParseStyle(t *testing.T) {
	got := ParseStyle("color:red;; background : blue ; bogus")
	want := map[string]string{"color": "red", "background": "blue"}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("ParseStyle mismatch (-want +got):\n%s", d)
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("input") || IsVoidElement("div") {
		t.Error("IsVoidElement misclassified")
	}
}

func TestTagHelpers(t *testing.T) {
	tests := []struct {
		build func(args ...any) *VNode
		tag   string
	}{
		{A, "a"},
		{Article, "article"},
		{Footer, "footer"},
		{Form, "form"},
		{Header, "header"},
		{Main, "main"},
		{Nav, "nav"},
		{Ol, "ol"},
		{Textarea, "textarea"},
	}
	for _, tt := range tests {
		if n := tt.build("x"); n.Tag != tt.tag || len(n.Children) != 1 {
			t.Errorf("%s: got <%s> with %d children", tt.tag, n.Tag, len(n.Children))
		}
	}
}

func TestAttributeAndEventHelpers(t *testing.T) {
	n := Form(
		Data("step", "2"),
		AttrIf(true, Href("/next")),
		AttrIf(false, Checked()),
		OnSubmit(func() {}),
		OnChange(func() {}),
		OnBlur(func() {}),
		Input(Checked()),
	)

	want := Attrs{"data-step": "2", "href": "/next"}
	if d := cmp.Diff(want, n.Attrs); d != "" {
		t.Errorf("Attrs mismatch (-want +got):\n%s", d)
	}
	for _, ev := range []string{"submit", "change", "blur"} {
		if n.On[ev] == nil {
			t.Errorf("no %s handler", ev)
		}
	}
	if n.Children[0].Attrs["checked"] != true {
		t.Errorf("checked = %v", n.Children[0].Attrs["checked"])
	}
}

func TestRepeat(t *testing.T) {
	items := Repeat(4, func(i int) *VNode {
		if i == 2 {
			return nil
		}
		return Li(Key(i))
	})
	var keys []string
	for _, it := range items {
		keys = append(keys, it.Key)
	}
	if d := cmp.Diff([]string{"0", "1", "3"}, keys); d != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", d)
	}
}
