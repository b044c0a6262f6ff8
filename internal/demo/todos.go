package demo

import (
	"slices"

	"github.com/vango-dev/krow"
	"github.com/vango-dev/krow/pkg/surface"
	"github.com/vango-dev/krow/pkg/vdom"
)

// minTodoLength is the shortest todo the form accepts.
const minTodoLength = 3

// TodoState is the whole state of the todos demo.
type TodoState struct {
	Todos   []string
	Current string
	Edit    TodoEdit
}

// TodoEdit tracks the todo being edited. Index is -1 when none is.
type TodoEdit struct {
	Index    int
	Original string
	Edited   string
}

var noEdit = TodoEdit{Index: -1}

// InitialTodos is the state the demo starts from.
func InitialTodos() TodoState {
	return TodoState{
		Todos: []string{"Walk the dog", "Water the plants", "Cook lunch"},
		Edit:  noEdit,
	}
}

// TodoReducers handle the commands emitted by TodoView.
var TodoReducers = map[string]krow.Reducer[TodoState]{
	"update-current-todo": func(s TodoState, p any) TodoState {
		s.Current, _ = p.(string)
		return s
	},
	"add-todo": func(s TodoState, _ any) TodoState {
		if len(s.Current) < minTodoLength {
			return s
		}
		s.Todos = append(slices.Clone(s.Todos), s.Current)
		s.Current = ""
		return s
	},
	"start-editing-todo": func(s TodoState, p any) TodoState {
		i, ok := p.(int)
		if !ok || i < 0 || i >= len(s.Todos) {
			return s
		}
		s.Edit = TodoEdit{Index: i, Original: s.Todos[i], Edited: s.Todos[i]}
		return s
	},
	"edit-todo": func(s TodoState, p any) TodoState {
		s.Edit.Edited, _ = p.(string)
		return s
	},
	"save-edited-todo": func(s TodoState, _ any) TodoState {
		if s.Edit.Index < 0 {
			return s
		}
		s.Todos = slices.Clone(s.Todos)
		s.Todos[s.Edit.Index] = s.Edit.Edited
		s.Edit = noEdit
		return s
	},
	"cancel-editing-todo": func(s TodoState, _ any) TodoState {
		s.Edit = noEdit
		return s
	},
	"remove-todo": func(s TodoState, p any) TodoState {
		i, ok := p.(int)
		if !ok || i < 0 || i >= len(s.Todos) {
			return s
		}
		s.Todos = slices.Delete(slices.Clone(s.Todos), i, i+1)
		if s.Edit.Index == i {
			s.Edit = noEdit
		}
		return s
	},
}

// NewTodos creates the todos application on s.
func NewTodos(s surface.Surface, opts ...krow.Option) *krow.ReducerApp[TodoState] {
	return krow.NewReducerApp(s, InitialTodos(), TodoView, TodoReducers, opts...)
}

// TodoView renders the todos page.
func TodoView(s TodoState, emit krow.Emit) *krow.VNode {
	return vdom.Fragment(
		vdom.H1("My TODOs"),
		createTodo(s.Current, emit),
		vdom.Ul(vdom.Range(s.Todos, func(todo string, i int) *krow.VNode {
			if s.Edit.Index == i {
				return todoInEditMode(s.Edit, emit)
			}
			return todoInReadMode(todo, i, emit)
		})),
	)
}

func createTodo(current string, emit krow.Emit) *krow.VNode {
	return vdom.Div(
		vdom.Label(vdom.AttrOf("for", "todo-input"), "New TODO"),
		vdom.Input(
			vdom.Type("text"),
			vdom.ID("todo-input"),
			vdom.Value(current),
			vdom.OnInput(func(ev surface.Event) {
				v, _ := ev.Value.(string)
				emit("update-current-todo", v)
			}),
			vdom.OnKeyDown(func(ev surface.Event) {
				if ev.Value == "Enter" && len(current) >= minTodoLength {
					emit("add-todo", nil)
				}
			}),
		),
		vdom.Button(
			vdom.DisabledIf(len(current) < minTodoLength),
			vdom.OnClick(func() { emit("add-todo", nil) }),
			"Add",
		),
	)
}

func todoInEditMode(edit TodoEdit, emit krow.Emit) *krow.VNode {
	return vdom.Li(
		vdom.Class("editing"),
		vdom.Input(
			vdom.Value(edit.Edited),
			vdom.OnInput(func(ev surface.Event) {
				v, _ := ev.Value.(string)
				emit("edit-todo", v)
			}),
		),
		vdom.Button(vdom.OnClick(func() { emit("save-edited-todo", nil) }), "Save"),
		vdom.Button(vdom.OnClick(func() { emit("cancel-editing-todo", nil) }), "Cancel"),
	)
}

func todoInReadMode(todo string, i int, emit krow.Emit) *krow.VNode {
	return vdom.Li(
		vdom.Span(vdom.OnDblClick(func() { emit("start-editing-todo", i) }), todo),
		vdom.Button(vdom.OnClick(func() { emit("remove-todo", i) }), "Done"),
	)
}
