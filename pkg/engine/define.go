package engine

import (
	"fmt"
	"sort"

	"github.com/vango-dev/krow/pkg/vdom"
)

// State is a component's private state. Updates merge shallowly.
type State map[string]any

// Method is a named component method. It runs with the component bound.
type Method func(c *Component, args ...any) error

// Spec describes a component.
type Spec struct {
	// Name identifies the component in logs, metrics and errors.
	Name string

	// State returns the initial state for the given props. Optional.
	State func(props vdom.Props) State

	// Render returns the component's view. Required.
	Render func(c *Component) *vdom.VNode

	// OnMounted runs after the component and its children are attached.
	OnMounted func(c *Component) error

	// Methods are callable with Component.Call and vdom.Call handlers.
	Methods map[string]Method
}

// Definition is a validated component description, usable with vdom.Comp.
type Definition struct {
	name      string
	state     func(vdom.Props) State
	render    func(*Component) *vdom.VNode
	onMounted func(*Component) error
	methods   map[string]Method
}

// reserved are names a component's own lifecycle uses.
var reserved = map[string]bool{
	"mount":       true,
	"unmount":     true,
	"render":      true,
	"updateState": true,
	"updateProps": true,
	"emit":        true,
	"onMounted":   true,
	"patch":       true,
}

// Define validates spec and returns a Definition.
func Define(spec Spec) (*Definition, error) {
	if spec.Render == nil {
		return nil, fmt.Errorf("define %q: %w", spec.Name, ErrNoRender)
	}
	names := make([]string, 0, len(spec.Methods))
	for name := range spec.Methods {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if reserved[name] {
			return nil, fmt.Errorf("define %q: method %q: %w", spec.Name, name, ErrReservedMethod)
		}
		if spec.Methods[name] == nil {
			return nil, fmt.Errorf("define %q: method %q is nil", spec.Name, name)
		}
	}

	name := spec.Name
	if name == "" {
		name = "anonymous"
	}
	methods := make(map[string]Method, len(spec.Methods))
	for k, m := range spec.Methods {
		methods[k] = m
	}
	return &Definition{
		name:      name,
		state:     spec.State,
		render:    spec.Render,
		onMounted: spec.OnMounted,
		methods:   methods,
	}, nil
}

// MustDefine is like Define but panics on error.
func MustDefine(spec Spec) *Definition {
	d, err := Define(spec)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the component name.
func (d *Definition) Name() string { return d.name }

// HasMethod reports whether the definition declares method name.
func (d *Definition) HasMethod(name string) bool {
	_, ok := d.methods[name]
	return ok
}
