package surface

import (
	"fmt"
	"sync"
)

// OpKind names a recorded surface write.
type OpKind string

const (
	OpCreateElement  OpKind = "create-element"
	OpCreateText     OpKind = "create-text"
	OpSetText        OpKind = "set-text"
	OpSetAttribute   OpKind = "set-attr"
	OpRemoveAttr     OpKind = "remove-attr"
	OpAddClass       OpKind = "add-class"
	OpRemoveClass    OpKind = "remove-class"
	OpSetStyle       OpKind = "set-style"
	OpRemoveStyle    OpKind = "remove-style"
	OpAddListener    OpKind = "add-listener"
	OpRemoveListener OpKind = "remove-listener"
	OpInsert         OpKind = "insert"
	OpRemove         OpKind = "remove"
)

// Op is one journaled write. Node references are resolved through the
// Recorder's Identify function so the journal can leave the process.
type Op struct {
	Kind   OpKind `msgpack:"k" json:"kind"`
	Node   uint64 `msgpack:"n" json:"node"`
	Parent uint64 `msgpack:"p,omitempty" json:"parent,omitempty"`
	Ref    uint64 `msgpack:"r,omitempty" json:"ref,omitempty"`
	Name   string `msgpack:"a,omitempty" json:"name,omitempty"`
	Value  string `msgpack:"v,omitempty" json:"value,omitempty"`
}

func (o Op) String() string {
	switch o.Kind {
	case OpInsert:
		return fmt.Sprintf("%s #%d into #%d before #%d", o.Kind, o.Node, o.Parent, o.Ref)
	case OpCreateElement, OpCreateText, OpSetText:
		return fmt.Sprintf("%s #%d %q", o.Kind, o.Node, o.Value)
	default:
		return fmt.Sprintf("%s #%d %s=%q", o.Kind, o.Node, o.Name, o.Value)
	}
}

// Recorder wraps a Surface and journals every write passed through it.
// Reads are forwarded without being recorded.
type Recorder struct {
	Surface

	// Identify maps a node to a stable id. Zero means "no node".
	Identify func(Node) uint64

	mu  sync.Mutex
	ops []Op
}

// NewRecorder wraps s. identify may be nil, in which case node ids are zero.
func NewRecorder(s Surface, identify func(Node) uint64) *Recorder {
	if identify == nil {
		identify = func(Node) uint64 { return 0 }
	}
	return &Recorder{Surface: s, Identify: identify}
}

func (r *Recorder) id(n Node) uint64 {
	if n == nil {
		return 0
	}
	return r.Identify(n)
}

func (r *Recorder) record(op Op) {
	r.mu.Lock()
	r.ops = append(r.ops, op)
	r.mu.Unlock()
}

// Ops returns a copy of the journal.
func (r *Recorder) Ops() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Op, len(r.ops))
	copy(out, r.ops)
	return out
}

// Drain returns the journal and clears it.
func (r *Recorder) Drain() []Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.ops
	r.ops = nil
	return out
}

// Len returns the number of recorded writes.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ops)
}

// Reset clears the journal.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.ops = nil
	r.mu.Unlock()
}

func (r *Recorder) CreateElement(tag string) Node {
	n := r.Surface.CreateElement(tag)
	r.record(Op{Kind: OpCreateElement, Node: r.id(n), Value: tag})
	return n
}

func (r *Recorder) CreateText(text string) Node {
	n := r.Surface.CreateText(text)
	r.record(Op{Kind: OpCreateText, Node: r.id(n), Value: text})
	return n
}

func (r *Recorder) SetText(n Node, text string) {
	r.Surface.SetText(n, text)
	r.record(Op{Kind: OpSetText, Node: r.id(n), Value: text})
}

func (r *Recorder) SetAttribute(n Node, name, value string) {
	r.Surface.SetAttribute(n, name, value)
	r.record(Op{Kind: OpSetAttribute, Node: r.id(n), Name: name, Value: value})
}

func (r *Recorder) RemoveAttribute(n Node, name string) {
	r.Surface.RemoveAttribute(n, name)
	r.record(Op{Kind: OpRemoveAttr, Node: r.id(n), Name: name})
}

func (r *Recorder) AddClass(n Node, class string) {
	r.Surface.AddClass(n, class)
	r.record(Op{Kind: OpAddClass, Node: r.id(n), Value: class})
}

func (r *Recorder) RemoveClass(n Node, class string) {
	r.Surface.RemoveClass(n, class)
	r.record(Op{Kind: OpRemoveClass, Node: r.id(n), Value: class})
}

func (r *Recorder) SetStyle(n Node, property, value string) {
	r.Surface.SetStyle(n, property, value)
	r.record(Op{Kind: OpSetStyle, Node: r.id(n), Name: property, Value: value})
}

func (r *Recorder) RemoveStyle(n Node, property string) {
	r.Surface.RemoveStyle(n, property)
	r.record(Op{Kind: OpRemoveStyle, Node: r.id(n), Name: property})
}

func (r *Recorder) AddEventListener(n Node, event string, fn EventFunc) Listener {
	l := r.Surface.AddEventListener(n, event, fn)
	r.record(Op{Kind: OpAddListener, Node: r.id(n), Name: event})
	return l
}

func (r *Recorder) RemoveEventListener(n Node, event string, l Listener) {
	r.Surface.RemoveEventListener(n, event, l)
	r.record(Op{Kind: OpRemoveListener, Node: r.id(n), Name: event})
}

func (r *Recorder) InsertBefore(parent, child, ref Node) {
	r.Surface.InsertBefore(parent, child, ref)
	r.record(Op{Kind: OpInsert, Node: r.id(child), Parent: r.id(parent), Ref: r.id(ref)})
}

func (r *Recorder) Remove(n Node) {
	r.Surface.Remove(n)
	r.record(Op{Kind: OpRemove, Node: r.id(n)})
}

// Count returns how many recorded ops have the given kind.
func Count(ops []Op, kind OpKind) int {
	n := 0
	for _, op := range ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
