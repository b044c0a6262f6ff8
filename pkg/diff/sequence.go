package diff

import "fmt"

// OpKind identifies a sequence edit.
type OpKind uint8

const (
	OpNoop OpKind = iota
	OpAdd
	OpRemove
	OpMove
)

// String returns the lower-case name of the operation.
func (k OpKind) String() string {
	switch k {
	case OpNoop:
		return "noop"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// Op is a single edit produced by Sequence.
type Op[T any] struct {
	Kind OpKind

	// Index is the position in the working sequence the operation applies to:
	// the removal position, or the destination for add, move and noop.
	Index int

	// From is the working position a moved item was taken from.
	From int

	// OriginalIndex is the item's index in the old sequence for move and noop,
	// and -1 for add and remove.
	OriginalIndex int

	// Item is the old item for remove, move and noop, and the new item for add.
	Item T
}

func (o Op[T]) String() string {
	switch o.Kind {
	case OpMove:
		return fmt.Sprintf("move(%v, %d->%d, orig=%d)", o.Item, o.From, o.Index, o.OriginalIndex)
	case OpNoop:
		return fmt.Sprintf("noop(%v, %d, orig=%d)", o.Item, o.Index, o.OriginalIndex)
	default:
		return fmt.Sprintf("%s(%v, %d)", o.Kind, o.Item, o.Index)
	}
}

// tracked is the working copy of the old sequence. origins[i] holds the index
// in the old sequence of the item now at position i, or -1 for added items.
type tracked[T any] struct {
	items   []T
	origins []int
	eq      func(a, b T) bool
}

func newTracked[T any](old []T, eq func(a, b T) bool) *tracked[T] {
	t := &tracked[T]{
		items:   make([]T, len(old)),
		origins: make([]int, len(old)),
		eq:      eq,
	}
	copy(t.items, old)
	for i := range old {
		t.origins[i] = i
	}
	return t
}

func (t *tracked[T]) len() int { return len(t.items) }

// isRemoval reports whether the item at index has no match anywhere in next.
func (t *tracked[T]) isRemoval(index int, next []T) bool {
	if index >= t.len() {
		return false
	}
	item := t.items[index]
	for _, n := range next {
		if t.eq(item, n) {
			return false
		}
	}
	return true
}

func (t *tracked[T]) remove(index int) Op[T] {
	op := Op[T]{Kind: OpRemove, Index: index, OriginalIndex: -1, Item: t.items[index]}
	t.items = append(t.items[:index], t.items[index+1:]...)
	t.origins = append(t.origins[:index], t.origins[index+1:]...)
	return op
}

func (t *tracked[T]) isNoop(index int, next []T) bool {
	if index >= t.len() {
		return false
	}
	return t.eq(t.items[index], next[index])
}

func (t *tracked[T]) noop(index int) Op[T] {
	return Op[T]{
		Kind:          OpNoop,
		Index:         index,
		From:          index,
		OriginalIndex: t.origins[index],
		Item:          t.items[index],
	}
}

// indexFrom returns the first position >= from holding an item equal to item.
func (t *tracked[T]) indexFrom(item T, from int) int {
	for i := from; i < t.len(); i++ {
		if t.eq(item, t.items[i]) {
			return i
		}
	}
	return -1
}

func (t *tracked[T]) add(item T, index int) Op[T] {
	t.items = insertAt(t.items, index, item)
	t.origins = insertAt(t.origins, index, -1)
	return Op[T]{Kind: OpAdd, Index: index, OriginalIndex: -1, Item: item}
}

func (t *tracked[T]) move(item T, to int) Op[T] {
	from := t.indexFrom(item, to)
	op := Op[T]{
		Kind:          OpMove,
		Index:         to,
		From:          from,
		OriginalIndex: t.origins[from],
		Item:          t.items[from],
	}

	moved, origin := t.items[from], t.origins[from]
	t.items = append(t.items[:from], t.items[from+1:]...)
	t.origins = append(t.origins[:from], t.origins[from+1:]...)
	t.items = insertAt(t.items, to, moved)
	t.origins = insertAt(t.origins, to, origin)
	return op
}

func (t *tracked[T]) removeFrom(index int) []Op[T] {
	var ops []Op[T]
	for t.len() > index {
		ops = append(ops, t.remove(index))
	}
	return ops
}

// Sequence returns the operations that turn old into new. eq decides whether
// an old and a new item are the same; a nil eq is not allowed.
//
// The scan walks new left to right. At each position an old item that appears
// nowhere in new is removed first; otherwise a matching item is kept in place,
// a missing item is added, or the first later match is moved into place.
// Whatever is left beyond len(new) is removed at the end.
func Sequence[T any](old, new []T, eq func(a, b T) bool) []Op[T] {
	ops := make([]Op[T], 0, len(new))
	work := newTracked(old, eq)

	for i := 0; i < len(new); {
		if work.isRemoval(i, new) {
			ops = append(ops, work.remove(i))
			continue
		}
		if work.isNoop(i, new) {
			ops = append(ops, work.noop(i))
			i++
			continue
		}
		item := new[i]
		if work.indexFrom(item, i) == -1 {
			ops = append(ops, work.add(item, i))
			i++
			continue
		}
		ops = append(ops, work.move(item, i))
		i++
	}

	return append(ops, work.removeFrom(len(new))...)
}

// SequenceComparable is Sequence with == as the equality predicate.
func SequenceComparable[T comparable](old, new []T) []Op[T] {
	return Sequence(old, new, func(a, b T) bool { return a == b })
}

// Apply replays ops against a copy of old. Noop and move keep the old item;
// add inserts the op's item.
func Apply[T any](old []T, ops []Op[T]) ([]T, error) {
	out := make([]T, len(old))
	copy(out, old)

	for _, op := range ops {
		switch op.Kind {
		case OpNoop:
			if op.Index >= len(out) {
				return nil, fmt.Errorf("diff: noop index %d out of range (len %d)", op.Index, len(out))
			}
		case OpAdd:
			if op.Index > len(out) {
				return nil, fmt.Errorf("diff: add index %d out of range (len %d)", op.Index, len(out))
			}
			out = insertAt(out, op.Index, op.Item)
		case OpRemove:
			if op.Index >= len(out) {
				return nil, fmt.Errorf("diff: remove index %d out of range (len %d)", op.Index, len(out))
			}
			out = append(out[:op.Index], out[op.Index+1:]...)
		case OpMove:
			if op.From >= len(out) || op.Index >= len(out) {
				return nil, fmt.Errorf("diff: move %d->%d out of range (len %d)", op.From, op.Index, len(out))
			}
			item := out[op.From]
			out = append(out[:op.From], out[op.From+1:]...)
			out = insertAt(out, op.Index, item)
		default:
			return nil, fmt.Errorf("diff: unknown op %d", op.Kind)
		}
	}
	return out, nil
}

func insertAt[T any](s []T, index int, v T) []T {
	var zero T
	s = append(s, zero)
	copy(s[index+1:], s[index:])
	s[index] = v
	return s
}
