// Package diff computes differences between flat mappings and ordered sequences.
//
// Objects reports added, removed and updated keys between two maps and is used
// to reconcile element attributes, styles and event handlers. Arrays is an
// unordered add/remove difference used for CSS class lists. Sequence produces an
// ordered list of add, remove, move and noop operations which, applied in
// order, transform one slice into another:
//
//	ops := diff.Sequence(old, new, func(a, b string) bool { return a == b })
//	got := diff.Apply(old, ops) // equals new
//
// Move and noop operations carry the item's index in the original slice so a
// caller holding a parallel structure (such as mounted virtual nodes) can find
// the entry being reused.
package diff
