package diff

import "sort"

// ObjectsDiff lists the keys that differ between two maps.
// Each list is sorted so results are deterministic.
type ObjectsDiff struct {
	Added   []string
	Removed []string
	Updated []string
}

// Empty reports whether the two maps had no differences.
func (d ObjectsDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Updated) == 0
}

// Objects compares old and new shallowly. A key present in both maps is
// reported as updated when eq returns false for its two values.
func Objects[V any](old, new map[string]V, eq func(a, b V) bool) ObjectsDiff {
	d := ObjectsDiff{
		Added:   []string{},
		Removed: []string{},
		Updated: []string{},
	}

	for key, newVal := range new {
		oldVal, ok := old[key]
		if !ok {
			d.Added = append(d.Added, key)
			continue
		}
		if !eq(oldVal, newVal) {
			d.Updated = append(d.Updated, key)
		}
	}
	for key := range old {
		if _, ok := new[key]; !ok {
			d.Removed = append(d.Removed, key)
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Removed)
	sort.Strings(d.Updated)
	return d
}

// ArraysDiff is an unordered difference between two slices.
type ArraysDiff[T comparable] struct {
	Added   []T
	Removed []T
}

// Arrays returns the items of new missing from old and the items of old
// missing from new. Order within each list follows the input slices.
// Positions are not tracked; class lists use it as an add/remove set.
func Arrays[T comparable](old, new []T) ArraysDiff[T] {
	oldSet := make(map[T]struct{}, len(old))
	for _, item := range old {
		oldSet[item] = struct{}{}
	}
	newSet := make(map[T]struct{}, len(new))
	for _, item := range new {
		newSet[item] = struct{}{}
	}

	d := ArraysDiff[T]{Added: []T{}, Removed: []T{}}
	for _, item := range new {
		if _, ok := oldSet[item]; !ok {
			d.Added = append(d.Added, item)
		}
	}
	for _, item := range old {
		if _, ok := newSet[item]; !ok {
			d.Removed = append(d.Removed, item)
		}
	}
	return d
}
