// Package bounded implements capacity-limited list operations with
// pluggable eviction. The session summary and scene packet both rely on
// these to keep prompt context from growing without bound.
package bounded

import "slices"

// Evict picks the index to remove when a list is over capacity.
type Evict[T any] func(items []T) int

// Oldest evicts the front of the list (strict FIFO).
func Oldest[T any]([]T) int { return 0 }

// Append adds v to items and evicts entries until the list fits within
// capacity. A capacity of zero or less means unbounded.
func Append[T any](items []T, v T, capacity int, evict Evict[T]) []T {
	items = append(items, v)
	if capacity <= 0 {
		return items
	}
	for len(items) > capacity {
		i := evict(items)
		items = slices.Delete(items, i, i+1)
	}
	return items
}

// AppendUnique behaves like Append but suppresses duplicates: if v is
// already present the list is returned unchanged.
func AppendUnique[T comparable](items []T, v T, capacity int, evict Evict[T]) []T {
	if slices.Contains(items, v) {
		return items
	}
	return Append(items, v, capacity, evict)
}
