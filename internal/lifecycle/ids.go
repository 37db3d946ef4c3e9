// Package lifecycle holds the pure state transitions of the rental business:
// every function takes a Database snapshot and returns a new one, leaving its
// input untouched. Nothing here persists or reconciles.
package lifecycle

// NextID returns max(existing)+1, or 1 for an empty collection. Gaps left by
// deletions are never reused.
func NextID[T any](items []T, id func(T) int) int {
	next := 1
	for _, item := range items {
		if v := id(item); v >= next {
			next = v + 1
		}
	}
	return next
}
