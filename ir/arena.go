package ir

// Arena is a dense, append-only store indexed by a typed ID. Once
// allocated, IDs are never reused, elements are referenced by ID (never by
// pointer), and iteration order equals allocation order (§3).
type Arena[T any] struct {
	items []T
}

// Alloc appends v and returns its newly allocated index.
func (a *Arena[T]) Alloc(v T) int {
	a.items = append(a.items, v)
	return len(a.items) - 1
}

// Get returns the item at index i.
func (a *Arena[T]) Get(i int) T {
	return a.items[i]
}

// GetPtr returns a mutable pointer to the item at index i.
func (a *Arena[T]) GetPtr(i int) *T {
	return &a.items[i]
}

// Set overwrites the item at index i.
func (a *Arena[T]) Set(i int, v T) {
	a.items[i] = v
}

// Len returns the number of allocated items.
func (a *Arena[T]) Len() int {
	return len(a.items)
}

// All iterates items in allocation order.
func (a *Arena[T]) All(f func(index int, item T) bool) {
	for i, item := range a.items {
		if !f(i, item) {
			return
		}
	}
}
