package linq

// Grouping is a key with the elements that were collected under it by GroupBy.
type Grouping[K, T any] struct {
	key   K
	items []T
}

// NewGrouping makes a Grouping from a key and its members.
func NewGrouping[K, T any](key K, items ...T) Grouping[K, T] {
	return Grouping[K, T]{key: key, items: items}
}

func (g Grouping[K, T]) Key() K { return g.key }

// Elements returns a new Sequence over the members on each call,
// so every caller gets its own cursor.
func (g Grouping[K, T]) Elements() *Sequence[T] {
	return From(g.items)
}

func (g Grouping[K, T]) Len() int { return len(g.items) }

// Items returns a copy of the members.
func (g Grouping[K, T]) Items() []T {
	return append([]T(nil), g.items...)
}
