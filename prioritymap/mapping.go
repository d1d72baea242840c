package prioritymap

import (
	"cmp"
	"iter"
	"maps"
)

// Mapping is the read-only view of a key to value mapping that the merge and
// comparison operations accept. Both *Map and Plain implement it.
type Mapping[K cmp.Ordered, V Number] interface {
	Len() int
	Get(key K) (V, bool)
	All() iter.Seq2[K, V]
}

var (
	_ Mapping[string, int] = (*Map[string, int])(nil)
	_ Mapping[string, int] = Plain[string, int](nil)
)

// Plain adapts an ordinary Go map to Mapping.
type Plain[K cmp.Ordered, V Number] map[K]V

// Len returns the number of entries.
func (p Plain[K, V]) Len() int {
	return len(p)
}

// Get returns the value for key and whether it was present.
func (p Plain[K, V]) Get(key K) (V, bool) {
	value, ok := p[key]

	return value, ok
}

// All yields the entries in unspecified order.
func (p Plain[K, V]) All() iter.Seq2[K, V] {
	return maps.All(p)
}
