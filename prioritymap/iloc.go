package prioritymap

import (
	"cmp"

	"github.com/amp-labs/amp-ranked/zero"
)

// Iloc addresses a Map's keys by their position in ascending value order.
// Positions are zero based; negative positions count from the end.
type Iloc[K cmp.Ordered, V Number] struct {
	m *Map[K, V]
}

// Iloc returns the positional accessor for m. It borrows m and sees every
// later change.
func (m *Map[K, V]) Iloc() Iloc[K, V] {
	return Iloc[K, V]{m: m}
}

// Len returns the number of positions.
func (il Iloc[K, V]) Len() int {
	return il.m.Len()
}

// At returns the key at position index, or ErrOutOfRange. O(log n).
func (il Iloc[K, V]) At(index int) (K, error) {
	p, err := il.m.order.At(index)
	if err != nil {
		return zero.Value[K](), err
	}

	return p.Second(), nil
}

// Slice returns the keys at positions [start, end). Bounds may be negative;
// once resolved they must satisfy 0 <= start <= end <= n, else ErrOutOfRange.
func (il Iloc[K, V]) Slice(start, end int) ([]K, error) {
	pairs, err := il.m.order.Slice(start, end)
	if err != nil {
		return nil, err
	}

	keys := make([]K, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Second()
	}

	return keys, nil
}

// DeleteAt removes the entry at position index from both indices.
func (il Iloc[K, V]) DeleteAt(index int) error {
	_, err := il.m.PopItem(index)

	return err
}

// DeleteRange removes the entries at positions [start, end) from both
// indices. The range is validated before anything is removed.
func (il Iloc[K, V]) DeleteRange(start, end int) error {
	removed, err := il.m.order.DeleteRange(start, end)
	if err != nil {
		return err
	}

	for _, p := range removed {
		delete(il.m.mapping, p.Second())
	}

	return nil
}
