package prioritymap

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/amp-labs/amp-ranked/zero"
)

// Pop removes key and returns the value it held, or ErrNotFound.
func (m *Map[K, V]) Pop(key K) (V, error) {
	value, ok := m.mapping[key]
	if !ok {
		return zero.Value[V](), fmt.Errorf("%w: %v", ErrNotFound, key)
	}

	m.order.Remove(newPair(key, value))
	delete(m.mapping, key)

	return value, nil
}

// PopOrElse removes key and returns its value, or returns def when key is absent.
func (m *Map[K, V]) PopOrElse(key K, def V) V {
	value, err := m.Pop(key)
	if err != nil {
		return def
	}

	return value
}

// PopItem removes and returns the entry at position index in ascending value
// order. Negative indices count from the end. It returns ErrOutOfRange when
// the map is empty or index is outside [-n, n).
func (m *Map[K, V]) PopItem(index int) (Item[K, V], error) {
	p, err := m.order.DeleteAt(index)
	if err != nil {
		return Item[K, V]{}, err
	}

	delete(m.mapping, p.Second())

	return itemOf(p), nil
}

// PopMax removes and returns the entry with the largest value.
func (m *Map[K, V]) PopMax() (Item[K, V], error) {
	return m.PopItem(-1)
}

// PopMin removes and returns the entry with the smallest value.
func (m *Map[K, V]) PopMin() (Item[K, V], error) {
	return m.PopItem(0)
}

// SetDefault returns the value stored for key. If key is absent it is first
// inserted with def.
func (m *Map[K, V]) SetDefault(key K, def V) V {
	if value, ok := m.mapping[key]; ok {
		return value
	}

	checkKey(key)

	m.mapping[key] = def
	m.order.Add(newPair(key, def))

	return def
}

// MostCommon returns the n entries with the largest values, largest first.
// Entries with equal values come out in descending key order. A negative n,
// or one past the length, returns every entry.
func (m *Map[K, V]) MostCommon(n int) []Item[K, V] {
	if n < 0 || n > len(m.mapping) {
		n = len(m.mapping)
	}

	out := make([]Item[K, V], 0, n)

	for p := range m.order.Backward() {
		if len(out) == n {
			break
		}

		out = append(out, itemOf(p))
	}

	return out
}

// Elements yields each key repeated as many times as its value, in ascending
// value order. Values are truncated to whole counts and keys with a count
// below one are skipped.
func (m *Map[K, V]) Elements() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := range m.order.All() {
			for range int64(p.First()) {
				if !yield(p.Second()) {
					return
				}
			}
		}
	}
}

// Tally adds one to the value of each key, inserting absent keys with one.
func (m *Map[K, V]) Tally(keys ...K) {
	m.MergeSum(counts[K, V](keys))
}

// TallySeq is Tally over a sequence.
func (m *Map[K, V]) TallySeq(keys iter.Seq[K]) {
	tally := make(Plain[K, V])

	for key := range keys {
		tally[key]++
	}

	m.MergeSum(tally)
}

// Subtract takes one from the value of each key already present. Keys that
// are absent are ignored, the same as MergeDifference.
func (m *Map[K, V]) Subtract(keys ...K) {
	m.MergeDifference(counts[K, V](keys))
}

func counts[K cmp.Ordered, V Number](keys []K) Plain[K, V] {
	tally := make(Plain[K, V], len(keys))

	for _, key := range keys {
		tally[key]++
	}

	return tally
}
