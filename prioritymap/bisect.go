package prioritymap

import (
	"fmt"

	"github.com/amp-labs/amp-ranked/assert"
	"github.com/amp-labs/amp-ranked/compare"
	"github.com/amp-labs/amp-ranked/zero"
)

// BisectLeft returns the number of entries whose value is strictly less than
// value: the insertion point for value ahead of any entries already holding it.
// O(log n).
func (m *Map[K, V]) BisectLeft(value V) int {
	return m.order.Search(valueTarget[K](value), compare.Inclusive)
}

// BisectRight returns the number of entries whose value is less than or equal
// to value: the insertion point for value past every entry already holding it,
// whatever their keys. O(log n).
func (m *Map[K, V]) BisectRight(value V) int {
	return m.order.Search(valueTarget[K](value), compare.Exclusive)
}

// Bisect is BisectLeft.
func (m *Map[K, V]) Bisect(value V) int {
	return m.BisectLeft(value)
}

// RankOf returns the position of key in ascending value order, or ErrNotFound.
// O(log n).
func (m *Map[K, V]) RankOf(key K) (int, error) {
	value, ok := m.mapping[key]
	if !ok {
		return 0, fmt.Errorf("%w: %v", ErrNotFound, key)
	}

	pos, err := m.order.Index(newPair(key, value))
	assert.True(err == nil, "key %v is in the mapping index but not the order index", key)

	return pos, nil
}

// Prune deletes every entry whose value is less than or equal to threshold
// and returns how many were removed. The doomed entries form a prefix of the
// order index, so they are found with one bisection and removed as a range.
// Prune never runs implicitly; zero and negative values are legal until the
// caller prunes them.
func (m *Map[K, V]) Prune(threshold V) int {
	end := m.BisectRight(threshold)
	if end == 0 {
		return 0
	}

	removed, err := m.order.DeleteRange(0, end)
	assert.True(err == nil, "prune range [0, %d) rejected: %v", end, err)

	for _, p := range removed {
		delete(m.mapping, p.Second())
	}

	pruned.Add(float64(len(removed)))

	m.log().Debug("pruned priority map",
		"threshold", threshold,
		"removed", len(removed),
		"remaining", len(m.mapping))

	return len(removed)
}

// PruneZero deletes every entry whose value is zero or negative.
func (m *Map[K, V]) PruneZero() int {
	return m.Prune(zero.Value[V]())
}
