package prioritymap

import (
	"iter"
)

// The comparisons below treat a Map purely as a key to value mapping: the
// order index plays no part. Together they form a pointwise partial order,
// so two maps can be neither less, greater nor equal.

// Equal reports whether m and other hold the same keys with the same values.
func (m *Map[K, V]) Equal(other Mapping[K, V]) bool {
	if len(m.mapping) != other.Len() {
		return false
	}

	for key, value := range m.mapping {
		theirs, ok := other.Get(key)
		if !ok || theirs != value {
			return false
		}
	}

	return true
}

// NotEqual is the negation of Equal.
func (m *Map[K, V]) NotEqual(other Mapping[K, V]) bool {
	return !m.Equal(other)
}

// LessEqual reports whether every key of m is in other with a value at least
// as large as m's.
func (m *Map[K, V]) LessEqual(other Mapping[K, V]) bool {
	if len(m.mapping) > other.Len() {
		return false
	}

	for key, value := range m.mapping {
		theirs, ok := other.Get(key)
		if !ok || value > theirs {
			return false
		}
	}

	return true
}

// Less reports LessEqual and not Equal.
func (m *Map[K, V]) Less(other Mapping[K, V]) bool {
	return m.LessEqual(other) && !m.Equal(other)
}

// GreaterEqual reports whether every key of other is in m with a value at
// least as large as other's.
func (m *Map[K, V]) GreaterEqual(other Mapping[K, V]) bool {
	if len(m.mapping) < other.Len() {
		return false
	}

	for key, theirs := range other.All() {
		value, ok := m.mapping[key]
		if !ok || value < theirs {
			return false
		}
	}

	return true
}

// Greater reports GreaterEqual and not Equal.
func (m *Map[K, V]) Greater(other Mapping[K, V]) bool {
	return m.GreaterEqual(other) && !m.Equal(other)
}

// IsDisjoint reports whether none of keys is present in m. Values are not
// consulted; use Prune to drop entries with non-positive values first.
func (m *Map[K, V]) IsDisjoint(keys iter.Seq[K]) bool {
	for key := range keys {
		if _, ok := m.mapping[key]; ok {
			return false
		}
	}

	return true
}
