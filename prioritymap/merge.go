package prioritymap

import (
	"cmp"
	"maps"
)

// Merge strategies, as reported in logs and the merge strategy metric.
const (
	strategyNoop        = "noop"
	strategyLoad        = "load"
	strategyRebuild     = "rebuild"
	strategyIncremental = "incremental"
	strategyCopy        = "copy"
)

// Crossovers: when ratio*|other| > |self| the order index is sorted once
// instead of patched per key.
const (
	mergeRebuildRatio  = 3
	updateRebuildRatio = 10
)

// mergeOp describes one of the arithmetic merges.
type mergeOp[V Number] struct {
	name string

	// combine computes the new value of a key present in both operands.
	combine func(mine, theirs V) V

	// union inserts keys found only in the other operand. When false those
	// keys are ignored, so the result never gains keys self did not have.
	union bool
}

func sumOp[V Number]() mergeOp[V] {
	return mergeOp[V]{name: "sum", union: true, combine: func(a, b V) V { return a + b }}
}

func differenceOp[V Number]() mergeOp[V] {
	return mergeOp[V]{name: "difference", union: false, combine: func(a, b V) V { return a - b }}
}

func maxOp[V Number]() mergeOp[V] {
	return mergeOp[V]{name: "max", union: true, combine: func(a, b V) V { return max(a, b) }}
}

func minOp[V Number]() mergeOp[V] {
	return mergeOp[V]{name: "min", union: false, combine: func(a, b V) V { return min(a, b) }}
}

// MergeSum adds other into m. Shared keys get the sum of both values and keys
// only in other are inserted with their value.
func (m *Map[K, V]) MergeSum(other Mapping[K, V]) {
	m.merge(sumOp[V](), other)
}

// MergeDifference subtracts other from m. Shared keys get m's value minus
// other's. Keys only in other are ignored: no entry is created from the
// right-hand operand alone, unlike MergeSum.
func (m *Map[K, V]) MergeDifference(other Mapping[K, V]) {
	m.merge(differenceOp[V](), other)
}

// MergeMax raises m to other pointwise. Shared keys keep the larger value and
// keys only in other are inserted.
func (m *Map[K, V]) MergeMax(other Mapping[K, V]) {
	m.merge(maxOp[V](), other)
}

// MergeMin lowers m to other pointwise. Shared keys keep the smaller value.
// Keys only in other are ignored, so only keys already in m survive; this
// mirrors MergeDifference rather than being the mirror image of MergeMax.
func (m *Map[K, V]) MergeMin(other Mapping[K, V]) {
	m.merge(minOp[V](), other)
}

// Sum returns a new Map holding m plus other. See MergeSum.
func (m *Map[K, V]) Sum(other Mapping[K, V]) *Map[K, V] {
	return m.combined(sumOp[V](), other)
}

// Difference returns a new Map holding m minus other. See MergeDifference.
func (m *Map[K, V]) Difference(other Mapping[K, V]) *Map[K, V] {
	return m.combined(differenceOp[V](), other)
}

// Max returns a new Map holding the pointwise maximum. See MergeMax.
func (m *Map[K, V]) Max(other Mapping[K, V]) *Map[K, V] {
	return m.combined(maxOp[V](), other)
}

// Min returns a new Map holding the pointwise minimum. See MergeMin.
func (m *Map[K, V]) Min(other Mapping[K, V]) *Map[K, V] {
	return m.combined(minOp[V](), other)
}

// Update overwrites m with every entry of other.
//
// Each overwritten key costs one remove and one insert whichever way the
// order index is maintained, so the crossover to a full rebuild sits further
// out than for the arithmetic merges.
func (m *Map[K, V]) Update(other Mapping[K, V]) {
	other = m.detach(other)
	checkKeys(other.All())

	strategy := strategyIncremental

	if updateRebuildRatio*other.Len() > len(m.mapping) {
		strategy = strategyRebuild

		maps.Insert(m.mapping, other.All())
		m.rebuild()
	} else {
		for key, value := range other.All() {
			m.Set(key, value)
		}
	}

	m.record("update", strategy, other.Len())
}

// merge applies op in place, choosing how to maintain the order index from
// the relative sizes of the operands:
//
//  1. m is empty: load other (for union ops) and sort once
//  2. other is large relative to m: patch the mapping index, sort once
//  3. otherwise: remove, recompute and reinsert each affected pair
func (m *Map[K, V]) merge(op mergeOp[V], other Mapping[K, V]) {
	other = m.detach(other)
	checkKeys(other.All())

	size := other.Len()

	var strategy string

	switch {
	case len(m.mapping) == 0 && !op.union:
		strategy = strategyNoop
	case len(m.mapping) == 0:
		strategy = strategyLoad

		maps.Insert(m.mapping, other.All())

		if len(m.mapping) > 0 {
			m.rebuild()
		}
	case mergeRebuildRatio*size > len(m.mapping):
		strategy = strategyRebuild

		apply(op, m.mapping, other)
		m.rebuild()
	default:
		strategy = strategyIncremental

		for key, theirs := range other.All() {
			mine, ok := m.mapping[key]

			switch {
			case ok:
				m.order.Remove(newPair(key, mine))

				value := op.combine(mine, theirs)
				m.mapping[key] = value
				m.order.Add(newPair(key, value))
			case op.union:
				m.mapping[key] = theirs
				m.order.Add(newPair(key, theirs))
			}
		}
	}

	m.record(op.name, strategy, size)
}

// combined builds a fresh Map from m and other with op. A new Map has no
// order index worth patching, so it is always sorted once at the end.
func (m *Map[K, V]) combined(op mergeOp[V], other Mapping[K, V]) *Map[K, V] {
	checkKeys(other.All())

	out := m.empty()
	maps.Copy(out.mapping, m.mapping)

	apply(op, out.mapping, other)

	if len(out.mapping) > 0 {
		out.rebuild()
	}

	m.record(op.name, strategyCopy, other.Len())

	return out
}

// apply folds other into mapping with op, touching only the mapping index.
func apply[K cmp.Ordered, V Number](op mergeOp[V], mapping map[K]V, other Mapping[K, V]) {
	for key, theirs := range other.All() {
		if mine, ok := mapping[key]; ok {
			mapping[key] = op.combine(mine, theirs)
		} else if op.union {
			mapping[key] = theirs
		}
	}
}

// detach snapshots other when it is m itself, so merging a Map with itself
// does not iterate the order index while rewriting it.
func (m *Map[K, V]) detach(other Mapping[K, V]) Mapping[K, V] {
	if self, ok := other.(*Map[K, V]); ok && self == m {
		return Plain[K, V](maps.Clone(m.mapping))
	}

	return other
}

func (m *Map[K, V]) record(op, strategy string, otherLen int) {
	mergeStrategy.WithLabelValues(op, strategy).Inc()

	m.log().Debug("merged priority map",
		"op", op,
		"strategy", strategy,
		"size", len(m.mapping),
		"other", otherLen)
}
