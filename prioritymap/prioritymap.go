// Package prioritymap provides Map, a key to value mapping that also keeps its
// entries sorted by value.
//
// A Map owns two indices that always describe the same set of entries:
//
//   - the mapping index, a Go map from key to value, for O(1) lookups
//   - the order index, a sortedlist of (value, key) pairs sorted by value and
//     then by key, for rank, select and bisection in O(log n)
//
// Every mutator updates both indices before returning, and every mutator that
// can fail validates its arguments before touching either index, so a failed
// call leaves the Map exactly as it was. Check verifies the invariants.
//
// Keys iterate in ascending value order; entries with equal values are ordered
// by key. A Map is not safe for concurrent use, and iterating over a Map (or
// any of its views) while mutating it is undefined: the iteration may skip or
// repeat entries.
package prioritymap

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"
	"maps"
	"strings"

	"github.com/amp-labs/amp-ranked/compare"
	"github.com/amp-labs/amp-ranked/logger"
	"github.com/amp-labs/amp-ranked/optional"
	"github.com/amp-labs/amp-ranked/sortedlist"
	"github.com/amp-labs/amp-ranked/tuple"
	"github.com/amp-labs/amp-ranked/zero"
	"golang.org/x/exp/constraints"
)

// Number is the set of value types a Map can hold. The merge operations need
// addition, subtraction and ordering, which rules out arbitrary ordered types.
type Number interface {
	constraints.Integer | constraints.Float
}

// Item is a single key/value entry.
type Item[K cmp.Ordered, V Number] struct {
	Key   K
	Value V
}

// String renders the item as key: value.
func (i Item[K, V]) String() string {
	return fmt.Sprintf("%v: %v", i.Key, i.Value)
}

// pair is an order index element: value first so the list sorts by value.
type pair[K cmp.Ordered, V Number] = tuple.Tuple2[V, K]

func newPair[K cmp.Ordered, V Number](key K, value V) pair[K, V] {
	return tuple.NewTuple2(value, key)
}

func itemOf[K cmp.Ordered, V Number](p pair[K, V]) Item[K, V] {
	return Item[K, V]{Key: p.Second(), Value: p.First()}
}

// pairOrder orders pairs by value, then by key using keyOrder.
func pairOrder[K cmp.Ordered, V Number](keyOrder compare.Func[K]) compare.Func[pair[K, V]] {
	return func(a, b pair[K, V]) int {
		if c := cmp.Compare(a.First(), b.First()); c != 0 {
			return c
		}

		return keyOrder(a.Second(), b.Second())
	}
}

// valueTarget describes the position of value for sortedlist.Search. It only
// inspects the value half of a pair, so the bound passed alongside decides
// whether equal values land before or after the target.
func valueTarget[K cmp.Ordered, V Number](value V) func(pair[K, V]) int {
	return func(p pair[K, V]) int {
		return cmp.Compare(p.First(), value)
	}
}

// Map is a mapping from keys to values kept sorted by value.
// The zero Map is not usable; create one with New or one of the From helpers.
//
// NaN is not a valid key. A NaN key never equals itself, so it could be
// stored but never found again; every operation that adds keys panics with
// ErrInvalidKey instead, before changing the Map.
type Map[K cmp.Ordered, V Number] struct {
	mapping  map[K]V
	order    *sortedlist.List[pair[K, V]]
	keyOrder compare.Func[K]
	logger   *slog.Logger
}

// New creates an empty Map.
func New[K cmp.Ordered, V Number](opts ...Option[K, V]) *Map[K, V] {
	return build(opts, nil)
}

// FromMap creates a Map holding a copy of src.
func FromMap[K cmp.Ordered, V Number](src map[K]V, opts ...Option[K, V]) *Map[K, V] {
	return build(opts, func(dst map[K]V) {
		maps.Copy(dst, src)
	})
}

// FromMapping creates a Map holding a copy of src, which may itself be a *Map.
func FromMapping[K cmp.Ordered, V Number](src Mapping[K, V], opts ...Option[K, V]) *Map[K, V] {
	return build(opts, func(dst map[K]V) {
		maps.Insert(dst, src.All())
	})
}

// FromItems creates a Map from a sequence of key/value pairs. When a key
// repeats, the last value wins.
func FromItems[K cmp.Ordered, V Number](items iter.Seq2[K, V], opts ...Option[K, V]) *Map[K, V] {
	return build(opts, func(dst map[K]V) {
		maps.Insert(dst, items)
	})
}

// FromKeys creates a Map in which every key in keys holds value.
func FromKeys[K cmp.Ordered, V Number](keys []K, value V, opts ...Option[K, V]) *Map[K, V] {
	return build(opts, func(dst map[K]V) {
		for _, key := range keys {
			dst[key] = value
		}
	})
}

// Count creates a Map that tallies keys: each key maps to the number of times
// it occurs.
func Count[K cmp.Ordered, V Number](keys []K, opts ...Option[K, V]) *Map[K, V] {
	return build(opts, func(dst map[K]V) {
		for _, key := range keys {
			dst[key]++
		}
	})
}

// CountSeq is Count over a sequence.
func CountSeq[K cmp.Ordered, V Number](keys iter.Seq[K], opts ...Option[K, V]) *Map[K, V] {
	return build(opts, func(dst map[K]V) {
		for key := range keys {
			dst[key]++
		}
	})
}

// build applies opts, fills the mapping index with load and then the
// overrides, and sorts the order index once.
func build[K cmp.Ordered, V Number](opts []Option[K, V], load func(map[K]V)) *Map[K, V] {
	cfg := newConfig(opts)

	m := &Map[K, V]{
		mapping:  make(map[K]V),
		order:    sortedlist.New(pairOrder[K, V](cfg.keyOrder)),
		keyOrder: cfg.keyOrder,
		logger:   cfg.logger,
	}

	if load != nil {
		load(m.mapping)
	}

	for _, item := range cfg.overrides {
		m.mapping[item.Key] = item.Value
	}

	checkKeys(maps.All(m.mapping))

	if len(m.mapping) > 0 {
		m.rebuild()
	}

	return m
}

func checkKey[K cmp.Ordered](key K) {
	if key != key { //nolint:gocritic // true only for NaN
		panic(fmt.Errorf("%w: NaN", ErrInvalidKey))
	}
}

func checkKeys[K cmp.Ordered, V any](entries iter.Seq2[K, V]) {
	for key := range entries {
		checkKey(key)
	}
}

// empty returns a new, empty Map sharing m's configuration.
func (m *Map[K, V]) empty() *Map[K, V] {
	return &Map[K, V]{
		mapping:  make(map[K]V),
		order:    sortedlist.New(m.order.Compare()),
		keyOrder: m.keyOrder,
		logger:   m.logger,
	}
}

// log returns the configured logger, or the process default.
func (m *Map[K, V]) log() *slog.Logger {
	if m.logger != nil {
		return m.logger
	}

	return logger.Get()
}

// Len returns the number of entries. O(1).
func (m *Map[K, V]) Len() int {
	return len(m.mapping)
}

// Contains reports whether key is present. O(1).
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.mapping[key]

	return ok
}

// Get returns the value stored for key and whether it was present.
func (m *Map[K, V]) Get(key K) (V, bool) {
	value, ok := m.mapping[key]

	return value, ok
}

// Value returns the value stored for key, or ErrNotFound.
func (m *Map[K, V]) Value(key K) (V, error) {
	value, ok := m.mapping[key]
	if !ok {
		return zero.Value[V](), fmt.Errorf("%w: %v", ErrNotFound, key)
	}

	return value, nil
}

// GetOrElse returns the value stored for key, or def when key is absent.
func (m *Map[K, V]) GetOrElse(key K, def V) V {
	if value, ok := m.mapping[key]; ok {
		return value
	}

	return def
}

// Lookup returns the value stored for key as an optional.
func (m *Map[K, V]) Lookup(key K) optional.Value[V] {
	if value, ok := m.mapping[key]; ok {
		return optional.Some(value)
	}

	return optional.None[V]()
}

// Set stores value for key. An existing entry is always removed from the
// order index and reinserted, even when the value does not change. O(log n).
func (m *Map[K, V]) Set(key K, value V) {
	checkKey(key)

	if old, ok := m.mapping[key]; ok {
		m.order.Remove(newPair(key, old))
	}

	m.mapping[key] = value
	m.order.Add(newPair(key, value))
}

// Delete removes key, or returns ErrNotFound. O(log n).
func (m *Map[K, V]) Delete(key K) error {
	if _, err := m.Pop(key); err != nil {
		return err
	}

	return nil
}

// Clear removes every entry.
func (m *Map[K, V]) Clear() {
	clear(m.mapping)
	m.order.Clear()
}

// Clone returns an independent copy of m with the same configuration.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{
		mapping:  maps.Clone(m.mapping),
		order:    m.order.Clone(),
		keyOrder: m.keyOrder,
		logger:   m.logger,
	}
}

// First returns the entry with the smallest value, if any.
func (m *Map[K, V]) First() optional.Value[Item[K, V]] {
	return optional.Map(m.order.First(), itemOf[K, V])
}

// Last returns the entry with the largest value, if any.
func (m *Map[K, V]) Last() optional.Value[Item[K, V]] {
	return optional.Map(m.order.Last(), itemOf[K, V])
}

// Ascend yields the keys in ascending value order.
// Each call starts a fresh traversal. Mutating m during iteration is undefined.
func (m *Map[K, V]) Ascend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := range m.order.All() {
			if !yield(p.Second()) {
				return
			}
		}
	}
}

// Descend yields the keys in descending value order, the exact reverse of Ascend.
// Each call starts a fresh traversal. Mutating m during iteration is undefined.
func (m *Map[K, V]) Descend() iter.Seq[K] {
	return func(yield func(K) bool) {
		for p := range m.order.Backward() {
			if !yield(p.Second()) {
				return
			}
		}
	}
}

// All yields every key with its value in ascending value order.
// Each call starts a fresh traversal. Mutating m during iteration is undefined.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range m.order.All() {
			if !yield(p.Second(), p.First()) {
				return
			}
		}
	}
}

// Backward yields every key with its value in descending value order.
// Each call starts a fresh traversal. Mutating m during iteration is undefined.
func (m *Map[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for p := range m.order.Backward() {
			if !yield(p.Second(), p.First()) {
				return
			}
		}
	}
}

// String renders the entries in ascending value order.
func (m *Map[K, V]) String() string {
	var sb strings.Builder

	sb.WriteString("PriorityMap{")

	first := true

	for key, value := range m.All() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&sb, "%v: %v", key, value)
	}

	sb.WriteString("}")

	return sb.String()
}

// rebuild discards the order index and sorts it afresh from the mapping index.
func (m *Map[K, V]) rebuild() {
	items := make([]pair[K, V], 0, len(m.mapping))

	for key, value := range m.mapping {
		items = append(items, newPair(key, value))
	}

	m.order.Rebuild(items)

	rebuilds.Inc()
}
