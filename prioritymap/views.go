package prioritymap

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/amp-labs/amp-ranked/zero"
	mapset "github.com/deckarep/golang-set/v2"
)

// OrderedView is a live, read-only projection of a Map in ascending value
// order. Views hold a reference to the Map, never a copy: they see every later
// change, and iterating one while the Map is mutated is undefined.
type OrderedView[T any] interface {
	// Len returns the number of elements.
	Len() int

	// Contains reports whether elem is present.
	Contains(elem T) bool

	// All yields the elements in ascending value order.
	All() iter.Seq[T]

	// Backward yields the elements in descending value order.
	Backward() iter.Seq[T]

	// At returns the element at a position; negative positions count from the end.
	At(index int) (T, error)

	// Slice returns the elements at positions [start, end).
	Slice(start, end int) ([]T, error)
}

// SetView is an OrderedView that also supports set algebra. The key and item
// views implement it; the values view does not, because values repeat.
// Every operation accepts any sequence and returns a new mapset.Set.
type SetView[T comparable] interface {
	OrderedView[T]

	Count(elem T) int
	ToSet() mapset.Set[T]
	Intersection(other iter.Seq[T]) mapset.Set[T]
	Union(other iter.Seq[T]) mapset.Set[T]
	Difference(other iter.Seq[T]) mapset.Set[T]
	SymmetricDifference(other iter.Seq[T]) mapset.Set[T]
	Equal(other iter.Seq[T]) bool
	IsSubset(other iter.Seq[T]) bool
	IsProperSubset(other iter.Seq[T]) bool
	IsSuperset(other iter.Seq[T]) bool
	IsProperSuperset(other iter.Seq[T]) bool
	IsDisjoint(other iter.Seq[T]) bool
}

var (
	_ SetView[string]            = KeysView[string, int]{}
	_ SetView[Item[string, int]] = ItemsView[string, int]{}
	_ OrderedView[int]           = ValuesView[string, int]{}
)

// SetOps returns view's set algebra, or ErrTypeMismatch when the view has
// none (a ValuesView).
func SetOps[T comparable](view OrderedView[T]) (SetView[T], error) {
	sv, ok := view.(SetView[T])
	if !ok {
		return nil, fmt.Errorf("%w: %T has no set operations", ErrTypeMismatch, view)
	}

	return sv, nil
}

// setOps implements set algebra over a live membership test and sequence.
type setOps[T comparable] struct {
	contains func(T) bool
	all      func() iter.Seq[T]
}

func collect[T comparable](seq iter.Seq[T]) mapset.Set[T] {
	out := mapset.NewSet[T]()

	for elem := range seq {
		out.Add(elem)
	}

	return out
}

// Count returns 1 if elem is present and 0 otherwise.
func (s setOps[T]) Count(elem T) int {
	if s.contains(elem) {
		return 1
	}

	return 0
}

// ToSet copies the view into a new set.
func (s setOps[T]) ToSet() mapset.Set[T] {
	return collect(s.all())
}

// Intersection returns the elements of other that are in the view. O(|other|).
func (s setOps[T]) Intersection(other iter.Seq[T]) mapset.Set[T] {
	out := mapset.NewSet[T]()

	for elem := range other {
		if s.contains(elem) {
			out.Add(elem)
		}
	}

	return out
}

// Union returns the elements in the view or in other.
func (s setOps[T]) Union(other iter.Seq[T]) mapset.Set[T] {
	out := s.ToSet()

	for elem := range other {
		out.Add(elem)
	}

	return out
}

// Difference returns the elements in the view but not in other.
func (s setOps[T]) Difference(other iter.Seq[T]) mapset.Set[T] {
	out := s.ToSet()

	for elem := range other {
		out.Remove(elem)
	}

	return out
}

// SymmetricDifference returns the elements in exactly one of the view and other.
func (s setOps[T]) SymmetricDifference(other iter.Seq[T]) mapset.Set[T] {
	return s.ToSet().SymmetricDifference(collect(other))
}

// Equal reports whether the view and other hold the same elements.
func (s setOps[T]) Equal(other iter.Seq[T]) bool {
	return s.ToSet().Equal(collect(other))
}

// IsSubset reports whether every element of the view is in other.
func (s setOps[T]) IsSubset(other iter.Seq[T]) bool {
	return s.ToSet().IsSubset(collect(other))
}

// IsProperSubset reports IsSubset and that other has more elements.
func (s setOps[T]) IsProperSubset(other iter.Seq[T]) bool {
	return s.ToSet().IsProperSubset(collect(other))
}

// IsSuperset reports whether every element of other is in the view.
func (s setOps[T]) IsSuperset(other iter.Seq[T]) bool {
	for elem := range other {
		if !s.contains(elem) {
			return false
		}
	}

	return true
}

// IsProperSuperset reports IsSuperset and that the view has more elements.
func (s setOps[T]) IsProperSuperset(other iter.Seq[T]) bool {
	return s.ToSet().IsProperSuperset(collect(other))
}

// IsDisjoint reports whether the view and other share no element. O(|other|).
func (s setOps[T]) IsDisjoint(other iter.Seq[T]) bool {
	for elem := range other {
		if s.contains(elem) {
			return false
		}
	}

	return true
}

// KeysView is the live view of a Map's keys.
type KeysView[K cmp.Ordered, V Number] struct {
	setOps[K]

	m *Map[K, V]
}

// Keys returns the live view of m's keys in ascending value order.
func (m *Map[K, V]) Keys() KeysView[K, V] {
	return KeysView[K, V]{
		setOps: setOps[K]{contains: m.Contains, all: m.Ascend},
		m:      m,
	}
}

// Len returns the number of keys.
func (v KeysView[K, V]) Len() int {
	return v.m.Len()
}

// Contains reports whether key is present. O(1).
func (v KeysView[K, V]) Contains(key K) bool {
	return v.m.Contains(key)
}

// All yields the keys in ascending value order.
func (v KeysView[K, V]) All() iter.Seq[K] {
	return v.m.Ascend()
}

// Backward yields the keys in descending value order.
func (v KeysView[K, V]) Backward() iter.Seq[K] {
	return v.m.Descend()
}

// At returns the key at position index.
func (v KeysView[K, V]) At(index int) (K, error) {
	return v.m.Iloc().At(index)
}

// Slice returns the keys at positions [start, end).
func (v KeysView[K, V]) Slice(start, end int) ([]K, error) {
	return v.m.Iloc().Slice(start, end)
}

// Index returns the position of key, or ErrNotFound.
func (v KeysView[K, V]) Index(key K) (int, error) {
	return v.m.RankOf(key)
}

// ItemsView is the live view of a Map's entries. Its set algebra compares
// whole entries: two items are equal only when both key and value match.
type ItemsView[K cmp.Ordered, V Number] struct {
	setOps[Item[K, V]]

	m *Map[K, V]
}

// Items returns the live view of m's entries in ascending value order.
func (m *Map[K, V]) Items() ItemsView[K, V] {
	return ItemsView[K, V]{
		setOps: setOps[Item[K, V]]{contains: m.containsItem, all: m.items},
		m:      m,
	}
}

func (m *Map[K, V]) containsItem(item Item[K, V]) bool {
	value, ok := m.mapping[item.Key]

	return ok && value == item.Value
}

func (m *Map[K, V]) items() iter.Seq[Item[K, V]] {
	return func(yield func(Item[K, V]) bool) {
		for p := range m.order.All() {
			if !yield(itemOf(p)) {
				return
			}
		}
	}
}

// Len returns the number of entries.
func (v ItemsView[K, V]) Len() int {
	return v.m.Len()
}

// Contains reports whether item's key is present holding item's value. O(1).
func (v ItemsView[K, V]) Contains(item Item[K, V]) bool {
	return v.m.containsItem(item)
}

// All yields the entries in ascending value order.
func (v ItemsView[K, V]) All() iter.Seq[Item[K, V]] {
	return v.m.items()
}

// Backward yields the entries in descending value order.
func (v ItemsView[K, V]) Backward() iter.Seq[Item[K, V]] {
	return func(yield func(Item[K, V]) bool) {
		for p := range v.m.order.Backward() {
			if !yield(itemOf(p)) {
				return
			}
		}
	}
}

// At returns the entry at position index.
func (v ItemsView[K, V]) At(index int) (Item[K, V], error) {
	p, err := v.m.order.At(index)
	if err != nil {
		return Item[K, V]{}, err
	}

	return itemOf(p), nil
}

// Slice returns the entries at positions [start, end).
func (v ItemsView[K, V]) Slice(start, end int) ([]Item[K, V], error) {
	pairs, err := v.m.order.Slice(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]Item[K, V], len(pairs))
	for i, p := range pairs {
		out[i] = itemOf(p)
	}

	return out, nil
}

// ValuesView is the live view of a Map's values, ascending. Values may
// repeat, so it offers counting and searching but no set algebra; SetOps
// rejects it with ErrTypeMismatch.
type ValuesView[K cmp.Ordered, V Number] struct {
	m *Map[K, V]
}

// Values returns the live view of m's values in ascending order.
func (m *Map[K, V]) Values() ValuesView[K, V] {
	return ValuesView[K, V]{m: m}
}

// Len returns the number of values, repeats included.
func (v ValuesView[K, V]) Len() int {
	return v.m.Len()
}

// Contains reports whether any entry holds value. O(log n).
func (v ValuesView[K, V]) Contains(value V) bool {
	return v.Count(value) > 0
}

// Count returns how many entries hold exactly value. O(log n).
func (v ValuesView[K, V]) Count(value V) int {
	return v.m.BisectRight(value) - v.m.BisectLeft(value)
}

// Index returns the position of the first entry holding value, or ErrNotFound.
func (v ValuesView[K, V]) Index(value V) (int, error) {
	pos := v.m.BisectLeft(value)

	if pos == v.m.BisectRight(value) {
		return 0, fmt.Errorf("%w: value %v", ErrNotFound, value)
	}

	return pos, nil
}

// All yields the values in ascending order.
func (v ValuesView[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for p := range v.m.order.All() {
			if !yield(p.First()) {
				return
			}
		}
	}
}

// Backward yields the values in descending order.
func (v ValuesView[K, V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for p := range v.m.order.Backward() {
			if !yield(p.First()) {
				return
			}
		}
	}
}

// At returns the value at position index.
func (v ValuesView[K, V]) At(index int) (V, error) {
	p, err := v.m.order.At(index)
	if err != nil {
		return zero.Value[V](), err
	}

	return p.First(), nil
}

// Slice returns the values at positions [start, end).
func (v ValuesView[K, V]) Slice(start, end int) ([]V, error) {
	pairs, err := v.m.order.Slice(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]V, len(pairs))
	for i, p := range pairs {
		out[i] = p.First()
	}

	return out, nil
}
