package sortedlist

import (
	"fmt"
	"iter"
)

// All yields every element in ascending order.
// Each call starts a fresh traversal. Mutating the list during iteration is undefined.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.root == nil {
			return
		}

		for cur := minimum(l.root); cur != nil; cur = successor(cur) {
			if !yield(cur.item) {
				return
			}
		}
	}
}

// Backward yields every element in descending order.
// Each call starts a fresh traversal. Mutating the list during iteration is undefined.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.root == nil {
			return
		}

		for cur := maximum(l.root); cur != nil; cur = predecessor(cur) {
			if !yield(cur.item) {
				return
			}
		}
	}
}

// Range yields the elements at positions [start, end) in ascending order.
// Bounds are clamped to the list, the way slice expressions on a sequence are,
// so an empty or inverted range yields nothing. O(log n + k).
func (l *List[T]) Range(start, end int) iter.Seq[T] {
	return func(yield func(T) bool) {
		start, end = l.clamp(start, end)
		if start >= end {
			return
		}

		cur := l.selectNode(start)

		for i := start; i < end && cur != nil; i++ {
			if !yield(cur.item) {
				return
			}

			cur = successor(cur)
		}
	}
}

// Slice returns a copy of the elements at positions [start, end).
// Negative bounds count from the end. Unlike Range, bounds that fall outside
// the list after normalisation, or an end before start, are an error.
func (l *List[T]) Slice(start, end int) ([]T, error) {
	start, end, err := l.NormalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, end-start)

	for item := range l.Range(start, end) {
		out = append(out, item)
	}

	return out, nil
}

// NormalizeRange resolves negative bounds against the current length and
// checks 0 <= start <= end <= n.
func (l *List[T]) NormalizeRange(start, end int) (int, int, error) {
	n := l.Len()
	lo, hi := start, end

	if lo < 0 {
		lo += n
	}

	if hi < 0 {
		hi += n
	}

	if lo < 0 || hi > n || lo > hi {
		return 0, 0, fmt.Errorf("%w: range [%d, %d) with length %d", ErrOutOfRange, start, end, n)
	}

	return lo, hi, nil
}

// clamp resolves negative bounds and clips both ends into [0, n].
func (l *List[T]) clamp(start, end int) (int, int) {
	n := l.Len()

	if start < 0 {
		start = max(start+n, 0)
	}

	if end < 0 {
		end = max(end+n, 0)
	}

	return min(start, n), min(end, n)
}
