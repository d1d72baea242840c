package sortedlist

import (
	"fmt"

	"github.com/amp-labs/amp-ranked/compare"
)

// Search returns the insertion point for a target described by order, which
// reports how an element relates to the target: negative if the element sorts
// before it, zero if equivalent, positive if after. bound picks the edge of
// the equivalent run: Inclusive returns the number of elements strictly
// before the target, Exclusive the number at or before it.
//
// order only has to agree with the list's own ordering on the part of the
// element it inspects. That lets callers search on a prefix of a composite
// element (for example only the value of a (value, key) pair) without
// building a synthetic sentinel element. O(log n).
func (l *List[T]) Search(order func(elem T) int, bound compare.Bound) int {
	pos := 0
	cur := l.root

	for cur != nil {
		if bound.Before(order(cur.item)) {
			pos += size(cur.left) + 1
			cur = cur.right
		} else {
			cur = cur.left
		}
	}

	return pos
}

// BisectLeft returns the position where item would be inserted before any
// equal elements.
func (l *List[T]) BisectLeft(item T) int {
	return l.Search(func(elem T) int { return l.cmp(elem, item) }, compare.Inclusive)
}

// BisectRight returns the position where item would be inserted after any
// equal elements.
func (l *List[T]) BisectRight(item T) int {
	return l.Search(func(elem T) int { return l.cmp(elem, item) }, compare.Exclusive)
}

// Index returns the position of the first element equal to item.
func (l *List[T]) Index(item T) (int, error) {
	pos := l.BisectLeft(item)

	if pos < l.Len() && l.cmp(l.selectNode(pos).item, item) == 0 {
		return pos, nil
	}

	return 0, fmt.Errorf("%w: %v", ErrNotFound, item)
}
