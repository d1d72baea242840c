package sortedlist

import (
	"math/bits"
	"slices"

	"github.com/amp-labs/amp-ranked/assert"
)

// Rebuild replaces the contents of the list with items, sorting them in place
// first. One sort plus a linear build is cheaper than len(items) separate
// insertions, which is why bulk loaders use it.
func (l *List[T]) Rebuild(items []T) {
	slices.SortStableFunc(items, l.cmp)

	l.root = build(items, 0, len(items), 0, blackDepth(len(items)), nil)

	assert.Equal(l.Len(), len(items), "rebuilt list has %d elements, expected %d", l.Len(), len(items))
}

// DeleteRange removes the elements at positions [start, end) and returns them
// in order. Negative bounds count from the end.
//
// Short ranges are unlinked node by node in O(k log n). Once the range is a
// sizeable share of the list the survivors are rebuilt into a fresh balanced
// tree instead, which is O(n) and never worse than the node-by-node path.
func (l *List[T]) DeleteRange(start, end int) ([]T, error) {
	start, end, err := l.NormalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	count := end - start
	if count == 0 {
		return nil, nil
	}

	total := l.Len()
	removed := make([]T, 0, count)

	if count*rebuildFraction <= total {
		for range count {
			target := l.selectNode(start)
			removed = append(removed, target.item)
			l.deleteNode(target)
		}

		return removed, nil
	}

	survivors := make([]T, 0, total-count)
	pos := 0

	for item := range l.All() {
		if pos >= start && pos < end {
			removed = append(removed, item)
		} else {
			survivors = append(survivors, item)
		}

		pos++
	}

	l.root = build(survivors, 0, len(survivors), 0, blackDepth(len(survivors)), nil)

	return removed, nil
}

// rebuildFraction is the share of the list (1/rebuildFraction) above which
// DeleteRange rebuilds instead of unlinking nodes one at a time.
const rebuildFraction = 4

// blackDepth returns the depth of the deepest level of a tree built by build
// over n items. Nodes on that level are colored red, everything above black.
func blackDepth(n int) int {
	if n == 0 {
		return 0
	}

	return bits.Len(uint(n)) - 1
}

// build creates a balanced subtree over items[lo:hi].
//
// Splitting at the midpoint keeps sibling subtree sizes within one of each
// other, so every level above the deepest is full. Coloring only the deepest
// level red then gives every root-to-leaf path the same number of black nodes.
func build[T any](items []T, lo, hi, depth, deepest int, parent *node[T]) *node[T] {
	if lo >= hi {
		return nil
	}

	mid := int(uint(lo+hi) >> 1) //nolint:gosec // lo and hi are non-negative slice bounds

	out := &node[T]{
		item:   items[mid],
		color:  black,
		size:   hi - lo,
		parent: parent,
	}

	if depth == deepest && depth > 0 {
		out.color = red
	}

	out.left = build(items, lo, mid, depth+1, deepest, out)
	out.right = build(items, mid+1, hi, depth+1, deepest, out)

	return out
}
