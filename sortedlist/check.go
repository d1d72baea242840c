package sortedlist

import (
	"github.com/amp-labs/amp-ranked/errors"
)

// Check verifies the structural invariants of the tree: parent links,
// subtree sizes, red-black coloring, equal black height on every path, and
// non-decreasing in-order traversal. It reports every violation it finds,
// each wrapping ErrCorrupt. It is O(n) and meant for tests and debugging.
func (l *List[T]) Check() error {
	var errs errors.Collection

	if l.root != nil {
		if l.root.parent != nil {
			errs.Addf("%w: root %v has a parent", ErrCorrupt, l.root)
		}

		if isRed(l.root) {
			errs.Addf("%w: root %v is red", ErrCorrupt, l.root)
		}

		checkNode(l.root, &errs)
	}

	var prev T

	for i, item := range enumerate(l) {
		if i > 0 && l.cmp(prev, item) > 0 {
			errs.Addf("%w: element %d (%v) sorts before element %d (%v)", ErrCorrupt, i, item, i-1, prev)
		}

		prev = item
	}

	return errs.GetError()
}

// checkNode validates the subtree rooted at n and returns its black height.
func checkNode[T any](n *node[T], errs *errors.Collection) int {
	if n == nil {
		return 1
	}

	if n.left != nil && n.left.parent != n {
		errs.Addf("%w: left child of %v does not point back", ErrCorrupt, n)
	}

	if n.right != nil && n.right.parent != n {
		errs.Addf("%w: right child of %v does not point back", ErrCorrupt, n)
	}

	if isRed(n) && (isRed(n.left) || isRed(n.right)) {
		errs.Addf("%w: red node %v has a red child", ErrCorrupt, n)
	}

	leftHeight := checkNode(n.left, errs)
	rightHeight := checkNode(n.right, errs)

	if leftHeight != rightHeight {
		errs.Addf("%w: black height %d != %d below %v", ErrCorrupt, leftHeight, rightHeight, n)
	}

	if want := size(n.left) + size(n.right) + 1; n.size != want {
		errs.Addf("%w: node %v records size %d, has %d", ErrCorrupt, n, n.size, want)
	}

	if n.color == black {
		return leftHeight + 1
	}

	return leftHeight
}

// enumerate pairs each element with its position.
func enumerate[T any](l *List[T]) func(yield func(int, T) bool) {
	return func(yield func(int, T) bool) {
		i := 0

		for item := range l.All() {
			if !yield(i, item) {
				return
			}

			i++
		}
	}
}
