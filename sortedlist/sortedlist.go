// Package sortedlist provides List, a sorted sequence backed by an
// order-statistic red-black tree. Besides O(log n) insertion, removal and
// membership it answers positional questions in O(log n): the element at a
// rank, the rank of an element, and binary-search insertion points.
//
// Every node carries the size of its subtree. Rotations and deletions keep
// those sizes current, which is what makes rank and select logarithmic.
//
// The red-black properties maintained are the usual ones:
//  1. Every node is either red or black
//  2. The root is always black
//  3. All leaves (nil nodes) are considered black
//  4. Red nodes cannot have red children
//  5. Every path from root to leaf contains the same number of black nodes
//
// A List is not safe for concurrent use. Iterators observe the live tree, so
// mutating a List while ranging over it is undefined.
package sortedlist

import (
	"errors"
	"fmt"

	"github.com/amp-labs/amp-ranked/compare"
	"github.com/amp-labs/amp-ranked/optional"
	"github.com/amp-labs/amp-ranked/zero"
)

var (
	// ErrOutOfRange is returned for positions outside [-n, n) and for
	// malformed ranges.
	ErrOutOfRange = errors.New("index out of range")

	// ErrNotFound is returned when an element is not present.
	ErrNotFound = errors.New("element not found")

	// ErrCorrupt is reported by Check when a structural invariant is broken.
	ErrCorrupt = errors.New("sorted list corrupt")
)

// color represents the color of a red-black tree node.
type color bool

const (
	// black and red are the two node colors in a red-black tree.
	black, red color = true, false
)

// String returns a human-readable representation of the node color.
func (c color) String() string {
	if c == black {
		return "Black"
	}

	return "Red"
}

// node is a single tree node. size counts the node itself plus both subtrees.
type node[T any] struct {
	item   T
	color  color
	size   int
	left   *node[T]
	right  *node[T]
	parent *node[T]
}

// String returns a string representation of the node showing its item, color and size.
func (n *node[T]) String() string {
	return fmt.Sprintf("(%#v : %s : %d)", n.item, n.color, n.size)
}

// size returns the subtree size of n, treating nil as an empty subtree.
func size[T any](n *node[T]) int {
	if n == nil {
		return 0
	}

	return n.size
}

// isRed returns true if the node is red. nil nodes are black.
func isRed[T any](n *node[T]) bool {
	return n != nil && n.color == red
}

// List is a sorted sequence of T ordered by a comparison function.
// Elements that compare equal are allowed; a new element is placed after
// every existing element it compares equal to.
type List[T any] struct {
	root *node[T]
	cmp  compare.Func[T]
}

// New creates an empty List ordered by cmp.
func New[T any](cmp compare.Func[T]) *List[T] {
	return &List[T]{cmp: cmp}
}

// FromSorted builds a List from items that are already in cmp order.
// The tree is built bottom-up in O(n); items is not retained.
func FromSorted[T any](cmp compare.Func[T], items []T) *List[T] {
	l := New(cmp)
	l.root = build(items, 0, len(items), 0, blackDepth(len(items)), nil)

	return l
}

// FromUnsorted sorts items with cmp (in place) and builds a List from them.
func FromUnsorted[T any](cmp compare.Func[T], items []T) *List[T] {
	l := New(cmp)
	l.Rebuild(items)

	return l
}

// Compare returns the comparison function ordering the list.
func (l *List[T]) Compare() compare.Func[T] {
	return l.cmp
}

// Len returns the number of elements. O(1).
func (l *List[T]) Len() int {
	return size(l.root)
}

// Clear removes every element.
func (l *List[T]) Clear() {
	l.root = nil
}

// Add inserts item in sorted position.
func (l *List[T]) Add(item T) {
	fresh := &node[T]{item: item, color: red, size: 1}

	if l.root == nil {
		fresh.color = black
		l.root = fresh

		return
	}

	cur := l.root

	for {
		cur.size++

		if l.cmp(item, cur.item) < 0 {
			if cur.left == nil {
				cur.left = fresh

				break
			}

			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = fresh

				break
			}

			cur = cur.right
		}
	}

	fresh.parent = cur
	l.fixupAdd(fresh)
}

// Remove deletes one element equal to item. It reports whether anything was removed.
func (l *List[T]) Remove(item T) bool {
	found := l.find(item)
	if found == nil {
		return false
	}

	l.deleteNode(found)

	return true
}

// Contains reports whether an element equal to item is present.
func (l *List[T]) Contains(item T) bool {
	return l.find(item) != nil
}

// At returns the element at position index. Negative indices count from the end.
func (l *List[T]) At(index int) (T, error) {
	pos, err := l.normalize(index)
	if err != nil {
		return zero.Value[T](), err
	}

	return l.selectNode(pos).item, nil
}

// First returns the smallest element, if any.
func (l *List[T]) First() optional.Value[T] {
	if l.root == nil {
		return optional.None[T]()
	}

	return optional.Some(minimum(l.root).item)
}

// Last returns the largest element, if any.
func (l *List[T]) Last() optional.Value[T] {
	if l.root == nil {
		return optional.None[T]()
	}

	return optional.Some(maximum(l.root).item)
}

// DeleteAt removes and returns the element at position index.
// Negative indices count from the end.
func (l *List[T]) DeleteAt(index int) (T, error) {
	pos, err := l.normalize(index)
	if err != nil {
		return zero.Value[T](), err
	}

	target := l.selectNode(pos)
	item := target.item
	l.deleteNode(target)

	return item, nil
}

// Clone returns an independent copy of the list sharing the comparator.
// The copy has the same shape, so it costs O(n) with no comparisons.
func (l *List[T]) Clone() *List[T] {
	return &List[T]{
		root: cloneNode(l.root, nil),
		cmp:  l.cmp,
	}
}

func cloneNode[T any](n *node[T], parent *node[T]) *node[T] {
	if n == nil {
		return nil
	}

	out := &node[T]{
		item:   n.item,
		color:  n.color,
		size:   n.size,
		parent: parent,
	}

	out.left = cloneNode(n.left, out)
	out.right = cloneNode(n.right, out)

	return out
}

// normalize maps a possibly negative index onto [0, n) or fails.
func (l *List[T]) normalize(index int) (int, error) {
	n := l.Len()

	pos := index
	if pos < 0 {
		pos += n
	}

	if pos < 0 || pos >= n {
		return 0, fmt.Errorf("%w: index %d with length %d", ErrOutOfRange, index, n)
	}

	return pos, nil
}

// find returns a node whose item compares equal to item, or nil.
func (l *List[T]) find(item T) *node[T] {
	cur := l.root

	for cur != nil {
		c := l.cmp(item, cur.item)

		switch {
		case c < 0:
			cur = cur.left
		case c > 0:
			cur = cur.right
		default:
			return cur
		}
	}

	return nil
}
