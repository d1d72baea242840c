package sortedlist

// rotateLeft performs a left rotation around node x, carrying subtree sizes along:
//
//	  x                y
//	 / \              / \
//	A   y      =>    x   C
//	   / \          / \
//	  B   C        A   B
//
// nolint:varnamelen // Standard red-black tree variable names
func (l *List[T]) rotateLeft(x *node[T]) {
	y := x.right //nolint:varnamelen // Standard red-black tree variable names from CLRS
	x.right = y.left

	if y.left != nil {
		y.left.parent = x
	}

	y.parent = x.parent

	switch {
	case x.parent == nil:
		l.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}

	y.left = x
	x.parent = y

	y.size = x.size
	x.size = size(x.left) + size(x.right) + 1
}

// rotateRight performs a right rotation around node y, carrying subtree sizes along:
//
//	    y              x
//	   / \            / \
//	  x   C   =>     A   y
//	 / \                / \
//	A   B              B   C
//
// nolint:dupword,varnamelen // ASCII art; standard RB tree variable names
func (l *List[T]) rotateRight(y *node[T]) {
	x := y.left //nolint:varnamelen // Standard red-black tree variable names from CLRS
	y.left = x.right

	if x.right != nil {
		x.right.parent = y
	}

	x.parent = y.parent

	switch {
	case y.parent == nil:
		l.root = x
	case y == y.parent.left:
		y.parent.left = x
	default:
		y.parent.right = x
	}

	x.right = y
	y.parent = x

	x.size = y.size
	y.size = size(y.left) + size(y.right) + 1
}

// fixupAdd restores the red-black properties after z was inserted as a red leaf.
//
//  1. Parent is black - no violation, done
//  2. Parent is red, uncle is red - recolor and continue from the grandparent
//  3. Parent is red, uncle is black - rotate (at most twice) and recolor
//
// nolint:varnamelen // Standard red-black tree variable names
func (l *List[T]) fixupAdd(z *node[T]) {
	for isRed(z.parent) {
		grandparent := z.parent.parent

		if z.parent == grandparent.left { //nolint:nestif // Red-black tree algorithm complexity
			y := grandparent.right
			if isRed(y) {
				z.parent.color = black
				y.color = black
				grandparent.color = red
				z = grandparent

				continue
			}

			if z == z.parent.right {
				z = z.parent
				l.rotateLeft(z)
			}

			z.parent.color = black
			grandparent.color = red
			l.rotateRight(grandparent)
		} else {
			y := grandparent.left
			if isRed(y) {
				z.parent.color = black
				y.color = black
				grandparent.color = red
				z = grandparent

				continue
			}

			if z == z.parent.left {
				z = z.parent
				l.rotateRight(z)
			}

			z.parent.color = black
			grandparent.color = red
			l.rotateLeft(grandparent)
		}
	}

	l.root.color = black
}

// deleteNode unlinks z from the tree and rebalances.
//
// The node physically leaving its position is y: z itself when z has at most
// one child, otherwise z's in-order successor, which then takes z's place.
// Every ancestor of y's old position loses exactly one descendant, so sizes
// are fixed on that path before the tree is restructured.
//
// nolint:varnamelen // Standard red-black tree variable names
func (l *List[T]) deleteNode(z *node[T]) {
	y := z //nolint:varnamelen // Standard red-black tree variable names from CLRS
	if z.left != nil && z.right != nil {
		y = minimum(z.right)
	}

	for p := y.parent; p != nil; p = p.parent {
		p.size--
	}

	yOriginalColor := y.color

	var x, xParent *node[T]

	switch {
	case z.left == nil:
		x, xParent = z.right, z.parent
		l.transplant(z, z.right)
	case z.right == nil:
		x, xParent = z.left, z.parent
		l.transplant(z, z.left)
	default:
		x = y.right

		if y.parent == z {
			xParent = y
		} else {
			xParent = y.parent
			l.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}

		l.transplant(z, y)

		y.left = z.left
		y.left.parent = y
		y.color = z.color
		y.size = z.size
	}

	z.left, z.right, z.parent = nil, nil, nil

	if yOriginalColor == black {
		l.fixupDelete(x, xParent)
	}
}

// fixupDelete restores the black-height property after a black node was removed.
// x carries the extra black and may be nil, so its parent is tracked separately.
//
//  1. Sibling is red - rotate and recolor to get a black sibling
//  2. Sibling is black with two black children - recolor sibling, move up
//  3. Sibling is black with a red child - rotate and recolor, done
//
// nolint:varnamelen,dupl,cyclop // Standard red-black tree variable names; symmetric cases
func (l *List[T]) fixupDelete(x, parent *node[T]) {
	for x != l.root && !isRed(x) {
		if x == parent.left { //nolint:nestif // Red-black tree algorithm complexity
			w := parent.right //nolint:varnamelen // Standard red-black tree variable names from CLRS
			if isRed(w) {
				w.color = black
				parent.color = red
				l.rotateLeft(parent)
				w = parent.right
			}

			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x = parent
				parent = x.parent

				continue
			}

			if !isRed(w.right) {
				w.left.color = black
				w.color = red
				l.rotateRight(w)
				w = parent.right
			}

			w.color = parent.color
			parent.color = black
			w.right.color = black
			l.rotateLeft(parent)

			x = l.root
		} else {
			w := parent.left //nolint:varnamelen // Standard red-black tree variable names from CLRS
			if isRed(w) {
				w.color = black
				parent.color = red
				l.rotateRight(parent)
				w = parent.left
			}

			if !isRed(w.left) && !isRed(w.right) {
				w.color = red
				x = parent
				parent = x.parent

				continue
			}

			if !isRed(w.left) {
				w.right.color = black
				w.color = red
				l.rotateLeft(w)
				w = parent.left
			}

			w.color = parent.color
			parent.color = black
			w.left.color = black
			l.rotateRight(parent)

			x = l.root
		}
	}

	if x != nil {
		x.color = black
	}
}

// transplant replaces the subtree rooted at u with the subtree rooted at v.
func (l *List[T]) transplant(u *node[T], v *node[T]) {
	switch {
	case u.parent == nil:
		l.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}

	if v != nil {
		v.parent = u.parent
	}
}

// minimum returns the leftmost node of the subtree rooted at x.
func minimum[T any](x *node[T]) *node[T] {
	for x.left != nil {
		x = x.left
	}

	return x
}

// maximum returns the rightmost node of the subtree rooted at x.
func maximum[T any](x *node[T]) *node[T] {
	for x.right != nil {
		x = x.right
	}

	return x
}

// successor returns the in-order successor of x, or nil at the end.
func successor[T any](x *node[T]) *node[T] {
	if x.right != nil {
		return minimum(x.right)
	}

	p := x.parent
	for p != nil && x == p.right {
		x, p = p, p.parent
	}

	return p
}

// predecessor returns the in-order predecessor of x, or nil at the start.
func predecessor[T any](x *node[T]) *node[T] {
	if x.left != nil {
		return maximum(x.left)
	}

	p := x.parent
	for p != nil && x == p.left {
		x, p = p, p.parent
	}

	return p
}

// selectNode returns the node at zero-based rank pos. pos must be in range.
func (l *List[T]) selectNode(pos int) *node[T] {
	cur := l.root

	for cur != nil {
		leftSize := size(cur.left)

		switch {
		case pos < leftSize:
			cur = cur.left
		case pos == leftSize:
			return cur
		default:
			pos -= leftSize + 1
			cur = cur.right
		}
	}

	return nil
}
