// Package compare provides utilities for comparing values.
package compare

import (
	"cmp"
	"strings"

	"facette.io/natsort"
)

// Func is a three-way comparison. It returns a negative number when a sorts
// before b, zero when the two are equivalent, and a positive number otherwise.
// This matches the contract of cmp.Compare and slices.SortFunc.
type Func[T any] func(a, b T) int

// Ordered is the natural ordering of any cmp.Ordered type.
func Ordered[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

// Reverse flips the order produced by f.
func Reverse[T any](f Func[T]) Func[T] {
	return func(a, b T) int {
		return f(b, a)
	}
}

// Natural orders strings the way people read embedded numbers, so "item2"
// sorts before "item10". Strings that natsort considers equivalent fall back
// to byte order, which keeps the ordering total.
func Natural(a, b string) int {
	switch {
	case a == b:
		return 0
	case natsort.Compare(a, b):
		return -1
	case natsort.Compare(b, a):
		return 1
	default:
		return strings.Compare(a, b)
	}
}
