// Package tuple provides small immutable product types.
//
//nolint:ireturn
package tuple

func NewTuple2[A, B any](first A, second B) Tuple2[A, B] {
	return Tuple2[A, B]{
		first:  first,
		second: second,
	}
}

// Tuple2 is a type that represents a pair of values.
type Tuple2[A any, B any] struct {
	first  A
	second B
}

func (t Tuple2[A, B]) First() A { //nolint:ireturn
	return t.first
}

func (t Tuple2[A, B]) Second() B { //nolint:ireturn
	return t.second
}

// Swap returns the pair with its elements exchanged.
func (t Tuple2[A, B]) Swap() Tuple2[B, A] {
	return Tuple2[B, A]{
		first:  t.second,
		second: t.first,
	}
}

// Unpack returns both elements, for use in multi-value assignment.
func (t Tuple2[A, B]) Unpack() (A, B) { //nolint:ireturn
	return t.first, t.second
}
