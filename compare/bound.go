package compare

// Bound selects which edge of a run of equivalent elements a binary search
// reports. Searches over sorted sequences take a Bound instead of a synthetic
// "greater than everything" target value.
type Bound uint8

const (
	// Inclusive lands before every element equivalent to the target, so the
	// target's own run is included in what follows the insertion point.
	Inclusive Bound = iota

	// Exclusive lands after every element equivalent to the target.
	Exclusive
)

// String returns a human-readable representation of the bound.
func (b Bound) String() string {
	switch b {
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	default:
		return "not recognized"
	}
}

// Before reports whether an element whose comparison against the target is c
// sits before the insertion point selected by b.
func (b Bound) Before(c int) bool {
	if b == Exclusive {
		return c <= 0
	}

	return c < 0
}
