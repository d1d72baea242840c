package prioritymap

import (
	"cmp"
	"errors"

	ampErrors "github.com/amp-labs/amp-ranked/errors"
)

// ErrInconsistent is reported by Check when the two indices disagree.
var ErrInconsistent = errors.New("priority map indices disagree")

// Check verifies that the mapping index and the order index describe the same
// entries: equal sizes, every pair backed by exactly one matching mapping
// entry, and a well-formed order index. It reports every violation found and
// is O(n), meant for tests and debugging.
func (m *Map[K, V]) Check() error {
	var errs ampErrors.Collection

	if len(m.mapping) != m.order.Len() {
		errs.Addf("%w: mapping index has %d entries, order index %d",
			ErrInconsistent, len(m.mapping), m.order.Len())
	}

	seen := make(map[K]struct{}, m.order.Len())

	for p := range m.order.All() {
		value, key := p.Unpack()

		if _, dup := seen[key]; dup {
			errs.Addf("%w: key %v appears more than once in the order index", ErrInconsistent, key)
		}

		seen[key] = struct{}{}

		mine, ok := m.mapping[key]

		switch {
		case !ok:
			errs.Addf("%w: key %v is in the order index only", ErrInconsistent, key)
		case cmp.Compare(mine, value) != 0:
			errs.Addf("%w: key %v maps to %v but is ordered as %v", ErrInconsistent, key, mine, value)
		}
	}

	errs.Add(m.order.Check())

	return errs.GetError()
}
