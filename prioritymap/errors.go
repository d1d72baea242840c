package prioritymap

import (
	"errors"
	"fmt"

	ampErrors "github.com/amp-labs/amp-ranked/errors"
	"github.com/amp-labs/amp-ranked/sortedlist"
)

var (
	// ErrNotFound is returned when a key (or, for a values view, a value)
	// that must be present is absent.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange is returned for positions outside [-n, n), malformed
	// ranges, and positional pops from an empty map. It is the same sentinel
	// the underlying sorted list uses.
	ErrOutOfRange = sortedlist.ErrOutOfRange

	// ErrInvalidKey is the panic value for keys that can never be looked up
	// again, which for the ordered types means a NaN float.
	ErrInvalidKey = errors.New("invalid key")

	// ErrTypeMismatch is returned when a view is asked for operations it
	// does not support.
	ErrTypeMismatch = fmt.Errorf("type mismatch: %w", ampErrors.ErrWrongType)
)
