// Package errors holds sentinel errors shared across packages and a small
// accumulator for reporting several failures at once.
package errors

import (
	"errors"
	"fmt"
)

// ErrWrongType is the root of every "operation not supported for this type"
// failure. Package-specific sentinels wrap it so callers can match either one.
var ErrWrongType = errors.New("wrong type")

// Collection accumulates errors. It is not safe for concurrent use.
// Invariant checkers use it to report every violation they find rather than
// stopping at the first one.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Addf formats and appends an error. A %w verb in format wraps as usual.
func (c *Collection) Addf(format string, args ...any) {
	c.errors = append(c.errors, fmt.Errorf(format, args...)) //nolint:err113
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// GetError returns nil for an empty collection, the error itself when there is
// exactly one, and an errors.Join of all of them otherwise.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
