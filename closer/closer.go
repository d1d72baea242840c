// Package closer stacks io.Closer resources so layered readers (a file, a
// decompressor over it, a charset decoder over that) are released together.
package closer

import (
	"errors"
	"io"
	"slices"

	"go.uber.org/atomic"
)

// Stack closes its members in reverse order of addition, so the outermost
// reader is closed before the resource it wraps.
type Stack struct {
	closers []io.Closer
	closed  atomic.Bool
}

// NewStack returns a Stack holding the given closers, innermost first.
func NewStack(closers ...io.Closer) *Stack {
	return &Stack{closers: closers}
}

// Add pushes c onto the stack. Nil closers are ignored.
// Add is not safe for concurrent use.
func (s *Stack) Add(c io.Closer) {
	if c == nil {
		return
	}

	s.closers = append(s.closers, c)
}

// Len reports how many closers are held.
func (s *Stack) Len() int {
	return len(s.closers)
}

// Close closes every member, last added first, and joins their errors.
// Only the first call does any work.
func (s *Stack) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error

	for _, c := range slices.Backward(s.closers) {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Func adapts a cleanup function to io.Closer. A nil function closes to nil.
func Func(fn func() error) io.Closer {
	return funcCloser(fn)
}

type funcCloser func() error

func (f funcCloser) Close() error {
	if f == nil {
		return nil
	}

	return f()
}

// Silent adapts a cleanup function that cannot fail, such as a decoder's
// Close method, to io.Closer.
func Silent(fn func()) io.Closer {
	return funcCloser(func() error {
		fn()

		return nil
	})
}

type readCloser struct {
	io.Reader
	io.Closer
}

// ReadCloser pairs a reader with the closer that releases it and everything
// under it.
func ReadCloser(r io.Reader, c io.Closer) io.ReadCloser {
	return readCloser{Reader: r, Closer: c}
}
