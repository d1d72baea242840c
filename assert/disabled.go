//go:build assertions_disabled

package assert

// True is compiled out under the assertions_disabled tag.
func True(value bool, args ...any) {}

// False is compiled out under the assertions_disabled tag.
func False(value bool, args ...any) {}

// Equal is compiled out under the assertions_disabled tag.
func Equal[T comparable](got, want T, args ...any) {}
