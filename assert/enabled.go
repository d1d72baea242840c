//go:build !assertions_disabled

package assert

// True panics when value is false.
// If the first arg is a string it is used as a format string for the remaining args.
func True(value bool, args ...any) {
	if value {
		return
	}

	panic(failure(args))
}

// False panics when value is true. Args follow the same rules as True.
func False(value bool, args ...any) {
	True(!value, args...)
}

// Equal panics when got and want differ. Args follow the same rules as True.
func Equal[T comparable](got, want T, args ...any) {
	True(got == want, args...)
}
