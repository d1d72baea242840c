// Package zero provides utilities for working with zero values of generic types.
package zero

// Value returns the zero value for type T.
// This is useful when a generic function needs to return "nothing" alongside an error.
//
// Example:
//
//	var defaultInt = zero.Value[int]()        // returns 0
//	var defaultStr = zero.Value[string]()     // returns ""
func Value[T any]() T {
	var zeroVal T

	return zeroVal
}
