// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

/*
Package pointer provides utilities for working with pointers in Go.

Listing fields such as bedrooms, area or property type are optional, so the
domain carries them as pointers; these helpers keep call sites short.

Key Functions:
  - To: Creates a pointer from a value literal.
  - Val: Safely dereferences a pointer, returning the zero value if nil.
  - NilIfZero: Turns a zero value (e.g. an empty string from a form) into nil.
*/
package pointer

// To returns a pointer to the provided value.
func To[T any](v T) *T {
	return &v
}

// Val safely dereferences a pointer.
// If the pointer is nil, it returns the zero value of the underlying type.
func Val[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// NilIfZero returns nil for a nil pointer or a pointer to the zero value.
func NilIfZero[T comparable](p *T) *T {
	var zero T
	if p == nil || *p == zero {
		return nil
	}
	return p
}
