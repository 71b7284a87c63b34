package common

import "unsafe"

// Coalesce returns the first non-zero value from the provided values, or the zero value if all are zero.
//
// Parameters:
//   - values: a variadic list of values to check for non-zero status
//
// Returns:
//   - T: the first non-zero value from the input, or the zero value if all are zero
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// StructToBytes returns a view of the struct's memory as bytes, for GPU uploads of
// structs whose layout already matches the shader's.
//
// Parameters:
//   - v: pointer to the struct
//
// Returns:
//   - []byte: a slice aliasing *v, Sizeof(*v) bytes long
func StructToBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(unsafe.Sizeof(*v)))
}
