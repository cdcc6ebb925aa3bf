// Package mathkernel provides the vector, quaternion, matrix, and half-float
// primitives shared by every job in the animation runtime, as named value
// types so that TRS transforms and joint hierarchies read naturally
// everywhere else in the module. Matrices use the row-vector convention
// described on Mat4.
package mathkernel

// Clamp restricts v to the closed interval [lo, hi]. If lo > hi, values
// below lo return lo and every other value returns hi.
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - T: v restricted to [lo, hi]
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b.
func Min[T ~float32 | ~float64 | ~int](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T ~float32 | ~float64 | ~int](a, b T) T {
	if a > b {
		return a
	}
	return b
}
