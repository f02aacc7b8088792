// Package mathutil provides integer checks used to validate block geometry
// and filter parameters.
package mathutil

import "math/bits"

// IsOdd reports whether n is an odd integer. Negative odd values are odd.
func IsOdd(n int) bool {
	return n%parityDivisor != 0
}

// IsPowerOfTwo reports whether n is a positive integral power of two.
//
// One (2^0) is a power of two, zero and negative values are not.
func IsPowerOfTwo(n int) bool {
	if n < smallestPowerOfTwo {
		return false
	}
	return bits.OnesCount(uint(n)) == 1
}

// HalfIndex returns n/2 rounded down, the Nyquist index of an n-point FFT.
func HalfIndex(n int) int {
	return n / binaryRadix
}
