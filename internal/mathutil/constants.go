package mathutil

// Parity and radix constants
const (
	parityDivisor = 2 // n % 2 selects odd/even
	binaryRadix   = 2 // base of power-of-two checks
)

// Integer bounds used by the checks
const (
	smallestPowerOfTwo = 1 // 2^0 is accepted as a power of two
)
