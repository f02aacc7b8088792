// Package simdops collects the vector kernels used by the range filter hot
// loop behind one table of function pointers, so the engine never needs to
// know which implementation (SIMD or gonum) serves a given operation.
//
// With Profile-Guided Optimization (Go 1.22+), function pointer calls in hot paths
// can be devirtualized and inlined, achieving near-zero overhead.
package simdops

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/floats"
)

// Ops provides the real and complex vector operations of the filter.
type Ops struct {
	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// Add accumulates s into dst: dst[i] += s[i]
	Add func(dst, s []float64)

	// Sub removes s from dst: dst[i] -= s[i]
	Sub func(dst, s []float64)

	// MaxIdx returns the index of the first maximum element.
	MaxIdx func(a []float64) int

	// Mul is the element-wise complex product: dst[i] = a[i] * b[i]
	Mul func(dst, a, b []complex128)

	// MulConj is the interferometric product: dst[i] = a[i] * conj(b[i])
	MulConj func(dst, a, b []complex128)

	// Scale multiplies by a complex scalar: dst[i] = a[i] * s
	Scale func(dst, a []complex128, s complex128)

	// Intensity writes the squared magnitude: dst[i] = |a[i]|^2
	Intensity func(dst []float64, a []complex128)
}

var ops64 = Ops{
	Sum:       f64.Sum,
	Add:       floats.Add,
	Sub:       floats.Sub,
	MaxIdx:    floats.MaxIdx,
	Mul:       c128.Mul,
	MulConj:   c128.MulConj,
	Scale:     c128.Scale,
	Intensity: c128.AbsSq,
}

// Default returns the operation table used by the engine.
func Default() *Ops {
	return &ops64
}

// ToComplex widens a real vector into dst with zero imaginary parts.
func ToComplex(dst []complex128, a []float64) {
	for i, v := range a {
		dst[i] = complex(v, 0)
	}
}
