// Package testutil provides block generators and assertions shared by the
// range filter tests.
package testutil

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance   = 1e-10
	RoundTripTolerance = 1e-9
	WindowTolerance    = 1e-12
)

// halfDivisor is used for finding center indices in symmetric arrays.
const halfDivisor = 2

// seedMix decorrelates the two PCG seed words.
const seedMix = 0x9e3779b97f4a7c15

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^seedMix))
}

// RandomBlock returns a rows x cols block of circular Gaussian samples.
func RandomBlock(rows, cols int, seed uint64) *mat.CDense {
	rng := NewRand(seed)
	data := make([]complex128, rows*cols)
	for i := range data {
		data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return mat.NewCDense(rows, cols, data)
}

// RandomPhaseBlock returns a block of unit-magnitude samples with uniformly
// random phase. Its self-interferogram is exactly one everywhere.
func RandomPhaseBlock(rows, cols int, seed uint64) *mat.CDense {
	rng := NewRand(seed)
	data := make([]complex128, rows*cols)
	for i := range data {
		data[i] = cmplx.Rect(1, 2*math.Pi*rng.Float64())
	}
	return mat.NewCDense(rows, cols, data)
}

// ToneBlock returns a block whose every line is the complex exponential
// exp(i*2*pi*bin*n/cols).
func ToneBlock(rows, cols, bin int) *mat.CDense {
	m := mat.NewCDense(rows, cols, nil)
	for i := range rows {
		for n := range cols {
			m.Set(i, n, cmplx.Exp(complex(0, 2*math.Pi*float64(bin*n)/float64(cols))))
		}
	}
	return m
}

// ShiftedCopy returns src modulated by exp(-i*2*pi*bins[row]*n/cols), so
// that the interferogram of src with the copy peaks at bins[row] (modulo
// cols) on every line. A single-element bins applies to all lines.
func ShiftedCopy(src *mat.CDense, bins ...int) *mat.CDense {
	rows, cols := src.Dims()
	dst := mat.NewCDense(rows, cols, nil)
	for i := range rows {
		bin := bins[0]
		if len(bins) > 1 {
			bin = bins[i]
		}
		for n := range cols {
			phase := -2 * math.Pi * float64(bin*n) / float64(cols)
			dst.Set(i, n, src.At(i, n)*cmplx.Exp(complex(0, phase)))
		}
	}
	return dst
}

// Clone returns a deep copy of m.
func Clone(m *mat.CDense) *mat.CDense {
	rows, cols := m.Dims()
	c := mat.NewCDense(rows, cols, nil)
	c.Copy(m)
	return c
}

// AssertBlocksInDelta verifies that two blocks agree element-wise within
// tolerance (complex modulus of the difference).
func AssertBlocksInDelta(t *testing.T, expected, actual *mat.CDense, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	er, ec := expected.Dims()
	ar, ac := actual.Dims()
	if !assert.Equal(t, []int{er, ec}, []int{ar, ac}, "block shapes differ") {
		return false
	}
	for i := range er {
		for j := range ec {
			diff := cmplx.Abs(expected.At(i, j) - actual.At(i, j))
			if diff > tolerance {
				return assert.Fail(t, "blocks differ",
					"element (%d,%d): expected %v, got %v (|diff|=%e > %e)",
					i, j, expected.At(i, j), actual.At(i, j), diff, tolerance)
			}
		}
	}
	return true
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertAllInRange verifies that all elements are within [min, max].
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%f is outside range [%f, %f]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertMonotonic verifies that a slice is monotonically increasing.
func AssertMonotonic(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i := 1; i < len(s); i++ {
		if s[i] < s[i-1] {
			return assert.Fail(t, "not monotonic",
				"s[%d]=%f < s[%d]=%f", i, s[i], i-1, s[i-1])
		}
	}
	return true
}

// AssertCenterIsMax verifies that the center element is the maximum value.
func AssertCenterIsMax(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	centerIdx := len(s) / halfDivisor
	centerValue := s[centerIdx]
	for i, v := range s {
		if v > centerValue {
			return assert.Fail(t, "center is not max",
				"s[%d]=%f > center s[%d]=%f", i, v, centerIdx, centerValue)
		}
	}
	return true
}
