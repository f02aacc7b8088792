// Package spectral transforms the rows of complex matrices between the
// spatial and frequency domains and reorders spectra between natural
// (zero-centred) and FFT-native (zero-first) layouts.
package spectral

import (
	"fmt"

	"github.com/tphakala/go-sar-rangefilter/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// RowTransformer applies an n-point complex FFT to every row of a matrix.
//
// Transforms are in place. The forward transform is unnormalized and the
// inverse is scaled by 1/n, so Forward followed by Inverse is the identity.
// A RowTransformer holds work buffers and is not safe for concurrent use.
type RowTransformer struct {
	fft   *fourier.CmplxFFT
	n     int
	scale complex128 // 1/n for IFFT normalization (gonum doesn't normalize)
	ops   *simdops.Ops

	work []complex128
}

// NewRowTransformer creates a transformer for rows of length n.
func NewRowTransformer(n int) (*RowTransformer, error) {
	if n < 1 {
		return nil, fmt.Errorf("fft length must be positive: %d", n)
	}

	return &RowTransformer{
		fft:   fourier.NewCmplxFFT(n),
		n:     n,
		scale: complex(1.0/float64(n), 0),
		ops:   simdops.Default(),
		work:  make([]complex128, n),
	}, nil
}

// ForwardRow replaces row with its unnormalized spectrum.
func (t *RowTransformer) ForwardRow(row []complex128) {
	t.work = t.fft.Coefficients(t.work, row)
	copy(row, t.work)
}

// InverseRow replaces the spectrum in row with its normalized sequence.
func (t *RowTransformer) InverseRow(row []complex128) {
	t.work = t.fft.Sequence(t.work, row)
	t.ops.Scale(row, t.work, t.scale)
}

// Forward transforms every row of m to the frequency domain.
func (t *RowTransformer) Forward(m *mat.CDense) error {
	return t.eachRow(m, t.ForwardRow)
}

// Inverse transforms every row of m back to the spatial domain.
func (t *RowTransformer) Inverse(m *mat.CDense) error {
	return t.eachRow(m, t.InverseRow)
}

func (t *RowTransformer) eachRow(m *mat.CDense, fn func([]complex128)) error {
	rows, cols := m.Dims()
	if cols != t.n {
		return fmt.Errorf("row length %d does not match fft length %d", cols, t.n)
	}
	for i := range rows {
		fn(Row(m, i))
	}
	return nil
}

// Row returns row i of m as a slice sharing m's storage.
func Row(m *mat.CDense, i int) []complex128 {
	raw := m.RawCMatrix()
	start := i * raw.Stride
	return raw.Data[start : start+raw.Cols]
}

// FFTShift rotates s in place so the zero-frequency element moves to the
// centre: index ceil(n/2) becomes index 0.
func FFTShift[T any](s []T) {
	n := len(s)
	rotateLeft(s, n-n/2)
}

// IFFTShift undoes FFTShift for any length: index n/2 (rounded down)
// becomes index 0.
func IFFTShift[T any](s []T) {
	rotateLeft(s, len(s)/2)
}

// FlipLR reverses s in place.
func FlipLR[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// rotateLeft rotates s left by k positions using three reversals.
func rotateLeft[T any](s []T, k int) {
	n := len(s)
	if n == 0 {
		return
	}
	k %= n
	if k == 0 {
		return
	}
	FlipLR(s[:k])
	FlipLR(s[k:])
	FlipLR(s)
}
