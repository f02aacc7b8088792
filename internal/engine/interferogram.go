package engine

import (
	"fmt"

	"github.com/tphakala/go-sar-rangefilter/internal/mathutil"
	"github.com/tphakala/go-sar-rangefilter/internal/simdops"
	"github.com/tphakala/go-sar-rangefilter/internal/spectral"
	"gonum.org/v1/gonum/mat"
)

// Oversampler interpolates complex lines by an integer power-of-two factor
// through zero padding in the middle of their spectrum.
//
// Output sample k*factor equals input sample k, so the oversampled line
// passes through the original samples.
type Oversampler struct {
	in     *spectral.RowTransformer
	out    *spectral.RowTransformer
	n      int
	factor int
	ops    *simdops.Ops

	spectrum []complex128
}

// NewOversampler creates an oversampler for lines of n samples.
func NewOversampler(n, factor int) (*Oversampler, error) {
	if !mathutil.IsPowerOfTwo(factor) {
		return nil, fmt.Errorf("oversampling factor must be a power of 2: %d", factor)
	}
	in, err := spectral.NewRowTransformer(n)
	if err != nil {
		return nil, err
	}
	out, err := spectral.NewRowTransformer(n * factor)
	if err != nil {
		return nil, err
	}

	return &Oversampler{
		in:       in,
		out:      out,
		n:        n,
		factor:   factor,
		ops:      simdops.Default(),
		spectrum: make([]complex128, n),
	}, nil
}

// Row writes the oversampled version of src (length n) into dst (length
// n*factor).
func (o *Oversampler) Row(dst, src []complex128) {
	copy(o.spectrum, src)
	o.in.ForwardRow(o.spectrum)

	clear(dst)
	m := len(dst)
	half := mathutil.HalfIndex(o.n)
	if half == 0 {
		dst[0] = o.spectrum[0]
	} else {
		copy(dst[:half], o.spectrum[:half])
		copy(dst[m-half+1:], o.spectrum[half+1:])
		nyquist := o.spectrum[half] * nyquistSplit
		dst[half] = nyquist
		dst[m-half] = nyquist
	}

	// InverseRow scales by 1/m; the interpolation needs 1/n.
	o.out.InverseRow(dst)
	o.ops.Scale(dst, dst, complex(float64(o.factor), 0))
}

// Interferogram returns master .* conj(slave), computed line by line after
// optionally oversampling both images in range by factor.
//
// The result has numPixels*factor columns; factor 1 disables oversampling.
func Interferogram(master, slave *mat.CDense, factor int) (*mat.CDense, error) {
	rows, cols := master.Dims()
	if sr, sc := slave.Dims(); sr != rows || sc != cols {
		return nil, fmt.Errorf("slave %dx%d not same size as master %dx%d", sr, sc, rows, cols)
	}
	if !mathutil.IsPowerOfTwo(factor) {
		return nil, fmt.Errorf("oversampling factor must be a power of 2: %d", factor)
	}

	fftLength := cols * factor
	ifg := mat.NewCDense(rows, fftLength, nil)
	ops := simdops.Default()

	if factor == 1 {
		for i := range rows {
			ops.MulConj(spectral.Row(ifg, i), spectral.Row(master, i), spectral.Row(slave, i))
		}
		return ifg, nil
	}

	ovs, err := NewOversampler(cols, factor)
	if err != nil {
		return nil, err
	}
	masterLine := make([]complex128, fftLength)
	slaveLine := make([]complex128, fftLength)
	for i := range rows {
		ovs.Row(masterLine, spectral.Row(master, i))
		ovs.Row(slaveLine, spectral.Row(slave, i))
		ops.MulConj(spectral.Row(ifg, i), masterLine, slaveLine)
	}
	return ifg, nil
}

// PowerSpectrum transforms every line of ifg to the frequency domain (in
// place) and returns the squared magnitude of the result.
func PowerSpectrum(ifg *mat.CDense) (*mat.Dense, error) {
	rows, cols := ifg.Dims()
	fft, err := spectral.NewRowTransformer(cols)
	if err != nil {
		return nil, err
	}
	if err := fft.Forward(ifg); err != nil {
		return nil, err
	}

	power := mat.NewDense(rows, cols, nil)
	ops := simdops.Default()
	for i := range rows {
		ops.Intensity(power.RawRowView(i), spectral.Row(ifg, i))
	}
	return power, nil
}

// CorrelationWeights returns the triangular bias-correction weights of a
// power spectrum with fftLength bins estimated from numPixels samples.
//
// With nPoints = |numPixels - j| and indexNoPeak = floor((1 - rbw/rsr) *
// numPixels), bin j is weighted by numPixels^2 when nPoints < indexNoPeak
// and by nPoints^2 otherwise. Zero weights are raised to one.
func CorrelationWeights(fftLength, numPixels int, rsr, rbw float64) []float64 {
	indexNoPeak := int((1 - rbw/rsr) * float64(numPixels))
	full := float64(numPixels) * float64(numPixels)

	weights := make([]float64, fftLength)
	for j := range weights {
		nPoints := numPixels - j
		if nPoints < 0 {
			nPoints = -nPoints
		}
		w := full
		if nPoints >= indexNoPeak {
			w = float64(nPoints) * float64(nPoints)
		}
		weights[j] = max(w, minCorrelationWeight)
	}
	return weights
}

// WeightCorrelation divides every line of power by the bias-correction
// weights of CorrelationWeights.
func WeightCorrelation(power *mat.Dense, numPixels int, rsr, rbw float64) {
	rows, cols := power.Dims()
	weights := CorrelationWeights(cols, numPixels, rsr, rbw)
	for i := range rows {
		row := power.RawRowView(i)
		for j, w := range weights {
			row[j] /= w
		}
	}
}
