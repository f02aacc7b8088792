package filter

import (
	"fmt"

	"github.com/tphakala/go-sar-rangefilter/internal/spectral"
)

// Builder constructs the per-line band-pass filters of one block.
//
// The frequency axis and, in weighted mode, the inverse Hamming
// de-weighting window are computed once and shared read-only by every
// filter the builder produces.
type Builder struct {
	axis    []float64
	inverse []float64 // nil in rectangular mode
	deltaF  float64
	rsr     float64
	rbw     float64
	alpha   float64

	offsetAxis []float64
}

// NewBuilder prepares filters for lines of numPixels samples.
//
// alpha < RectangularAlpha selects Hamming re-weighting, anything at or
// above it selects rectangular windows.
func NewBuilder(numPixels int, rsr, rbw, alpha float64) (*Builder, error) {
	if numPixels < 1 {
		return nil, fmt.Errorf("number of pixels must be positive: %d", numPixels)
	}
	if rsr <= 0 {
		return nil, fmt.Errorf("range sampling rate must be positive: %g", rsr)
	}

	b := &Builder{
		axis:       FrequencyAxis(numPixels, rsr),
		deltaF:     rsr / float64(numPixels),
		rsr:        rsr,
		rbw:        rbw,
		alpha:      alpha,
		offsetAxis: make([]float64, numPixels),
	}

	if alpha < RectangularAlpha {
		inverse, err := InverseHamming(b.axis, rbw, rsr, alpha)
		if err != nil {
			return nil, err
		}
		b.inverse = inverse
	}
	return b, nil
}

// Weighted reports whether filters are Hamming re-weighted.
func (b *Builder) Weighted() bool {
	return b.inverse != nil
}

// DeltaF returns the frequency bin width rsr/numPixels.
func (b *Builder) DeltaF() float64 {
	return b.deltaF
}

// Axis returns a copy of the natural-order frequency axis.
func (b *Builder) Axis() []float64 {
	return append([]float64(nil), b.axis...)
}

// Build returns the filter for a folded shift of shift bins, in FFT-native
// order. The window is centred on the axis offset by shift/2 bins and spans
// the reduced bandwidth rbw - shift*deltaF; a non-positive bandwidth gives
// an all-zero filter.
func (b *Builder) Build(shift int) ([]float64, error) {
	filter, err := b.BuildCentered(shift)
	if err != nil {
		return nil, err
	}
	spectral.IFFTShift(filter)
	return filter, nil
}

// BuildCentered is Build without the final ifftshift, in natural order.
func (b *Builder) BuildCentered(shift int) ([]float64, error) {
	shiftHz := float64(shift) * b.deltaF
	bandwidth := b.rbw - shiftHz
	offset := halfWidth * shiftHz
	for i, f := range b.axis {
		b.offsetAxis[i] = f - offset
	}

	if b.Weighted() {
		filter, err := Hamming(b.offsetAxis, bandwidth, b.rsr, b.alpha)
		if err != nil {
			return nil, err
		}
		for i, w := range b.inverse {
			filter[i] *= w
		}
		return filter, nil
	}

	if bandwidth <= 0 {
		return make([]float64, len(b.axis)), nil
	}
	for i, f := range b.offsetAxis {
		b.offsetAxis[i] = f / bandwidth
	}
	return Rect(b.offsetAxis), nil
}
