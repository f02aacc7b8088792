package engine

import (
	"math"

	"github.com/tphakala/go-sar-rangefilter/internal/mathutil"
	"github.com/tphakala/go-sar-rangefilter/internal/simdops"
)

// spectralPeak summarizes the walking mean spectrum of one output line.
type spectralPeak struct {
	max   float64
	total float64
	index int
}

func detectPeak(spectrum []float64, ops *simdops.Ops) spectralPeak {
	idx := ops.MaxIdx(spectrum)
	return spectralPeak{
		max:   spectrum[idx],
		total: ops.Sum(spectrum),
		index: idx,
	}
}

// SNR returns fftLength * max / (total - max).
//
// A spectrum whose power sits entirely in the peak bin has infinite SNR; an
// all-zero spectrum has SNR zero.
func SNR(fftLength int, maxValue, totalPower float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	rest := totalPower - maxValue
	if rest <= 0 {
		return math.Inf(1)
	}
	return float64(fftLength) * (maxValue / rest)
}

// Shift is a folded spectral shift: Bins is its magnitude in frequency
// bins and Negative records that the raw peak lay above fftLength/2.
type Shift struct {
	Bins     int
	Negative bool
}

// FoldShift maps a raw argmax index in [0, fftLength) onto a folded shift.
// Indices above fftLength/2 become fftLength - index with Negative set.
func FoldShift(index, fftLength int) Shift {
	if index > mathutil.HalfIndex(fftLength) {
		return Shift{Bins: fftLength - index, Negative: true}
	}
	return Shift{Bins: index}
}

// shiftState carries the last accepted shift across output lines.
//
// Before any line is accepted, the first line seeds last with its own
// estimate so that a block that never clears the threshold is filtered
// consistently with one shift.
type shiftState struct {
	last   Shift
	seeded bool
}

// decide returns the shift to filter with, the next state, and whether the
// line fell back to the stored shift.
func (s shiftState) decide(estimate Shift, snr, threshold float64) (Shift, shiftState, bool) {
	if snr >= threshold {
		return estimate, shiftState{last: estimate, seeded: true}, false
	}
	if !s.seeded {
		s = shiftState{last: estimate, seeded: true}
	}
	return s.last, s, true
}
