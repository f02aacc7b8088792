// Package filter builds the range-frequency axis and the spectral windows
// used to band-pass master and slave spectra around their common band.
package filter

import (
	"fmt"
	"math"
)

const (
	// Hamming taper limits
	minAlpha = 0.0
	maxAlpha = 1.0

	// RectangularAlpha is the taper coefficient at and above which no
	// Hamming weighting is applied and filters are rectangular.
	RectangularAlpha = 0.9999

	// Window geometry
	halfWidth      = 0.5
	halfDivisor    = 2.0
	fullCycleAngle = 2 * math.Pi
)

// FrequencyAxis returns the symmetric range-frequency axis of a block with
// numPixels samples per line at sampling rate rsr:
//
//	freq[i] = -rsr/2 + i*(rsr/numPixels),  i = 0..numPixels-1
//
// The axis is in natural (zero-centred) order.
func FrequencyAxis(numPixels int, rsr float64) []float64 {
	if numPixels < 1 {
		return []float64{}
	}

	deltaF := rsr / float64(numPixels)
	start := -rsr / halfDivisor

	axis := make([]float64, numPixels)
	for i := range axis {
		axis[i] = start + float64(i)*deltaF
	}
	return axis
}

// Hamming evaluates a generalized Hamming window over a frequency axis.
//
// Inside the band (|f| < bandwidth/2) the window is
//
//	w(f) = alpha + (1-alpha)*cos(2*pi*f/bandwidth)
//
// and outside it is zero. A non-positive bandwidth yields an all-zero window.
// alpha must lie in [0, 1] and bandwidth may not exceed the sampling rate.
func Hamming(axis []float64, bandwidth, rsr, alpha float64) ([]float64, error) {
	if alpha < minAlpha || alpha > maxAlpha || math.IsNaN(alpha) {
		return nil, fmt.Errorf("hamming alpha must be in [0,1]: %f", alpha)
	}
	if bandwidth > rsr {
		return nil, fmt.Errorf("hamming bandwidth %g exceeds sampling rate %g", bandwidth, rsr)
	}

	window := make([]float64, len(axis))
	if bandwidth <= 0 {
		return window, nil
	}

	half := bandwidth / halfDivisor
	for i, f := range axis {
		if math.Abs(f) < half {
			window[i] = alpha + (maxAlpha-alpha)*math.Cos(fullCycleAngle*f/bandwidth)
		}
	}
	return window, nil
}

// InverseHamming returns the element-wise reciprocal of the Hamming window
// over the full receiver bandwidth rbw. Bins where the window is zero stay
// zero, so out-of-band frequencies are never amplified.
func InverseHamming(axis []float64, rbw, rsr, alpha float64) ([]float64, error) {
	window, err := Hamming(axis, rbw, rsr, alpha)
	if err != nil {
		return nil, err
	}

	for i, w := range window {
		if w != 0 {
			window[i] = 1 / w
		}
	}
	return window, nil
}

// Rect evaluates the rectangle function over a normalized axis: 1 where
// |x| <= 0.5 and 0 elsewhere.
func Rect(normalized []float64) []float64 {
	window := make([]float64, len(normalized))
	for i, x := range normalized {
		if math.Abs(x) <= halfWidth {
			window[i] = 1
		}
	}
	return window
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10 // Avoid log(0)
		dbMultiplier = 20.0  // 20*log10 for magnitude
	)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return dbMultiplier * math.Log10(magnitude)
}
