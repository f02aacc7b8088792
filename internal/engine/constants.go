package engine

// Walking mean and peak detection constants
const (
	// Lines on either side of the output line are (nlMean-1)/2
	windowHalfDivisor = 2

	// QualityWarningPercent is the share of fallback lines above which a
	// block is reported as poorly estimated.
	QualityWarningPercent = 60.0

	// percentScale converts a fraction to a percentage
	percentScale = 100.0
)

// Bias correction constants
const (
	// minCorrelationWeight replaces a zero bias-correction weight so no
	// spectral bin is divided by zero.
	minCorrelationWeight = 1.0
)

// Oversampling constants
const (
	// The Nyquist bin is split evenly between the positive and negative
	// halves of the zero-padded spectrum.
	nyquistSplit = 0.5
)
