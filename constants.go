package rangefilter

import "github.com/tphakala/go-sar-rangefilter/internal/engine"

// Sensor range sampling rates and bandwidths in Hz
const (
	ersRSR     = 18.962468e6
	ersRBW     = 15.55e6
	envisatRSR = 19.20768e6
	envisatRBW = 16.0e6
)

// Default filter parameters shared by all presets
const (
	defaultNLMean           = 15
	defaultSNRThreshold     = 5.0
	defaultAlphaHamming     = 0.75
	defaultOversampleFactor = 2
)

// Parameter limits
const (
	minNLMean           = 1
	minOversampleFactor = 1
	minAlphaHamming     = 0.0
	maxAlphaHamming     = 1.0
)

// QualityWarningPercent is the share of output lines using a fallback shift
// above which a block is flagged with [Result.QualityWarning].
const QualityWarningPercent = engine.QualityWarningPercent

// hzPerMHz converts Hz to MHz in log fields
const hzPerMHz = 1e6

// percentScale is 100 percent
const percentScale = 100.0
