package rangefilter

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tphakala/go-sar-rangefilter/internal/engine"
	"github.com/tphakala/go-sar-rangefilter/internal/mathutil"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Config holds range filter parameters for one block.
type Config struct {
	// NLMean is the number of lines in the walking mean of the power
	// spectrum. Must be odd; 15 is typical.
	NLMean int

	// SNRThreshold gates the shift estimate. Lines whose spectral peak SNR
	// is below it are filtered with the last accepted shift.
	SNRThreshold float64

	// RSR is the range sampling rate in Hz.
	RSR float64

	// RBW is the range bandwidth in Hz. Must not exceed RSR.
	RBW float64

	// AlphaHamming is the Hamming taper coefficient used by the sensor.
	// Values at or above 0.9999 select rectangular filtering.
	AlphaHamming float64

	// OversampleFactor oversamples master and slave in range before the
	// interferogram is formed, sharpening small shift estimates.
	// Must be a power of two; 1 disables oversampling.
	OversampleFactor int

	// WeightCorrelation divides the power spectrum by the triangular bias
	// of the unweighted correlation estimate before peak detection.
	WeightCorrelation bool

	// Logger receives block statistics and quality warnings.
	// Nil disables logging.
	Logger *zap.Logger
}

// SensorPreset enumerates sensors with known range sampling parameters.
type SensorPreset int

const (
	// SensorERS is ERS-1/2 AMI, C-band.
	SensorERS SensorPreset = iota

	// SensorEnvisat is Envisat ASAR image mode.
	SensorEnvisat

	// SensorCustom leaves RSR and RBW for the caller to set.
	SensorCustom
)

var sensorNames = map[SensorPreset]string{
	SensorERS:     "ers",
	SensorEnvisat: "envisat",
	SensorCustom:  "custom",
}

// String returns the lower-case sensor name.
func (s SensorPreset) String() string {
	if name, ok := sensorNames[s]; ok {
		return name
	}
	return fmt.Sprintf("sensor(%d)", int(s))
}

// ParseSensor returns the preset with the given name, case-insensitively.
func ParseSensor(name string) (SensorPreset, error) {
	for preset, n := range sensorNames {
		if strings.EqualFold(name, n) {
			return preset, nil
		}
	}
	return SensorCustom, fmt.Errorf("%w: unknown sensor %q", ErrInvalidParameter, name)
}

// Common errors returned by the range filter.
var (
	// ErrInvalidParameter indicates a precondition violation: an invalid
	// parameter value or an unusable block.
	ErrInvalidParameter = errors.New("invalid range filter parameter")

	// ErrShapeMismatch indicates master and slave blocks of different
	// shape. It wraps ErrInvalidParameter.
	ErrShapeMismatch = fmt.Errorf("%w: master and slave shapes differ", ErrInvalidParameter)
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.NLMean < minNLMean || !mathutil.IsOdd(c.NLMean) {
		return fmt.Errorf("%w: nlMean must be a positive odd number, got %d", ErrInvalidParameter, c.NLMean)
	}

	if c.OversampleFactor < minOversampleFactor || !mathutil.IsPowerOfTwo(c.OversampleFactor) {
		return fmt.Errorf("%w: oversampling factor must be a power of 2, got %d", ErrInvalidParameter, c.OversampleFactor)
	}

	if !(c.RSR > 0) || math.IsInf(c.RSR, 0) {
		return fmt.Errorf("%w: range sampling rate must be positive and finite", ErrInvalidParameter)
	}

	if !(c.RBW > 0) || c.RBW > c.RSR {
		return fmt.Errorf("%w: range bandwidth must be in (0, RSR]", ErrInvalidParameter)
	}

	if c.AlphaHamming < minAlphaHamming || c.AlphaHamming > maxAlphaHamming || math.IsNaN(c.AlphaHamming) {
		return fmt.Errorf("%w: alpha hamming must be in [0, 1]", ErrInvalidParameter)
	}

	if math.IsNaN(c.SNRThreshold) {
		return fmt.Errorf("%w: SNR threshold is NaN", ErrInvalidParameter)
	}

	return nil
}

func (c *Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger.With(zap.String("component", "rangefilter"))
}

func (c *Config) params() engine.Params {
	return engine.Params{
		NLMean:            c.NLMean,
		SNRThreshold:      c.SNRThreshold,
		RSR:               c.RSR,
		RBW:               c.RBW,
		AlphaHamming:      c.AlphaHamming,
		OversampleFactor:  c.OversampleFactor,
		WeightCorrelation: c.WeightCorrelation,
	}
}

// GetPresetConfig returns the configuration for a sensor preset with the
// default filter parameters.
func GetPresetConfig(preset SensorPreset) Config {
	cfg := Config{
		NLMean:           defaultNLMean,
		SNRThreshold:     defaultSNRThreshold,
		AlphaHamming:     defaultAlphaHamming,
		OversampleFactor: defaultOversampleFactor,
	}

	switch preset {
	case SensorERS:
		cfg.RSR, cfg.RBW = ersRSR, ersRBW
	case SensorEnvisat:
		cfg.RSR, cfg.RBW = envisatRSR, envisatRBW
	}
	return cfg
}

// LineStats records the shift decision for one output line.
type LineStats struct {
	// Line is the row index within the block.
	Line int

	// RawPeak is the argmax of the walking mean power spectrum.
	RawPeak int

	// Shift is the folded spectral shift in bins the line was filtered with.
	Shift int

	// NegShift marks a negative shift: the slave takes the filter and the
	// master its mirror.
	NegShift bool

	// SNR is the peak to rest ratio of the walking mean spectrum.
	SNR float64

	// Fallback reports that SNR was below threshold and the last accepted
	// shift was used.
	Fallback bool
}

// Result holds block-level statistics of a FilterBlock call.
type Result struct {
	// OutputLines is the number of filtered lines, numLines - NLMean + 1.
	OutputLines int

	// FirstLine and LastLine bound the filtered rows, inclusive.
	FirstLine int
	LastLine  int

	// FFTLength is the spectral width of the shift estimate, numPixels
	// times the oversampling factor.
	FFTLength int

	// DeltaF is the frequency bin width RSR/numPixels in Hz.
	DeltaF float64

	// MeanShift is the mean shift in bins over lines with an accepted
	// estimate; MeanShiftHz is the same in Hz.
	MeanShift   float64
	MeanShiftHz float64

	// MeanSNR is averaged over all output lines and may be +Inf.
	MeanSNR float64

	// NotFiltered counts lines filtered with a fallback shift.
	NotFiltered        int
	PercentNotFiltered float64

	// QualityWarning is set when more than QualityWarningPercent of the
	// lines fell back. The blocks are filtered regardless.
	QualityWarning bool

	// NoOutput is set when the block had fewer lines than NLMean and
	// nothing was filtered.
	NoOutput bool

	Lines []LineStats
}

// FilterBlock filters master and slave in place and returns the block
// statistics.
//
// Both blocks hold range lines as rows and must have the same shape with a
// power-of-two number of columns. All parameters are validated before
// either block is touched.
func FilterBlock(master, slave *mat.CDense, cfg *Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidParameter)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := validateBlocks(master, slave); err != nil {
		return nil, err
	}

	logger := cfg.logger()
	summary, err := engine.Filter(master, slave, cfg.params())
	if err != nil {
		return nil, fmt.Errorf("range filter: %w", err)
	}

	result := newResult(&summary)
	logResult(logger, cfg, &summary, result)
	return result, nil
}

func validateBlocks(master, slave *mat.CDense) error {
	if master == nil || slave == nil {
		return fmt.Errorf("%w: master and slave blocks are required", ErrInvalidParameter)
	}

	if master.IsEmpty() || slave.IsEmpty() {
		return fmt.Errorf("%w: empty block", ErrInvalidParameter)
	}

	mr, mc := master.Dims()
	sr, sc := slave.Dims()
	if mr != sr || mc != sc {
		return fmt.Errorf("%w: master %dx%d, slave %dx%d", ErrShapeMismatch, mr, mc, sr, sc)
	}

	if !mathutil.IsPowerOfTwo(mc) {
		return fmt.Errorf("%w: number of pixels must be a power of 2, got %d", ErrInvalidParameter, mc)
	}

	return nil
}

func newResult(s *engine.Summary) *Result {
	r := &Result{
		OutputLines:        s.OutputLines,
		FirstLine:          s.FirstLine,
		LastLine:           s.LastLine,
		FFTLength:          s.FFTLength,
		DeltaF:             s.DeltaF,
		MeanShift:          s.MeanShift,
		MeanShiftHz:        s.MeanShiftHz,
		MeanSNR:            s.MeanSNR,
		NotFiltered:        s.NotFiltered,
		PercentNotFiltered: s.PercentNotFiltered,
		QualityWarning:     s.QualityWarning(),
		NoOutput:           s.NoOutput(),
		Lines:              make([]LineStats, len(s.Lines)),
	}
	for i, l := range s.Lines {
		r.Lines[i] = LineStats(l)
	}
	return r
}

func logResult(logger *zap.Logger, cfg *Config, s *engine.Summary, r *Result) {
	if r.NoOutput {
		logger.Warn("block has fewer lines than nlMean, no output lines",
			zap.Int("lines", s.NumLines),
			zap.Int("nl_mean", cfg.NLMean))
		return
	}

	if logger.Core().Enabled(zap.DebugLevel) {
		for _, l := range r.Lines {
			if l.Fallback {
				logger.Debug("SNR below threshold, using last accepted shift",
					zap.Int("line", l.Line),
					zap.Float64("snr", l.SNR),
					zap.Int("shift", l.Shift),
					zap.Bool("neg_shift", l.NegShift))
			}
		}
	}

	logger.Debug("block filtered",
		zap.Int("output_lines", r.OutputLines),
		zap.Int("fft_length", r.FFTLength),
		zap.Bool("hamming", s.Weighted),
		zap.Float64("mean_shift_bins", r.MeanShift),
		zap.Float64("mean_shift_mhz", r.MeanShiftHz/hzPerMHz),
		zap.Float64("mean_snr", r.MeanSNR),
		zap.Float64("filtered_percent", percentScale-r.PercentNotFiltered))

	if r.QualityWarning {
		logger.Warn("shift estimate unreliable for most lines",
			zap.Float64("not_filtered_percent", r.PercentNotFiltered),
			zap.Float64("threshold_percent", QualityWarningPercent),
			zap.Float64("snr_threshold", cfg.SNRThreshold))
	}
}
