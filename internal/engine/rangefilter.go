// Package engine implements adaptive range spectral filtering of one
// co-registered master/slave block pair.
//
// The local spectral shift between the two images is estimated from the
// power spectrum of their interferogram, averaged over nlMean lines with a
// walking mean. Each output line is then band-pass filtered around the
// common band of master and slave, in the frequency domain.
package engine

import (
	"fmt"

	"github.com/tphakala/go-sar-rangefilter/internal/filter"
	"github.com/tphakala/go-sar-rangefilter/internal/simdops"
	"github.com/tphakala/go-sar-rangefilter/internal/spectral"
	"gonum.org/v1/gonum/mat"
)

// Params are the already validated filter parameters of one block.
type Params struct {
	NLMean            int
	SNRThreshold      float64
	RSR               float64
	RBW               float64
	AlphaHamming      float64
	OversampleFactor  int
	WeightCorrelation bool
}

// LineStats records the decision taken for one output line.
type LineStats struct {
	Line     int     // row index in the block
	RawPeak  int     // argmax of the walking mean spectrum
	Shift    int     // folded shift in bins used for the filter
	NegShift bool    // slave filtered first, master with the mirror
	SNR      float64 // peak to rest ratio of the walking mean spectrum
	Fallback bool    // SNR below threshold, last accepted shift reused
}

// Summary holds block-level statistics of a Filter call.
type Summary struct {
	NumLines    int
	OutputLines int
	FirstLine   int
	LastLine    int
	FFTLength   int
	DeltaF      float64
	Weighted    bool

	MeanShift          float64 // bins, over accepted lines
	MeanShiftHz        float64
	MeanSNR            float64 // over all output lines
	NotFiltered        int
	PercentNotFiltered float64

	Lines []LineStats
}

// NoOutput reports that the block had fewer lines than nlMean.
func (s *Summary) NoOutput() bool {
	return s.OutputLines < 1
}

// QualityWarning reports that more than QualityWarningPercent of the
// output lines used a fallback shift.
func (s *Summary) QualityWarning() bool {
	return s.PercentNotFiltered > QualityWarningPercent
}

// loopState is the accumulator carried from one output line to the next.
type loopState struct {
	window *walkingMean
	shift  shiftState
}

// Filter filters master and slave in place.
//
// Lines FirstLine..LastLine are band-pass filtered; the remaining lines
// only make the round trip through the frequency domain. When the block
// has fewer lines than p.NLMean nothing is touched.
func Filter(master, slave *mat.CDense, p Params) (Summary, error) {
	numLines, numPixels := master.Dims()
	outputLines := numLines - p.NLMean + 1
	firstLine := (p.NLMean - 1) / windowHalfDivisor

	summary := Summary{
		NumLines:    numLines,
		OutputLines: max(outputLines, 0),
		FirstLine:   firstLine,
		LastLine:    firstLine + outputLines - 1,
		FFTLength:   numPixels * p.OversampleFactor,
		DeltaF:      p.RSR / float64(numPixels),
	}
	if outputLines < 1 {
		return summary, nil
	}

	builder, err := filter.NewBuilder(numPixels, p.RSR, p.RBW, p.AlphaHamming)
	if err != nil {
		return summary, fmt.Errorf("preparing filters: %w", err)
	}
	summary.Weighted = builder.Weighted()

	ifg, err := Interferogram(master, slave, p.OversampleFactor)
	if err != nil {
		return summary, err
	}
	power, err := PowerSpectrum(ifg)
	if err != nil {
		return summary, err
	}
	if p.WeightCorrelation {
		WeightCorrelation(power, numPixels, p.RSR, p.RBW)
	}

	rowFFT, err := spectral.NewRowTransformer(numPixels)
	if err != nil {
		return summary, err
	}
	if err := rowFFT.Forward(master); err != nil {
		return summary, err
	}
	if err := rowFFT.Forward(slave); err != nil {
		return summary, err
	}

	ops := simdops.Default()
	state := loopState{window: newWalkingMean(power, p.NLMean, ops)}
	applier := newPairApplier(numPixels, ops)
	summary.Lines = make([]LineStats, 0, outputLines)

	var sumShift, sumSNR float64
	for outLine := firstLine; outLine <= summary.LastLine; outLine++ {
		peak := detectPeak(state.window.sum, ops)
		snr := SNR(summary.FFTLength, peak.max, peak.total)
		estimate := FoldShift(peak.index, summary.FFTLength)

		var (
			shift    Shift
			fallback bool
		)
		shift, state.shift, fallback = state.shift.decide(estimate, snr, p.SNRThreshold)

		window, err := builder.Build(shift.Bins)
		if err != nil {
			return summary, fmt.Errorf("building filter for line %d: %w", outLine, err)
		}
		applier.apply(spectral.Row(master, outLine), spectral.Row(slave, outLine), window, shift.Negative)

		sumSNR += snr
		if fallback {
			summary.NotFiltered++
		} else {
			sumShift += float64(shift.Bins)
		}
		summary.Lines = append(summary.Lines, LineStats{
			Line:     outLine,
			RawPeak:  peak.index,
			Shift:    shift.Bins,
			NegShift: shift.Negative,
			SNR:      snr,
			Fallback: fallback,
		})

		if outLine != summary.LastLine {
			state.window.advance()
		}
	}

	if err := rowFFT.Inverse(master); err != nil {
		return summary, err
	}
	if err := rowFFT.Inverse(slave); err != nil {
		return summary, err
	}

	if accepted := outputLines - summary.NotFiltered; accepted > 0 {
		summary.MeanShift = sumShift / float64(accepted)
	}
	summary.MeanShiftHz = summary.MeanShift * summary.DeltaF
	summary.MeanSNR = sumSNR / float64(outputLines)
	summary.PercentNotFiltered = percentScale * float64(summary.NotFiltered) / float64(outputLines)

	return summary, nil
}

// applyFilter writes the spectrally filtered row into dst.
func applyFilter(dst, row, window []complex128, ops *simdops.Ops) {
	ops.Mul(dst, row, window)
}

// pairApplier filters one master line and one slave line with a filter and
// its left-right mirror.
type pairApplier struct {
	window  []complex128
	scratch []complex128
	ops     *simdops.Ops
}

func newPairApplier(numPixels int, ops *simdops.Ops) *pairApplier {
	return &pairApplier{
		window:  make([]complex128, numPixels),
		scratch: make([]complex128, numPixels),
		ops:     ops,
	}
}

// apply filters the first image with window and the second with its
// mirror. Master comes first unless negShift is set.
func (a *pairApplier) apply(masterRow, slaveRow []complex128, window []float64, negShift bool) {
	first, second := masterRow, slaveRow
	if negShift {
		first, second = slaveRow, masterRow
	}

	simdops.ToComplex(a.window, window)
	a.filterInPlace(first)
	spectral.FlipLR(a.window)
	a.filterInPlace(second)
}

func (a *pairApplier) filterInPlace(row []complex128) {
	applyFilter(a.scratch, row, a.window, a.ops)
	copy(row, a.scratch)
}
