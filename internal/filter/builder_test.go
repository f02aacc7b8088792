package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-sar-rangefilter/internal/spectral"
	"github.com/tphakala/go-sar-rangefilter/internal/testutil"
)

func TestNewBuilder_Modes(t *testing.T) {
	weighted, err := NewBuilder(testPixels64, testRSR, testRBW, testAlpha)
	require.NoError(t, err)
	assert.True(t, weighted.Weighted())
	assert.InDelta(t, testRSR/testPixels64, weighted.DeltaF(), windowTolerance)
	assert.Len(t, weighted.Axis(), testPixels64)

	for _, alpha := range []float64{RectangularAlpha, 1} {
		rect, err := NewBuilder(testPixels64, testRSR, testRBW, alpha)
		require.NoError(t, err)
		assert.False(t, rect.Weighted(), "alpha %v must select rectangular mode", alpha)
	}
}

func TestNewBuilder_Invalid(t *testing.T) {
	_, err := NewBuilder(0, testRSR, testRBW, testAlpha)
	assert.Error(t, err)

	_, err = NewBuilder(testPixels64, 0, testRBW, testAlpha)
	assert.Error(t, err)

	_, err = NewBuilder(testPixels64, testRSR, 2*testRSR, testAlpha)
	assert.Error(t, err, "bandwidth above sampling rate is rejected by the weighting window")
}

func TestBuilder_FullBandRectIsUnity(t *testing.T) {
	b, err := NewBuilder(testPixels64, testRSR, testRSR, 1)
	require.NoError(t, err)

	filter, err := b.Build(0)
	require.NoError(t, err)
	testutil.AssertAllInRange(t, filter, 1, 1)
}

func TestBuilder_WeightedZeroShiftIsFlatInBand(t *testing.T) {
	b, err := NewBuilder(testPixels64, testRSR, testRBW, testAlpha)
	require.NoError(t, err)

	centered, err := b.BuildCentered(0)
	require.NoError(t, err)

	for i, f := range b.Axis() {
		want := 0.0
		if math.Abs(f) < testRBW/2 {
			want = 1
		}
		assert.InDelta(t, want, centered[i], windowTolerance, "bin %d (f=%g)", i, f)
	}
}

func TestBuilder_RectPassbandFollowsShift(t *testing.T) {
	const (
		rsr   = 64.0
		rbw   = 48.0
		shift = 8
	)
	b, err := NewBuilder(testPixels64, rsr, rbw, 1)
	require.NoError(t, err)

	centered, err := b.BuildCentered(shift)
	require.NoError(t, err)

	// deltaF = 1, passband centred at +4 with width 40: f in [-16, 24]
	for i, f := range b.Axis() {
		want := 0.0
		if f >= -16 && f <= 24 {
			want = 1
		}
		assert.Equal(t, want, centered[i], "bin %d (f=%g)", i, f)
	}
}

func TestBuilder_BuildIsIFFTShiftedCentered(t *testing.T) {
	b, err := NewBuilder(testPixels64, testRSR, testRBW, testAlpha)
	require.NoError(t, err)

	const shift = 5
	centered, err := b.BuildCentered(shift)
	require.NoError(t, err)
	native, err := b.Build(shift)
	require.NoError(t, err)

	spectral.IFFTShift(centered)
	assert.InDeltaSlice(t, centered, native, windowTolerance)
}

func TestBuilder_ExhaustedBandwidthIsZero(t *testing.T) {
	for _, alpha := range []float64{testAlpha, 1} {
		b, err := NewBuilder(testPixels16, 16, 8, alpha)
		require.NoError(t, err)

		filter, err := b.Build(8)
		require.NoError(t, err)
		testutil.AssertAllInRange(t, filter, 0, 0)
	}
}
