package engine

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tphakala/go-sar-rangefilter/internal/spectral"
	"github.com/tphakala/go-sar-rangefilter/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

const (
	testLines  = 16
	testPixels = 64
	ovsFactor2 = 2
	ovsFactor4 = 4

	spectralTolerance = 1e-9
)

func TestInterferogram_NoOversampling(t *testing.T) {
	master := testutil.RandomBlock(testLines, testPixels, 11)
	slave := testutil.RandomBlock(testLines, testPixels, 12)

	ifg, err := Interferogram(master, slave, 1)
	require.NoError(t, err)

	rows, cols := ifg.Dims()
	require.Equal(t, testLines, rows)
	require.Equal(t, testPixels, cols)
	for i := range rows {
		for j := range cols {
			want := master.At(i, j) * cmplx.Conj(slave.At(i, j))
			assert.InDelta(t, 0, cmplx.Abs(ifg.At(i, j)-want), spectralTolerance, "(%d,%d)", i, j)
		}
	}
}

func TestInterferogram_InvalidInput(t *testing.T) {
	master := testutil.RandomBlock(testLines, testPixels, 1)

	_, err := Interferogram(master, testutil.RandomBlock(testLines, testPixels/2, 2), 1)
	assert.Error(t, err, "column mismatch")

	_, err = Interferogram(master, testutil.RandomBlock(testLines+1, testPixels, 2), 1)
	assert.Error(t, err, "row mismatch")

	_, err = Interferogram(master, master, 3)
	assert.Error(t, err, "factor must be a power of two")
}

func TestOversampler_PassesThroughSamples(t *testing.T) {
	for _, factor := range []int{ovsFactor2, ovsFactor4} {
		ovs, err := NewOversampler(testPixels, factor)
		require.NoError(t, err)

		src := spectral.Row(testutil.RandomBlock(1, testPixels, uint64(factor)), 0)
		dst := make([]complex128, testPixels*factor)
		ovs.Row(dst, src)

		for k, want := range src {
			assert.InDelta(t, 0, cmplx.Abs(dst[k*factor]-want), spectralTolerance,
				"factor %d sample %d", factor, k)
		}
	}
}

func TestOversampler_TonesStayTones(t *testing.T) {
	const bin = 5
	src := spectral.Row(testutil.ToneBlock(1, testPixels, bin), 0)

	ovs, err := NewOversampler(testPixels, ovsFactor2)
	require.NoError(t, err)
	dst := make([]complex128, testPixels*ovsFactor2)
	ovs.Row(dst, src)

	m := float64(len(dst))
	for n, v := range dst {
		want := cmplx.Exp(complex(0, 2*math.Pi*bin*float64(n)/m))
		assert.InDelta(t, 0, cmplx.Abs(v-want), spectralTolerance, "sample %d", n)
	}
}

func TestOversampler_SinglePixel(t *testing.T) {
	ovs, err := NewOversampler(1, ovsFactor4)
	require.NoError(t, err)

	dst := make([]complex128, ovsFactor4)
	ovs.Row(dst, []complex128{2 - 1i})
	for i, v := range dst {
		assert.InDelta(t, 0, cmplx.Abs(v-(2-1i)), spectralTolerance, "sample %d", i)
	}
}

func TestNewOversampler_InvalidFactor(t *testing.T) {
	_, err := NewOversampler(testPixels, 6)
	assert.Error(t, err)
}

func TestPowerSpectrum_TonePeak(t *testing.T) {
	const bin = 7
	ifg := testutil.ToneBlock(2, testPixels, bin)

	power, err := PowerSpectrum(ifg)
	require.NoError(t, err)

	for i := range 2 {
		row := power.RawRowView(i)
		for j, v := range row {
			want := 0.0
			if j == bin {
				want = testPixels * testPixels
			}
			assert.InDelta(t, want, v, 1e-6, "row %d bin %d", i, j)
		}
	}
}

func TestCorrelationWeights(t *testing.T) {
	// indexNoPeak = floor((1 - 4/8) * 8) = 4
	got := CorrelationWeights(8, 8, 8, 4)
	assert.Equal(t, []float64{64, 49, 36, 25, 16, 64, 64, 64}, got)
}

func TestCorrelationWeights_ZeroWeightClamped(t *testing.T) {
	// rbw == rsr gives indexNoPeak = 0, so bin j = numPixels would weigh 0.
	got := CorrelationWeights(16, 8, 10, 10)
	require.Len(t, got, 16)
	assert.Equal(t, 1.0, got[8])
	testutil.AssertNoNaNOrInf(t, got)
	testutil.AssertAllInRange(t, got, 1, 64)
}

func TestWeightCorrelation(t *testing.T) {
	power := mat.NewDense(2, 8, []float64{
		64, 49, 36, 25, 16, 64, 64, 64,
		128, 98, 72, 50, 32, 128, 128, 128,
	})

	WeightCorrelation(power, 8, 8, 4)

	assert.Equal(t, []float64{1, 1, 1, 1, 1, 1, 1, 1}, power.RawRowView(0))
	assert.Equal(t, []float64{2, 2, 2, 2, 2, 2, 2, 2}, power.RawRowView(1))
}
