package spectral

import (
	"math"
	"math/cmplx"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const (
	roundTripTolerance = 1e-12
	testRows           = 4
	testCols           = 16
)

func randomMatrix(rows, cols int, seed uint64) *mat.CDense {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	data := make([]complex128, rows*cols)
	for i := range data {
		data[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return mat.NewCDense(rows, cols, data)
}

func TestNewRowTransformer_InvalidLength(t *testing.T) {
	_, err := NewRowTransformer(0)
	assert.Error(t, err)
}

func TestRowTransformer_RoundTrip(t *testing.T) {
	m := randomMatrix(testRows, testCols, 1)
	orig := mat.NewCDense(testRows, testCols, nil)
	orig.Copy(m)

	tr, err := NewRowTransformer(testCols)
	require.NoError(t, err)

	require.NoError(t, tr.Forward(m))
	require.NoError(t, tr.Inverse(m))

	for i := range testRows {
		for j := range testCols {
			assert.InDelta(t, 0, cmplx.Abs(m.At(i, j)-orig.At(i, j)), roundTripTolerance,
				"round trip mismatch at (%d,%d)", i, j)
		}
	}
}

func TestRowTransformer_ToneLandsInBin(t *testing.T) {
	const bin = 3
	row := make([]complex128, testCols)
	for n := range row {
		row[n] = cmplx.Exp(complex(0, 2*math.Pi*bin*float64(n)/testCols))
	}

	tr, err := NewRowTransformer(testCols)
	require.NoError(t, err)
	tr.ForwardRow(row)

	for k, v := range row {
		want := 0.0
		if k == bin {
			want = testCols
		}
		assert.InDelta(t, want, cmplx.Abs(v), 1e-9, "bin %d", k)
	}
}

func TestRowTransformer_LengthMismatch(t *testing.T) {
	tr, err := NewRowTransformer(8)
	require.NoError(t, err)
	assert.Error(t, tr.Forward(randomMatrix(2, testCols, 2)))
}

func TestRow_SharesStorage(t *testing.T) {
	m := randomMatrix(testRows, testCols, 3)
	r := Row(m, 2)
	require.Len(t, r, testCols)

	r[5] = 42
	assert.Equal(t, complex128(42), m.At(2, 5))
}

func TestShifts(t *testing.T) {
	tests := []struct {
		name    string
		in      []int
		shifted []int
	}{
		{"even", []int{0, 1, 2, 3, -4, -3, -2, -1}, []int{-4, -3, -2, -1, 0, 1, 2, 3}},
		{"odd", []int{0, 1, 2, -2, -1}, []int{-2, -1, 0, 1, 2}},
		{"single", []int{7}, []int{7}},
		{"empty", []int{}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := make([]int, len(tt.in))
			copy(s, tt.in)
			FFTShift(s)
			assert.Equal(t, tt.shifted, s)

			IFFTShift(s)
			assert.Equal(t, tt.in, s, "IFFTShift must undo FFTShift")
		})
	}
}

func TestFlipLR(t *testing.T) {
	s := []float64{1, 2, 3, 4, 5}
	FlipLR(s)
	assert.Equal(t, []float64{5, 4, 3, 2, 1}, s)

	e := []float64{1, 2}
	FlipLR(e)
	assert.Equal(t, []float64{2, 1}, e)
}
