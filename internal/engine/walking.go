package engine

import (
	"github.com/tphakala/go-sar-rangefilter/internal/simdops"
	"gonum.org/v1/gonum/mat"
)

// walkingMean keeps the sum of width consecutive power spectrum lines.
//
// After construction the window covers lines [0, width). Each advance moves
// it down by one line in O(fftLength), adding the entering line and
// removing the leaving one, so the sum is never recomputed.
type walkingMean struct {
	power *mat.Dense
	width int
	start int
	sum   []float64
	ops   *simdops.Ops
}

func newWalkingMean(power *mat.Dense, width int, ops *simdops.Ops) *walkingMean {
	_, cols := power.Dims()
	w := &walkingMean{
		power: power,
		width: width,
		sum:   make([]float64, cols),
		ops:   ops,
	}
	for r := range width {
		ops.Add(w.sum, power.RawRowView(r))
	}
	return w
}

// advance slides the window from [start, start+width) to
// [start+1, start+width+1).
func (w *walkingMean) advance() {
	w.ops.Add(w.sum, w.power.RawRowView(w.start+w.width))
	w.ops.Sub(w.sum, w.power.RawRowView(w.start))
	w.start++
}
