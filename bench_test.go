package rangefilter

import (
	"fmt"
	"testing"

	"github.com/tphakala/go-sar-rangefilter/internal/testutil"
	"gonum.org/v1/gonum/mat"
)

// BenchmarkFilterBlock benchmarks one ERS-sized block with and without
// oversampling.
func BenchmarkFilterBlock(b *testing.B) {
	for _, ovs := range []int{1, 2} {
		b.Run(fmt.Sprintf("ovs%d", ovs), func(b *testing.B) {
			benchmarkFilterBlock(b, ovs)
		})
	}
}

func benchmarkFilterBlock(b *testing.B, ovs int) {
	b.Helper()

	const (
		lines  = 128
		pixels = 1024
	)

	cfg := NewERSConfig()
	cfg.OversampleFactor = ovs

	master := testutil.RandomBlock(lines, pixels, 1)
	slave := testutil.ShiftedCopy(master, 7)
	m := mat.NewCDense(lines, pixels, nil)
	s := mat.NewCDense(lines, pixels, nil)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		m.Copy(master)
		s.Copy(slave)
		b.StartTimer()

		if _, err := FilterBlock(m, s, cfg); err != nil {
			b.Fatalf("FilterBlock failed: %v", err)
		}
	}
}

// BenchmarkFilterBlocksParallel benchmarks batch filtering of independent
// blocks.
func BenchmarkFilterBlocksParallel(b *testing.B) {
	const blocks = 8

	cfg := NewERSConfig()
	src := makePairs(blocks)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		pairs := clonePairs(src)
		b.StartTimer()

		if _, err := FilterBlocks(pairs, cfg, true); err != nil {
			b.Fatalf("FilterBlocks failed: %v", err)
		}
	}
}
