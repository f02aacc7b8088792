package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tphakala/go-sar-rangefilter/internal/filter"
	"github.com/tphakala/go-sar-rangefilter/internal/mathutil"
	"github.com/tphakala/go-sar-rangefilter/internal/spectral"
)

func newWindowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Print the range filter for a spectral shift",
		Long: `Print the filter coefficients applied to the first image of a pair for a
folded spectral shift, one row per frequency bin. The second image is
filtered with the left-right mirror of this filter.

By default bins are listed in FFT order, as the filter is applied; use
--centered for natural (zero-centred) order.

Examples:
  rangefilter window --pixels 64 --shift 5
  rangefilter window --sensor envisat --alpha 1 --pixels 32 --centered`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWindow(cmd)
		},
	}

	flags := cmd.Flags()
	flags.Int("pixels", defaultWindowPixels, "number of pixels per line (power of 2)")
	flags.Int("shift", 0, "folded spectral shift in bins")
	flags.Bool("centered", false, "list bins in natural order")

	return cmd
}

func (a *app) runWindow(cmd *cobra.Command) error {
	v := a.v
	settings, err := a.settings()
	if err != nil {
		return err
	}
	cfg, err := settings.config(a.logger)
	if err != nil {
		return err
	}

	pixels, shift := v.GetInt("pixels"), v.GetInt("shift")
	if !mathutil.IsPowerOfTwo(pixels) {
		return fmt.Errorf("number of pixels must be a power of 2: %d", pixels)
	}
	if shift < 0 || shift > mathutil.HalfIndex(pixels) {
		return fmt.Errorf("shift must be in [0, %d]: %d", mathutil.HalfIndex(pixels), shift)
	}

	builder, err := filter.NewBuilder(pixels, cfg.RSR, cfg.RBW, cfg.AlphaHamming)
	if err != nil {
		return err
	}

	axis := builder.Axis()
	var coeffs []float64
	if v.GetBool("centered") {
		coeffs, err = builder.BuildCentered(shift)
	} else {
		coeffs, err = builder.Build(shift)
		spectral.IFFTShift(axis)
	}
	if err != nil {
		return err
	}

	mode := "rectangular"
	if builder.Weighted() {
		mode = "hamming"
	}
	bandwidth := cfg.RBW - float64(shift)*builder.DeltaF()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# %s filter, %d pixels, shift %d bins (%.4f MHz)\n",
		mode, pixels, shift, float64(shift)*builder.DeltaF()/hzPerMHz)
	fmt.Fprintf(w, "# bandwidth %.4f MHz, bin width %.4f MHz\n",
		bandwidth/hzPerMHz, builder.DeltaF()/hzPerMHz)

	tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "BIN\tFREQ_MHZ\tCOEFF\tDB")
	for i, c := range coeffs {
		fmt.Fprintf(tw, "%d\t%.4f\t%.6f\t%.2f\n", i, axis[i]/hzPerMHz, c, filter.MagnitudeDB(c))
	}
	return tw.Flush()
}
