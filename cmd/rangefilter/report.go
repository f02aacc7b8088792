package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	rangefilter "github.com/tphakala/go-sar-rangefilter"
	"gopkg.in/yaml.v3"
)

// blockReport is the printed summary of one filtered block.
type blockReport struct {
	Sensor             string       `yaml:"sensor"`
	Lines              int          `yaml:"lines"`
	Pixels             int          `yaml:"pixels"`
	OutputLines        int          `yaml:"output_lines"`
	FirstLine          int          `yaml:"first_line"`
	LastLine           int          `yaml:"last_line"`
	FFTLength          int          `yaml:"fft_length"`
	DeltaFHz           float64      `yaml:"delta_f_hz"`
	MeanShiftBins      float64      `yaml:"mean_shift_bins"`
	MeanShiftMHz       float64      `yaml:"mean_shift_mhz"`
	MeanSNR            float64      `yaml:"mean_snr"`
	NotFiltered        int          `yaml:"not_filtered"`
	NotFilteredPercent float64      `yaml:"not_filtered_percent"`
	QualityWarning     bool         `yaml:"quality_warning"`
	NoOutput           bool         `yaml:"no_output"`
	PerLine            []lineReport `yaml:"per_line,omitempty"`
}

type lineReport struct {
	Line     int     `yaml:"line"`
	RawPeak  int     `yaml:"raw_peak"`
	Shift    int     `yaml:"shift"`
	NegShift bool    `yaml:"neg_shift"`
	SNR      float64 `yaml:"snr"`
	Fallback bool    `yaml:"fallback"`
}

func newBlockReport(sensor string, lines, pixels int, r *rangefilter.Result, perLine bool) blockReport {
	rep := blockReport{
		Sensor:             sensor,
		Lines:              lines,
		Pixels:             pixels,
		OutputLines:        r.OutputLines,
		FirstLine:          r.FirstLine,
		LastLine:           r.LastLine,
		FFTLength:          r.FFTLength,
		DeltaFHz:           r.DeltaF,
		MeanShiftBins:      r.MeanShift,
		MeanShiftMHz:       r.MeanShiftHz / hzPerMHz,
		MeanSNR:            r.MeanSNR,
		NotFiltered:        r.NotFiltered,
		NotFilteredPercent: r.PercentNotFiltered,
		QualityWarning:     r.QualityWarning,
		NoOutput:           r.NoOutput,
	}
	if perLine {
		rep.PerLine = make([]lineReport, len(r.Lines))
		for i, l := range r.Lines {
			rep.PerLine[i] = lineReport(l)
		}
	}
	return rep
}

func checkReportFormat(format string) error {
	switch format {
	case reportYAML, reportTable:
		return nil
	default:
		return fmt.Errorf("unknown report format %q (want %s or %s)", format, reportYAML, reportTable)
	}
}

func writeReport(w io.Writer, format string, rep blockReport) error {
	if err := checkReportFormat(format); err != nil {
		return err
	}

	if format == reportYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encoding report: %w", err)
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, tabMinWidth, tabWidth, tabPadding, ' ', 0)
	fmt.Fprintf(tw, "Sensor\t%s\n", rep.Sensor)
	fmt.Fprintf(tw, "Block\t%d x %d\n", rep.Lines, rep.Pixels)
	fmt.Fprintf(tw, "Output lines\t%d (%d..%d)\n", rep.OutputLines, rep.FirstLine, rep.LastLine)
	fmt.Fprintf(tw, "FFT length\t%d\n", rep.FFTLength)
	fmt.Fprintf(tw, "Mean shift\t%.3f bins (%.4f MHz)\n", rep.MeanShiftBins, rep.MeanShiftMHz)
	fmt.Fprintf(tw, "Mean SNR\t%.2f\n", rep.MeanSNR)
	fmt.Fprintf(tw, "Not filtered\t%d (%.1f%%)\n", rep.NotFiltered, rep.NotFilteredPercent)
	fmt.Fprintf(tw, "Quality warning\t%v\n", rep.QualityWarning)

	if len(rep.PerLine) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "LINE\tPEAK\tSHIFT\tNEG\tSNR\tFALLBACK")
		for _, l := range rep.PerLine {
			fmt.Fprintf(tw, "%d\t%d\t%d\t%v\t%.2f\t%v\n", l.Line, l.RawPeak, l.Shift, l.NegShift, l.SNR, l.Fallback)
		}
	}
	return tw.Flush()
}
