// Package rangefilter provides adaptive range spectral filtering for
// interferometric SAR in pure Go.
//
// Two co-registered single-look complex images of the same scene, master
// and slave, are acquired under slightly different incidence angles. Their
// range spectra are therefore shifted against each other, and the
// non-overlapping parts of the spectra only add noise to the interferogram.
// The range filter estimates the local spectral shift from the power
// spectrum of the interferogram and band-pass filters both images around
// their common band, line by line.
//
// # Quick Start
//
// Filter one block pair in place:
//
//	cfg := rangefilter.GetPresetConfig(rangefilter.SensorERS)
//	result, err := rangefilter.FilterBlock(master, slave, &cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("mean shift %.3f MHz, %.1f%% not filtered\n",
//	    result.MeanShiftHz/1e6, result.PercentNotFiltered)
//
// Blocks are [gonum.org/v1/gonum/mat.CDense] matrices with range lines as
// rows and range pixels as columns. The pixel count must be a power of two.
// [NewBlock] and [BlockRows] convert from and to plain slices.
//
// # Algorithm
//
// For every block the filter
//
//	master, slave -> interferogram (optionally oversampled in range)
//	              -> power spectrum per line
//	              -> walking mean over NLMean lines
//	              -> peak, SNR, folded shift per output line
//	              -> Hamming or rectangular filter of bandwidth RBW - shift
//
// Lines whose SNR falls below [Config.SNRThreshold] reuse the last accepted
// shift. The first (NLMean-1)/2 and last (NLMean-1)/2 lines of a block have
// no full window and are left unfiltered; overlapping blocks are the
// caller's concern.
//
// # Sensor Presets
//
//   - [SensorERS]: ERS-1/2 C-band, RSR 18.96 MHz, RBW 15.55 MHz.
//   - [SensorEnvisat]: Envisat ASAR, RSR 19.21 MHz, RBW 16 MHz.
//   - [SensorCustom]: defaults only, RSR and RBW must be set.
//
// # Thread Safety
//
// [FilterBlock] keeps no state between calls. Independent block pairs may
// be filtered concurrently, see [FilterBlocks]; a single pair must not be
// accessed by others while it is being filtered.
package rangefilter
