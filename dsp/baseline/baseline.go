package baseline

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-waveform/dsp/denoise/tv1d"
)

// Errors returned by the estimator.
var (
	ErrInvalidThreshold = errors.New("baseline: threshold must be > 0")
	ErrInvalidWait      = errors.New("baseline: wait must be > 0")
	ErrInvalidWindow    = errors.New("baseline: window must satisfy 0 <= start < finish")
	ErrInvalidMinFrac   = errors.New("baseline: minimum fraction must be in [0, 1]")
	ErrInvalidBinWidth  = errors.New("baseline: bin width must be > 0")
	ErrShortWaveform    = errors.New("baseline: waveform shorter than window start")
)

// Estimator computes the baseline (pedestal) of a waveform from its
// pre-pulse region.
//
// The estimate proceeds in two stages. First a seed is taken as the most
// populated histogram bin of the window [Start, Finish). Then the waveform
// is walked from the beginning of the record: samples within
// seed +/- Threshold contribute to a running mean, while an excursion
// outside the band skips Wait samples (so pulses and their tails are not
// averaged in). If fewer than MinFrac of the window contributed, the seed
// itself is returned and the result is flagged as not optimal.
type Estimator struct {
	Threshold float64 // acceptance band half-width around the seed, ADC counts
	Wait      int     // samples skipped after an excursion outside the band
	Start     int     // first sample of the baseline window
	Finish    int     // one past the last sample of the baseline window
	MinFrac   float64 // minimum accepted fraction for an optimal estimate
	BinWidth  float64 // histogram bin width for the seed estimate
	Filtering float64 // TV denoising weight applied before estimation; 0 disables
}

// Default returns the estimator configuration used for self-trigger
// photodetector records: a 112-tick pre-pulse window with unit ADC bins.
func Default() Estimator {
	return Estimator{
		Threshold: 6,
		Wait:      25,
		Start:     0,
		Finish:    112,
		MinFrac:   1.0 / 6,
		BinWidth:  1,
	}
}

// Validate checks that the estimator parameters are consistent.
func (e Estimator) Validate() error {
	if e.Threshold <= 0 {
		return ErrInvalidThreshold
	}

	if e.Wait <= 0 {
		return ErrInvalidWait
	}

	if e.Start < 0 || e.Start >= e.Finish {
		return ErrInvalidWindow
	}

	if e.MinFrac < 0 || e.MinFrac > 1 {
		return ErrInvalidMinFrac
	}

	if e.BinWidth <= 0 {
		return ErrInvalidBinWidth
	}

	if e.Filtering < 0 {
		return fmt.Errorf("baseline: filtering must be >= 0: %f", e.Filtering)
	}

	return nil
}

// Result holds a baseline estimate.
type Result struct {
	Value   float64 // estimated baseline in ADC counts
	Optimal bool    // enough samples were accepted for a reliable mean
}

// Estimate computes the baseline of wave. The input is never mutated; the
// optional TV pre-filter works on an internal copy.
func (e Estimator) Estimate(wave []float64) (Result, error) {
	if err := e.Validate(); err != nil {
		return Result{}, err
	}

	finish := e.Finish
	if finish > len(wave) {
		finish = len(wave)
	}
	if e.Start >= finish {
		return Result{}, ErrShortWaveform
	}

	work := wave
	if e.Filtering > 0 {
		filtered, err := tv1d.Denoise(wave, e.Filtering)
		if err != nil {
			return Result{}, fmt.Errorf("baseline: pre-filter: %w", err)
		}
		work = filtered
	}

	seed := histogramSeed(work[e.Start:finish], e.BinWidth)
	value, counts := gatedMean(work, seed, e.Threshold, finish, e.Wait)

	if float64(counts) > float64(finish-e.Start)*e.MinFrac {
		return Result{Value: value, Optimal: true}, nil
	}

	// Not enough accepted samples: fall back to the histogram seed.
	return Result{Value: seed, Optimal: false}, nil
}

// histogramSeed returns the left edge of the most populated fixed-width bin,
// the most probable value of the window.
func histogramSeed(window []float64, binWidth float64) float64 {
	minVal := window[0]
	maxVal := window[0]
	for _, v := range window[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	bins := int((maxVal-minVal)/binWidth) + 1
	counts := make([]int, bins)
	for _, v := range window {
		idx := int((v - minVal) / binWidth)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}

	return minVal + binWidth*float64(best)
}

// gatedMean averages the samples of wave[:finish] that stay within
// seed +/- threshold, skipping wait samples whenever the band is left.
func gatedMean(wave []float64, seed, threshold float64, finish, wait int) (float64, int) {
	var (
		sum    float64
		counts int
	)

	for i := 0; i < finish && i < len(wave); {
		val := wave[i]
		if math.Abs(val-seed) > threshold {
			i += wait
			continue
		}
		sum += val
		counts++
		i++
	}

	if counts > 0 {
		return sum / float64(counts), counts
	}

	return seed, 0
}
