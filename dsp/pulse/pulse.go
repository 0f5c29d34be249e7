package pulse

import "errors"

// Errors returned by the feature extractors.
var (
	ErrInvalidWindow = errors.New("pulse: window must satisfy 0 <= from < to <= len(signal)")
	ErrNoCrossing    = errors.New("pulse: threshold never crossed inside the window")
)

func validateWindow(signal []float64, from, to int) error {
	if from < 0 || from >= to || to > len(signal) {
		return ErrInvalidWindow
	}
	return nil
}

// ThresholdCrossing returns the position where the signal first rises above
// threshold inside [from, to), refined by linear interpolation between the
// crossing sample and its predecessor. The fractional position is the
// standard t0 estimate for timing studies.
func ThresholdCrossing(signal []float64, from, to int, threshold float64) (float64, error) {
	if err := validateWindow(signal, from, to); err != nil {
		return 0, err
	}

	for i := from; i < to; i++ {
		if signal[i] <= threshold {
			continue
		}
		if i == 0 {
			// Already above threshold at the very first sample.
			return 0, nil
		}
		y1 := signal[i-1]
		y2 := signal[i]
		return float64(i-1) + (threshold-y1)/(y2-y1), nil
	}

	return 0, ErrNoCrossing
}

// Amplitude returns the maximum baseline-subtracted value inside [from, to)
// and the index where it occurs.
func Amplitude(signal []float64, from, to int, baseline float64) (float64, int, error) {
	if err := validateWindow(signal, from, to); err != nil {
		return 0, 0, err
	}

	best := signal[from] - baseline
	bestPos := from
	for i := from + 1; i < to; i++ {
		if v := signal[i] - baseline; v > best {
			best = v
			bestPos = i
		}
	}

	return best, bestPos, nil
}

// Charge integrates the baseline-subtracted signal over [from, to).
// With ADC counts in and ticks along the axis the result is in ADC*tick,
// the usual unit for photodetector charge histograms.
func Charge(signal []float64, from, to int, baseline float64) (float64, error) {
	if err := validateWindow(signal, from, to); err != nil {
		return 0, err
	}

	var sum float64
	for _, v := range signal[from:to] {
		sum += v - baseline
	}

	return sum, nil
}

// SubtractBaseline returns a copy of signal with the baseline removed.
func SubtractBaseline(signal []float64, baseline float64) []float64 {
	out := make([]float64, len(signal))
	for i, v := range signal {
		out[i] = v - baseline
	}
	return out
}

// SubtractBaselineInPlace removes the baseline from signal in place.
func SubtractBaselineInPlace(signal []float64, baseline float64) {
	for i := range signal {
		signal[i] -= baseline
	}
}

// Invert flips the polarity of signal in place. Photomultiplier pulses are
// negative-going; analyses work on the inverted, baseline-subtracted form.
func Invert(signal []float64) {
	for i := range signal {
		signal[i] = -signal[i]
	}
}
