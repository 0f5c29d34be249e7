package time

import "math"

// Stats holds time-domain waveform statistics.
type Stats struct {
	Length         int
	Mean           float64
	RMS            float64
	Max            float64
	MaxPos         int
	Min            float64
	MinPos         int
	PeakToPeak     float64 // max - min
	Energy         float64 // sum of squares
	Power          float64 // energy / length
	Variance       float64
	StdDev         float64
	Skewness       float64
	Kurtosis       float64
	ZeroCrossings  int
	TotalVariation float64 // sum of |x[i+1] - x[i]|
	Runs           int     // number of maximal constant runs
}

// Calculate computes all time-domain statistics in a single pass using
// Welford's online algorithm for numerical stability on higher-order moments.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	// Running aggregates.
	var (
		sumSq         float64
		maxVal        = signal[0]
		maxPos        int
		minVal        = signal[0]
		minPos        int
		zeroCrossings int
		tv            float64
		runs          = 1
	)

	for i, x := range signal {
		// --- Welford update for moments ---
		ni := float64(i + 1) // 1-based count after this sample
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i) // delta * delta_n * (n-1)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		// --- Energy (sum of squares) ---
		sumSq += x * x

		// --- Min / Max ---
		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}

		// --- Consecutive-sample aggregates ---
		if i > 0 {
			if signal[i-1]*x < 0 {
				zeroCrossings++
			}

			tv += math.Abs(x - signal[i-1])

			if x != signal[i-1] {
				runs++
			}
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:         n,
		Mean:           mean,
		RMS:            math.Sqrt(sumSq / nf),
		Max:            maxVal,
		MaxPos:         maxPos,
		Min:            minVal,
		MinPos:         minPos,
		PeakToPeak:     maxVal - minVal,
		Energy:         sumSq,
		Power:          sumSq / nf,
		Variance:       variance,
		StdDev:         math.Sqrt(variance),
		Skewness:       skewness,
		Kurtosis:       kurtosis,
		ZeroCrossings:  zeroCrossings,
		TotalVariation: tv,
		Runs:           runs,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Mean returns the mean of the signal.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// TotalVariation returns the sum of absolute consecutive differences.
func TotalVariation(signal []float64) float64 {
	var tv float64
	for i := 1; i < len(signal); i++ {
		tv += math.Abs(signal[i] - signal[i-1])
	}

	return tv
}

// Breakpoints returns the indices i at which |signal[i] - signal[i-1]| > tol,
// i.e. the start positions of new constant runs in a piecewise-constant
// signal. A non-positive tol means exact inequality.
func Breakpoints(signal []float64, tol float64) []int {
	var out []int
	for i := 1; i < len(signal); i++ {
		if math.Abs(signal[i]-signal[i-1]) > tol {
			out = append(out, i)
		}
	}

	return out
}

// ZeroCrossings returns the number of zero crossings in the signal.
// A crossing is counted when consecutive samples have opposite signs.
func ZeroCrossings(signal []float64) int {
	if len(signal) < 2 {
		return 0
	}

	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of the signal using Welford's online algorithm for numerical stability.
func Moments(signal []float64) (mean, variance, skewness, kurtosis float64) {
	n := len(signal)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var m2, m3, m4 float64

	for i, x := range signal {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN
	}

	nf := float64(n)

	variance = m2 / nf
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return mean, variance, skewness, kurtosis
}

// StreamingStats accumulates time-domain statistics incrementally across
// multiple waveform records. It processes each sample individually to
// guarantee bit-for-bit identical results with [Calculate] over the
// concatenated input.
type StreamingStats struct {
	n             int
	mean          float64
	m2            float64
	m3            float64
	m4            float64
	sumSq         float64
	maxVal        float64
	maxPos        int
	minVal        float64
	minPos        int
	zeroCrossings int
	tv            float64
	runs          int
	hasData       bool
	lastSample    float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.n++
		ni := float64(s.n)

		// Welford update.
		delta := x - s.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(s.n-1)

		s.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
		s.m3 += term1*deltaN*(float64(s.n-1)-1) - 3*deltaN*s.m2
		s.m2 += term1
		s.mean += deltaN

		// Energy.
		s.sumSq += x * x

		// Min / Max.
		if !s.hasData {
			s.maxVal = x
			s.maxPos = s.n - 1
			s.minVal = x
			s.minPos = s.n - 1
			s.runs = 1
			s.hasData = true
		} else {
			if x > s.maxVal {
				s.maxVal = x
				s.maxPos = s.n - 1
			}

			if x < s.minVal {
				s.minVal = x
				s.minPos = s.n - 1
			}
		}

		// Consecutive-sample aggregates: check against previous sample.
		if s.n > 1 {
			if s.lastSample*x < 0 {
				s.zeroCrossings++
			}

			s.tv += math.Abs(x - s.lastSample)

			if x != s.lastSample {
				s.runs++
			}
		}

		s.lastSample = x
	}
}

// Reset clears the accumulator to its initial state.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{}
	}

	nf := float64(s.n)
	variance := s.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (s.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:         s.n,
		Mean:           s.mean,
		RMS:            math.Sqrt(s.sumSq / nf),
		Max:            s.maxVal,
		MaxPos:         s.maxPos,
		Min:            s.minVal,
		MinPos:         s.minPos,
		PeakToPeak:     s.maxVal - s.minVal,
		Energy:         s.sumSq,
		Power:          s.sumSq / nf,
		Variance:       variance,
		StdDev:         math.Sqrt(variance),
		Skewness:       skewness,
		Kurtosis:       kurtosis,
		ZeroCrossings:  s.zeroCrossings,
		TotalVariation: s.tv,
		Runs:           s.runs,
	}
}
