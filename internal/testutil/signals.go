package testutil

import "math/rand"

// GaussianNoise generates zero-mean gaussian noise with a fixed seed for
// reproducibility. Detector channel noise is close to gaussian, so tests
// use this rather than uniform noise.
func GaussianNoise(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = sigma * rng.NormFloat64()
	}
	return out
}

// Steps generates a piecewise-constant signal: each level is repeated
// segLen times.
func Steps(levels []float64, segLen int) []float64 {
	out := make([]float64, len(levels)*segLen)
	for i, level := range levels {
		for j := 0; j < segLen; j++ {
			out[i*segLen+j] = level
		}
	}
	return out
}

// NoisySteps generates Steps(levels, segLen) with gaussian noise added.
func NoisySteps(seed int64, levels []float64, segLen int, sigma float64) []float64 {
	out := Steps(levels, segLen)
	noise := GaussianNoise(seed, sigma, len(out))
	for i := range out {
		out[i] += noise[i]
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
