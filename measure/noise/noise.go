package noise

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the noise measurements.
var (
	ErrInvalidWindow  = errors.New("noise: window must satisfy 0 <= from < to <= len(signal)")
	ErrLengthMismatch = errors.New("noise: raw and denoised lengths differ")
	ErrShortSignal    = errors.New("noise: signal too short for a spectrum")
	ErrInvalidRate    = errors.New("noise: sample rate must be > 0")
)

// RMS returns the root-mean-square deviation from the mean over [from, to).
// Subtracting the window mean makes the figure independent of the pedestal,
// so it can be taken directly on a quiet pre-pulse region.
func RMS(signal []float64, from, to int) (float64, error) {
	if from < 0 || from >= to || to > len(signal) {
		return 0, ErrInvalidWindow
	}

	window := signal[from:to]

	var mean float64
	for _, v := range window {
		mean += v
	}
	mean /= float64(len(window))

	var sumSq float64
	for _, v := range window {
		d := v - mean
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(window))), nil
}

// Residual returns raw - denoised per sample, the component a denoiser
// removed. Both slices must have the same length.
func Residual(raw, denoised []float64) ([]float64, error) {
	if len(raw) != len(denoised) {
		return nil, ErrLengthMismatch
	}

	out := make([]float64, len(raw))
	for i := range raw {
		out[i] = raw[i] - denoised[i]
	}

	return out, nil
}

// ResidualRMS returns the RMS of raw - denoised about zero. For a denoiser
// that only removes noise this tracks the noise amplitude of the channel.
func ResidualRMS(raw, denoised []float64) (float64, error) {
	if len(raw) != len(denoised) {
		return 0, ErrLengthMismatch
	}
	if len(raw) == 0 {
		return 0, nil
	}

	var sumSq float64
	for i := range raw {
		d := raw[i] - denoised[i]
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(len(raw))), nil
}

// Spectrum holds a one-sided power spectrum.
type Spectrum struct {
	Freqs []float64 // bin frequencies in Hz, [0, Nyquist]
	Power []float64 // power per bin, window-gain corrected
}

// PowerSpectrum computes the one-sided power spectrum of signal using a Hann
// window and an FFT padded to the next power of two. Power is normalized by
// the coherent window gain and interior bins carry the factor of two for the
// folded negative frequencies, so a pure sinusoid of amplitude A centered on
// a bin reports a peak power close to A^2/2.
func PowerSpectrum(signal []float64, sampleRate float64) (Spectrum, error) {
	if len(signal) < 2 {
		return Spectrum{}, ErrShortSignal
	}
	if sampleRate <= 0 {
		return Spectrum{}, ErrInvalidRate
	}

	n := len(signal)
	fftSize := nextPowerOf2(n)

	coeffs := hann(n)

	var windowSum float64
	for _, w := range coeffs {
		windowSum += w
	}

	work := make([]float64, n)
	copy(work, signal)
	vecmath.MulBlockInPlace(work, coeffs)

	inData := make([]complex128, fftSize)
	for i, v := range work {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Spectrum{}, fmt.Errorf("noise: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return Spectrum{}, fmt.Errorf("noise: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := 0; k < bins; k++ {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	norm := windowSum * windowSum
	freqs := make([]float64, bins)
	for k := range power {
		power[k] /= norm
		if k > 0 && k < bins-1 {
			power[k] *= 2
		}
		freqs[k] = sampleRate * float64(k) / float64(fftSize)
	}

	return Spectrum{Freqs: freqs, Power: power}, nil
}

func hann(n int) []float64 {
	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1
		return coeffs
	}
	for i := range coeffs {
		coeffs[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return coeffs
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
