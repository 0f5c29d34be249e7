// Package tv1d implements exact total-variation (TV-L1) denoising of 1-D
// signals.
//
// [Denoise] computes the unique global minimizer of
//
//	F(x) = 1/2 * sum_i (x[i] - y[i])^2 + lambda * sum_i |x[i+1] - x[i]|
//
// for an input y and a smoothing weight lambda >= 0, using Condat's direct
// taut-string algorithm. The solution is piecewise constant: larger lambda
// yields fewer, longer plateaus, while sharp edges survive far better than
// under linear smoothing. Runtime is amortized O(n) with O(n) scratch.
//
// The typical use on detector waveforms is to suppress sample-level noise
// before baseline, peak and charge estimation. Note that the effect of a
// given lambda depends on the record length, so the appropriate filtering
// level must be tuned per waveform geometry.
//
// A [Filter] keeps the scratch index buffers alive between calls, which
// avoids per-call allocations when processing many records of equal length.
package tv1d
