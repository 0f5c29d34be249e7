// Package baseline estimates the baseline (pedestal) of detector waveforms.
//
// Photodetector records sit on a DC pedestal that drifts between channels
// and runs; every amplitude or charge measurement is taken relative to it.
// The [Estimator] recovers the pedestal from the pre-pulse region using a
// histogram-mode seed followed by a threshold-gated mean, so that pulses
// and their tails within the window do not bias the estimate. An optional
// TV denoising pass can be applied first to stabilize the gate on noisy
// channels.
package baseline
