// Package pulse extracts scalar features from single detector pulses.
//
// The extractors operate on a window [from, to) of a waveform and take the
// baseline as an explicit parameter, so they compose with the estimators in
// package baseline. ThresholdCrossing yields a sub-sample arrival time,
// Amplitude the peak height and position, and Charge the integral used for
// photoelectron calibration.
package pulse
