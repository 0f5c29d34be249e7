// Package noise quantifies the noise content of detector waveforms.
//
// It provides time-domain figures (windowed RMS, denoising residuals) and a
// one-sided Hann-windowed power spectrum for locating coherent pickup such
// as switching-supply lines. The residual helpers pair naturally with the
// denoiser in dsp/denoise/tv1d: the residual of a well-tuned denoiser is the
// noise it removed.
package noise
