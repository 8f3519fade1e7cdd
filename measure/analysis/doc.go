// Package analysis measures rendered audio: peak and RMS levels, crest
// factor, inter-channel correlation, and total harmonic distortion at a
// detected fundamental.
//
// The spectrum is a Hann-windowed FFT computed with algo-fft; harmonic
// levels are summed over a few capture bins around each harmonic so the
// window's main lobe is fully counted.
package analysis
