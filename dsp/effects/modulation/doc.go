// Package modulation provides LFO-driven effects: a modulated-delay chorus
// and an amplitude tremolo.
//
// Both effects return the fully wet signal; the caller owns the dry/wet
// blend. Setters clamp instead of failing so they can be driven once per
// audio block from interpolated parameters.
package modulation
