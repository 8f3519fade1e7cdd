// Package rig defines the parameter model of the effect chain.
//
// A Rig is the full parameter set of the six processing stages, organised in
// seven groups. Two Rigs, scene A and scene B, are fixed presets; the
// parameters actually used for an audio block are derived from them in
// three pure steps:
//
//	Effective(a, b, w, m) = Clamp(ApplyMacros(Interpolate(a, b, w), m))
//
// Interpolate crossfades the scenes with a smoothstep-eased weight,
// ApplyMacros perturbs disjoint field sets with low-order polynomials of the
// five macros, and Clamp forces every field into its documented range.
//
// All functions take and return Rig values and never allocate, so they are
// safe to call from the audio goroutine.
package rig
