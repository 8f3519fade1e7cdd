// Package reverb provides a stereo feedback-delay-network reverb.
//
// The reverb is controlled the way the Space stage needs it: a loop
// feedback amount in [0, 1) and a low-pass damping frequency inside the
// loop. Process returns the wet signal only.
package reverb
