// Package block implements the six processing stages of the effect chain
// and the Chain that runs them in their fixed order:
//
//	Dynamics -> Drive -> Character -> StereoSpread -> Space -> CabinetOutput
//
// Every stage follows the same contract. It is constructed once with the
// sample rate, receives its parameter group once per audio block through
// Set, and is then driven one sample at a time. Set clamps what it is given
// and never allocates. A stage whose mix is 0 returns its input unchanged.
//
// Stage state (filter integrators, delay lines, envelopes, reverb tails)
// persists across blocks and is only cleared by Reset.
package block
