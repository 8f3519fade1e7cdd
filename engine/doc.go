// Package engine is the real-time façade of the effect: a mono-in,
// stereo-out processor whose tone morphs between two parameter scenes and
// is shaped by five macros.
//
// # Threading
//
// One audio goroutine calls ProcessBlock. Any number of control goroutines
// may call SetMacros, SetMacro, SetSceneA, SetSceneB, SetMomentary,
// SetMorphTarget and ToggleBypass at any time. Control state is held in
// atomics and sampled once at the start of every block, so a change takes
// effect at the next block boundary. Commands are level-triggered: two
// bypass toggles between blocks cancel out. SetMacro writes a single macro,
// so independent sources (keyboard, MIDI) never overwrite each other.
//
// ProcessBlock never allocates, locks or fails. Construction is the only
// place errors surface.
//
// # Bypass
//
// The stages keep running while bypassed, so reverb and delay tails stay
// alive and un-bypassing returns exactly the signal an engine that was never
// bypassed would produce. The block in which a bypass change is observed
// crossfades linearly between the processed and the dry signal; every
// later bypassed block is an exact copy of the input.
package engine
