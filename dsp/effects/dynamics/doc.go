// Package dynamics provides the dynamics processors used by the effect chain.
//
// Included processors:
//   - Compressor: Soft-knee compressor with log2-domain gain computation and
//     a peak envelope follower.
//   - Limiter: Peak limiter with instant attack, exponential release and a
//     hard output ceiling.
//
// Both processors are real-time safe: setters clamp out-of-range values
// instead of failing and never allocate.
package dynamics
