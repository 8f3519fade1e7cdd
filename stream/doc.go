// Package stream adapts the engine to github.com/gopxl/beep: Processor is a
// beep.Streamer that runs a mono source through an engine.Engine in fixed
// blocks, and the WAV helpers render processed audio to disk.
package stream
