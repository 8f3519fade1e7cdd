// Package morph implements the scene crossfade controller.
//
// The controller owns a weight in [0, 1] that ramps linearly toward a target
// once per audio block. The ramp rate is set by a glide time, so a
// transition always completes in bounded time no matter where a new command
// interrupts it. Retargeting mid-glide redirects the ramp without moving the
// weight.
package morph

import (
	"math"

	"github.com/cwbudde/algo-chaincraft/dsp/core"
)

// Glide times in milliseconds.
const (
	SceneGlideMs         = 120.0
	MomentaryDownGlideMs = 80.0
	MomentaryUpGlideMs   = 120.0

	// SnapThreshold is the distance below which the weight snaps to target.
	SnapThreshold = 0.0005

	minGlideMs = 1.0
)

// Controller is the morph state machine. The zero value rests at scene A
// with the scene glide time unset; use New.
type Controller struct {
	weight  float64
	target  float64
	glideMs float64
}

// New returns a controller resting at scene A.
func New() *Controller {
	return &Controller{glideMs: SceneGlideMs}
}

// Command is a retarget request: a target weight and the glide to reach it.
type Command struct {
	Target  float64
	GlideMs float64
}

// Scene commands.
var (
	SceneA = Command{Target: 0, GlideMs: SceneGlideMs}
	SceneB = Command{Target: 1, GlideMs: SceneGlideMs}
)

// Momentary targets scene B while down, scene A on release. Engaging
// glides faster than releasing.
func Momentary(down bool) Command {
	if down {
		return Command{Target: 1, GlideMs: MomentaryDownGlideMs}
	}

	return Command{Target: 0, GlideMs: MomentaryUpGlideMs}
}

// Apply retargets the ramp with cmd; see SetTarget.
func (c *Controller) Apply(cmd Command) { c.SetTarget(cmd.Target, cmd.GlideMs) }

// SetTarget retargets the ramp. target is clamped to [0, 1] and glideMs
// floored at 0; the weight itself is not changed.
func (c *Controller) SetTarget(target, glideMs float64) {
	c.target = core.Clamp01(target)
	if !(glideMs > 0) {
		glideMs = 0
	}

	c.glideMs = glideMs
}

// Advance moves the weight by one block of n samples at sampleRate.
func (c *Controller) Advance(n int, sampleRate float64) {
	if math.Abs(c.target-c.weight) < SnapThreshold {
		c.weight = c.target
		return
	}

	step := c.MaxStep(n, sampleRate)
	if c.target > c.weight {
		c.weight = math.Min(c.weight+step, c.target)
	} else {
		c.weight = math.Max(c.weight-step, c.target)
	}

	c.weight = core.Clamp01(c.weight)
}

// MaxStep returns the largest weight change one Advance of n samples can
// make with the current glide: dt_ms / max(glide, 1 ms).
func (c *Controller) MaxStep(n int, sampleRate float64) float64 {
	if n <= 0 || !(sampleRate > 0) {
		return 0
	}

	dtMs := 1000 * float64(n) / sampleRate

	return dtMs / math.Max(c.glideMs, minGlideMs)
}

// Weight returns the current crossfade weight.
func (c *Controller) Weight() float64 { return c.weight }

// Target returns the current target.
func (c *Controller) Target() float64 { return c.target }

// Glide returns the current glide time in milliseconds.
func (c *Controller) Glide() float64 { return c.glideMs }

// Settled reports whether the weight has reached its target.
func (c *Controller) Settled() bool { return c.weight == c.target }

// Reset puts the controller back at scene A.
func (c *Controller) Reset() {
	*c = Controller{glideMs: SceneGlideMs}
}
