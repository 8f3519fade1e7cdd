package block

import (
	"github.com/cwbudde/algo-chaincraft/rig"
)

// Chain owns one instance of every stage and runs them in order.
type Chain struct {
	Dynamics     *Dynamics
	Drive        *Drive
	Character    *Character
	StereoSpread *StereoSpread
	Space        *Space
	Cabinet      *CabinetOutput
}

// NewChain constructs all six stages at sampleRate. It fails once, on the
// first stage that rejects the rate.
func NewChain(sampleRate float64) (*Chain, error) {
	var (
		c   Chain
		err error
	)

	if c.Dynamics, err = NewDynamics(sampleRate); err != nil {
		return nil, err
	}

	if c.Drive, err = NewDrive(sampleRate); err != nil {
		return nil, err
	}

	if c.Character, err = NewCharacter(sampleRate); err != nil {
		return nil, err
	}

	if c.StereoSpread, err = NewStereoSpread(sampleRate); err != nil {
		return nil, err
	}

	if c.Space, err = NewSpace(sampleRate); err != nil {
		return nil, err
	}

	if c.Cabinet, err = NewCabinetOutput(sampleRate); err != nil {
		return nil, err
	}

	return &c, nil
}

// Set hands every stage its parameter group. Called once per block.
func (c *Chain) Set(r rig.Rig) {
	c.Dynamics.Set(r.Dynamics)
	c.Drive.Set(r.Drive)
	c.Character.Set(r.Character)
	c.StereoSpread.Set(r.StereoSpread)
	c.Space.Set(r.Space)
	c.Cabinet.Set(r.Cabinet, r.Output)
}

// Process runs one mono sample through the chain.
func (c *Chain) Process(x float64) (l, r float64) {
	y := c.Dynamics.Process(x)
	y = c.Drive.Process(y)
	y = c.Character.Process(y)

	l, r = c.StereoSpread.Process(y)
	l, r = c.Space.Process(l, r)

	return c.Cabinet.Process(l, r)
}

// Reset clears the history of every stage.
func (c *Chain) Reset() {
	c.Dynamics.Reset()
	c.Drive.Reset()
	c.Character.Reset()
	c.StereoSpread.Reset()
	c.Space.Reset()
	c.Cabinet.Reset()
}
