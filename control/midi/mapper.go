// Package midi maps incoming MIDI messages onto the engine controls:
// control changes drive the five macros and notes trigger scene changes,
// the momentary morph and the bypass toggle.
package midi

import (
	"errors"
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/cwbudde/algo-chaincraft/rig"
)

// Omni makes a Mapping listen on every channel.
const Omni = -1

// Controls is the subset of the engine the mapper drives.
type Controls interface {
	SetMacro(id rig.Macro, v float64)
	SetSceneA()
	SetSceneB()
	SetMomentary(down bool)
	ToggleBypass()
}

// Mapping assigns controller and note numbers to engine controls.
type Mapping struct {
	Channel       int // 0-15, or Omni
	TouchCC       uint8
	HeatCC        uint8
	MotionCC      uint8
	DepthCC       uint8
	BodyCC        uint8
	SceneANote    uint8
	SceneBNote    uint8
	MomentaryNote uint8
	BypassNote    uint8
}

// DefaultMapping listens on all channels with the macros on CC 20-24 and
// the switches on notes 36, 38, 40 and 41 (the lower pads of most
// controllers).
func DefaultMapping() Mapping {
	return Mapping{
		Channel:       Omni,
		TouchCC:       20,
		HeatCC:        21,
		MotionCC:      22,
		DepthCC:       23,
		BodyCC:        24,
		SceneANote:    36,
		SceneBNote:    38,
		MomentaryNote: 40,
		BypassNote:    41,
	}
}

// ErrInvalidMapping is returned by NewMapper for an out-of-range channel or
// a controller or note number above 127.
var ErrInvalidMapping = errors.New("midi: invalid mapping")

// Validate checks channel and number ranges.
func (m Mapping) Validate() error {
	if m.Channel != Omni && (m.Channel < 0 || m.Channel > 15) {
		return fmt.Errorf("%w: channel %d", ErrInvalidMapping, m.Channel)
	}

	for _, n := range []uint8{
		m.TouchCC, m.HeatCC, m.MotionCC, m.DepthCC, m.BodyCC,
		m.SceneANote, m.SceneBNote, m.MomentaryNote, m.BypassNote,
	} {
		if n > 127 {
			return fmt.Errorf("%w: number %d", ErrInvalidMapping, n)
		}
	}

	return nil
}

// Mapper translates MIDI messages into control calls.
type Mapper struct {
	ctrl    Controls
	mapping Mapping
}

// NewMapper returns a mapper driving ctrl.
func NewMapper(ctrl Controls, mapping Mapping) (*Mapper, error) {
	if ctrl == nil {
		return nil, errors.New("midi: nil controls")
	}

	if err := mapping.Validate(); err != nil {
		return nil, err
	}

	return &Mapper{ctrl: ctrl, mapping: mapping}, nil
}

// Mapping returns the active mapping.
func (m *Mapper) Mapping() Mapping { return m.mapping }

// Handle applies one message. It reports whether the message was mapped.
func (m *Mapper) Handle(msg gomidi.Message) bool {
	var ch, num, val uint8

	switch {
	case msg.GetControlChange(&ch, &num, &val):
		if !m.listens(ch) {
			return false
		}

		return m.controlChange(num, float64(val)/127)
	case msg.GetNoteStart(&ch, &num, &val):
		if !m.listens(ch) {
			return false
		}

		return m.noteOn(num)
	case msg.GetNoteEnd(&ch, &num):
		if !m.listens(ch) || num != m.mapping.MomentaryNote {
			return false
		}

		m.ctrl.SetMomentary(false)

		return true
	}

	return false
}

func (m *Mapper) listens(ch uint8) bool {
	return m.mapping.Channel == Omni || int(ch) == m.mapping.Channel
}

func (m *Mapper) controlChange(cc uint8, v float64) bool {
	var id rig.Macro

	switch cc {
	case m.mapping.TouchCC:
		id = rig.MacroTouch
	case m.mapping.HeatCC:
		id = rig.MacroHeat
	case m.mapping.MotionCC:
		id = rig.MacroMotion
	case m.mapping.DepthCC:
		id = rig.MacroDepth
	case m.mapping.BodyCC:
		id = rig.MacroBody
	default:
		return false
	}

	m.ctrl.SetMacro(id, v)

	return true
}

func (m *Mapper) noteOn(key uint8) bool {
	switch key {
	case m.mapping.SceneANote:
		m.ctrl.SetSceneA()
	case m.mapping.SceneBNote:
		m.ctrl.SetSceneB()
	case m.mapping.MomentaryNote:
		m.ctrl.SetMomentary(true)
	case m.mapping.BypassNote:
		m.ctrl.ToggleBypass()
	default:
		return false
	}

	return true
}

// Listen feeds every message arriving on in to Handle until stop is
// called. The port is opened if needed.
func (m *Mapper) Listen(in drivers.In) (stop func(), err error) {
	stop, err = gomidi.ListenTo(in, func(msg gomidi.Message, _ int32) {
		m.Handle(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("midi: listen on %s: %w", in, err)
	}

	return stop, nil
}
