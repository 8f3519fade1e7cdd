//go:build cgo

package main

// Registers the RtMidi driver for --midi.
import _ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
