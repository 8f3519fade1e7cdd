package engine_test

import (
	"fmt"

	"github.com/cwbudde/algo-chaincraft/engine"
	"github.com/cwbudde/algo-chaincraft/rig"
)

func ExampleEngine() {
	e, err := engine.New(48000)
	if err != nil {
		panic(err)
	}

	e.SetMacros(rig.Macros{Heat: 1})
	e.SetSceneB()

	in := make([]float64, 64)
	outL := make([]float64, 64)
	outR := make([]float64, 64)

	// 120 ms of 64-sample blocks.
	for range 90 {
		e.ProcessBlock(in, outL, outR)
	}

	fmt.Printf("weight %.2f\n", e.MorphWeight())
	fmt.Println("drive", e.Effective().Drive.Type, e.Effective().Drive.PreGainDB)
	// Output:
	// weight 1.00
	// drive asym 36
}

func ExampleEngine_ToggleBypass() {
	e, err := engine.New(48000, engine.WithBypassCrossfade(false))
	if err != nil {
		panic(err)
	}

	e.ToggleBypass()

	in := []float64{0.1, -0.2, 0.3}
	outL := make([]float64, len(in))
	outR := make([]float64, len(in))
	e.ProcessBlock(in, outL, outR)

	fmt.Println(outL, outR, e.Bypassed())
	// Output:
	// [0.1 -0.2 0.3] [0.1 -0.2 0.3] true
}
