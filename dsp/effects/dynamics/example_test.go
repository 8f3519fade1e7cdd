package dynamics_test

import (
	"fmt"

	"github.com/cwbudde/algo-chaincraft/dsp/effects/dynamics"
)

func ExampleCompressor() {
	comp, err := dynamics.NewCompressor(48000)
	if err != nil {
		panic(err)
	}

	comp.SetThreshold(-20)
	comp.SetRatio(4)
	comp.SetKnee(0)

	fmt.Printf("%.4f\n", comp.CalculateOutputLevel(1))
	// Output:
	// 0.1778
}

func ExampleLimiter() {
	lim, err := dynamics.NewLimiter(48000)
	if err != nil {
		panic(err)
	}

	lim.SetCeiling(0.5)

	fmt.Println(lim.Process(0.25), lim.Process(2))
	// Output:
	// 0.25 0.5
}
