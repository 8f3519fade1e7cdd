package modulation_test

import (
	"fmt"

	"github.com/cwbudde/algo-chaincraft/dsp/effects/modulation"
)

func ExampleTremolo() {
	trem, err := modulation.NewTremolo(48000,
		modulation.WithTremoloRateHz(4),
		modulation.WithTremoloDepth(0),
	)
	if err != nil {
		panic(err)
	}

	fmt.Println(trem.Process(0.5))
	// Output:
	// 0.5
}
