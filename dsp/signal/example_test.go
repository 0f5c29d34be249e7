package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-waveform/dsp/signal"
)

func ExamplePlateaus() {
	wave, err := signal.Plateaus([]float64{0, 10}, 3)
	if err != nil {
		panic(err)
	}
	fmt.Println(wave)

	// Output:
	// [0 0 0 10 10 10]
}

func ExampleGenerator_Pulse() {
	g := signal.NewGenerator()
	wave, err := g.Pulse(50, 1e-6, 10e-9, 1.4e-6, 1024)
	if err != nil {
		panic(err)
	}

	peak := 0.0
	for _, v := range wave {
		if v > peak {
			peak = v
		}
	}
	fmt.Printf("peak within [45, 50]: %v\n", peak >= 45 && peak <= 50)

	// Output:
	// peak within [45, 50]: true
}
