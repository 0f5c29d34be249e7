package tv1d_test

import (
	"fmt"

	"github.com/cwbudde/algo-waveform/dsp/denoise/tv1d"
)

func ExampleDenoise() {
	wave := []float64{0, 0, 0, 10, 10, 10}
	smooth, err := tv1d.Denoise(wave, 1)
	if err != nil {
		panic(err)
	}
	fmt.Printf("%.4f\n", smooth)

	// Output:
	// [0.3333 0.3333 0.3333 9.6667 9.6667 9.6667]
}

func ExampleFilter_DenoiseInto() {
	f := tv1d.NewFilter()
	buf := []float64{1, 2, 3, 4, 5}
	if err := f.DenoiseInto(buf, buf, 0.1); err != nil {
		panic(err)
	}
	fmt.Printf("%.1f\n", buf)

	// Output:
	// [1.1 2.0 3.0 4.0 4.9]
}
