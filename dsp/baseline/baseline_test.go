package baseline

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func flatWave(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Estimator)
		want   error
	}{
		{"default ok", func(*Estimator) {}, nil},
		{"threshold", func(e *Estimator) { e.Threshold = 0 }, ErrInvalidThreshold},
		{"wait", func(e *Estimator) { e.Wait = 0 }, ErrInvalidWait},
		{"window order", func(e *Estimator) { e.Start = 112 }, ErrInvalidWindow},
		{"negative start", func(e *Estimator) { e.Start = -1 }, ErrInvalidWindow},
		{"min frac", func(e *Estimator) { e.MinFrac = 1.5 }, ErrInvalidMinFrac},
		{"bin width", func(e *Estimator) { e.BinWidth = 0 }, ErrInvalidBinWidth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Default()
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEstimate_Flat(t *testing.T) {
	e := Default()
	res, err := e.Estimate(flatWave(100, 256))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !res.Optimal {
		t.Error("flat waveform should be optimal")
	}
	if res.Value != 100 {
		t.Errorf("Value: got %v, want 100", res.Value)
	}
}

func TestEstimate_Noisy(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	wave := make([]float64, 256)
	for i := range wave {
		wave[i] = 1500 + rng.NormFloat64()*1.5
	}

	e := Default()
	res, err := e.Estimate(wave)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !res.Optimal {
		t.Error("gaussian noise around the pedestal should be optimal")
	}
	if !almostEqual(res.Value, 1500, 1) {
		t.Errorf("Value: got %v, want 1500 +/- 1", res.Value)
	}
}

func TestEstimate_IgnoresPulse(t *testing.T) {
	// A pulse inside the window must not pull the estimate up.
	wave := flatWave(50, 256)
	for i := 60; i < 75; i++ {
		wave[i] = 400
	}

	e := Default()
	res, err := e.Estimate(wave)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !res.Optimal {
		t.Error("expected optimal estimate")
	}
	if res.Value != 50 {
		t.Errorf("Value: got %v, want 50", res.Value)
	}
}

func TestEstimate_NotOptimalFallsBackToSeed(t *testing.T) {
	// Only ten quiet samples; the rest of the window is far outside any
	// band, so the gated mean cannot reach the minimum fraction.
	wave := make([]float64, 112)
	for i := range wave {
		if i < 10 {
			wave[i] = 0
		} else {
			wave[i] = 1000 + float64(i*13)
		}
	}

	e := Default()
	res, err := e.Estimate(wave)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if res.Optimal {
		t.Error("expected non-optimal estimate")
	}
	if res.Value != 0 {
		t.Errorf("fallback value: got %v, want histogram seed 0", res.Value)
	}
}

func TestEstimate_Filtering(t *testing.T) {
	// Alternating +/- spikes around the pedestal defeat a tight gate
	// unless the waveform is denoised first.
	wave := make([]float64, 256)
	for i := range wave {
		wave[i] = 800
		if i%2 == 0 {
			wave[i] += 10
		} else {
			wave[i] -= 10
		}
	}

	e := Default()
	e.Filtering = 20

	res, err := e.Estimate(wave)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if !res.Optimal {
		t.Error("expected optimal estimate after filtering")
	}
	if !almostEqual(res.Value, 800, 1) {
		t.Errorf("Value: got %v, want 800 +/- 1", res.Value)
	}
}

func TestEstimate_FilteringDoesNotMutateInput(t *testing.T) {
	wave := []float64{5, 9, 1, 5, 8, 2, 5, 5, 5, 5, 5, 5}
	backup := append([]float64(nil), wave...)

	e := Default()
	e.Finish = len(wave)
	e.Filtering = 3
	if _, err := e.Estimate(wave); err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	for i := range wave {
		if wave[i] != backup[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestEstimate_ShortWaveform(t *testing.T) {
	e := Default()
	e.Start = 16
	if _, err := e.Estimate(flatWave(1, 10)); !errors.Is(err, ErrShortWaveform) {
		t.Fatalf("got %v, want ErrShortWaveform", err)
	}
}

func TestEstimate_WindowClamp(t *testing.T) {
	// Finish beyond the record is clamped, not an error.
	e := Default()
	res, err := e.Estimate(flatWave(7, 40))
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if res.Value != 7 {
		t.Errorf("Value: got %v, want 7", res.Value)
	}
}

func TestHistogramSeed_FirstMaxWins(t *testing.T) {
	// Two equally populated bins: the lower one is the seed.
	seed := histogramSeed([]float64{0, 0, 3, 3}, 1)
	if seed != 0 {
		t.Errorf("got %v, want 0", seed)
	}
}
