package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-waveform/dsp/core"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSine(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))
	out, err := g.Sine(250, 1, 8)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}
	// 250 Hz at 1 kHz: period of 4 samples [0, 1, 0, -1].
	want := []float64{0, 1, 0, -1, 0, 1, 0, -1}
	for i := range want {
		if !almostEqual(out[i], want[i], 1e-9) {
			t.Errorf("sample %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestSine_Invalid(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Sine(100, 1, 0); err == nil {
		t.Error("samples=0 should fail")
	}
}

func TestWhiteNoise(t *testing.T) {
	g := NewGeneratorWithOptions(nil, WithSeed(7))
	out, err := g.WhiteNoise(0.5, 256)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}
	for i, v := range out {
		if v < -0.5 || v > 0.5 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}

	// Same seed reproduces the same sequence.
	g2 := NewGeneratorWithOptions(nil, WithSeed(7))
	out2, err := g2.WhiteNoise(0.5, 256)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}
	for i := range out {
		if out[i] != out2[i] {
			t.Fatalf("sample %d not reproducible: %v != %v", i, out[i], out2[i])
		}
	}
}

func TestWhiteNoise_Invalid(t *testing.T) {
	g := NewGenerator()
	if _, err := g.WhiteNoise(-1, 16); err == nil {
		t.Error("negative amplitude should fail")
	}
	if _, err := g.WhiteNoise(1, 0); err == nil {
		t.Error("samples=0 should fail")
	}
}

func TestPulse(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(62.5e6))
	out, err := g.Pulse(100, 1e-6, 10e-9, 1e-6, 1024)
	if err != nil {
		t.Fatalf("Pulse: %v", err)
	}

	// Flat zero before the delay (1 us = 62.5 ticks).
	for i := range 62 {
		if out[i] != 0 {
			t.Fatalf("pre-delay sample %d: got %v, want 0", i, out[i])
		}
	}

	// Peak close to the requested amplitude (sampling misses the exact
	// peak time, so allow a small undershoot).
	peak := 0.0
	peakPos := 0
	for i, v := range out {
		if v > peak {
			peak = v
			peakPos = i
		}
	}
	if peak > 100+eps || peak < 95 {
		t.Errorf("peak: got %v, want close to 100", peak)
	}
	if peakPos < 62 || peakPos > 80 {
		t.Errorf("peak position: got %d, want shortly after tick 62", peakPos)
	}

	// Decay: amplitude falls off after the peak.
	if out[peakPos+200] >= out[peakPos] {
		t.Error("pulse does not decay after the peak")
	}
}

func TestPulse_Invalid(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Pulse(1, 0, 1e-6, 1e-6, 64); err == nil {
		t.Error("decayTau == riseTau should fail")
	}
	if _, err := g.Pulse(1, -1, 1e-9, 1e-6, 64); err == nil {
		t.Error("negative delay should fail")
	}
	if _, err := g.Pulse(1, 0, 1e-9, 1e-6, 0); err == nil {
		t.Error("samples=0 should fail")
	}
}

func TestPlateaus(t *testing.T) {
	out, err := Plateaus([]float64{1, -2, 0.5}, 3)
	if err != nil {
		t.Fatalf("Plateaus: %v", err)
	}
	want := []float64{1, 1, 1, -2, -2, -2, 0.5, 0.5, 0.5}
	if len(out) != len(want) {
		t.Fatalf("length: got %d, want %d", len(out), len(want))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("sample %d: got %v, want %v", i, out[i], want[i])
		}
	}
}

func TestPlateaus_Invalid(t *testing.T) {
	if _, err := Plateaus(nil, 4); err == nil {
		t.Error("no levels should fail")
	}
	if _, err := Plateaus([]float64{1}, 0); err == nil {
		t.Error("segLen=0 should fail")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]float64{1, -4, 2}, 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []float64{0.25, -1, 0.5}
	for i := range want {
		if !almostEqual(out[i], want[i], eps) {
			t.Errorf("sample %d: got %v, want %v", i, out[i], want[i])
		}
	}

	// All-zero input stays zero.
	out, err = Normalize([]float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if out[0] != 0 || out[1] != 0 {
		t.Errorf("zero input: got %v", out)
	}
}

func TestNormalize_Invalid(t *testing.T) {
	if _, err := Normalize(nil, 1); err == nil {
		t.Error("empty input should fail")
	}
	if _, err := Normalize([]float64{1}, -1); err == nil {
		t.Error("negative target should fail")
	}
}
