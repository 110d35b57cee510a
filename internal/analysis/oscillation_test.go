package analysis

import (
	"math"
	"testing"
)

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	dt := 1.0 / 64.0
	samples := sine(4.0, dt, 256)

	got, err := DominantFrequency(samples, dt)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	binWidth := 1.0 / (dt * 256)
	if math.Abs(got-4.0) > binWidth {
		t.Errorf("expected ~4 Hz, got %f", got)
	}
}

func TestDominantFrequencyIgnoresOffset(t *testing.T) {
	dt := 1.0 / 64.0
	samples := sine(2.0, dt, 256)
	for i := range samples {
		samples[i] += 100 // large DC offset
	}

	got, err := DominantFrequency(samples, dt)
	if err != nil {
		t.Fatalf("analysis failed: %v", err)
	}

	binWidth := 1.0 / (dt * 256)
	if math.Abs(got-2.0) > binWidth {
		t.Errorf("expected ~2 Hz despite offset, got %f", got)
	}
}

func TestDominantFrequencyErrors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2}, 0.1); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := DominantFrequency(make([]float64, 16), 0); err == nil {
		t.Error("expected error for zero dt")
	}
}

func TestPowerSpectrumLength(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 128))
	if len(ps) != 64 {
		t.Errorf("expected 64 bins, got %d", len(ps))
	}
}
