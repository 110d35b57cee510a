// Package analysis runs frequency analysis over recorded particle traces,
// e.g. to find the wobble frequency of an intact shell.
package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the single-sided magnitude spectrum of the samples.
func PowerSpectrum(samples []float64) []float64 {
	spectrum := fft.FFTReal(samples)
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the frequency (Hz) of the strongest non-DC
// spectral component of a series sampled every dt seconds.
func DominantFrequency(samples []float64, dt float64) (float64, error) {
	if len(samples) < 4 {
		return 0, fmt.Errorf("analysis: need at least 4 samples, got %d", len(samples))
	}
	if dt <= 0 {
		return 0, fmt.Errorf("analysis: dt must be positive, got %f", dt)
	}

	// Remove the mean so a constant offset does not leak into the low bins.
	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(len(samples))
	centered := make([]float64, len(samples))
	for i, v := range samples {
		centered[i] = v - mean
	}

	ps := PowerSpectrum(centered)
	best, bestMag := 1, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > bestMag {
			best, bestMag = i, ps[i]
		}
	}

	binWidth := 1.0 / (dt * float64(len(samples)))
	return float64(best) * binWidth, nil
}
