// Package sim drives a balloon simulation through fixed-size steps, with
// pluggable metrics and observers, for headless runs and frontends alike.
package sim

import (
	"github.com/san-kum/balloonsim/internal/balloon"
)

// Metric aggregates a scalar over a run.
type Metric interface {
	Name() string
	Observe(s *balloon.State, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed step.
type Observer interface {
	OnStep(s *balloon.State, t float64)
}

// Config controls one run.
type Config struct {
	Dt       float64
	Duration float64

	// FrameEvery records a position snapshot every Nth step; 0 disables
	// frame recording.
	FrameEvery int

	// RuptureAt schedules a click at the given simulation time; negative
	// disables it.
	RuptureAt    float64
	RupturePoint balloon.Vec2

	// ValidateState stops the run when the state picks up NaN/Inf.
	ValidateState bool
}

// DefaultConfig runs ten simulated seconds at 60Hz, rupturing the balloon
// at its center after one second.
func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60.0,
		Duration:      10.0,
		FrameEvery:    1,
		RuptureAt:     1.0,
		ValidateState: true,
	}
}

// Result collects the output of a run.
type Result struct {
	Times      []float64
	Frames     [][]balloon.Vec2
	Metrics    map[string]float64
	StepsTaken int
	FinalPhase balloon.Phase
	Errors     []error
}
