// Package metrics provides run-level aggregates over the balloon state,
// implementing the sim.Metric interface.
package metrics

import (
	"math"

	"github.com/san-kum/balloonsim/internal/balloon"
)

// Energy averages total mechanical energy over a run.
type Energy struct {
	samples int
	total   float64
}

func NewEnergy() *Energy { return &Energy{} }

func (e *Energy) Name() string { return "energy_avg" }

func (e *Energy) Observe(s *balloon.State, t float64) {
	e.total += s.Energy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// EnergyDrift tracks the worst relative deviation from the initial energy.
// With damping and inelastic ground contact the energy only decays, so a
// large drift is expected after rupture; a growing one while intact and
// airborne signals an unstable dt.
type EnergyDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *balloon.State, t float64) {
	energy := s.Energy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
