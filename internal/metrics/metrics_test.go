package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/balloonsim/internal/balloon"
)

func singleParticle(t *testing.T, center balloon.Vec2, gravity balloon.Vec2) *balloon.State {
	t.Helper()
	p := balloon.DefaultParams()
	p.Layers = []balloon.Layer{{Radius: 0, Count: 1}}
	p.Center = center
	p.Gravity = gravity
	p.Stiffness = 0
	p.Damping = 0
	s, err := balloon.New(p)
	if err != nil {
		t.Fatalf("new balloon: %v", err)
	}
	return s
}

func TestEnergyAverages(t *testing.T) {
	s := singleParticle(t, balloon.Vec2{Y: 1}, balloon.Vec2{Y: -10})

	m := NewEnergy()
	m.Observe(s, 0) // PE = 10
	s.Particles[0].Pos.Y = 3
	m.Observe(s, 1) // PE = 30

	if math.Abs(m.Value()-20) > 1e-9 {
		t.Errorf("expected average 20, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	s := singleParticle(t, balloon.Vec2{Y: 2}, balloon.Vec2{Y: -10})

	m := NewEnergyDrift()
	m.Observe(s, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift on first sample, got %f", m.Value())
	}

	s.Particles[0].Pos.Y = 1 // energy halves
	m.Observe(s, 1)
	if math.Abs(m.Value()-0.5) > 1e-9 {
		t.Errorf("expected drift 0.5, got %f", m.Value())
	}

	// Drift is a high-water mark.
	s.Particles[0].Pos.Y = 2
	m.Observe(s, 2)
	if math.Abs(m.Value()-0.5) > 1e-9 {
		t.Errorf("expected drift to stay at 0.5, got %f", m.Value())
	}
}

func TestDispersalGrowsAfterRupture(t *testing.T) {
	s, err := balloon.New(balloon.DefaultParams())
	if err != nil {
		t.Fatalf("new balloon: %v", err)
	}

	m := NewDispersal()
	m.Observe(s, 0)
	if math.Abs(m.Value()-1) > 1e-9 {
		t.Errorf("expected dispersal 1 at start, got %f", m.Value())
	}

	// Blow the particles outward by hand.
	for i := range s.Particles {
		dir := s.Particles[i].Pos.Sub(s.Params.Center)
		s.Particles[i].Pos = s.Particles[i].Pos.Add(dir.Scale(3))
	}
	m.Observe(s, 1)

	if m.Value() < 2 {
		t.Errorf("expected dispersal well above 1, got %f", m.Value())
	}
}

func TestPeakSpeed(t *testing.T) {
	s := singleParticle(t, balloon.Vec2{Y: 1}, balloon.Vec2{})

	m := NewPeakSpeed()
	s.Particles[0].Vel = balloon.Vec2{X: 3, Y: 4}
	m.Observe(s, 0)
	s.Particles[0].Vel = balloon.Vec2{X: 1}
	m.Observe(s, 1)

	if math.Abs(m.Value()-5) > 1e-9 {
		t.Errorf("expected peak speed 5, got %f", m.Value())
	}
}
