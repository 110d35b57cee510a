package balloon

import (
	"fmt"
	"math"
)

// Default physical constants. Distances are in meters, masses in kilograms.
const (
	DefaultStiffness   = 300.0
	DefaultDamping     = 2.0
	DefaultMass        = 1.0
	DefaultRestitution = 0.3
	DefaultMaxDt       = 1.0 / 30.0
)

// RupturePolicy selects which springs break when the balloon ruptures.
type RupturePolicy int

const (
	// BreakAll breaks every spring; all particles become projectiles.
	BreakAll RupturePolicy = iota

	// BreakRadial breaks only springs whose midpoint lies within
	// Params.BlastRadius of the hit point.
	BreakRadial
)

// Bounds are optional vertical side walls.
type Bounds struct {
	MinX, MaxX float64
}

// Params fully describes a balloon construction. All fields are plain
// configuration; New validates them once and the hot loop trusts them.
type Params struct {
	Center Vec2
	Layers []Layer

	// NeighborRadius connects every particle pair closer than this with a
	// spring. It must be large enough that the resulting graph is connected
	// (around twice the ring spacing); this is a documented precondition,
	// not checked at runtime.
	NeighborRadius float64

	Stiffness float64
	Damping   float64
	Mass      float64

	Gravity      Vec2
	GroundHeight float64
	Restitution  float64
	Bounds       *Bounds

	// HitPadding widens the bounding-circle hit test for clicks.
	HitPadding  float64
	Policy      RupturePolicy
	BlastRadius float64

	ParticleRadius float64
	BulletSpeed    float64
	BulletRadius   float64
	BulletRange    float64

	// MaxDt caps the per-frame timestep so a frame hitch cannot blow up
	// the integration.
	MaxDt float64
}

// DefaultParams returns a balloon of roughly 0.6m radius hovering above a
// ground plane at y=0.
func DefaultParams() Params {
	return Params{
		Center:         Vec2{0, 1.5},
		Layers:         RingSchedule(0.6, 0.08),
		NeighborRadius: 0.17,
		Stiffness:      DefaultStiffness,
		Damping:        DefaultDamping,
		Mass:           DefaultMass,
		Gravity:        Vec2{0, -9.8},
		GroundHeight:   0,
		Restitution:    DefaultRestitution,
		HitPadding:     0.1,
		Policy:         BreakAll,
		BlastRadius:    0.25,
		ParticleRadius: 0.03,
		BulletSpeed:    8,
		BulletRadius:   0.05,
		BulletRange:    20,
		MaxDt:          DefaultMaxDt,
	}
}

// RingSchedule fills a disc of the given radius with concentric rings
// spaced `spacing` apart, sizing each ring so its particles sit roughly
// `spacing` apart along the circumference.
func RingSchedule(radius, spacing float64) []Layer {
	var layers []Layer
	if spacing <= 0 || radius < 0 {
		return layers
	}
	for r := 0.0; r <= radius+spacing/2; r += spacing {
		count := int(2 * math.Pi * r / spacing)
		if r == 0 {
			count = 1
		} else if count < 6 {
			count = 6
		}
		layers = append(layers, Layer{Radius: r, Count: count})
	}
	return layers
}

func (p Params) validate() error {
	for i, l := range p.Layers {
		if l.Radius < 0 || l.Count < 0 {
			return fmt.Errorf("layer %d (r=%g, n=%d): %w", i, l.Radius, l.Count, ErrInvalidLayer)
		}
	}
	if p.NeighborRadius <= 0 {
		return ErrInvalidNeighborRadius
	}
	if p.Stiffness < 0 || p.Damping < 0 {
		return ErrInvalidSpringParams
	}
	if p.Mass <= 0 {
		return ErrInvalidMass
	}
	if p.Restitution < 0 || p.Restitution > 1 {
		return ErrInvalidRestitution
	}
	if p.Bounds != nil && p.Bounds.MinX >= p.Bounds.MaxX {
		return ErrInvalidBounds
	}
	return nil
}

// New builds the initial particle shell and spring network. Construction is
// deterministic: particles are laid out ring by ring at
// center + r_k*(cos θ, sin θ), and every pair closer than NeighborRadius is
// connected by a spring whose rest length is their initial distance.
func New(p Params) (*State, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if p.MaxDt <= 0 {
		p.MaxDt = DefaultMaxDt
	}

	s := &State{Params: p, Phase: PhaseIntact}
	for _, l := range p.Layers {
		for i := 0; i < l.Count; i++ {
			theta := 2 * math.Pi * float64(i) / float64(l.Count)
			pos := p.Center.Add(Vec2{l.Radius * math.Cos(theta), l.Radius * math.Sin(theta)})
			s.Particles = append(s.Particles, Particle{Pos: pos, Mass: p.Mass})
		}
	}
	if len(s.Particles) == 0 {
		return nil, ErrNoParticles
	}

	for i := range s.Particles {
		for j := i + 1; j < len(s.Particles); j++ {
			dist := s.Particles[i].Pos.Dist(s.Particles[j].Pos)
			// Coincident particles get no spring: rest length must be > 0.
			if dist <= distEpsilon || dist >= p.NeighborRadius {
				continue
			}
			s.Springs = append(s.Springs, Spring{
				I:          i,
				J:          j,
				RestLength: dist,
				Stiffness:  p.Stiffness,
				Damping:    p.Damping,
			})
		}
	}

	s.forces = make([]Vec2, len(s.Particles))
	s.refreshActive()
	return s, nil
}
