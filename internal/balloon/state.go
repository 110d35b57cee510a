package balloon

import "iter"

// Phase is the rupture state machine: Intact until a hit, Ruptured forever
// after.
type Phase int

const (
	PhaseIntact Phase = iota
	PhaseRuptured
)

func (p Phase) String() string {
	switch p {
	case PhaseIntact:
		return "intact"
	case PhaseRuptured:
		return "ruptured"
	default:
		return "unknown"
	}
}

// distEpsilon guards the unit-vector division for degenerate spring pairs.
const distEpsilon = 1e-9

// State is the single, exclusively owned simulation state. It is not safe
// for concurrent use: Step, HandleClick and FireBullet must be called from
// one goroutine, and readers must run between steps.
type State struct {
	Params    Params
	Particles []Particle
	Springs   []Spring
	Bullets   []Bullet
	Phase     Phase
	Time      float64

	// Per-index force accumulation buffer, reused across steps so a spring
	// pass never aliases two mutable particles.
	forces []Vec2
}

// Step advances the simulation by one tick: bullets, force accumulation,
// semi-implicit Euler integration, then ground/bounds collision. dt is
// clamped to Params.MaxDt.
func (s *State) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if dt > s.Params.MaxDt {
		dt = s.Params.MaxDt
	}

	s.stepBullets(dt)
	s.accumulateForces()
	s.integrate(dt)
	s.resolveCollisions()
	s.Time += dt
}

// Positions yields the current particle positions in index order. The
// sequence reads live state: consume it between steps.
func (s *State) Positions() iter.Seq[Vec2] {
	return func(yield func(Vec2) bool) {
		for i := range s.Particles {
			if !yield(s.Particles[i].Pos) {
				return
			}
		}
	}
}

// Valid reports whether every particle still holds finite values. A false
// result means the integration blew up (dt too large for the stiffness).
func (s *State) Valid() bool {
	for i := range s.Particles {
		if !s.Particles[i].Pos.IsValid() || !s.Particles[i].Vel.IsValid() {
			return false
		}
	}
	return true
}

// Energy returns the total mechanical energy: kinetic plus elastic plus
// gravitational potential relative to the ground plane.
func (s *State) Energy() float64 {
	ref := Vec2{s.Params.Center.X, s.Params.GroundHeight}
	e := 0.0
	for i := range s.Particles {
		p := &s.Particles[i]
		e += 0.5 * p.Mass * p.Vel.LenSq()
		e -= p.Mass * s.Params.Gravity.Dot(p.Pos.Sub(ref))
	}
	for i := range s.Springs {
		sp := &s.Springs[i]
		if sp.Broken {
			continue
		}
		stretch := s.Particles[sp.I].Pos.Dist(s.Particles[sp.J].Pos) - sp.RestLength
		e += 0.5 * sp.Stiffness * stretch * stretch
	}
	return e
}

// refreshActive recomputes the per-particle active flag from unbroken
// spring incidence.
func (s *State) refreshActive() {
	for i := range s.Particles {
		s.Particles[i].Active = false
	}
	for i := range s.Springs {
		if s.Springs[i].Broken {
			continue
		}
		s.Particles[s.Springs[i].I].Active = true
		s.Particles[s.Springs[i].J].Active = true
	}
}
