package balloon

// HandleClick feeds one click into the rupture state machine. A click
// inside the bounding circle of the active particles (widened by
// Params.HitPadding) while intact ruptures the balloon; anything else is a
// no-op. Returns true when the click caused the rupture.
func (s *State) HandleClick(p Vec2) bool {
	if s.Phase != PhaseIntact {
		return false
	}
	center, radius, ok := s.boundingCircle()
	if !ok {
		return false
	}
	if p.Dist(center) > radius+s.Params.HitPadding {
		return false
	}
	s.rupture(p)
	return true
}

// boundingCircle returns the centroid of the active particles and the
// distance to the farthest one. Falls back to all particles when none are
// active (a balloon built with no springs).
func (s *State) boundingCircle() (Vec2, float64, bool) {
	var sum Vec2
	n := 0
	for i := range s.Particles {
		if !s.Particles[i].Active {
			continue
		}
		sum = sum.Add(s.Particles[i].Pos)
		n++
	}
	if n == 0 {
		for i := range s.Particles {
			sum = sum.Add(s.Particles[i].Pos)
		}
		n = len(s.Particles)
	}
	if n == 0 {
		return Vec2{}, 0, false
	}

	center := sum.Scale(1 / float64(n))
	radius := 0.0
	for i := range s.Particles {
		if !s.Particles[i].Active && n != len(s.Particles) {
			continue
		}
		if d := center.Dist(s.Particles[i].Pos); d > radius {
			radius = d
		}
	}
	return center, radius, true
}

// rupture transitions Intact -> Ruptured, breaking springs according to the
// configured policy. The transition is terminal.
func (s *State) rupture(at Vec2) {
	for i := range s.Springs {
		sp := &s.Springs[i]
		if sp.Broken {
			continue
		}
		if s.Params.Policy == BreakRadial {
			mid := s.Particles[sp.I].Pos.Add(s.Particles[sp.J].Pos).Scale(0.5)
			if mid.Dist(at) > s.Params.BlastRadius {
				continue
			}
		}
		sp.Broken = true
	}
	s.refreshActive()
	s.Phase = PhaseRuptured
}
