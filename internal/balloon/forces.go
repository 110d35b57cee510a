package balloon

// accumulateForces fills s.forces with the net force per particle: gravity
// on everything, plus elastic and axial damping terms for every unbroken
// spring. Spring contributions are applied equal and opposite, so internal
// forces sum to zero.
func (s *State) accumulateForces() {
	for i := range s.forces {
		s.forces[i] = Vec2{}
	}

	for i := range s.Springs {
		sp := &s.Springs[i]
		if sp.Broken {
			continue
		}
		a := &s.Particles[sp.I]
		b := &s.Particles[sp.J]

		delta := b.Pos.Sub(a.Pos)
		dist := delta.Len()
		if dist <= distEpsilon {
			// Degenerate pair: the unit vector is undefined, so the spring
			// contributes nothing this step. Required guard, not an
			// optimization.
			continue
		}
		n := delta.Scale(1 / dist)

		// Hooke term pulls the pair back toward the rest length.
		stretch := dist - sp.RestLength
		mag := sp.Stiffness * stretch

		// Viscous term damps relative motion along the spring axis only.
		vrel := b.Vel.Sub(a.Vel)
		mag += sp.Damping * vrel.Dot(n)

		f := n.Scale(mag)
		s.forces[sp.I] = s.forces[sp.I].Add(f)
		s.forces[sp.J] = s.forces[sp.J].Sub(f)
	}

	for i := range s.Particles {
		s.forces[i] = s.forces[i].Add(s.Params.Gravity.Scale(s.Particles[i].Mass))
	}
}
