package balloon

// integrate advances every particle with a semi-implicit Euler step: the
// velocity update uses the accumulated force, the position update uses the
// new velocity.
func (s *State) integrate(dt float64) {
	for i := range s.Particles {
		p := &s.Particles[i]
		p.Vel = p.Vel.Add(s.forces[i].Scale(dt / p.Mass))
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
	}
}

// resolveCollisions clamps particles to the ground plane and, when bounds
// are configured, to the side walls. The penetrating velocity component is
// reflected with the restitution factor. Runs every step regardless of
// rupture phase.
func (s *State) resolveCollisions() {
	p := &s.Params
	for i := range s.Particles {
		pt := &s.Particles[i]
		if pt.Pos.Y < p.GroundHeight {
			pt.Pos.Y = p.GroundHeight
			if pt.Vel.Y < 0 {
				pt.Vel.Y *= -p.Restitution
			}
		}
		if p.Bounds == nil {
			continue
		}
		if pt.Pos.X < p.Bounds.MinX {
			pt.Pos.X = p.Bounds.MinX
			if pt.Vel.X < 0 {
				pt.Vel.X *= -p.Restitution
			}
		} else if pt.Pos.X > p.Bounds.MaxX {
			pt.Pos.X = p.Bounds.MaxX
			if pt.Vel.X > 0 {
				pt.Vel.X *= -p.Restitution
			}
		}
	}
}
