package balloon

// FireBullet spawns a projectile at `from` travelling toward `target` at
// Params.BulletSpeed. Firing at the spawn point itself is ignored.
func (s *State) FireBullet(from, target Vec2) {
	dir := target.Sub(from)
	dist := dir.Len()
	if dist <= distEpsilon {
		return
	}
	s.Bullets = append(s.Bullets, Bullet{
		Pos:    from,
		Vel:    dir.Scale(s.Params.BulletSpeed / dist),
		Radius: s.Params.BulletRadius,
		Active: true,
	})
}

// stepBullets advances live bullets, despawns the ones that left the play
// area, and triggers rupture on the first bullet/particle contact while the
// balloon is intact.
func (s *State) stepBullets(dt float64) {
	for i := range s.Bullets {
		b := &s.Bullets[i]
		if !b.Active {
			continue
		}
		b.Pos = b.Pos.Add(b.Vel.Scale(dt))
		if b.Pos.Dist(s.Params.Center) > s.Params.BulletRange {
			b.Active = false
			continue
		}
		if s.Phase != PhaseIntact {
			continue
		}
		for j := range s.Particles {
			if b.Pos.Dist(s.Particles[j].Pos) < b.Radius+s.Params.ParticleRadius {
				s.rupture(b.Pos)
				b.Active = false
				break
			}
		}
	}

	live := s.Bullets[:0]
	for _, b := range s.Bullets {
		if b.Active {
			live = append(live, b)
		}
	}
	s.Bullets = live
}
