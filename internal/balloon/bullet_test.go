package balloon

import "testing"

func TestBulletRupturesOnContact(t *testing.T) {
	s, err := New(DefaultParams())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	muzzle := Vec2{0, 0.1}
	s.FireBullet(muzzle, s.Params.Center)
	if len(s.Bullets) != 1 {
		t.Fatalf("expected one bullet, got %d", len(s.Bullets))
	}
	if v := s.Bullets[0].Vel.Len(); v < s.Params.BulletSpeed-1e-9 || v > s.Params.BulletSpeed+1e-9 {
		t.Errorf("expected bullet speed %f, got %f", s.Params.BulletSpeed, v)
	}

	for i := 0; i < 200 && s.Phase == PhaseIntact; i++ {
		s.Step(1.0 / 60.0)
	}

	if s.Phase != PhaseRuptured {
		t.Fatal("bullet never ruptured the balloon")
	}
	if len(s.Bullets) != 0 {
		t.Errorf("expected the bullet to be consumed, got %d live", len(s.Bullets))
	}
	for i, sp := range s.Springs {
		if !sp.Broken {
			t.Fatalf("spring %d survived a break-all rupture", i)
		}
	}
}

func TestBulletDespawnsOutOfRange(t *testing.T) {
	p := DefaultParams()
	p.BulletRange = 2
	p.BulletSpeed = 50

	s, err := New(p)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	// Fired away from the balloon: must despawn without rupturing.
	s.FireBullet(Vec2{5, 5}, Vec2{10, 10})
	for i := 0; i < 60; i++ {
		s.Step(1.0 / 60.0)
	}

	if len(s.Bullets) != 0 {
		t.Errorf("expected bullet despawned, got %d live", len(s.Bullets))
	}
	if s.Phase != PhaseIntact {
		t.Error("missed bullet must not rupture the balloon")
	}
}

func TestFireBulletDegenerateDirection(t *testing.T) {
	s, err := New(DefaultParams())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	s.FireBullet(Vec2{1, 1}, Vec2{1, 1})
	if len(s.Bullets) != 0 {
		t.Error("bullet with no direction must be ignored")
	}
}
