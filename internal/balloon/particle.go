package balloon

// Particle is a point mass, the simulation's basic degree of freedom.
// Particles are index-stable for the lifetime of a State.
type Particle struct {
	Pos  Vec2
	Vel  Vec2
	Mass float64

	// Active reports whether the particle is still held by at least one
	// unbroken spring. Inactive particles are free projectiles.
	Active bool
}

// Spring is a viscoelastic constraint between the particles at indices I
// and J. It is a structural relation, not an owner: breaking a spring never
// removes a particle.
type Spring struct {
	I, J       int
	RestLength float64
	Stiffness  float64
	Damping    float64
	Broken     bool
}

// Layer describes one concentric ring of the initial shell. Layers exist
// only at construction time; afterwards particles are addressed by index.
type Layer struct {
	Radius float64
	Count  int
}

// Bullet is a projectile fired at the balloon. The first bullet to touch a
// particle while the balloon is intact triggers rupture at the contact point.
type Bullet struct {
	Pos    Vec2
	Vel    Vec2
	Radius float64
	Active bool
}
