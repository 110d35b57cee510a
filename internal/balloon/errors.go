package balloon

import "errors"

// Construction errors. Simulation itself never fails: degenerate springs and
// out-of-range clicks are handled with guards, not errors.
var (
	// ErrInvalidLayer indicates a layer with negative radius or count.
	ErrInvalidLayer = errors.New("balloon: layer radius and count must be non-negative")

	// ErrNoParticles indicates a layer schedule that produced an empty balloon.
	ErrNoParticles = errors.New("balloon: layer schedule produced no particles")

	// ErrInvalidNeighborRadius indicates a non-positive spring connection radius.
	ErrInvalidNeighborRadius = errors.New("balloon: neighbor radius must be positive")

	// ErrInvalidSpringParams indicates negative stiffness or damping.
	ErrInvalidSpringParams = errors.New("balloon: stiffness and damping must be non-negative")

	// ErrInvalidMass indicates a non-positive particle mass.
	ErrInvalidMass = errors.New("balloon: particle mass must be positive")

	// ErrInvalidRestitution indicates a restitution factor outside [0, 1].
	ErrInvalidRestitution = errors.New("balloon: restitution must be within [0, 1]")

	// ErrInvalidBounds indicates side bounds with MinX >= MaxX.
	ErrInvalidBounds = errors.New("balloon: bounds min must be less than max")
)
