package physics

import "errors"

// Precondition violations. They are never recoverable inside a step; the
// driver is expected to stop.
var (
	ErrInvalidMass      = errors.New("mass must be positive and finite")
	ErrInvalidDensity   = errors.New("density must be positive and finite")
	ErrInvalidScale     = errors.New("scale factors must be positive and finite")
	ErrInvalidTrace     = errors.New("trail capacity must be positive")
	ErrNonFinite        = errors.New("non-finite vector")
	ErrCoincidentBodies = errors.New("coincident bodies")
	ErrFixedBody        = errors.New("body is fixed")
)
