package simulation

import "math"

// Solar-system reference data, SI units.
const (
	EarthMass        = 5.965e24
	EarthRadius      = 6371000.0
	EarthOrbitRadius = 149597870700.0
	EarthVelocity    = 29805.655
	SunMass          = 1.986e30

	// DefaultStepTime is one simulated day per step.
	DefaultStepTime = 24 * 3600.0
)

var (
	// DefaultDensity is the mean density of the Earth.
	DefaultDensity = EarthMass / (4.0 / 3 * math.Pi * math.Pow(EarthRadius, 3))
	// DefaultPositionScale maps one astronomical unit to two display units.
	DefaultPositionScale = 2 / EarthOrbitRadius
	// DefaultRadiusScale draws the Earth with a display radius of 0.01.
	DefaultRadiusScale = 0.01 / EarthRadius
)
