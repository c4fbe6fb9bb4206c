package physics

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 is an immutable 3D vector value. Every operation returns a new
// vector, so a force applied to one body can never alias another's.
type Vec3 = mgl64.Vec3

// BodyParams carries everything needed to build a Body. Zero scale factors
// and a zero Trace mean "use the default".
type BodyParams struct {
	Mass          float64
	Density       float64
	Position      Vec3
	Velocity      Vec3
	Fixed         bool
	PositionScale float64
	RadiusScale   float64
	Trace         TraceConfig
}

type clockState uint8

const (
	clockIdle clockState = iota
	clockRunning
)

// Body is a point mass with a density-derived radius and a trail of past
// display positions.
type Body struct {
	id      uint64
	mass    float64
	density float64
	radius  float64

	pos   Vec3
	vel   Vec3
	force Vec3
	fixed bool

	posScale    float64
	radiusScale float64
	trace       TraceConfig

	clock    clockState
	lastStep float64

	trail *Trail
}

// NewBody validates p and builds a body with an idle clock; the first Step
// only starts it. The trail is seeded with the initial display position.
func NewBody(p BodyParams) (*Body, error) {
	if !(p.Mass > 0) || math.IsInf(p.Mass, 0) {
		return nil, fmt.Errorf("mass %g: %w", p.Mass, ErrInvalidMass)
	}
	if !(p.Density > 0) || math.IsInf(p.Density, 0) {
		return nil, fmt.Errorf("density %g: %w", p.Density, ErrInvalidDensity)
	}
	if !finite(p.Position) || !finite(p.Velocity) {
		return nil, fmt.Errorf("initial state %v %v: %w", p.Position, p.Velocity, ErrNonFinite)
	}
	posScale, err := scaleOrDefault(p.PositionScale)
	if err != nil {
		return nil, fmt.Errorf("position scale: %w", err)
	}
	radiusScale, err := scaleOrDefault(p.RadiusScale)
	if err != nil {
		return nil, fmt.Errorf("radius scale: %w", err)
	}
	trace := p.Trace.withDefaults()
	trail, err := NewTrail(trace.Num, trace.Prelocate)
	if err != nil {
		return nil, err
	}

	b := &Body{
		mass:        p.Mass,
		density:     p.Density,
		radius:      Radius(p.Mass, p.Density),
		pos:         p.Position,
		vel:         p.Velocity,
		fixed:       p.Fixed,
		posScale:    posScale,
		radiusScale: radiusScale,
		trace:       trace,
		trail:       trail,
	}
	if b.fixed {
		b.vel = Vec3{}
	}
	trail.Append(b.DisplayPosition())
	return b, nil
}

// Radius of a sphere of the given mass and density.
func Radius(mass, density float64) float64 {
	return math.Cbrt(3 * mass / (4 * math.Pi * density))
}

func scaleOrDefault(s float64) (float64, error) {
	if s == 0 {
		return 1, nil
	}
	if !(s > 0) || math.IsInf(s, 0) {
		return 0, fmt.Errorf("%g: %w", s, ErrInvalidScale)
	}
	return s, nil
}

func finite(v Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ClearForce zeroes the accumulated force before a new force pass.
func (b *Body) ClearForce() {
	b.force = Vec3{}
}

// AddForce accumulates f into the force of the current step.
func (b *Body) AddForce(f Vec3) {
	b.force = b.force.Add(f)
}

// SetVelocity replaces the velocity of a movable body.
func (b *Body) SetVelocity(v Vec3) error {
	if b.fixed {
		return ErrFixedBody
	}
	if !finite(v) {
		return fmt.Errorf("velocity %v: %w", v, ErrNonFinite)
	}
	b.vel = v
	return nil
}

// SetID is used by the world when the body is registered.
func (b *Body) SetID(id uint64) { b.id = id }

// --- Accessors ---

func (b *Body) ID() uint64 { return b.id }
func (b *Body) Mass() float64 { return b.mass }
func (b *Body) Density() float64 { return b.density }
func (b *Body) Radius() float64 { return b.radius }
func (b *Body) Position() Vec3 { return b.pos }
func (b *Body) Velocity() Vec3 { return b.vel }
func (b *Body) Force() Vec3 { return b.force }
func (b *Body) Fixed() bool { return b.fixed }
func (b *Body) PositionScale() float64 { return b.posScale }
func (b *Body) RadiusScale() float64 { return b.radiusScale }
func (b *Body) TraceConfig() TraceConfig {
	return b.trace
}

// Trail is the read-only history of display positions.
func (b *Body) Trail() *Trail { return b.trail }

// Started reports whether the body clock has been initialised.
func (b *Body) Started() bool { return b.clock == clockRunning }

// DisplayPosition is the position in display space.
func (b *Body) DisplayPosition() Vec3 {
	return b.pos.Mul(b.posScale)
}

// Sync is an alias of DisplayPosition kept for renderers that copy the
// display position into their own scene objects once per frame.
func (b *Body) Sync() Vec3 { return b.DisplayPosition() }

// DisplayRadius is the radius in display space.
func (b *Body) DisplayRadius() float64 {
	return b.radius * b.radiusScale
}

// Momentum is m·v in SI units.
func (b *Body) Momentum() Vec3 {
	return b.vel.Mul(b.mass)
}

// KineticEnergy is ½·m·|v|² in joules.
func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.mass * b.vel.Dot(b.vel)
}

func (b *Body) String() string {
	return fmt.Sprintf("body#%d{m=%.3e r=%.3e p=%v v=%v fixed=%v}", b.id, b.mass, b.radius, b.pos, b.vel, b.fixed)
}
