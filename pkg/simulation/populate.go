package simulation

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

const (
	ShapeFlat   = "flat"
	ShapeSphere = "sphere"
)

// Float64er is the part of a random source the generators need.
type Float64er interface {
	Float64() float64
}

// BodyDefaults are the per-body parameters shared by generated bodies.
type BodyDefaults struct {
	Density       float64
	PositionScale float64
	RadiusScale   float64
	Trace         physics.TraceConfig
}

func DefaultBodyDefaults() BodyDefaults {
	return BodyDefaults{
		Density:       DefaultDensity,
		PositionScale: DefaultPositionScale,
		RadiusScale:   DefaultRadiusScale,
	}
}

func (d BodyDefaults) params(mass float64, pos, vel physics.Vec3) physics.BodyParams {
	return physics.BodyParams{
		Mass:          mass,
		Density:       d.Density,
		Position:      pos,
		Velocity:      vel,
		PositionScale: d.PositionScale,
		RadiusScale:   d.RadiusScale,
		Trace:         d.Trace,
	}
}

// PopulateConfig describes a random planet cloud around the origin.
// Distances are in units of the Earth orbit radius, speeds in units of the
// Earth orbital speed.
type PopulateConfig struct {
	Count          int     `json:"count"`
	SpawnRadius    float64 `json:"spawn_radius"`
	PlanetMass     float64 `json:"planet_mass"`
	PlanetVelocity float64 `json:"planet_velocity"`
	Shape          string  `json:"shape"`
	Sun            bool    `json:"sun"`
	Earth          bool    `json:"earth"`
	Seed           uint64  `json:"seed"`
}

func DefaultPopulateConfig() PopulateConfig {
	return PopulateConfig{
		Count:          3000,
		SpawnRadius:    1.5,
		PlanetMass:     500,
		PlanetVelocity: 0.5,
		Shape:          ShapeFlat,
		Seed:           1,
	}
}

// NewRand returns the generator used for population, seeded for
// reproducible scenes.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// AddSun places a fixed, ten times denser sun at the origin.
func AddSun(w *World, d BodyDefaults) (*physics.Body, error) {
	p := d.params(SunMass, physics.Vec3{}, physics.Vec3{})
	p.Density *= 10
	p.Fixed = true
	return w.AddBody(p)
}

// AddEarth places the Earth on its orbit along -Z moving along +X.
func AddEarth(w *World, d BodyDefaults) (*physics.Body, error) {
	return w.AddBody(d.params(EarthMass,
		physics.Vec3{0, 0, -EarthOrbitRadius},
		physics.Vec3{EarthVelocity, 0, 0}))
}

// RandomInSphereShell returns a point between the inner and outer radius.
// The radius is uniform, the latitude uniform in [-π/2, π/2).
func RandomInSphereShell(rng Float64er, inner, outer float64) physics.Vec3 {
	r := rng.Float64()*(outer-inner) + inner
	theta := rng.Float64() * math.Pi * 2
	phi := (rng.Float64() - 0.5) * math.Pi
	rSin, rCos := r*math.Sin(phi), r*math.Cos(phi)
	return physics.Vec3{rCos * math.Cos(theta), rSin, rCos * math.Sin(theta)}
}

// RandomInEllipsoid samples uniformly inside the ellipsoid with semi-axes
// a, b, c by rejection. A zero semi-axis collapses that coordinate.
func RandomInEllipsoid(rng Float64er, a, b, c float64) physics.Vec3 {
	for {
		x := (rng.Float64() - 0.5) * a * 2
		y := (rng.Float64() - 0.5) * b * 2
		z := (rng.Float64() - 0.5) * c * 2
		if axisTerm(x, a)+axisTerm(y, b)+axisTerm(z, c) < 1 {
			return physics.Vec3{x, y, z}
		}
	}
}

func axisTerm(v, axis float64) float64 {
	if axis == 0 {
		return 0
	}
	return v * v / axis / axis
}

// positiveMass scales a uniform draw, redrawing the zero edge.
func positiveMass(rng Float64er, limit float64) float64 {
	for {
		if m := rng.Float64() * limit; m > 0 {
			return m
		}
	}
}

// Populate adds the configured sun, earth and random cloud to w.
func Populate(w *World, cfg PopulateConfig, d BodyDefaults, rng Float64er) error {
	if cfg.Count < 0 {
		return fmt.Errorf("populate count %d must not be negative", cfg.Count)
	}
	if cfg.Count > 0 && (!(cfg.SpawnRadius > 0) || math.IsInf(cfg.SpawnRadius, 0)) {
		return fmt.Errorf("spawn radius %g must be positive and finite", cfg.SpawnRadius)
	}
	if cfg.Count > 0 && cfg.Shape != ShapeSphere && !(cfg.PlanetMass > 0) {
		return fmt.Errorf("planet mass %g: %w", cfg.PlanetMass, physics.ErrInvalidMass)
	}
	if cfg.Sun {
		if _, err := AddSun(w, d); err != nil {
			return fmt.Errorf("add sun: %w", err)
		}
	}
	if cfg.Earth {
		if _, err := AddEarth(w, d); err != nil {
			return fmt.Errorf("add earth: %w", err)
		}
	}

	switch cfg.Shape {
	case ShapeFlat, "":
		pa := EarthOrbitRadius * cfg.SpawnRadius * 2
		pc := pa / 6
		va := EarthVelocity * cfg.PlanetVelocity * 2
		vc := va / 6
		for i := 0; i < cfg.Count; i++ {
			p := d.params(
				positiveMass(rng, EarthMass*cfg.PlanetMass*2),
				RandomInEllipsoid(rng, pa, pc, pa),
				RandomInEllipsoid(rng, va, vc, va),
			)
			if _, err := w.AddBody(p); err != nil {
				return fmt.Errorf("add planet %d: %w", i, err)
			}
		}
	case ShapeSphere:
		for i := 0; i < cfg.Count; i++ {
			p := d.params(
				positiveMass(rng, EarthMass*1000),
				RandomInSphereShell(rng, EarthOrbitRadius*0.3, EarthOrbitRadius*cfg.SpawnRadius*2),
				RandomInSphereShell(rng, EarthVelocity*0.1, EarthVelocity*cfg.PlanetVelocity*2),
			)
			if _, err := w.AddBody(p); err != nil {
				return fmt.Errorf("add planet %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("unknown spawn shape %q", cfg.Shape)
	}
	return nil
}
