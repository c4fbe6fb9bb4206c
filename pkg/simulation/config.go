package simulation

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

// EnvironmentConfig is the JSON description of a scene. Zero scalars fall
// back to the package defaults.
type EnvironmentConfig struct {
	Name          string              `json:"name"`
	G             float64             `json:"g"`
	StepTime      float64             `json:"step_time"`
	Workers       int                 `json:"workers"`
	Density       float64             `json:"density"`
	PositionScale float64             `json:"position_scale"`
	RadiusScale   float64             `json:"radius_scale"`
	Trace         physics.TraceConfig `json:"trace"`
	AutoOrbit     bool                `json:"auto_orbit,omitempty"`
	Bodies        []BodyConfig        `json:"bodies"`
	Populate      *PopulateConfig     `json:"-"`
}

type BodyConfig struct {
	Mass    float64    `json:"mass"`
	Density float64    `json:"density,omitempty"`
	Pos     [3]float64 `json:"pos"`
	Vel     [3]float64 `json:"vel"`
	Fixed   bool       `json:"fixed,omitempty"`
}

// environmentFile defers the populate block so it can be decoded over
// DefaultPopulateConfig.
type environmentFile struct {
	EnvironmentConfig
	Populate json.RawMessage `json:"populate"`
}

func (c EnvironmentConfig) withDefaults() EnvironmentConfig {
	if c.G == 0 {
		c.G = DefaultG
	}
	if c.StepTime == 0 {
		c.StepTime = DefaultStepTime
	}
	d := DefaultBodyDefaults()
	if c.Density == 0 {
		c.Density = d.Density
	}
	if c.PositionScale == 0 {
		c.PositionScale = d.PositionScale
	}
	if c.RadiusScale == 0 {
		c.RadiusScale = d.RadiusScale
	}
	return c
}

// BodyDefaults returns the per-body parameters implied by the environment.
func (c EnvironmentConfig) BodyDefaults() BodyDefaults {
	c = c.withDefaults()
	return BodyDefaults{
		Density:       c.Density,
		PositionScale: c.PositionScale,
		RadiusScale:   c.RadiusScale,
		Trace:         c.Trace,
	}
}

// SetOrbitalVelocities gives every body after the first that has no
// velocity a circular orbit around the first body. The orbital velocity
// points along r × +Y, so a body on -Z starts moving along +X.
func SetOrbitalVelocities(bodies []BodyConfig, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	cPos, cVel := physics.Vec3(central.Pos), physics.Vec3(central.Vel)
	up := physics.Vec3{0, 1, 0}

	for i := 1; i < len(bodies); i++ {
		if bodies[i].Vel != [3]float64{} {
			continue
		}
		r := physics.Vec3(bodies[i].Pos).Sub(cPos)
		d := r.Len()
		if d == 0 {
			continue
		}
		dir := r.Cross(up)
		if dir.Len() == 0 {
			dir = r.Cross(physics.Vec3{0, 0, 1})
		}
		v := math.Sqrt(g * central.Mass / d)
		bodies[i].Vel = [3]float64(cVel.Add(dir.Normalize().Mul(v)))
	}
}

// ParseConfig decodes an environment from JSON.
func ParseConfig(data []byte) (EnvironmentConfig, error) {
	var f environmentFile
	if err := json.Unmarshal(data, &f); err != nil {
		return EnvironmentConfig{}, fmt.Errorf("parse environment: %w", err)
	}
	env := f.EnvironmentConfig
	if len(f.Populate) > 0 && string(f.Populate) != "null" {
		p := DefaultPopulateConfig()
		if err := json.Unmarshal(f.Populate, &p); err != nil {
			return EnvironmentConfig{}, fmt.Errorf("parse populate: %w", err)
		}
		env.Populate = &p
	}
	return env, nil
}

// NewFromConfig builds a world from env: explicit bodies first, then the
// generated population.
func NewFromConfig(env EnvironmentConfig) (*World, error) {
	env = env.withDefaults()
	w, err := NewWorld(Config{
		Name:     env.Name,
		G:        env.G,
		StepTime: env.StepTime,
		Workers:  env.Workers,
	})
	if err != nil {
		return nil, err
	}

	bodies := append([]BodyConfig(nil), env.Bodies...)
	if env.AutoOrbit {
		SetOrbitalVelocities(bodies, env.G)
	}
	d := env.BodyDefaults()
	for i, bc := range bodies {
		p := d.params(bc.Mass, physics.Vec3(bc.Pos), physics.Vec3(bc.Vel))
		if bc.Density != 0 {
			p.Density = bc.Density
		}
		p.Fixed = bc.Fixed
		if _, err := w.AddBody(p); err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
	}

	if env.Populate != nil {
		if err := Populate(w, *env.Populate, d, NewRand(env.Populate.Seed)); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// LoadConfig reads a JSON environment file and builds its world.
func LoadConfig(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read environment %s: %w", path, err)
	}
	env, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	w, err := NewFromConfig(env)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}
