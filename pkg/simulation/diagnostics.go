package simulation

import "github.com/ssine/galaxy-simulator/pkg/physics"

// TotalMass is Σ mᵢ in kilograms.
func (w *World) TotalMass() float64 {
	m := 0.0
	for _, b := range w.bodies {
		m += b.Mass()
	}
	return m
}

// Momentum is the total linear momentum Σ mᵢvᵢ.
func (w *World) Momentum() physics.Vec3 {
	var p physics.Vec3
	for _, b := range w.bodies {
		p = p.Add(b.Momentum())
	}
	return p
}

// CenterOfMass returns the barycenter; ok is false for an empty world.
func (w *World) CenterOfMass() (c physics.Vec3, ok bool) {
	m := w.TotalMass()
	if m == 0 {
		return physics.Vec3{}, false
	}
	for _, b := range w.bodies {
		c = c.Add(b.Position().Mul(b.Mass()))
	}
	return c.Mul(1 / m), true
}

// KineticEnergy is Σ ½mᵢ|vᵢ|².
func (w *World) KineticEnergy() float64 {
	e := 0.0
	for _, b := range w.bodies {
		e += b.KineticEnergy()
	}
	return e
}

// PotentialEnergy is -Σ G mᵢmⱼ/rᵢⱼ over unordered pairs.
func (w *World) PotentialEnergy() float64 {
	e := 0.0
	for i := 0; i < len(w.bodies); i++ {
		for j := i + 1; j < len(w.bodies); j++ {
			d := physics.Distance(w.bodies[i], w.bodies[j])
			if d > 0 {
				e -= w.g * w.bodies[i].Mass() * w.bodies[j].Mass() / d
			}
		}
	}
	return e
}
