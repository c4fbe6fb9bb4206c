package physics

// Collide reports whether a and b overlap in display space. The scale
// factors of a are used for both bodies.
func Collide(a, b *Body) bool {
	return Distance(a, b)*a.posScale < (a.radius+b.radius)*a.radiusScale
}

// Fuse builds the body that replaces a and b after an inelastic collision.
// Mass is summed and density is mass weighted. A fixed input absorbs the
// other one in place; otherwise position and velocity are the barycentric
// averages, which conserves momentum.
func Fuse(a, b *Body) (*Body, error) {
	m := a.mass + b.mass
	wa, wb := a.mass/m, b.mass/m

	p := BodyParams{
		Mass:          m,
		Density:       a.density*wa + b.density*wb,
		PositionScale: a.posScale,
		RadiusScale:   a.radiusScale,
		Trace:         a.trace,
	}
	switch {
	case a.fixed:
		p.Fixed = true
		p.Position = a.pos
	case b.fixed:
		p.Fixed = true
		p.Position = b.pos
	default:
		p.Position = a.pos.Mul(wa).Add(b.pos.Mul(wb))
		p.Velocity = a.vel.Mul(wa).Add(b.vel.Mul(wb))
	}
	return NewBody(p)
}
