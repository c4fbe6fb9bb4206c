package physics

import "fmt"

// Gravity returns the Newtonian force on b due to a. It points from b
// toward a with magnitude g*ma*mb/d².
func Gravity(g float64, a, b *Body) (Vec3, error) {
	dir := a.pos.Sub(b.pos)
	d := dir.Len()
	if d == 0 {
		return Vec3{}, fmt.Errorf("%v and %v at %v: %w", a, b, a.pos, ErrCoincidentBodies)
	}
	f := dir.Mul(1 / d).Mul(g * a.mass * b.mass / (d * d))
	if !finite(f) {
		return Vec3{}, fmt.Errorf("gravity between %v and %v: %w", a, b, ErrNonFinite)
	}
	return f, nil
}

// Distance between the physical positions of a and b.
func Distance(a, b *Body) float64 {
	return a.pos.Sub(b.pos).Len()
}
