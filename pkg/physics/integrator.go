package physics

import "fmt"

// Start starts an idle clock at now. A running clock is left alone.
func (b *Body) Start(now float64) {
	if b.clock == clockIdle {
		b.clock = clockRunning
		b.lastStep = now
	}
}

// Step advances the body to the absolute time now using semi-implicit
// (symplectic) Euler: velocity first, then position from the new velocity.
// The first call only starts the clock. Fixed bodies only track the clock.
// A step that would leave velocity or position non-finite returns
// ErrNonFinite and leaves the body unchanged.
func (b *Body) Step(now float64) error {
	if b.clock == clockIdle {
		b.Start(now)
		return nil
	}
	if b.fixed {
		b.lastStep = now
		return nil
	}

	dt := now - b.lastStep
	acc := b.force.Mul(1 / b.mass)
	vel := b.vel.Add(acc.Mul(dt))
	pos := b.pos.Add(vel.Mul(dt))
	if !finite(vel) || !finite(pos) {
		return fmt.Errorf("body %d at t=%g: p=%v v=%v: %w", b.id, now, pos, vel, ErrNonFinite)
	}

	b.lastStep = now
	b.vel, b.pos = vel, pos
	b.trail.Append(b.DisplayPosition())
	return nil
}

// LastStep returns the time of the most recent Step; ok is false until the
// clock has been started.
func (b *Body) LastStep() (t float64, ok bool) {
	return b.lastStep, b.clock == clockRunning
}
