package simulation

import (
	"errors"
	"fmt"
	"math"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

// DefaultG is the gravitational constant used when none is configured.
const DefaultG = 6.67259e-11

var (
	ErrInvalidG        = errors.New("gravitational constant must be positive and finite")
	ErrInvalidStepTime = errors.New("step time must be positive and finite")
	ErrInvalidWorkers  = errors.New("workers must not be negative")
)

// Config holds the world-wide parameters.
type Config struct {
	Name     string
	G        float64
	StepTime float64
	// Workers > 1 runs the force pass on that many goroutines.
	Workers int
}

// StepStats describes the collision outcome of the most recent Step.
type StepStats struct {
	Fusions  int
	Consumed int
}

// World owns a set of bodies under mutual gravity and advances them by a
// fixed simulated time per Step. It is not safe for concurrent use.
type World struct {
	name     string
	g        float64
	time     float64
	stepTime float64
	workers  int

	bodies []*physics.Body
	nextID uint64
	last   StepStats

	// scratch for the parallel force pass, one row per goroutine
	accum [][]physics.Vec3
}

// NewWorld validates cfg and returns an empty world at t = 0.
func NewWorld(cfg Config) (*World, error) {
	if !(cfg.G > 0) || math.IsInf(cfg.G, 0) {
		return nil, fmt.Errorf("G %g: %w", cfg.G, ErrInvalidG)
	}
	if !(cfg.StepTime > 0) || math.IsInf(cfg.StepTime, 0) {
		return nil, fmt.Errorf("step time %g: %w", cfg.StepTime, ErrInvalidStepTime)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers %d: %w", cfg.Workers, ErrInvalidWorkers)
	}
	return &World{
		name:     cfg.Name,
		g:        cfg.G,
		stepTime: cfg.StepTime,
		workers:  cfg.Workers,
	}, nil
}

// AddBody builds a body from p and registers it. The returned pointer is
// the handle for later state queries; it stays valid until the body is
// consumed by a fusion.
func (w *World) AddBody(p physics.BodyParams) (*physics.Body, error) {
	b, err := physics.NewBody(p)
	if err != nil {
		return nil, err
	}
	w.Add(b)
	return b, nil
}

// Add registers an existing body and starts its clock at the current world
// time, so its next Step integrates over exactly one step time.
func (w *World) Add(b *physics.Body) {
	w.nextID++
	b.SetID(w.nextID)
	b.Start(w.time)
	w.bodies = append(w.bodies, b)
}

// ComputeGravity returns the force on b due to a.
func (w *World) ComputeGravity(a, b *physics.Body) (physics.Vec3, error) {
	return physics.Gravity(w.g, a, b)
}

// Step advances the world by one step time: forces, integration, then the
// collision pass.
//
// Only the force pass fails atomically: its errors are returned before any
// body moves and with the clock untouched. An integration failure
// (ErrNonFinite) is returned after the clock has advanced; the offending
// body is unchanged but bodies before it in the list have already moved.
// A fusion failure is returned after every body has moved, with the body
// list not yet rebuilt. In both later cases the world should be discarded.
func (w *World) Step() error {
	next := w.time + w.stepTime

	for _, b := range w.bodies {
		b.ClearForce()
	}
	var err error
	if w.workers > 1 && len(w.bodies) > 1 {
		err = w.accumulateParallel()
	} else {
		err = w.accumulate()
	}
	if err != nil {
		return fmt.Errorf("step at t=%g: %w", next, err)
	}

	w.time = next
	for _, b := range w.bodies {
		if err := b.Step(w.time); err != nil {
			return fmt.Errorf("integrate: %w", err)
		}
	}

	return w.collide()
}

// accumulate applies each pair's force once to both bodies, i < j.
func (w *World) accumulate() error {
	for i := 0; i < len(w.bodies); i++ {
		a := w.bodies[i]
		for j := i + 1; j < len(w.bodies); j++ {
			b := w.bodies[j]
			f, err := w.ComputeGravity(a, b)
			if err != nil {
				return err
			}
			b.AddForce(f)
			a.AddForce(f.Mul(-1))
		}
	}
	return nil
}

// collide fuses overlapping pairs. A body takes part in at most one fusion
// per step; the first pair found in iteration order wins.
func (w *World) collide() error {
	n := len(w.bodies)
	consumed := make([]bool, n)
	var fused []*physics.Body

	for i := 0; i < n; i++ {
		if consumed[i] {
			continue
		}
		a := w.bodies[i]
		for j := i + 1; j < n; j++ {
			if consumed[j] {
				continue
			}
			b := w.bodies[j]
			if !physics.Collide(a, b) {
				continue
			}
			f, err := physics.Fuse(a, b)
			if err != nil {
				return fmt.Errorf("fuse %v and %v: %w", a, b, err)
			}
			consumed[i], consumed[j] = true, true
			fused = append(fused, f)
			break
		}
	}

	w.last = StepStats{Fusions: len(fused), Consumed: 2 * len(fused)}
	if len(fused) == 0 {
		return nil
	}

	survivors := make([]*physics.Body, 0, n-2*len(fused)+len(fused))
	for i, b := range w.bodies {
		if !consumed[i] {
			survivors = append(survivors, b)
		}
	}
	w.bodies = survivors
	for _, f := range fused {
		w.Add(f)
	}
	return nil
}

// Bodies returns a snapshot of the current body list.
func (w *World) Bodies() []*physics.Body {
	out := make([]*physics.Body, len(w.bodies))
	copy(out, w.bodies)
	return out
}

// Body looks a live body up by id.
func (w *World) Body(id uint64) (*physics.Body, bool) {
	for _, b := range w.bodies {
		if b.ID() == id {
			return b, true
		}
	}
	return nil, false
}

func (w *World) Len() int { return len(w.bodies) }
func (w *World) Name() string { return w.name }
func (w *World) G() float64 { return w.g }
func (w *World) Time() float64 { return w.time }
func (w *World) StepTime() float64 { return w.stepTime }
func (w *World) Workers() int { return w.workers }
func (w *World) LastStep() StepStats { return w.last }
