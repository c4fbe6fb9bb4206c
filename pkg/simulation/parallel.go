package simulation

import (
	"sync"

	"github.com/dgravesa/go-parallel/parallel"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

// accumulateParallel splits the rows of the pair triangle across goroutines.
// Each goroutine writes only to its own accumulator row; the rows are summed
// into the bodies afterwards in goroutine order.
func (w *World) accumulateParallel() error {
	n := len(w.bodies)
	if len(w.accum) != w.workers {
		w.accum = make([][]physics.Vec3, w.workers)
	}
	for g := range w.accum {
		if cap(w.accum[g]) < n {
			w.accum[g] = make([]physics.Vec3, n)
		}
		w.accum[g] = w.accum[g][:n]
		clear(w.accum[g])
	}

	var (
		mu       sync.Mutex
		firstErr error
		firstRow = n
	)
	parallel.WithNumGoroutines(w.workers).For(n, func(i, grID int) {
		acc := w.accum[grID]
		a := w.bodies[i]
		for j := i + 1; j < n; j++ {
			f, err := w.ComputeGravity(a, w.bodies[j])
			if err != nil {
				mu.Lock()
				if i < firstRow {
					firstRow, firstErr = i, err
				}
				mu.Unlock()
				return
			}
			acc[j] = acc[j].Add(f)
			acc[i] = acc[i].Sub(f)
		}
	})
	if firstErr != nil {
		return firstErr
	}

	for _, acc := range w.accum {
		for i, f := range acc {
			if f != (physics.Vec3{}) {
				w.bodies[i].AddForce(f)
			}
		}
	}
	return nil
}
