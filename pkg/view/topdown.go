package view

import (
	"math"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

// TopDown projects the XZ plane onto a grid of terminal cells, looking down
// the -Y axis with +X to the right and +Z downward.
type TopDown struct {
	Cols, Rows int
	Center     physics.Vec3
	// Scale is the number of columns per display unit.
	Scale float64
}

// Fit sizes the projection so that every point lands on the grid.
func (t *TopDown) Fit(points []physics.Vec3) {
	if len(points) == 0 || t.Cols <= 0 || t.Rows <= 0 {
		return
	}
	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X()), math.Max(maxX, p.X())
		minZ, maxZ = math.Min(minZ, p.Z()), math.Max(maxZ, p.Z())
	}
	t.Center = physics.Vec3{(minX + maxX) / 2, 0, (minZ + maxZ) / 2}
	w, h := maxX-minX, (maxZ-minZ)*cellAspect
	span := math.Max(w/float64(t.Cols), h/float64(t.Rows))
	if span == 0 {
		t.Scale = 1
		return
	}
	t.Scale = 0.9 / span
}

// Zoom multiplies the scale by factor.
func (t *TopDown) Zoom(factor float64) {
	if factor > 0 {
		t.Scale *= factor
	}
}

// Project returns the cell for p; ok is false outside the grid.
func (t *TopDown) Project(p physics.Vec3) (col, row int, ok bool) {
	d := p.Sub(t.Center)
	col = int(math.Floor(float64(t.Cols)/2 + d.X()*t.Scale))
	row = int(math.Floor(float64(t.Rows)/2 + d.Z()*t.Scale/cellAspect))
	ok = col >= 0 && col < t.Cols && row >= 0 && row < t.Rows
	return col, row, ok
}
