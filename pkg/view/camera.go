// Package view holds the projection and color helpers shared by the viewers.
// It has no dependency on a rendering backend.
package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

const (
	minDistance = 0.05
	maxDistance = 1e4
	maxPitch    = math.Pi/2 - 0.01
	nearPlane   = 0.01
)

// Camera orbits Target at Distance. Yaw turns around +Y, Pitch tilts
// toward +Y. Angles are in radians.
type Camera struct {
	Yaw, Pitch float64
	Distance   float64
	FovY       float64
	Target     physics.Vec3

	width, height int

	// matrices for the state in key
	key        cameraState
	cached     bool
	view, proj mgl64.Mat4
}

type cameraState struct {
	yaw, pitch, distance, fovY float64
	target                     physics.Vec3
	width, height              int
}

// NewCamera returns a camera for a width×height viewport.
func NewCamera(width, height int) *Camera {
	return &Camera{
		Pitch:    0.5,
		Distance: 8,
		FovY:     mgl64.DegToRad(45),
		width:    width,
		height:   height,
	}
}

// Rotate changes yaw and pitch; pitch stays short of the poles.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.Yaw = math.Remainder(c.Yaw+dYaw, 2*math.Pi)
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dPitch))
}

// Zoom multiplies the orbit distance by factor.
func (c *Camera) Zoom(factor float64) {
	if !(factor > 0) {
		return
	}
	c.Distance = math.Max(minDistance, math.Min(maxDistance, c.Distance*factor))
}

// Fit centers the camera on the given points and backs off far enough to
// keep all of them in view.
func (c *Camera) Fit(points []physics.Vec3) {
	if len(points) == 0 {
		return
	}
	var center physics.Vec3
	for _, p := range points {
		center = center.Add(p)
	}
	center = center.Mul(1 / float64(len(points)))
	extent := 0.0
	for _, p := range points {
		extent = math.Max(extent, p.Sub(center).Len())
	}
	c.Target = center
	c.Distance = math.Max(minDistance, math.Min(maxDistance, 1.2*extent/math.Tan(c.FovY/2)))
	if extent == 0 {
		c.Distance = 8
	}
}

// Eye is the camera position in display space.
func (c *Camera) Eye() physics.Vec3 {
	cp := math.Cos(c.Pitch)
	return c.Target.Add(physics.Vec3{
		c.Distance * cp * math.Sin(c.Yaw),
		c.Distance * math.Sin(c.Pitch),
		c.Distance * cp * math.Cos(c.Yaw),
	})
}

func (c *Camera) matrices() (view, proj mgl64.Mat4) {
	key := cameraState{c.Yaw, c.Pitch, c.Distance, c.FovY, c.Target, c.width, c.height}
	if c.cached && key == c.key {
		return c.view, c.proj
	}
	aspect := 1.0
	if c.height > 0 {
		aspect = float64(c.width) / float64(c.height)
	}
	c.view = mgl64.LookAtV(c.Eye(), c.Target, physics.Vec3{0, 1, 0})
	c.proj = mgl64.Perspective(c.FovY, aspect, nearPlane, c.Distance*100+maxDistance)
	c.key, c.cached = key, true
	return c.view, c.proj
}

// Project maps a display-space point to screen pixels with y growing
// downward. depth is the distance along the view axis; ok is false for
// points behind the near plane.
func (c *Camera) Project(p physics.Vec3) (x, y, depth float64, ok bool) {
	view, proj := c.matrices()
	clip := proj.Mul4(view).Mul4x1(p.Vec4(1))
	if clip.W() <= nearPlane {
		return 0, 0, 0, false
	}
	win := mgl64.Project(p, view, proj, 0, 0, c.width, c.height)
	return win.X(), float64(c.height) - win.Y(), clip.W(), true
}

// PixelsPerUnit is the screen size of one display unit at depth.
func (c *Camera) PixelsPerUnit(depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return float64(c.height) / 2 / math.Tan(c.FovY/2) / depth
}
