package simulation

import (
	"math"
	"testing"

	"github.com/ssine/galaxy-simulator/pkg/physics"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3AlmostEqual(a, b physics.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

func mustWorld(t testing.TB, cfg Config) *World {
	t.Helper()
	w, err := NewWorld(cfg)
	if err != nil {
		t.Fatalf("NewWorld(%+v) error: %v", cfg, err)
	}
	return w
}

func mustAdd(t testing.TB, w *World, p physics.BodyParams) *physics.Body {
	t.Helper()
	b, err := w.AddBody(p)
	if err != nil {
		t.Fatalf("AddBody(%+v) error: %v", p, err)
	}
	return b
}

// unitMass gives a radius of 1 at density 1.
const unitMass = 4 * math.Pi / 3
