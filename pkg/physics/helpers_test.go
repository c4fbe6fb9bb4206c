package physics

import (
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func vec3AlmostEqual(a, b Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

func mustBody(t *testing.T, p BodyParams) *Body {
	t.Helper()
	b, err := NewBody(p)
	if err != nil {
		t.Fatalf("NewBody(%+v) error: %v", p, err)
	}
	return b
}
