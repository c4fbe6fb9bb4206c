package physics

import (
	"math"
	"testing"
)

func TestCollide_StrictBoundary(t *testing.T) {
	a := mustBody(t, BodyParams{Mass: 10, Density: 2})
	r := a.Radius() + Radius(20, 3)

	touching := mustBody(t, BodyParams{Mass: 20, Density: 3, Position: Vec3{r, 0, 0}})
	if Collide(a, touching) {
		t.Errorf("bodies exactly %v apart should not collide", r)
	}

	overlapping := mustBody(t, BodyParams{Mass: 20, Density: 3, Position: Vec3{math.Nextafter(r, 0), 0, 0}})
	if !Collide(a, overlapping) {
		t.Errorf("bodies %v apart should collide", math.Nextafter(r, 0))
	}
}

func TestCollide_UsesScales(t *testing.T) {
	a := mustBody(t, BodyParams{Mass: 1, Density: 1, PositionScale: 1e-3, RadiusScale: 1})
	r := 2 * a.Radius()
	// Physically apart, but the display radius outgrows the display distance.
	b := mustBody(t, BodyParams{Mass: 1, Density: 1, Position: Vec3{10 * r, 0, 0}, PositionScale: 1e-3})
	if !Collide(a, b) {
		t.Error("scaled bodies should collide")
	}
}

func TestFuse_Movable(t *testing.T) {
	a := mustBody(t, BodyParams{Mass: 3, Density: 1000, Position: Vec3{0, 0, 0}, Velocity: Vec3{2, 0, 0}})
	b := mustBody(t, BodyParams{Mass: 3, Density: 3000, Position: Vec3{4, 2, 0}, Velocity: Vec3{0, 6, 0}})

	f, err := Fuse(a, b)
	if err != nil {
		t.Fatalf("Fuse() error: %v", err)
	}
	if f.Mass() != 6 {
		t.Errorf("Mass() = %v, want 6", f.Mass())
	}
	if f.Density() != 2000 {
		t.Errorf("Density() = %v, want 2000", f.Density())
	}
	if f.Position() != (Vec3{2, 1, 0}) {
		t.Errorf("Position() = %v, want [2 1 0]", f.Position())
	}
	if f.Velocity() != (Vec3{1, 3, 0}) {
		t.Errorf("Velocity() = %v, want [1 3 0]", f.Velocity())
	}
	if f.Fixed() || f.Started() || f.Trail().Len() != 1 {
		t.Errorf("fused body should be fresh and movable: fixed=%v started=%v trail=%d", f.Fixed(), f.Started(), f.Trail().Len())
	}
	if !almostEqual(f.Radius(), Radius(6, 2000), 1e-15) {
		t.Errorf("Radius() = %v, want %v", f.Radius(), Radius(6, 2000))
	}

	before := a.Momentum().Add(b.Momentum())
	if !vec3AlmostEqual(f.Momentum(), before, 1e-12) {
		t.Errorf("momentum %v, want %v", f.Momentum(), before)
	}
}

func TestFuse_Fixed(t *testing.T) {
	sun := mustBody(t, BodyParams{Mass: 100, Density: 10, Position: Vec3{5, 5, 5}, Fixed: true})
	rock := mustBody(t, BodyParams{Mass: 1, Density: 1, Position: Vec3{6, 5, 5}, Velocity: Vec3{-10, 0, 0}})

	for _, pair := range [][2]*Body{{sun, rock}, {rock, sun}} {
		f, err := Fuse(pair[0], pair[1])
		if err != nil {
			t.Fatalf("Fuse() error: %v", err)
		}
		if !f.Fixed() {
			t.Error("fusion with a fixed body should be fixed")
		}
		if f.Position() != (Vec3{5, 5, 5}) {
			t.Errorf("Position() = %v, want [5 5 5]", f.Position())
		}
		if f.Velocity() != (Vec3{}) {
			t.Errorf("Velocity() = %v, want zero", f.Velocity())
		}
		if f.Mass() != 101 {
			t.Errorf("Mass() = %v, want 101", f.Mass())
		}
	}
}

func TestFuse_InheritsScalesAndTrace(t *testing.T) {
	tc := TraceConfig{Num: 7, Prelocate: 2}
	a := mustBody(t, BodyParams{Mass: 1, Density: 1, PositionScale: 0.1, RadiusScale: 3, Trace: tc})
	b := mustBody(t, BodyParams{Mass: 1, Density: 1, Position: Vec3{1, 0, 0}})
	f, err := Fuse(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if f.PositionScale() != 0.1 || f.RadiusScale() != 3 || f.TraceConfig() != tc {
		t.Errorf("fused scales/trace = %v %v %v", f.PositionScale(), f.RadiusScale(), f.TraceConfig())
	}
}
