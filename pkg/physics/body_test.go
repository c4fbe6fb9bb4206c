package physics

import (
	"errors"
	"math"
	"testing"
)

func TestNewBody_Radius(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 4 * math.Pi / 3 * 8, Density: 1})
	if !almostEqual(b.Radius(), 2, 1e-12) {
		t.Errorf("Radius() = %v, want 2", b.Radius())
	}

	earth := mustBody(t, BodyParams{Mass: 5.965e24, Density: 5.965e24 / (4.0 / 3 * math.Pi * math.Pow(6371000, 3))})
	if !almostEqual(earth.Radius(), 6371000, 1e-3) {
		t.Errorf("earth Radius() = %v, want 6371000", earth.Radius())
	}
}

func TestNewBody_Defaults(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 1, Density: 1, Position: Vec3{1, 2, 3}})

	if b.PositionScale() != 1 || b.RadiusScale() != 1 {
		t.Errorf("scales = %v, %v, want 1, 1", b.PositionScale(), b.RadiusScale())
	}
	if b.Force() != (Vec3{}) {
		t.Errorf("Force() = %v, want zero", b.Force())
	}
	if b.Started() {
		t.Error("new body clock should be idle")
	}
	if got := b.Trail().Cap(); got != DefaultTraceNum {
		t.Errorf("Trail().Cap() = %d, want %d", got, DefaultTraceNum)
	}
	samples := b.Trail().Samples()
	if len(samples) != 1 || samples[0] != (Vec3{1, 2, 3}) {
		t.Errorf("initial trail = %v, want [[1 2 3]]", samples)
	}
}

func TestNewBody_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		params BodyParams
		want   error
	}{
		{"zero mass", BodyParams{Mass: 0, Density: 1}, ErrInvalidMass},
		{"negative mass", BodyParams{Mass: -1, Density: 1}, ErrInvalidMass},
		{"nan mass", BodyParams{Mass: math.NaN(), Density: 1}, ErrInvalidMass},
		{"infinite mass", BodyParams{Mass: math.Inf(1), Density: 1}, ErrInvalidMass},
		{"zero density", BodyParams{Mass: 1, Density: 0}, ErrInvalidDensity},
		{"negative scale", BodyParams{Mass: 1, Density: 1, PositionScale: -1}, ErrInvalidScale},
		{"nan position", BodyParams{Mass: 1, Density: 1, Position: Vec3{math.NaN(), 0, 0}}, ErrNonFinite},
		{"negative trace num", BodyParams{Mass: 1, Density: 1, Trace: TraceConfig{Num: -3, Prelocate: 2}}, ErrInvalidTrace},
		{"negative prelocate", BodyParams{Mass: 1, Density: 1, Trace: TraceConfig{Num: 10, Prelocate: -1}}, ErrInvalidTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBody(tt.params)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewBody() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBody_ForceAccumulation(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 1, Density: 1})
	f := Vec3{1, 0, 0}
	b.AddForce(f)
	b.AddForce(Vec3{0, 2, 0})
	if b.Force() != (Vec3{1, 2, 0}) {
		t.Errorf("Force() = %v, want [1 2 0]", b.Force())
	}
	if f != (Vec3{1, 0, 0}) {
		t.Errorf("AddForce mutated its argument: %v", f)
	}
	b.ClearForce()
	if b.Force() != (Vec3{}) {
		t.Errorf("Force() after clear = %v, want zero", b.Force())
	}
}

func TestBody_FirstStepStartsClock(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 2, Density: 1, Velocity: Vec3{1, 0, 0}})
	b.AddForce(Vec3{10, 0, 0})

	if err := b.Step(1000); err != nil {
		t.Fatalf("Step() error: %v", err)
	}

	if b.Position() != (Vec3{}) || b.Velocity() != (Vec3{1, 0, 0}) {
		t.Errorf("first Step moved the body: p=%v v=%v", b.Position(), b.Velocity())
	}
	if last, ok := b.LastStep(); !ok || last != 1000 {
		t.Errorf("LastStep() = %v, %v, want 1000, true", last, ok)
	}
	if b.Trail().Len() != 1 {
		t.Errorf("Trail().Len() = %d, want 1", b.Trail().Len())
	}
}

func TestBody_SemiImplicitEuler(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 2, Density: 1, Velocity: Vec3{1, 0, 0}, PositionScale: 0.5})
	b.Step(0)
	b.AddForce(Vec3{4, 0, 0})
	if err := b.Step(2); err != nil {
		t.Fatalf("Step() error: %v", err)
	}

	// a = 2, v = 1 + 2*2 = 5, p = 0 + 5*2 = 10 (explicit Euler would give 2)
	if b.Velocity() != (Vec3{5, 0, 0}) {
		t.Errorf("Velocity() = %v, want [5 0 0]", b.Velocity())
	}
	if b.Position() != (Vec3{10, 0, 0}) {
		t.Errorf("Position() = %v, want [10 0 0]", b.Position())
	}
	latest, ok := b.Trail().Latest()
	if !ok || latest != (Vec3{5, 0, 0}) {
		t.Errorf("Trail().Latest() = %v, want display position [5 0 0]", latest)
	}
	if b.DisplayPosition() != (Vec3{5, 0, 0}) || b.Sync() != b.DisplayPosition() {
		t.Errorf("DisplayPosition() = %v, want [5 0 0]", b.DisplayPosition())
	}
}

func TestBody_FixedNeverMoves(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 1e30, Density: 1, Position: Vec3{1, 2, 3}, Velocity: Vec3{9, 9, 9}, Fixed: true})
	if b.Velocity() != (Vec3{}) {
		t.Errorf("fixed body velocity = %v, want zero", b.Velocity())
	}
	for i := 0; i < 100; i++ {
		b.ClearForce()
		b.AddForce(Vec3{1e40, -1e40, 5})
		if err := b.Step(float64(i) * 3600); err != nil {
			t.Fatalf("Step() error: %v", err)
		}
	}
	if b.Position() != (Vec3{1, 2, 3}) || b.Velocity() != (Vec3{}) {
		t.Errorf("fixed body moved: p=%v v=%v", b.Position(), b.Velocity())
	}
	if last, _ := b.LastStep(); last != 99*3600 {
		t.Errorf("LastStep() = %v, want %v", last, 99*3600)
	}
	if err := b.SetVelocity(Vec3{1, 0, 0}); !errors.Is(err, ErrFixedBody) {
		t.Errorf("SetVelocity() error = %v, want %v", err, ErrFixedBody)
	}
}

func TestNewBody_TraceFieldDefaults(t *testing.T) {
	tests := []struct {
		in, want TraceConfig
	}{
		{TraceConfig{}, TraceConfig{DefaultTraceNum, DefaultTracePrelocate}},
		{TraceConfig{Num: 50}, TraceConfig{50, DefaultTracePrelocate}},
		{TraceConfig{Prelocate: 3}, TraceConfig{DefaultTraceNum, 3}},
		{TraceConfig{Num: 7, Prelocate: 2}, TraceConfig{7, 2}},
	}
	for _, tt := range tests {
		b := mustBody(t, BodyParams{Mass: 1, Density: 1, Trace: tt.in})
		if b.TraceConfig() != tt.want {
			t.Errorf("TraceConfig() for %+v = %+v, want %+v", tt.in, b.TraceConfig(), tt.want)
		}
		if b.Trail().Cap() != tt.want.Num {
			t.Errorf("Trail().Cap() for %+v = %d, want %d", tt.in, b.Trail().Cap(), tt.want.Num)
		}
	}
}

func TestBody_StepOverflowLeavesBodyUnchanged(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 1, Density: 1, Velocity: Vec3{1e300, 0, 0}})
	b.Step(0)
	err := b.Step(1e10)
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("Step() error = %v, want %v", err, ErrNonFinite)
	}
	if b.Position() != (Vec3{}) || b.Velocity() != (Vec3{1e300, 0, 0}) {
		t.Errorf("failed Step changed the body: p=%v v=%v", b.Position(), b.Velocity())
	}
	if last, _ := b.LastStep(); last != 0 {
		t.Errorf("LastStep() = %v after a failed Step, want 0", last)
	}
	if b.Trail().Len() != 1 {
		t.Errorf("Trail().Len() = %d, want 1", b.Trail().Len())
	}
}

func TestBody_SetVelocity(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 1, Density: 1})
	if err := b.SetVelocity(Vec3{0, 3, 0}); err != nil {
		t.Fatalf("SetVelocity() error: %v", err)
	}
	if b.Velocity() != (Vec3{0, 3, 0}) {
		t.Errorf("Velocity() = %v, want [0 3 0]", b.Velocity())
	}
	if err := b.SetVelocity(Vec3{math.Inf(1), 0, 0}); !errors.Is(err, ErrNonFinite) {
		t.Errorf("SetVelocity(inf) error = %v, want %v", err, ErrNonFinite)
	}
}

func TestBody_Energy(t *testing.T) {
	b := mustBody(t, BodyParams{Mass: 4, Density: 1, Velocity: Vec3{3, 4, 0}})
	if b.KineticEnergy() != 50 {
		t.Errorf("KineticEnergy() = %v, want 50", b.KineticEnergy())
	}
	if b.Momentum() != (Vec3{12, 16, 0}) {
		t.Errorf("Momentum() = %v, want [12 16 0]", b.Momentum())
	}
}
