package world

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"portfolio3d/internal/picking"
)

func TestMarkerHome_onCircle(t *testing.T) {
	var a Arrangement
	for _, n := range []int{1, 4, 7} {
		for i := 0; i < n; i++ {
			p := a.MarkerHome(i, n)
			angle := float64(i) / float64(n) * 2 * math.Pi
			wantX := float32(math.Cos(angle) * MarkerRadius)
			wantZ := float32(math.Sin(angle) * MarkerRadius)
			wantY := float32(math.Sin(float64(i))*MarkerLift + MarkerBaseHeight)
			if !mgl32.FloatEqualThreshold(p.X(), wantX, 1e-4) ||
				!mgl32.FloatEqualThreshold(p.Z(), wantZ, 1e-4) ||
				!mgl32.FloatEqualThreshold(p.Y(), wantY, 1e-4) {
				t.Fatalf("n=%d i=%d: got %v, want (%v, %v, %v)", n, i, p, wantX, wantY, wantZ)
			}
			r := math.Hypot(float64(p.X()), float64(p.Z()))
			if math.Abs(r-MarkerRadius) > 1e-3 {
				t.Fatalf("n=%d i=%d: radius %v, want %v", n, i, r, MarkerRadius)
			}
		}
	}
}

func TestMarkerHome_customArrangement(t *testing.T) {
	a := Arrangement{Radius: 10, BaseHeight: 1, Lift: 2}
	p := a.MarkerHome(0, 2)
	if p != (mgl32.Vec3{10, 1, 0}) {
		t.Fatalf("unexpected first marker %v", p)
	}
	if n := len(a.MarkerHomes(5)); n != 5 {
		t.Fatalf("expected 5 homes, got %d", n)
	}
}

func TestMarkerHue_fourMarkers(t *testing.T) {
	want := []float64{0, 0.25, 0.5, 0.75}
	for i, w := range want {
		if got := MarkerHue(i); math.Abs(got-w) > 1e-12 {
			t.Fatalf("hue %d: got %v want %v", i, got, w)
		}
	}
	if got := MarkerHue(4); got != 0 {
		t.Fatalf("hue wraps: got %v", got)
	}
}

func TestHSL(t *testing.T) {
	cases := []struct {
		h, s, l float64
		r, g, b uint8
	}{
		{0, 1, 0.5, 255, 0, 0},
		{1.0 / 3, 1, 0.5, 0, 255, 0},
		{2.0 / 3, 1, 0.5, 0, 0, 255},
		{0, 0, 0.5, 128, 128, 128},
		{0, 0.7, 0.6, 224, 82, 82},
	}
	for _, tc := range cases {
		c := HSL(tc.h, tc.s, tc.l, 200)
		if c.R != tc.r || c.G != tc.g || c.B != tc.b || c.A != 200 {
			t.Fatalf("HSL(%v,%v,%v) = %v, want (%d,%d,%d,200)", tc.h, tc.s, tc.l, c, tc.r, tc.g, tc.b)
		}
	}
}

func TestParticles_boundedAndSeeded(t *testing.T) {
	a := Particles(rand.New(rand.NewSource(7)), ParticleCount, ParticleExtent)
	b := Particles(rand.New(rand.NewSource(7)), ParticleCount, ParticleExtent)
	if len(a) != ParticleCount {
		t.Fatalf("expected %d particles, got %d", ParticleCount, len(a))
	}
	half := float32(ParticleExtent) / 2
	for i, p := range a {
		for k := 0; k < 3; k++ {
			if p[k] < -half || p[k] > half {
				t.Fatalf("particle %d out of bounds: %v", i, p)
			}
		}
		if p != b[i] {
			t.Fatalf("same seed produced different particle %d", i)
		}
	}
	if Particles(rand.New(rand.NewSource(1)), 0, 10) != nil {
		t.Fatalf("expected nil for zero count")
	}
}

func TestProjectOnFloor(t *testing.T) {
	light := mgl32.Vec3{10, 10, 10}
	hit, ok := ProjectOnFloor(mgl32.Vec3{0, 5, 0}, light, FloorHeight)
	if !ok {
		t.Fatalf("expected projection")
	}
	// Direction toward the origin is (-1,-1,-1); dropping 10 units moves 10 units on X and Z.
	want := mgl32.Vec3{-10, FloorHeight, -10}
	if !hit.ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("got %v want %v", hit, want)
	}
	if _, ok := ProjectOnFloor(mgl32.Vec3{0, -6, 0}, light, FloorHeight); ok {
		t.Fatalf("point below floor must not project")
	}
	if _, ok := ProjectOnFloor(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{10, 0, 0}, FloorHeight); ok {
		t.Fatalf("horizontal light must not project")
	}
}

func TestFogFactor(t *testing.T) {
	cases := []struct {
		d, want float32
	}{
		{0, 0}, {50, 0}, {125, 0.5}, {200, 1}, {500, 1},
	}
	for _, tc := range cases {
		if got := FogFactor(tc.d, FogNear, FogFar); math.Abs(float64(got-tc.want)) > 1e-6 {
			t.Fatalf("FogFactor(%v) = %v, want %v", tc.d, got, tc.want)
		}
	}
	if FogFactor(10, 5, 5) != 1 || FogFactor(1, 5, 5) != 0 {
		t.Fatalf("degenerate range should be a step")
	}
	if a := Fade(ParticleColor, 300).A; a != 0 {
		t.Fatalf("fully fogged alpha = %d", a)
	}
	if a := Fade(ParticleColor, 10).A; a != ParticleAlpha {
		t.Fatalf("clear alpha = %d", a)
	}
}

func TestBob(t *testing.T) {
	home := mgl32.Vec3{1, 5, 2}
	if got := Bob(home, 0, 0); got != home {
		t.Fatalf("Bob at t=0,i=0 moved: %v", got)
	}
	got := Bob(home, 1, math.Pi/2-1)
	if math.Abs(float64(got.Y()-5.6)) > 1e-5 || got.X() != 1 || got.Z() != 2 {
		t.Fatalf("Bob peak = %v", got)
	}
}

func TestLayout_Step(t *testing.T) {
	l := NewLayout(4, Arrangement{}, rand.New(rand.NewSource(1)), 10)
	if len(l.Markers) != 4 || len(l.Particles) != 10 {
		t.Fatalf("layout sizes %d markers %d particles", len(l.Markers), len(l.Particles))
	}
	for i, m := range l.Markers {
		if m.Index != i || m.Position != m.Home {
			t.Fatalf("marker %d not at home: %+v", i, m)
		}
	}
	for range 3 {
		l.Step(0)
	}
	m := l.Markers[2]
	if math.Abs(float64(m.RotX-0.03)) > 1e-6 || m.RotX != m.RotY {
		t.Fatalf("spin after 3 frames: %v %v", m.RotX, m.RotY)
	}
	if want := Bob(m.Home, 2, 0); m.Position != want {
		t.Fatalf("position %v, want %v", m.Position, want)
	}
	if math.Abs(float64(l.ParticleYaw-0.0015)) > 1e-7 {
		t.Fatalf("particle yaw %v", l.ParticleYaw)
	}
}

func TestLayout_BoxesPickMarkerNotGlow(t *testing.T) {
	l := NewLayout(4, Arrangement{}, rand.New(rand.NewSource(1)), 0)
	boxes := l.Boxes()
	if len(boxes) != 4 {
		t.Fatalf("boxes = %d", len(boxes))
	}
	// Marker 0 sits at (15, 5, 0). A ray along -X at y=5 that passes just outside the cube
	// but inside the glow shell must miss.
	origin := mgl32.Vec3{30, 5, MarkerSize/2 + 0.05}
	if _, ok := picking.Nearest(origin, mgl32.Vec3{-1, 0, 0}, boxes[:1]); ok {
		t.Fatalf("ray through the glow shell only should miss")
	}
	hit, ok := picking.Nearest(mgl32.Vec3{30, 5, 0}, mgl32.Vec3{-1, 0, 0}, boxes)
	if !ok || hit.Index != 0 || math.Abs(float64(hit.Distance-13.5)) > 1e-4 {
		t.Fatalf("hit = %+v %v", hit, ok)
	}
}
