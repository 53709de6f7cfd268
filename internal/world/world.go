package world

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Layout constants for the portfolio scene. Distances are world units.
const (
	MarkerRadius     = 15
	MarkerBaseHeight = 5
	MarkerLift       = 3 // amplitude of the per-index height offset
	MarkerSize       = 3
	GlowSize         = 3.2
	HueStep          = 0.25
	MarkerSaturation = 0.7
	MarkerLightness  = 0.6

	ParticleCount  = 1000
	ParticleExtent = 200 // side of the cube particles are spread in, centered on the origin

	FloorSize   = 100
	FloorHeight = -5
)

// Arrangement controls marker placement. Zero fields fall back to the package constants.
type Arrangement struct {
	Radius     float32
	BaseHeight float32
	Lift       float32
}

func (a Arrangement) withDefaults() Arrangement {
	if a.Radius <= 0 {
		a.Radius = MarkerRadius
	}
	if a.BaseHeight == 0 {
		a.BaseHeight = MarkerBaseHeight
	}
	if a.Lift == 0 {
		a.Lift = MarkerLift
	}
	return a
}

// MarkerAngle returns the angle of marker i of n around the circle, in radians.
func MarkerAngle(i, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(i) / float64(n) * 2 * math.Pi
}

// MarkerHome returns the resting position of marker i of n: evenly spaced on a circle in XZ
// with a deterministic height offset of sin(i)*Lift above BaseHeight.
func (a Arrangement) MarkerHome(i, n int) mgl32.Vec3 {
	a = a.withDefaults()
	angle := MarkerAngle(i, n)
	return mgl32.Vec3{
		float32(math.Cos(angle)) * a.Radius,
		float32(math.Sin(float64(i)))*a.Lift + a.BaseHeight,
		float32(math.Sin(angle)) * a.Radius,
	}
}

// MarkerHomes returns the resting positions of all n markers.
func (a Arrangement) MarkerHomes(n int) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, n)
	for i := range out {
		out[i] = a.MarkerHome(i, n)
	}
	return out
}

// MarkerHue returns the hue of marker i in [0,1).
func MarkerHue(i int) float64 {
	return math.Mod(float64(i)*HueStep, 1)
}

// MarkerColor returns marker i's color at the fixed saturation and lightness, with the given alpha.
func MarkerColor(i int, alpha uint8) color.RGBA {
	return HSL(MarkerHue(i), MarkerSaturation, MarkerLightness, alpha)
}

// HSL converts hue, saturation and lightness in [0,1] to RGBA.
func HSL(h, s, l float64, alpha uint8) color.RGBA {
	h = math.Mod(h, 1)
	if h < 0 {
		h++
	}
	if s == 0 {
		v := to8(l)
		return color.RGBA{R: v, G: v, B: v, A: alpha}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return color.RGBA{
		R: to8(hueToRGB(p, q, h+1.0/3)),
		G: to8(hueToRGB(p, q, h)),
		B: to8(hueToRGB(p, q, h-1.0/3)),
		A: alpha,
	}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}

// Particles returns count points uniformly spread in a cube of side extent centered on the origin.
func Particles(rng *rand.Rand, count int, extent float32) []mgl32.Vec3 {
	if count <= 0 {
		return nil
	}
	out := make([]mgl32.Vec3, count)
	for i := range out {
		out[i] = mgl32.Vec3{
			(rng.Float32() - 0.5) * extent,
			(rng.Float32() - 0.5) * extent,
			(rng.Float32() - 0.5) * extent,
		}
	}
	return out
}

// ProjectOnFloor casts p onto the horizontal plane y=floorY along the direction from the light
// position toward the origin. ok is false when the light direction is parallel to the floor or
// the point is below it.
func ProjectOnFloor(p, lightPos mgl32.Vec3, floorY float32) (mgl32.Vec3, bool) {
	dir := lightPos.Mul(-1)
	if dir.Len() == 0 || dir.Y() >= 0 || p.Y() < floorY {
		return mgl32.Vec3{}, false
	}
	dir = dir.Normalize()
	t := (floorY - p.Y()) / dir.Y()
	hit := p.Add(dir.Mul(t))
	hit[1] = floorY
	return hit, true
}

// Atmosphere, lighting and animation.
const (
	FogNear = 50
	FogFar  = 200

	AmbientIntensity = 0.3
	LightIntensity   = 1

	MarkerAlpha   = 204 // 0.8 opacity
	GlowAlpha     = 51  // 0.2 opacity
	ParticleSize  = 0.5
	ParticleAlpha = 153 // 0.6 opacity

	MarkerSpin   = 0.01   // radians per frame on X and Y
	ParticleSpin = 0.0005 // radians per frame about Y
	BobAmplitude = 0.6
)

var (
	ClearColor    = color.RGBA{R: 0x0f, G: 0x0f, B: 0x23, A: 255}
	FloorColor    = color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 204}
	ParticleColor = color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: ParticleAlpha}
	AmbientColor  = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 255}
	LightColor    = color.RGBA{R: 0x00, G: 0xff, B: 0x88, A: 255}
	LightPosition = mgl32.Vec3{10, 10, 10}
)

// FogFactor returns how much fog covers a point at distance d: 0 before near, 1 after far,
// linear in between.
func FogFactor(d, near, far float32) float32 {
	if far <= near {
		if d >= far {
			return 1
		}
		return 0
	}
	f := (d - near) / (far - near)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Fade scales c's alpha by the fog factor at distance d.
func Fade(c color.RGBA, d float32) color.RGBA {
	c.A = uint8(float32(c.A) * (1 - FogFactor(d, FogNear, FogFar)))
	return c
}

// Bob returns marker i's position at t seconds: its home lifted by BobAmplitude·sin(t+i).
func Bob(home mgl32.Vec3, i int, t float64) mgl32.Vec3 {
	home[1] += float32(BobAmplitude * math.Sin(t+float64(i)))
	return home
}
