package world

import (
	"image/color"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"portfolio3d/internal/picking"
)

// Marker is the animated state of one project marker. Index refers back to the portfolio item.
type Marker struct {
	Index    int
	Home     mgl32.Vec3
	Position mgl32.Vec3
	RotX     float32
	RotY     float32
	Color    color.RGBA // opaque hue; callers apply MarkerAlpha or GlowAlpha
}

// Layout is the mutable scene state advanced once per frame.
type Layout struct {
	Markers     []Marker
	Particles   []mgl32.Vec3
	ParticleYaw float32
}

// NewLayout places n markers with a and scatters particles drawn from rng.
func NewLayout(n int, a Arrangement, rng *rand.Rand, particles int) *Layout {
	l := &Layout{Particles: Particles(rng, particles, ParticleExtent)}
	for i, home := range a.MarkerHomes(n) {
		l.Markers = append(l.Markers, Marker{
			Index:    i,
			Home:     home,
			Position: home,
			Color:    MarkerColor(i, 255),
		})
	}
	return l
}

// Step advances one frame at wall-clock time t seconds: every marker spins by MarkerSpin on X
// and Y and bobs around its home, and the particle field turns by ParticleSpin.
func (l *Layout) Step(t float64) {
	for i := range l.Markers {
		m := &l.Markers[i]
		m.RotX += MarkerSpin
		m.RotY += MarkerSpin
		m.Position = Bob(m.Home, m.Index, t)
	}
	l.ParticleYaw += ParticleSpin
}

// Boxes returns the pickable cube of every marker at its current pose. Glow shells are not
// included.
func (l *Layout) Boxes() []picking.Box {
	boxes := make([]picking.Box, len(l.Markers))
	for i, m := range l.Markers {
		boxes[i] = picking.Box{
			Index:    m.Index,
			Center:   m.Position,
			Rotation: picking.EulerXY(m.RotX, m.RotY),
			Half:     MarkerSize / 2,
		}
	}
	return boxes
}
