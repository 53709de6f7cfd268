package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"portfolio3d/internal/camera"
	"portfolio3d/internal/primitives"
	"portfolio3d/internal/world"
)

const (
	shadowScale = 1.3 // blob size relative to the marker
	shadowLift  = 0.02
)

var shadowColor = rl.NewColor(0, 0, 0, 90)

// Scene draws the portfolio world: particle field, floor with marker shadows, markers and their
// glow shells. Drawing order is opaque-ish first, then translucent shells with depth writes off.
type Scene struct {
	Layout       *world.Layout
	FloorVisible bool
	prims        *primitives.Registry
}

// New returns a scene drawing layout. GPU resources are allocated on first Draw.
func New(layout *world.Layout) *Scene {
	return &Scene{Layout: layout, FloorVisible: true, prims: primitives.NewRegistry()}
}

// SetFloorVisible sets whether the floor and shadows are drawn.
func (s *Scene) SetFloorVisible(visible bool) {
	s.FloorVisible = visible
}

// Camera3D converts the fly camera to raylib's camera.
func Camera3D(c *camera.Camera) rl.Camera3D {
	return rl.Camera3D{
		Position:   primitives.Vector3(c.Position),
		Target:     primitives.Vector3(c.Target()),
		Up:         primitives.Vector3(c.Orientation().Rotate(camera.Up)),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}

// Draw renders the 3D scene from cam. Call after ClearBackground and before 2D overlays.
func (s *Scene) Draw(cam *camera.Camera) {
	s.prims.SetEnvironment(primitives.Environment{
		ViewPos:          cam.Position,
		LightPos:         world.LightPosition,
		LightColor:       world.LightColor,
		LightIntensity:   world.LightIntensity,
		Ambient:          world.AmbientColor,
		AmbientIntensity: world.AmbientIntensity,
		FogColor:         world.ClearColor,
		FogNear:          world.FogNear,
		FogFar:           world.FogFar,
	})

	rl.BeginMode3D(Camera3D(cam))
	s.drawParticles(cam.Position)
	if s.FloorVisible {
		s.drawFloor()
	}
	for _, m := range s.Layout.Markers {
		tint := m.Color
		tint.A = world.MarkerAlpha
		s.prims.Draw(primitives.Cube, markerTransform(m, world.MarkerSize), tint)
	}
	rl.DisableDepthMask()
	for _, m := range s.Layout.Markers {
		tint := m.Color
		tint.A = world.GlowAlpha
		s.prims.DrawUnlit(primitives.Cube, markerTransform(m, world.GlowSize), tint)
	}
	rl.EnableDepthMask()
	rl.EndMode3D()
}

func markerTransform(m world.Marker, size float32) rl.Matrix {
	model := mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z()).
		Mul4(mgl32.HomogRotate3DX(m.RotX)).
		Mul4(mgl32.HomogRotate3DY(m.RotY)).
		Mul4(mgl32.Scale3D(size, size, size))
	return primitives.Matrix(model)
}

// drawParticles draws the rotated particle field as small cubes faded by distance, since the
// immediate-mode batch does not go through the fog shader.
func (s *Scene) drawParticles(eye mgl32.Vec3) {
	rot := mgl32.Rotate3DY(s.Layout.ParticleYaw)
	size := float32(world.ParticleSize)
	for _, p := range s.Layout.Particles {
		pos := rot.Mul3x1(p)
		c := world.Fade(world.ParticleColor, pos.Sub(eye).Len())
		if c.A == 0 {
			continue
		}
		rl.DrawCube(primitives.Vector3(pos), size, size, size, c)
	}
}

func (s *Scene) drawFloor() {
	floor := mgl32.Translate3D(0, world.FloorHeight, 0).Mul4(mgl32.Scale3D(world.FloorSize, 1, world.FloorSize))
	s.prims.Draw(primitives.Plane, primitives.Matrix(floor), world.FloorColor)

	rl.DisableDepthMask()
	blob := float32(world.MarkerSize * shadowScale)
	for _, m := range s.Layout.Markers {
		at, ok := world.ProjectOnFloor(m.Position, world.LightPosition, world.FloorHeight)
		if !ok || at.X() < -world.FloorSize/2 || at.X() > world.FloorSize/2 || at.Z() < -world.FloorSize/2 || at.Z() > world.FloorSize/2 {
			continue
		}
		model := mgl32.Translate3D(at.X(), at.Y()+shadowLift, at.Z()).
			Mul4(mgl32.HomogRotate3DY(m.RotY)).
			Mul4(mgl32.Scale3D(blob, 1, blob))
		s.prims.DrawUnlit(primitives.Plane, primitives.Matrix(model), shadowColor)
	}
	rl.EnableDepthMask()
}

// Unload releases GPU resources. Nil-safe and idempotent.
func (s *Scene) Unload() {
	if s == nil {
		return
	}
	s.prims.Unload()
}
