// Package camera implements the first-person fly camera: look angles applied yaw-then-pitch,
// movement projected onto the horizontal plane, and a perspective projection for picking.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultFovY  = 75  // degrees
	DefaultNear  = 0.1 // world units
	DefaultFar   = 1000
	DefaultSpeed = 0.3 // world units per frame
)

// DefaultPosition is where the camera starts, slightly above and behind the marker ring.
var DefaultPosition = mgl32.Vec3{0, 5, 20}

// Up is the world up axis.
var Up = mgl32.Vec3{0, 1, 0}

// Camera is a perspective fly camera. Yaw and Pitch are the accumulated look angles in radians;
// positive yaw turns right and positive pitch looks down.
type Camera struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	FovY     float32 // degrees
	Aspect   float32
	Near     float32
	Far      float32
	Speed    float32
}

// New returns a camera at DefaultPosition facing -Z.
func New(aspect float32) *Camera {
	if aspect <= 0 {
		aspect = 16.0 / 9.0
	}
	return &Camera{
		Position: DefaultPosition,
		FovY:     DefaultFovY,
		Aspect:   aspect,
		Near:     DefaultNear,
		Far:      DefaultFar,
		Speed:    DefaultSpeed,
	}
}

// SetAspect updates the projection aspect ratio after a resize. Non-positive sizes are ignored.
func (c *Camera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Orientation returns the camera rotation: rotate about Y by -Yaw, then about the rotated X by -Pitch.
// Composing in this order never introduces roll.
func (c *Camera) Orientation() mgl32.Quat {
	yaw := mgl32.QuatRotate(-c.Yaw, mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(-c.Pitch, mgl32.Vec3{1, 0, 0})
	return yaw.Mul(pitch)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Orientation().Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
}

// Basis returns the unit right vector and the unit forward vector flattened onto the horizontal plane.
// When looking straight up or down the view direction is parallel to Up, so the horizontal basis is
// derived from yaw alone.
func (c *Camera) Basis() (right, forward mgl32.Vec3) {
	right = c.Forward().Cross(Up)
	if right.Len() < 1e-6 {
		s, co := math.Sincos(float64(c.Yaw))
		right = mgl32.Vec3{float32(co), 0, float32(s)}
	}
	right = right.Normalize()
	forward = Up.Cross(right).Normalize()
	return right, forward
}

// Direction returns the local movement vector for the held keys: -Z forward, +X right.
// The result is normalized and scaled by speed so diagonal movement is no faster than axis movement.
func Direction(forward, back, left, right bool, speed float32) mgl32.Vec3 {
	var d mgl32.Vec3
	if forward {
		d[2]--
	}
	if back {
		d[2]++
	}
	if left {
		d[0]--
	}
	if right {
		d[0]++
	}
	if d.Len() == 0 {
		return d
	}
	return d.Normalize().Mul(speed)
}

// Move translates the camera by a local movement vector from Direction, using the camera's
// right and horizontal forward axes.
func (c *Camera) Move(dir mgl32.Vec3) {
	if dir.Len() == 0 {
		return
	}
	right, forward := c.Basis()
	c.Position = c.Position.Add(right.Mul(dir.X())).Add(forward.Mul(-dir.Z()))
}

// Target returns a point one unit ahead of the camera, for look-at style renderers.
func (c *Camera) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward())
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target(), c.Orientation().Rotate(Up))
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// Ray returns the world-space ray through normalized device coordinates (ndcX, ndcY) in [-1,1].
// (0,0) is the screen center.
func (c *Camera) Ray(ndcX, ndcY float32) (origin, dir mgl32.Vec3) {
	inv := c.Projection().Mul4(c.View()).Inv()
	near := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, -1}, inv)
	far := mgl32.TransformCoordinate(mgl32.Vec3{ndcX, ndcY, 1}, inv)
	return near, far.Sub(near).Normalize()
}
