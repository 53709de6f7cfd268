package picking

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Box is an oriented cube used for hit testing. Index identifies the owner (the marker's item index).
type Box struct {
	Index    int
	Center   mgl32.Vec3
	Rotation mgl32.Quat
	Half     float32 // half the side length
}

// Hit is a ray intersection.
type Hit struct {
	Index    int
	Distance float32
}

// RayBox intersects a ray with an oriented box. The ray is moved into the box's local frame and
// tested against the axis-aligned slabs. dir must be normalized; the returned distance is along it.
// A ray starting inside the box reports the exit distance.
func RayBox(origin, dir mgl32.Vec3, b Box) (float32, bool) {
	inv := b.Rotation.Inverse()
	o := inv.Rotate(origin.Sub(b.Center))
	d := inv.Rotate(dir)

	tmin := float32(math.Inf(-1))
	tmax := float32(math.Inf(1))
	for axis := 0; axis < 3; axis++ {
		if math.Abs(float64(d[axis])) < 1e-8 {
			if o[axis] < -b.Half || o[axis] > b.Half {
				return 0, false
			}
			continue
		}
		t1 := (-b.Half - o[axis]) / d[axis]
		t2 := (b.Half - o[axis]) / d[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	if tmax < 0 {
		return 0, false
	}
	if tmin >= 0 {
		return tmin, true
	}
	return tmax, true
}

// Nearest returns the closest box hit by the ray, if any.
func Nearest(origin, dir mgl32.Vec3, boxes []Box) (Hit, bool) {
	best := Hit{Index: -1}
	found := false
	for _, b := range boxes {
		t, ok := RayBox(origin, dir, b)
		if !ok {
			continue
		}
		if !found || t < best.Distance {
			best = Hit{Index: b.Index, Distance: t}
			found = true
		}
	}
	return best, found
}

// EulerXY returns the rotation for Euler angles applied about X then Y in the object's frame,
// matching how markers accumulate spin.
func EulerXY(rx, ry float32) mgl32.Quat {
	return mgl32.QuatRotate(rx, mgl32.Vec3{1, 0, 0}).Mul(mgl32.QuatRotate(ry, mgl32.Vec3{0, 1, 0}))
}
