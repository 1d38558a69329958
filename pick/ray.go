// Package pick turns a mouse click into a ray and finds the nearest triangle
// it hits among a set of candidate objects.
//
// View space is left-handed: the eye sits at the origin looking down +z, the
// way camera.Camera builds its view and projection matrices.
package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is an origin and a direction in some coordinate space. The direction is
// not required to be unit length until Transform normalizes it.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform moves the ray into the space described by m: the origin as a
// point, the direction as a vector. The direction is re-normalized since m
// may carry a non-uniform scale.
func (r Ray) Transform(m mgl32.Mat4) Ray {
	return Ray{
		Origin:    mgl32.TransformCoordinate(r.Origin, m),
		Direction: mgl32.TransformNormal(r.Direction, m).Normalize(),
	}
}

func (r Ray) finite() bool {
	for i := 0; i < 3; i++ {
		if !finite(r.Origin[i]) || !finite(r.Direction[i]) {
			return false
		}
	}
	return true
}

// ViewRay unprojects the screen coordinate (sx, sy) of a width x height
// viewport into a view-space ray leaving the eye. Only the horizontal and
// vertical scale terms of proj are used, so off-center frustums are not
// supported.
func ViewRay(sx, sy, width, height float32, proj mgl32.Mat4) Ray {
	vx := (2*sx/width - 1) / proj.At(0, 0)
	vy := (-2*sy/height + 1) / proj.At(1, 1)

	return Ray{
		Origin:    mgl32.Vec3{0, 0, 0},
		Direction: mgl32.Vec3{vx, vy, 1},
	}
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
