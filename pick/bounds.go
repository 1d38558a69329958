package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox is a box given by its center and half extents. With an identity
// orientation it is axis aligned; any other orientation makes it an oriented
// box rotated about its center.
type BoundingBox struct {
	Center      mgl32.Vec3
	Extents     mgl32.Vec3
	Orientation mgl32.Quat
}

func NewBoundingBox(center, extents mgl32.Vec3) BoundingBox {
	return BoundingBox{
		Center:      center,
		Extents:     extents,
		Orientation: mgl32.QuatIdent(),
	}
}

// BoundsOf returns the tightest axis aligned box around points. An empty set
// gives a zero sized box at the origin.
func BoundsOf(points []mgl32.Vec3) BoundingBox {
	if len(points) == 0 {
		return NewBoundingBox(mgl32.Vec3{}, mgl32.Vec3{})
	}

	inf := float32(math.Inf(1))
	vMin := mgl32.Vec3{inf, inf, inf}
	vMax := mgl32.Vec3{-inf, -inf, -inf}
	for _, p := range points {
		for i := 0; i < 3; i++ {
			vMin[i] = float32(math.Min(float64(vMin[i]), float64(p[i])))
			vMax[i] = float32(math.Max(float64(vMax[i]), float64(p[i])))
		}
	}

	return NewBoundingBox(vMin.Add(vMax).Mul(0.5), vMax.Sub(vMin).Mul(0.5))
}

func (b BoundingBox) Min() mgl32.Vec3 {
	return b.Center.Sub(b.Extents)
}

func (b BoundingBox) Max() mgl32.Vec3 {
	return b.Center.Add(b.Extents)
}

// IntersectBox is the broad phase test. It reports whether the ray hits the
// box and the distance to the entry point; a ray starting inside the box hits
// at t = 0.
func IntersectBox(ray Ray, box BoundingBox) (float32, bool) {
	if !ray.finite() {
		return 0, false
	}

	origin := ray.Origin.Sub(box.Center)
	dir := ray.Direction
	if box.Orientation != (mgl32.Quat{}) && box.Orientation != mgl32.QuatIdent() {
		inv := box.Orientation.Inverse()
		origin = inv.Rotate(origin)
		dir = inv.Rotate(dir)
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	for i := 0; i < 3; i++ {
		o, d, e := float64(origin[i]), float64(dir[i]), float64(box.Extents[i])
		if math.Abs(d) < 1e-12 {
			if o < -e || o > e {
				return 0, false
			}
			continue
		}

		t1 := (-e - o) / d
		t2 := (e - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}

	if tMax < 0 {
		return 0, false
	}
	return float32(math.Max(tMin, 0)), true
}
