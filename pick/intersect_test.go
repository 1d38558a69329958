package pick

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestIntersectTriangle(t *testing.T) {
	v0 := mgl32.Vec3{0, 0, 0}
	v1 := mgl32.Vec3{1, 0, 0}
	v2 := mgl32.Vec3{0, 1, 0}

	cases := []struct {
		name string
		ray  Ray
		hit  bool
		t    float32
	}{
		{"front", Ray{mgl32.Vec3{0.25, 0.25, -1}, mgl32.Vec3{0, 0, 1}}, true, 1},
		{"back face", Ray{mgl32.Vec3{0.25, 0.25, 2}, mgl32.Vec3{0, 0, -1}}, true, 2},
		{"outside", Ray{mgl32.Vec3{0.75, 0.75, -1}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"behind origin", Ray{mgl32.Vec3{0.25, 0.25, 1}, mgl32.Vec3{0, 0, 1}}, false, 0},
		{"parallel", Ray{mgl32.Vec3{-1, 0.25, 0}, mgl32.Vec3{1, 0, 0}}, false, 0},
		{"edge", Ray{mgl32.Vec3{0.5, 0, -1}, mgl32.Vec3{0, 0, 1}}, true, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := IntersectTriangle(c.ray, v0, v1, v2)
			assert.Equal(t, c.hit, ok)
			if c.hit {
				assert.InDelta(t, c.t, got, 1e-6)
			}
		})
	}
}

func TestIntersectBox(t *testing.T) {
	box := NewBoundingBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 1})

	d, ok := IntersectBox(Ray{mgl32.Vec3{0, 0, -5}, mgl32.Vec3{0, 0, 1}}, box)
	assert.True(t, ok)
	assert.InDelta(t, 4, d, 1e-6)

	d, ok = IntersectBox(Ray{mgl32.Vec3{0.5, 0.5, 0.5}, mgl32.Vec3{1, 0, 0}}, box)
	assert.True(t, ok, "origin inside the box")
	assert.Equal(t, float32(0), d)

	_, ok = IntersectBox(Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, box)
	assert.False(t, ok, "box behind the ray")

	_, ok = IntersectBox(Ray{mgl32.Vec3{2, 0, -5}, mgl32.Vec3{0, 0, 1}}, box)
	assert.False(t, ok, "parallel and outside the x slab")

	_, ok = IntersectBox(Ray{mgl32.Vec3{0, 0, -5}, mgl32.Vec3{float32(math.NaN()), 0, 1}}, box)
	assert.False(t, ok, "nan direction")
}

func TestIntersectOrientedBox(t *testing.T) {
	plank := NewBoundingBox(mgl32.Vec3{}, mgl32.Vec3{1, 0.1, 1})
	ray := Ray{mgl32.Vec3{0.6, 0.6, -5}, mgl32.Vec3{0, 0, 1}}

	_, ok := IntersectBox(ray, plank)
	assert.False(t, ok)

	plank.Orientation = mgl32.QuatRotate(math.Pi/4, mgl32.Vec3{0, 0, 1})
	d, ok := IntersectBox(ray, plank)
	assert.True(t, ok)
	assert.InDelta(t, 4, d, 1e-5)
}

func TestBoundsOf(t *testing.T) {
	box := BoundsOf([]mgl32.Vec3{{-1, 0, 2}, {3, -2, 4}, {0, 1, 3}})
	assert.Equal(t, mgl32.Vec3{1, -0.5, 3}, box.Center)
	assert.Equal(t, mgl32.Vec3{2, 1.5, 1}, box.Extents)
	assert.Equal(t, mgl32.Vec3{-1, -2, 2}, box.Min())
	assert.Equal(t, mgl32.Vec3{3, 1, 4}, box.Max())
	assert.Equal(t, mgl32.QuatIdent(), box.Orientation)

	empty := BoundsOf(nil)
	assert.Equal(t, mgl32.Vec3{}, empty.Extents)
}

func TestRayTransform(t *testing.T) {
	ray := Ray{mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 2}}

	moved := ray.Transform(mgl32.Translate3D(1, 0, 0).Mul4(mgl32.Scale3D(1, 1, 5)))
	assert.Equal(t, mgl32.Vec3{2, 2, 15}, moved.Origin)
	assert.InDelta(t, 1, moved.Direction.Len(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, moved.Direction)
	assert.Equal(t, mgl32.Vec3{2, 2, 17}, moved.At(2))
}
