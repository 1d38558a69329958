package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Result describes the nearest hit of a pick. A nil *Result means nothing was
// hit.
type Result struct {
	Object *Object
	// Triangle is the index of the hit triangle; StartIndex is the position of
	// its first index in Mesh.Indices.
	Triangle   int
	StartIndex int
	// T is the hit parameter along the normalized model space ray.
	T float32
	// Distance is measured from the eye to Point in world units.
	Distance float32
	Point    mgl32.Vec3
}

// Stats counts the work done by a pick.
type Stats struct {
	Candidates     int
	Visible        int
	BoundsTests    int
	BoundsRejected int
	TriangleTests  int
	TriangleHits   int
}

// Pick finds the triangle under the screen coordinate (sx, sy) of a
// width x height viewport. proj must be a symmetric perspective projection
// and view the matching left-handed view matrix.
//
// Hits are ranked by their world space distance from the eye, not by the
// model space ray parameter, so objects with different scales compare
// correctly. When two hits are exactly as far away, the first one
// encountered wins: candidates in slice order, triangles in index order.
func Pick(sx, sy, width, height int, proj, view mgl32.Mat4, candidates []*Object) *Result {
	return PickStats(sx, sy, width, height, proj, view, candidates, nil)
}

// PickStats is Pick with its work recorded into stats, which may be nil.
func PickStats(sx, sy, width, height int, proj, view mgl32.Mat4, candidates []*Object, stats *Stats) *Result {
	ray := ViewRay(float32(sx), float32(sy), float32(width), float32(height), proj)
	return PickRay(ray, view, candidates, stats)
}

// PickRay runs the broad and narrow phases for a ray already in view space.
func PickRay(viewRay Ray, view mgl32.Mat4, candidates []*Object, stats *Stats) *Result {
	var discard Stats
	if stats == nil {
		stats = &discard
	}

	invView := view.Inv()
	eye := mgl32.TransformCoordinate(mgl32.Vec3{}, invView)

	var nearest Result
	found := false
	nearestDist := float32(math.Inf(1))

	for _, obj := range candidates {
		stats.Candidates++
		if obj == nil || !obj.Visible {
			continue
		}
		stats.Visible++

		mesh := obj.Mesh
		if mesh == nil || mesh.TriangleCount() == 0 {
			continue
		}

		toLocal := obj.World.Inv().Mul4(invView)
		ray := viewRay.Transform(toLocal)

		stats.BoundsTests++
		if _, ok := IntersectBox(ray, mesh.Bounds); !ok {
			stats.BoundsRejected++
			continue
		}

		for i := 0; i < mesh.TriangleCount(); i++ {
			v0, v1, v2, ok := mesh.Triangle(i)
			if !ok {
				continue
			}

			stats.TriangleTests++
			t, hit := IntersectTriangle(ray, v0, v1, v2)
			if !hit {
				continue
			}
			stats.TriangleHits++

			point := mgl32.TransformCoordinate(ray.At(t), obj.World)
			dist := point.Sub(eye).Len()
			if dist < nearestDist {
				nearestDist = dist
				found = true
				nearest = Result{
					Object:     obj,
					Triangle:   i,
					StartIndex: i * 3,
					T:          t,
					Distance:   dist,
					Point:      point,
				}
			}
		}
	}

	if !found {
		return nil
	}
	return &nearest
}
