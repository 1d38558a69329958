package models

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// CreateBox builds a box centered at the origin with four vertices per face so
// each face gets its own normal.
func CreateBox(width, height, depth float32) *Model {
	w, h, d := width/2, height/2, depth/2

	type face struct {
		normal  mgl32.Vec3
		corners [4]mgl32.Vec3
		texc    [4]mgl32.Vec2
	}
	faces := []face{
		{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{-w, -h, -d}, {-w, h, -d}, {w, h, -d}, {w, -h, -d}}, [4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}}},
		{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-w, -h, d}, {w, -h, d}, {w, h, d}, {-w, h, d}}, [4]mgl32.Vec2{{1, 1}, {0, 1}, {0, 0}, {1, 0}}},
		{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-w, h, -d}, {-w, h, d}, {w, h, d}, {w, h, -d}}, [4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}}},
		{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-w, -h, -d}, {w, -h, -d}, {w, -h, d}, {-w, -h, d}}, [4]mgl32.Vec2{{1, 1}, {0, 1}, {0, 0}, {1, 0}}},
		{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-w, -h, d}, {-w, h, d}, {-w, h, -d}, {-w, -h, -d}}, [4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}}},
		{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{w, -h, -d}, {w, h, -d}, {w, h, d}, {w, -h, d}}, [4]mgl32.Vec2{{0, 1}, {0, 0}, {1, 0}, {1, 1}}},
	}

	model := &Model{Name: "box"}
	for _, f := range faces {
		base := uint32(len(model.Vertices))
		for i := range f.corners {
			model.Vertices = append(model.Vertices, Vertex{Position: f.corners[i], Normal: f.normal, TexC: f.texc[i]})
		}
		model.Indices = append(model.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return model
}

// CreateSphere builds a UV sphere: a vertex at each pole and stacks-1 rings
// of slices+1 vertices (the seam is duplicated for texturing).
func CreateSphere(radius float32, slices, stacks int) *Model {
	model := &Model{Name: "sphere"}
	model.Vertices = append(model.Vertices, Vertex{
		Position: mgl32.Vec3{0, radius, 0},
		Normal:   mgl32.Vec3{0, 1, 0},
	})

	phiStep := math.Pi / float64(stacks)
	thetaStep := 2 * math.Pi / float64(slices)
	for i := 1; i < stacks; i++ {
		phi := float64(i) * phiStep
		for j := 0; j <= slices; j++ {
			theta := float64(j) * thetaStep
			n := mgl32.Vec3{
				float32(math.Sin(phi) * math.Cos(theta)),
				float32(math.Cos(phi)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			model.Vertices = append(model.Vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				TexC:     mgl32.Vec2{float32(theta / (2 * math.Pi)), float32(phi / math.Pi)},
			})
		}
	}

	model.Vertices = append(model.Vertices, Vertex{
		Position: mgl32.Vec3{0, -radius, 0},
		Normal:   mgl32.Vec3{0, -1, 0},
		TexC:     mgl32.Vec2{0, 1},
	})

	ring := uint32(slices + 1)
	for i := uint32(1); i <= uint32(slices); i++ {
		model.Indices = append(model.Indices, 0, i+1, i)
	}

	base := uint32(1)
	for i := uint32(0); i < uint32(stacks-2); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			a := base + i*ring + j
			c := base + (i+1)*ring + j
			model.Indices = append(model.Indices, a, a+1, c, c, a+1, c+1)
		}
	}

	south := uint32(len(model.Vertices) - 1)
	base = south - ring
	for i := uint32(0); i < uint32(slices); i++ {
		model.Indices = append(model.Indices, south, base+i, base+i+1)
	}
	return model
}

// CreateGrid builds an m x n vertex grid in the xz plane centered at the
// origin.
func CreateGrid(width, depth float32, m, n int) *Model {
	model := &Model{Name: "grid"}

	halfWidth, halfDepth := width/2, depth/2
	dx := width / float32(n-1)
	dz := depth / float32(m-1)
	du := 1 / float32(n-1)
	dv := 1 / float32(m-1)

	for i := 0; i < m; i++ {
		z := halfDepth - float32(i)*dz
		for j := 0; j < n; j++ {
			x := -halfWidth + float32(j)*dx
			model.Vertices = append(model.Vertices, Vertex{
				Position: mgl32.Vec3{x, 0, z},
				Normal:   mgl32.Vec3{0, 1, 0},
				TexC:     mgl32.Vec2{float32(j) * du, float32(i) * dv},
			})
		}
	}

	for i := 0; i < m-1; i++ {
		for j := 0; j < n-1; j++ {
			a := uint32(i*n + j)
			b := uint32((i+1)*n + j)
			model.Indices = append(model.Indices, a, a+1, b, b, a+1, b+1)
		}
	}
	return model
}
