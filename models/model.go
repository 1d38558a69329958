// Package models loads and generates the triangle meshes the sample picks
// against.
package models

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/picking/pick"
)

type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexC     mgl32.Vec2
}

// Model is an indexed triangle list with per-vertex attributes.
type Model struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
}

func (m *Model) Positions() []mgl32.Vec3 {
	positions := make([]mgl32.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		positions[i] = v.Position
	}
	return positions
}

func (m *Model) Bounds() pick.BoundingBox {
	return pick.BoundsOf(m.Positions())
}

// Mesh validates the model's geometry and returns the mesh used for picking.
func (m *Model) Mesh() (*pick.Mesh, error) {
	mesh, err := pick.NewMesh(m.Positions(), m.Indices)
	if err != nil {
		return nil, errors.Wrapf(err, "model %q", m.Name)
	}
	return mesh, nil
}

// sphericalTexC projects p onto the unit sphere and maps longitude and
// latitude to [0, 1].
func sphericalTexC(p mgl32.Vec3) mgl32.Vec2 {
	if p.Len() == 0 {
		return mgl32.Vec2{}
	}
	s := p.Normalize()

	theta := math.Atan2(float64(s.Z()), float64(s.X()))
	if theta < 0 {
		theta += 2 * math.Pi
	}
	phi := math.Acos(float64(mgl32.Clamp(s.Y(), -1, 1)))

	return mgl32.Vec2{float32(theta / (2 * math.Pi)), float32(phi / math.Pi)}
}
