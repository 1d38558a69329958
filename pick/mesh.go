package pick

import (
	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Mesh is a triangle list: positions plus index triples into them. A mesh
// must not be modified once it has been handed to an Object.
type Mesh struct {
	Positions []mgl32.Vec3
	Indices   []uint32
	Bounds    BoundingBox
}

// NewMesh validates the geometry and computes its bounding box. Picking does
// not re-validate, so every mesh that comes from outside should pass through
// here.
func NewMesh(positions []mgl32.Vec3, indices []uint32) (*Mesh, error) {
	if len(indices)%3 != 0 {
		return nil, errors.Newf("index count %d is not a multiple of 3", len(indices))
	}

	for i, p := range positions {
		if !finite(p[0]) || !finite(p[1]) || !finite(p[2]) {
			return nil, errors.Newf("vertex %d has a non-finite position %v", i, p)
		}
	}

	for i, index := range indices {
		if int(index) >= len(positions) {
			return nil, errors.Newf("index %d (triangle %d) references vertex %d, mesh has %d vertices", i, i/3, index, len(positions))
		}
	}

	return &Mesh{
		Positions: positions,
		Indices:   indices,
		Bounds:    BoundsOf(positions),
	}, nil
}

func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangle returns the corners of triangle i. ok is false when any of its
// indices falls outside Positions.
func (m *Mesh) Triangle(i int) (v0, v1, v2 mgl32.Vec3, ok bool) {
	i0, i1, i2 := int(m.Indices[i*3]), int(m.Indices[i*3+1]), int(m.Indices[i*3+2])
	count := len(m.Positions)
	if i0 >= count || i1 >= count || i2 >= count {
		return v0, v1, v2, false
	}

	return m.Positions[i0], m.Positions[i1], m.Positions[i2], true
}

// Object is one pickable instance of a mesh placed in the world.
type Object struct {
	ID      uuid.UUID
	Name    string
	Mesh    *Mesh
	World   mgl32.Mat4
	Visible bool
}

func NewObject(name string, mesh *Mesh, world mgl32.Mat4) *Object {
	return &Object{
		ID:      uuid.New(),
		Name:    name,
		Mesh:    mesh,
		World:   world,
		Visible: true,
	}
}

func (o *Object) String() string {
	if o.Name != "" {
		return o.Name
	}
	return o.ID.String()
}
