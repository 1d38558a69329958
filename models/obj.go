package models

import (
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"
)

type objVertexKey struct {
	position, normal, uv int
}

// LoadOBJ decodes a Wavefront OBJ model. mtl may be nil when the model has
// no material library. Polygons are triangulated as fans and vertices that
// share position, normal and uv indices are merged.
func LoadOBJ(name string, objFile, mtl io.Reader) (*Model, error) {
	if mtl == nil {
		mtl = strings.NewReader("")
	}

	decoder, err := obj.DecodeReader(objFile, mtl)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding obj model %q", name)
	}

	model := &Model{Name: name}
	unique := make(map[objVertexKey]uint32)

	addVertex := func(face obj.Face, corner int) error {
		key := objVertexKey{position: face.Vertices[corner], normal: -1, uv: -1}
		if corner < len(face.Normals) {
			key.normal = face.Normals[corner]
		}
		if corner < len(face.Uvs) {
			key.uv = face.Uvs[corner]
		}

		index, exists := unique[key]
		if !exists {
			if key.position < 0 || key.position*3+2 >= len(decoder.Vertices) {
				return errors.Newf("face references missing vertex %d", key.position)
			}

			var v Vertex
			v.Position = mgl32.Vec3{
				decoder.Vertices[key.position*3],
				decoder.Vertices[key.position*3+1],
				decoder.Vertices[key.position*3+2],
			}
			if key.normal >= 0 && key.normal*3+2 < len(decoder.Normals) {
				v.Normal = mgl32.Vec3{
					decoder.Normals[key.normal*3],
					decoder.Normals[key.normal*3+1],
					decoder.Normals[key.normal*3+2],
				}
			}
			if key.uv >= 0 && key.uv*2+1 < len(decoder.Uvs) {
				v.TexC = mgl32.Vec2{decoder.Uvs[key.uv*2], 1 - decoder.Uvs[key.uv*2+1]}
			} else {
				v.TexC = sphericalTexC(v.Position)
			}

			index = uint32(len(model.Vertices))
			model.Vertices = append(model.Vertices, v)
			unique[key] = index
		}

		model.Indices = append(model.Indices, index)
		return nil
	}

	for _, decodedObj := range decoder.Objects {
		for _, face := range decodedObj.Faces {
			for i := 2; i < len(face.Vertices); i++ {
				for _, corner := range [3]int{0, i - 1, i} {
					if err := addVertex(face, corner); err != nil {
						return nil, errors.Wrapf(err, "obj model %q, object %q", name, decodedObj.Name)
					}
				}
			}
		}
	}

	return model, nil
}
