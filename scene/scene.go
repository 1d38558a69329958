// Package scene holds the sample's render items, keeps the per-frame copies
// of their constants up to date and turns a pick into a highlighted triangle.
package scene

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/picking/camera"
	"github.com/vkngwrapper/picking/frames"
	"github.com/vkngwrapper/picking/pick"
)

type RenderLayer int

const (
	Opaque RenderLayer = iota
	Highlight
	LayerCount
)

type Material struct {
	Name            string
	Index           int
	DiffuseMapIndex int
	DiffuseAlbedo   mgl32.Vec4
	FresnelR0       mgl32.Vec3
	Roughness       float32
	Transform       mgl32.Mat4

	Dirty frames.Dirty
}

// RenderItem is a pickable object plus what is needed to draw it.
type RenderItem struct {
	Object       *pick.Object
	Material     *Material
	TexTransform mgl32.Mat4
	ObjectIndex  int

	IndexCount         int
	StartIndexLocation int

	Dirty frames.Dirty
}

type Scene struct {
	frameCount int

	items      []*RenderItem
	layers     [LayerCount][]*RenderItem
	candidates []*pick.Object

	materials     []*Material
	materialIndex map[string]*Material

	picked *RenderItem
}

// New creates an empty scene whose per-frame data is spread over frameCount
// frame resources.
func New(frameCount int) *Scene {
	s := &Scene{
		frameCount:    frameCount,
		materialIndex: make(map[string]*Material),
	}

	s.AddMaterial(&Material{
		Name:          "gray0",
		DiffuseAlbedo: mgl32.Vec4{0.7, 0.7, 0.7, 1},
		FresnelR0:     mgl32.Vec3{0.04, 0.04, 0.04},
	})
	highlight := s.AddMaterial(&Material{
		Name:          "highlight0",
		DiffuseAlbedo: mgl32.Vec4{1, 1, 0, 0.6},
		FresnelR0:     mgl32.Vec3{0.06, 0.06, 0.06},
	})

	// Not visible until something is picked.
	s.picked = &RenderItem{
		Object:       &pick.Object{Name: "picked", World: mgl32.Ident4()},
		Material:     highlight,
		TexTransform: mgl32.Ident4(),
	}
	s.addItem(Highlight, s.picked)

	return s
}

func (s *Scene) AddMaterial(m *Material) *Material {
	m.Index = len(s.materials)
	if m.Transform == (mgl32.Mat4{}) {
		m.Transform = mgl32.Ident4()
	}
	m.Dirty = frames.NewDirty(s.frameCount)

	s.materials = append(s.materials, m)
	s.materialIndex[m.Name] = m
	return m
}

func (s *Scene) Material(name string) (*Material, bool) {
	m, ok := s.materialIndex[name]
	return m, ok
}

func (s *Scene) addItem(layer RenderLayer, item *RenderItem) {
	item.ObjectIndex = len(s.items)
	item.Dirty = frames.NewDirty(s.frameCount)
	s.items = append(s.items, item)
	s.layers[layer] = append(s.layers[layer], item)
}

// AddObject places obj in the opaque layer, where it can be picked.
func (s *Scene) AddObject(obj *pick.Object, material string) (*RenderItem, error) {
	if obj == nil || obj.Mesh == nil {
		return nil, errors.New("render item needs an object with a mesh")
	}
	m, ok := s.materialIndex[material]
	if !ok {
		return nil, errors.Newf("unknown material %q", material)
	}

	item := &RenderItem{
		Object:       obj,
		Material:     m,
		TexTransform: mgl32.Ident4(),
		IndexCount:   len(obj.Mesh.Indices),
	}
	s.addItem(Opaque, item)
	s.candidates = append(s.candidates, obj)
	return item, nil
}

func (s *Scene) Layer(layer RenderLayer) []*RenderItem {
	return s.layers[layer]
}

func (s *Scene) ObjectCount() int {
	return len(s.items)
}

func (s *Scene) MaterialCount() int {
	return len(s.materials)
}

// Picked is the highlight item; it is only visible after a successful pick.
func (s *Scene) Picked() *RenderItem {
	return s.picked
}

// SetWorld moves an item and schedules its constants for every frame.
func (s *Scene) SetWorld(item *RenderItem, world mgl32.Mat4) {
	item.Object.World = world
	item.Dirty.MarkDirty()
}

// Pick casts a ray through pixel (sx, sy) and moves the highlight onto the
// triangle hit, or hides it when nothing is hit.
func (s *Scene) Pick(sx, sy, width, height int, cam *camera.Camera) *pick.Result {
	res := pick.Pick(sx, sy, width, height, cam.Proj(), cam.View(), s.candidates)
	s.highlight(res)

	if res == nil {
		log.Printf("[pick] (%d, %d) - no hit", sx, sy)
	} else {
		log.Printf("[pick] (%d, %d) - %s triangle %d, distance %.3f", sx, sy, res.Object, res.Triangle, res.Distance)
	}
	return res
}

func (s *Scene) highlight(res *pick.Result) {
	item := s.picked
	item.Dirty.MarkDirty()

	if res == nil {
		item.Object.Visible = false
		return
	}

	item.Object.Visible = true
	item.Object.Mesh = res.Object.Mesh
	item.Object.World = res.Object.World
	item.IndexCount = 3
	item.StartIndexLocation = res.StartIndex
}

func (s *Scene) UpdateObjectConstants(fr *FrameResource) {
	for _, item := range s.items {
		if !item.Dirty.Consume() {
			continue
		}
		fr.Objects[item.ObjectIndex] = ObjectConstants{
			World:         item.Object.World,
			TexTransform:  item.TexTransform,
			MaterialIndex: uint32(item.Material.Index),
		}
	}
}

func (s *Scene) UpdateMaterials(fr *FrameResource) {
	for _, m := range s.materials {
		if !m.Dirty.Consume() {
			continue
		}
		fr.Materials[m.Index] = MaterialData{
			DiffuseAlbedo:   m.DiffuseAlbedo,
			FresnelR0:       m.FresnelR0,
			Roughness:       m.Roughness,
			Transform:       m.Transform,
			DiffuseMapIndex: uint32(m.DiffuseMapIndex),
		}
	}
}

// UpdateMainPass rewrites the pass constants; they change every frame.
func (s *Scene) UpdateMainPass(fr *FrameResource, cam *camera.Camera, width, height int, timer *frames.Timer) {
	view := cam.View()
	proj := cam.Proj()
	viewProj := proj.Mul4(view)

	pass := &fr.Pass
	pass.View = view
	pass.InvView = view.Inv()
	pass.Proj = proj
	pass.InvProj = proj.Inv()
	pass.ViewProj = viewProj
	pass.InvViewProj = viewProj.Inv()
	pass.EyePos = cam.Position()
	pass.RenderTargetSize = mgl32.Vec2{float32(width), float32(height)}
	pass.InvRenderTargetSize = mgl32.Vec2{1 / float32(width), 1 / float32(height)}
	pass.NearZ = cam.NearZ()
	pass.FarZ = cam.FarZ()
	if timer != nil {
		pass.TotalTime = timer.TotalTime()
		pass.DeltaTime = timer.DeltaTime()
	}
	pass.AmbientLight = mgl32.Vec4{0.25, 0.25, 0.35, 1}
	pass.Lights = [MaxLights]Light{
		{Direction: mgl32.Vec3{0.57735, -0.57735, 0.57735}, Strength: mgl32.Vec3{0.8, 0.8, 0.8}},
		{Direction: mgl32.Vec3{-0.57735, -0.57735, 0.57735}, Strength: mgl32.Vec3{0.4, 0.4, 0.4}},
		{Direction: mgl32.Vec3{0, -0.707, -0.707}, Strength: mgl32.Vec3{0.2, 0.2, 0.2}},
	}
}

// RecordDraws captures which items are drawn this frame. Only the recorded
// calls and the frame's constants are visible to the draw worker.
func (s *Scene) RecordDraws(fr *FrameResource) {
	fr.Draws = fr.Draws[:0]
	for layer := RenderLayer(0); layer < LayerCount; layer++ {
		for _, item := range s.layers[layer] {
			if !item.Object.Visible || item.Object.Mesh == nil {
				continue
			}
			fr.Draws = append(fr.Draws, DrawCall{
				Layer:       layer,
				ObjectIndex: item.ObjectIndex,
				Mesh:        item.Object.Mesh,
				StartIndex:  item.StartIndexLocation,
				IndexCount:  item.IndexCount,
			})
		}
	}
}
