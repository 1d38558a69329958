package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/vkngwrapper/picking/pick"
)

const MaxLights = 3

type ObjectConstants struct {
	World         mgl32.Mat4
	TexTransform  mgl32.Mat4
	MaterialIndex uint32
}

type MaterialData struct {
	DiffuseAlbedo   mgl32.Vec4
	FresnelR0       mgl32.Vec3
	Roughness       float32
	Transform       mgl32.Mat4
	DiffuseMapIndex uint32
}

type Light struct {
	Direction mgl32.Vec3
	Strength  mgl32.Vec3
}

type PassConstants struct {
	View        mgl32.Mat4
	InvView     mgl32.Mat4
	Proj        mgl32.Mat4
	InvProj     mgl32.Mat4
	ViewProj    mgl32.Mat4
	InvViewProj mgl32.Mat4

	EyePos              mgl32.Vec3
	RenderTargetSize    mgl32.Vec2
	InvRenderTargetSize mgl32.Vec2
	NearZ               float32
	FarZ                float32
	TotalTime           float32
	DeltaTime           float32

	AmbientLight mgl32.Vec4
	Lights       [MaxLights]Light
}

// DrawCall is one recorded draw of a render item.
type DrawCall struct {
	Layer       RenderLayer
	ObjectIndex int
	Mesh        *pick.Mesh
	StartIndex  int
	IndexCount  int
}

// Segment is a screen space line in pixels.
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// FrameResource is everything the CPU writes for one frame and the draw
// worker reads back. The CPU must not touch a frame resource again until the
// ring hands it out anew.
type FrameResource struct {
	Pass      PassConstants
	Objects   []ObjectConstants
	Materials []MaterialData

	Draws []DrawCall
	Lines [LayerCount][]Segment
}

func NewFrameResource(objectCount, materialCount int) *FrameResource {
	return &FrameResource{
		Objects:   make([]ObjectConstants, objectCount),
		Materials: make([]MaterialData, materialCount),
	}
}
