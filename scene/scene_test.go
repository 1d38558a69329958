package scene

import (
	"context"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/picking/camera"
	"github.com/vkngwrapper/picking/frames"
	"github.com/vkngwrapper/picking/models"
	"github.com/vkngwrapper/picking/pick"
)

const (
	frameCount = 3
	width      = 800
	height     = 800
)

func testCamera() *camera.Camera {
	cam := camera.New()
	cam.SetLens(0.5*math.Pi, 1, 1, 1000)
	cam.LookAt(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return cam
}

func testScene(t *testing.T) (*Scene, *RenderItem) {
	s := New(frameCount)

	mesh, err := models.CreateBox(1, 1, 1).Mesh()
	require.NoError(t, err)

	item, err := s.AddObject(pick.NewObject("box", mesh, mgl32.Ident4()), "gray0")
	require.NoError(t, err)
	return s, item
}

func frameResources(s *Scene) []*FrameResource {
	var out []*FrameResource
	for i := 0; i < frameCount; i++ {
		out = append(out, NewFrameResource(s.ObjectCount(), s.MaterialCount()))
	}
	return out
}

func TestNewScene(t *testing.T) {
	s := New(frameCount)

	assert.Equal(t, 2, s.MaterialCount())
	assert.Equal(t, 1, s.ObjectCount())
	assert.False(t, s.Picked().Object.Visible)
	assert.Equal(t, []*RenderItem{s.Picked()}, s.Layer(Highlight))

	highlight, ok := s.Material("highlight0")
	require.True(t, ok)
	assert.Equal(t, 1, highlight.Index)
	assert.Same(t, highlight, s.Picked().Material)
}

func TestAddObjectErrors(t *testing.T) {
	s := New(frameCount)

	_, err := s.AddObject(pick.NewObject("empty", nil, mgl32.Ident4()), "gray0")
	assert.Error(t, err)

	mesh, err := models.CreateBox(1, 1, 1).Mesh()
	require.NoError(t, err)
	_, err = s.AddObject(pick.NewObject("box", mesh, mgl32.Ident4()), "chrome")
	assert.ErrorContains(t, err, "chrome")
}

func TestPickHighlightsTriangle(t *testing.T) {
	s, item := testScene(t)
	cam := testCamera()

	res := s.Pick(440, 380, width, height, cam)
	require.NotNil(t, res)
	assert.Same(t, item.Object, res.Object)

	picked := s.Picked()
	assert.True(t, picked.Object.Visible)
	assert.Same(t, item.Object.Mesh, picked.Object.Mesh)
	assert.Equal(t, 3, picked.IndexCount)
	assert.Equal(t, res.StartIndex, picked.StartIndexLocation)
	assert.Equal(t, frameCount, picked.Dirty.Pending())

	// projecting the hit point lands back on the clicked pixel
	clip := cam.Proj().Mul4(cam.View()).Mul4x1(res.Point.Vec4(1))
	assert.InDelta(t, 440, (clip.X()/clip.W()+1)*0.5*width, 1e-2)
	assert.InDelta(t, 380, (1-clip.Y()/clip.W())*0.5*height, 1e-2)

	assert.Nil(t, s.Pick(0, 0, width, height, cam))
	assert.False(t, picked.Object.Visible)
}

func TestUpdateOnlyDirtyFrames(t *testing.T) {
	s, item := testScene(t)
	frs := frameResources(s)

	for _, fr := range frs {
		s.UpdateObjectConstants(fr)
		s.UpdateMaterials(fr)
		assert.Equal(t, mgl32.Ident4(), fr.Objects[item.ObjectIndex].World)
		assert.Equal(t, mgl32.Vec4{1, 1, 0, 0.6}, fr.Materials[1].DiffuseAlbedo)
	}
	assert.Equal(t, 0, item.Dirty.Pending())

	moved := mgl32.Translate3D(0, 1, 0)
	item.Object.World = moved
	s.UpdateObjectConstants(frs[0])
	assert.Equal(t, mgl32.Ident4(), frs[0].Objects[item.ObjectIndex].World, "clean items are not rewritten")

	s.SetWorld(item, moved)
	for _, fr := range frs {
		s.UpdateObjectConstants(fr)
		assert.Equal(t, moved, fr.Objects[item.ObjectIndex].World)
	}
}

func TestUpdateMainPass(t *testing.T) {
	s, _ := testScene(t)
	fr := NewFrameResource(s.ObjectCount(), s.MaterialCount())
	cam := testCamera()

	s.UpdateMainPass(fr, cam, width, height, frames.NewTimer())
	assert.Equal(t, cam.Proj().Mul4(cam.View()), fr.Pass.ViewProj)
	assert.Equal(t, mgl32.Vec2{width, height}, fr.Pass.RenderTargetSize)
	assert.Equal(t, mgl32.Vec3{0, 0, -5}, fr.Pass.EyePos)
	assert.Equal(t, float32(1), fr.Pass.NearZ)
	assert.True(t, fr.Pass.View.Mul4(fr.Pass.InvView).ApproxEqualThreshold(mgl32.Ident4(), 1e-5))
}

func TestRecordAndExecute(t *testing.T) {
	s, _ := testScene(t)
	cam := testCamera()
	fr := NewFrameResource(s.ObjectCount(), s.MaterialCount())

	prepare := func() {
		s.UpdateObjectConstants(fr)
		s.UpdateMainPass(fr, cam, width, height, nil)
		s.RecordDraws(fr)
	}

	prepare()
	require.Len(t, fr.Draws, 1)
	require.NoError(t, fr.Execute(context.Background()))
	assert.Len(t, fr.Lines[Opaque], 12*3)
	assert.Empty(t, fr.Lines[Highlight])

	require.NotNil(t, s.Pick(440, 380, width, height, cam))
	prepare()
	require.Len(t, fr.Draws, 2)
	require.NoError(t, fr.Execute(context.Background()))
	assert.Len(t, fr.Lines[Opaque], 12*3)
	require.Len(t, fr.Lines[Highlight], 3)

	// the front face spans x in [-0.5, 0.5] at depth 4.5
	for _, seg := range fr.Lines[Highlight] {
		for _, x := range []float32{seg.X0, seg.X1} {
			assert.InDelta(t, 400, x, 400/4.5*0.5+1e-2)
		}
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, fr.Execute(cancelled), context.Canceled)
}
