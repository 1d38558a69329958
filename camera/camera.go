// Package camera is a first-person camera producing left-handed view and
// projection matrices: +x right, +y up, +z into the screen.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	position mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	look     mgl32.Vec3

	nearZ  float32
	farZ   float32
	aspect float32
	fovY   float32

	viewDirty bool
	view      mgl32.Mat4
	proj      mgl32.Mat4
}

func New() *Camera {
	c := &Camera{
		right:     mgl32.Vec3{1, 0, 0},
		up:        mgl32.Vec3{0, 1, 0},
		look:      mgl32.Vec3{0, 0, 1},
		viewDirty: true,
	}
	c.SetLens(0.25*math.Pi, 1, 1, 1000)
	return c
}

// PerspectiveLH builds a left-handed perspective projection for column
// vectors. Depth maps to [0, 1] between nearZ and farZ.
func PerspectiveLH(fovY, aspect, nearZ, farZ float32) mgl32.Mat4 {
	h := 1 / float32(math.Tan(float64(fovY)/2))
	w := h / aspect
	q := farZ / (farZ - nearZ)

	return mgl32.Mat4{
		w, 0, 0, 0,
		0, h, 0, 0,
		0, 0, q, 1,
		0, 0, -q * nearZ, 0,
	}
}

// LookAtLH builds the view matrix of an eye at eye looking at target.
func LookAtLH(eye, target, worldUp mgl32.Vec3) mgl32.Mat4 {
	look := target.Sub(eye).Normalize()
	right := worldUp.Cross(look).Normalize()
	up := look.Cross(right)
	return viewMatrix(eye, right, up, look)
}

func viewMatrix(pos, right, up, look mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Mat4{
		right[0], up[0], look[0], 0,
		right[1], up[1], look[1], 0,
		right[2], up[2], look[2], 0,
		-pos.Dot(right), -pos.Dot(up), -pos.Dot(look), 1,
	}
}

func (c *Camera) Position() mgl32.Vec3 { return c.position }
func (c *Camera) Right() mgl32.Vec3    { return c.right }
func (c *Camera) Up() mgl32.Vec3       { return c.up }
func (c *Camera) Look() mgl32.Vec3     { return c.look }
func (c *Camera) NearZ() float32       { return c.nearZ }
func (c *Camera) FarZ() float32        { return c.farZ }
func (c *Camera) Aspect() float32      { return c.aspect }
func (c *Camera) FovY() float32        { return c.fovY }

func (c *Camera) FovX() float32 {
	halfWidth := 0.5 * c.NearWindowWidth()
	return 2 * float32(math.Atan(float64(halfWidth/c.nearZ)))
}

func (c *Camera) NearWindowHeight() float32 {
	return 2 * c.nearZ * float32(math.Tan(float64(c.fovY)/2))
}

func (c *Camera) NearWindowWidth() float32 {
	return c.aspect * c.NearWindowHeight()
}

func (c *Camera) SetPosition(x, y, z float32) {
	c.position = mgl32.Vec3{x, y, z}
	c.viewDirty = true
}

// SetLens changes the frustum. Call it again whenever the window is resized.
func (c *Camera) SetLens(fovY, aspect, nearZ, farZ float32) {
	c.fovY = fovY
	c.aspect = aspect
	c.nearZ = nearZ
	c.farZ = farZ
	c.proj = PerspectiveLH(fovY, aspect, nearZ, farZ)
}

func (c *Camera) LookAt(pos, target, worldUp mgl32.Vec3) {
	c.position = pos
	c.look = target.Sub(pos).Normalize()
	c.right = worldUp.Cross(c.look).Normalize()
	c.up = c.look.Cross(c.right)
	c.viewDirty = true
}

func (c *Camera) Strafe(d float32) {
	c.position = c.position.Add(c.right.Mul(d))
	c.viewDirty = true
}

func (c *Camera) Walk(d float32) {
	c.position = c.position.Add(c.look.Mul(d))
	c.viewDirty = true
}

// Pitch rotates up and look about the camera's right vector.
func (c *Camera) Pitch(angle float32) {
	q := mgl32.QuatRotate(angle, c.right)
	c.up = q.Rotate(c.up)
	c.look = q.Rotate(c.look)
	c.viewDirty = true
}

// RotateY rotates the camera about the world y axis.
func (c *Camera) RotateY(angle float32) {
	q := mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
	c.right = q.Rotate(c.right)
	c.up = q.Rotate(c.up)
	c.look = q.Rotate(c.look)
	c.viewDirty = true
}

// UpdateViewMatrix re-orthonormalizes the basis, which drifts after many
// rotations, and rebuilds the view matrix.
func (c *Camera) UpdateViewMatrix() {
	if !c.viewDirty {
		return
	}

	c.look = c.look.Normalize()
	c.up = c.look.Cross(c.right).Normalize()
	c.right = c.up.Cross(c.look)

	c.view = viewMatrix(c.position, c.right, c.up, c.look)
	c.viewDirty = false
}

func (c *Camera) View() mgl32.Mat4 {
	c.UpdateViewMatrix()
	return c.view
}

func (c *Camera) Proj() mgl32.Mat4 {
	return c.proj
}
