package gfx

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera aimed at Target.
type Camera struct {
	Position Vec3
	Target   Vec3
	Up       Vec3

	FOVYDeg float32
	Near    float32
	Far     float32
}

// NewPerspectiveCamera returns a camera at the origin looking down -Z.
func NewPerspectiveCamera(fovYDeg, near, far float32) *Camera {
	return &Camera{
		Target:  V3(0, 0, -1),
		Up:      V3(0, 1, 0),
		FOVYDeg: fovYDeg,
		Near:    near,
		Far:     far,
	}
}

// View returns the camera view matrix.
//
// A camera sitting on its target looks down -Z, and an up vector parallel to the
// view direction is swapped for -Z so the basis never degenerates.
func (c *Camera) View() Mat4 {
	forward := c.Target.Sub(c.Position)
	target := c.Target
	if forward.Len() < 1e-6 {
		forward = V3(0, 0, -1)
		target = c.Position.Add(forward)
	}
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	if normalize(forward).Cross(normalize(up)).Len() < 1e-6 {
		up = V3(0, 0, -1)
	}
	return mgl32.LookAtV(c.Position, target, up)
}

// Projection returns the projection matrix for a target aspect.
func (c *Camera) Projection(aspect float32) Mat4 {
	if aspect == 0 {
		aspect = 1
	}
	fov := c.FOVYDeg
	if fov <= 0 {
		fov = 75
	}
	near, far := c.Near, c.Far
	if near <= 0 {
		near = 0.1
	}
	if far <= near {
		far = near * 10000
	}
	return mgl32.Perspective(mgl32.DegToRad(fov), aspect, near, far)
}
