package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitControls orbits a camera around a target point.
//
// The controls keep their own accumulated yaw, pitch and zoom and apply them on top
// of whatever position the camera already has. With no input, Update leaves the
// position untouched.
type OrbitControls struct {
	Target Vec3

	// RotateSpeed is radians per unit of drag.
	RotateSpeed float32
	MinRadius   float32
	MaxRadius   float32

	yaw   float32
	pitch float32
	zoom  float32
}

const maxPitch = math.Pi/2 - 0.01

func NewOrbitControls(target Vec3) *OrbitControls {
	return &OrbitControls{
		Target:      target,
		RotateSpeed: 0.01,
		MinRadius:   0.5,
		MaxRadius:   500,
		zoom:        1,
	}
}

// Rotate accumulates a drag of (dx, dy) pointer units.
func (c *OrbitControls) Rotate(dx, dy float32) {
	c.yaw -= dx * c.RotateSpeed
	c.pitch = clampF32(c.pitch+dy*c.RotateSpeed, -maxPitch, maxPitch)
}

// Zoom scales the orbit radius; factors below 1 move closer.
func (c *OrbitControls) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	c.zoom *= factor
}

func (c *OrbitControls) Reset() {
	c.yaw, c.pitch, c.zoom = 0, 0, 1
}

// Idle reports whether the controls have no accumulated input.
func (c *OrbitControls) Idle() bool {
	return c.yaw == 0 && c.pitch == 0 && c.zoom == 1
}

// Update aims cam at the target and orbits it by the accumulated input.
func (c *OrbitControls) Update(cam *Camera) {
	if c == nil || cam == nil {
		return
	}
	cam.Target = c.Target
	if c.Idle() {
		return
	}

	off := cam.Position.Sub(c.Target)
	radius := off.Len()
	if radius < 1e-6 {
		off = V3(0, 0, 1)
		radius = 1
	}
	radius = clampF32(radius*c.zoom, c.MinRadius, c.MaxRadius)

	rot := mgl32.HomogRotate3DY(c.yaw)
	off = TransformDir(rot, off)

	// Pitch around the horizontal axis perpendicular to the view offset.
	axis := V3(0, 1, 0).Cross(off)
	if axis.Len() > 1e-6 && c.pitch != 0 {
		pitch := clampF32(c.pitch, -maxPitch, maxPitch)
		off = TransformDir(mgl32.HomogRotate3D(-pitch, axis.Normalize()), off)
	}
	cam.Position = c.Target.Add(off.Mul(radius))
}
