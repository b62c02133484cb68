package gfx

import "github.com/go-gl/mathgl/mgl32"

// Object is a renderable geometry with a material and a transform.
type Object struct {
	Name     string
	Geometry *Geometry
	Material Material

	Position Vec3
	Rotation Vec3 // Euler angles in radians, XYZ order
	Scale    Vec3

	Visible bool
}

// NewMesh returns a visible object at the origin with unit scale.
func NewMesh(name string, g *Geometry, m Material) *Object {
	return &Object{
		Name:     name,
		Geometry: g,
		Material: m,
		Scale:    V3(1, 1, 1),
		Visible:  true,
	}
}

// Matrix returns the model matrix: translation · rotation · scale.
func (o *Object) Matrix() Mat4 {
	s := o.Scale
	if s == (Vec3{}) {
		s = V3(1, 1, 1)
	}
	return mgl32.Translate3D(o.Position[0], o.Position[1], o.Position[2]).
		Mul4(EulerXYZ(o.Rotation)).
		Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}
