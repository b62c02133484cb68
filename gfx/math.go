package gfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a 3D vector.
type Vec3 = mgl32.Vec3

// Mat4 is a column-major 4x4 matrix.
type Mat4 = mgl32.Mat4

func V3(x, y, z float32) Vec3 { return Vec3{x, y, z} }

// EulerXYZ builds the rotation for angles applied in X, then Y, then Z order of the
// intrinsic frame (Rx · Ry · Rz).
func EulerXYZ(r Vec3) Mat4 {
	return mgl32.HomogRotate3DX(r[0]).
		Mul4(mgl32.HomogRotate3DY(r[1])).
		Mul4(mgl32.HomogRotate3DZ(r[2]))
}

// TransformPoint applies m to p with w = 1.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// TransformDir applies m to d with w = 0 and normalizes the result.
func TransformDir(m Mat4, d Vec3) Vec3 {
	return normalize(m.Mul4x1(d.Vec4(0)).Vec3())
}

func Clamp01(v float32) float32 {
	return clampF32(v, 0, 1)
}

func clampF32(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// normalize is Vec3.Normalize without the NaN on zero length.
func normalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

func sin32(v float64) float32 { return float32(math.Sin(v)) }
func cos32(v float64) float32 { return float32(math.Cos(v)) }
