package math

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is stored column-major and multiplies column vectors (M * v), so
// Multiply(a, b) applies b first and then a.
type Mat4 = mgl32.Mat4

// singularEpsilon is the smallest determinant Invert treats as invertible.
const singularEpsilon = 1e-12

func Identity() Mat4 {
	return mgl32.Ident4()
}

func Translate(dx, dy, dz float32) Mat4 {
	return mgl32.Translate3D(dx, dy, dz)
}

// RotateX returns a rotation of deg degrees about the X axis.
func RotateX(deg float32) Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(deg))
}

// RotateY returns a rotation of deg degrees about the Y axis.
func RotateY(deg float32) Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(deg))
}

// RotateZ returns a rotation of deg degrees about the Z axis.
func RotateZ(deg float32) Mat4 {
	return mgl32.HomogRotate3DZ(mgl32.DegToRad(deg))
}

// Scale returns a uniform scale matrix.
func Scale(s float32) Mat4 {
	return mgl32.Scale3D(s, s, s)
}

// Multiply returns a∘b: b is applied first.
func Multiply(a, b Mat4) Mat4 {
	return a.Mul4(b)
}

// Invert returns the inverse of m. A singular (or numerically singular)
// matrix yields the identity instead of an error, so callers must tolerate
// a silent identity result.
func Invert(m Mat4) Mat4 {
	det := m.Det()
	if math.Abs(float64(det)) < singularEpsilon {
		return mgl32.Ident4()
	}
	return m.Inv()
}

func Transpose(m Mat4) Mat4 {
	return m.Transpose()
}

func MultiplyVector(m Mat4, v Vec4) Vec4 {
	return m.Mul4x1(v)
}

// TransformPoint applies m to the point p (w = 1) and divides by w.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if w := v.W(); w != 0 {
		return v.Vec3().Mul(1 / w)
	}
	return v.Vec3()
}

// Origin is m applied to the local origin (0,0,0,1).
func Origin(m Mat4) Vec3 {
	return Vec3{m[12], m[13], m[14]}
}

// UniformScale is the length of m's X basis column, which is the scale factor
// of any matrix built from rotations, translations and uniform scales.
func UniformScale(m Mat4) float32 {
	return m.Col(0).Vec3().Len()
}

// MakeWorld composes T * Rx * Ry * Rz * S. rx, ry and rz are degrees about
// the X, Y and Z axes respectively; yaw is ry.
func MakeWorld(tx, ty, tz, rx, ry, rz, s float32) Mat4 {
	out := RotateZ(rz).Mul4(Scale(s))
	out = RotateY(ry).Mul4(out)
	out = RotateX(rx).Mul4(out)
	return Translate(tx, ty, tz).Mul4(out)
}

// MakeView builds the inverse camera transform Rx(-elev) * Ry(-azimuth) * T(-c)
// for a camera at (cx, cy, cz) looking azimuth degrees about Y and elevation
// degrees about X.
func MakeView(cx, cy, cz, elevation, azimuth float32) Mat4 {
	t := Translate(-cx, -cy, -cz)
	return RotateX(-elevation).Mul4(RotateY(-azimuth).Mul4(t))
}

// MakePerspective takes the vertical field of view in degrees.
func MakePerspective(fovY, aspect, near, far float32) Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovY), aspect, near, far)
}

func MakeOrtho(left, right, bottom, top, near, far float32) Mat4 {
	return mgl32.Ortho(left, right, bottom, top, near, far)
}
