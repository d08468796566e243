package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = float32(1e-4)

func assertVec3(t *testing.T, expected, actual Vec3) {
	t.Helper()
	if !expected.ApproxEqualThreshold(actual, tolerance) {
		t.Errorf("expected %v, got %v", expected, actual)
	}
}

func assertMat4(t *testing.T, expected, actual Mat4) {
	t.Helper()
	if !expected.ApproxEqualThreshold(actual, tolerance) {
		t.Errorf("expected\n%v\ngot\n%v", expected, actual)
	}
}

func TestMakeWorldIdentity(t *testing.T) {
	assert.Equal(t, Identity(), MakeWorld(0, 0, 0, 0, 0, 0, 1))
}

func TestMultiplyOrder(t *testing.T) {
	p := NewVec3(1, 0, 0)

	// Scale first, then translate.
	assertVec3(t, NewVec3(3, 0, 0), TransformPoint(Multiply(Translate(1, 0, 0), Scale(2)), p))
	// Translate first, then scale.
	assertVec3(t, NewVec3(4, 0, 0), TransformPoint(Multiply(Scale(2), Translate(1, 0, 0)), p))
}

func TestRotations(t *testing.T) {
	assertVec3(t, NewVec3(0, 0, -1), TransformPoint(RotateY(90), NewVec3(1, 0, 0)))
	assertVec3(t, NewVec3(0, 0, 1), TransformPoint(RotateX(90), NewVec3(0, 1, 0)))
	assertVec3(t, NewVec3(0, 1, 0), TransformPoint(RotateZ(90), NewVec3(1, 0, 0)))
}

func TestMakeWorldComposition(t *testing.T) {
	m := MakeWorld(1, 2, 3, 0, 90, 0, 2)

	// (1,0,0) -> scale 2 -> (2,0,0) -> yaw 90 -> (0,0,-2) -> translate -> (1,2,1)
	assertVec3(t, NewVec3(1, 2, 1), TransformPoint(m, NewVec3(1, 0, 0)))
	assertVec3(t, NewVec3(1, 2, 3), Origin(m))

	expected := Translate(1, 2, 3).Mul4(RotateX(0)).Mul4(RotateY(90)).Mul4(RotateZ(0)).Mul4(Scale(2))
	assertMat4(t, expected, m)
}

func TestInvertRoundTrip(t *testing.T) {
	matrices := []Mat4{
		MakeWorld(4, -2, 7, 30, 45, 60, 1.5),
		MakeView(1, 2, 3, 10, 200),
		MakePerspective(40, 1.6, 0.1, 100),
		Translate(-3, 0, 9),
	}
	for _, m := range matrices {
		assertMat4(t, m, Invert(Invert(m)))
		assertMat4(t, Identity(), Multiply(m, Invert(m)))
	}
}

func TestInvertSingular(t *testing.T) {
	assert.Equal(t, Identity(), Invert(Scale(0)))
	assert.Equal(t, Identity(), Invert(Mat4{}))
}

func TestTranspose(t *testing.T) {
	m := MakeWorld(1, 2, 3, 10, 20, 30, 1)
	assert.Equal(t, m, Transpose(Transpose(m)))
	assert.Equal(t, m[12], Transpose(m)[3])
}

func TestMultiplyVector(t *testing.T) {
	v := MultiplyVector(Translate(1, 2, 3), Vec4{0, 0, 0, 1})
	assert.Equal(t, Vec4{1, 2, 3, 1}, v)

	// Directions (w = 0) ignore translation.
	d := MultiplyVector(Translate(1, 2, 3), Vec4{1, 0, 0, 0})
	assert.Equal(t, Vec4{1, 0, 0, 0}, d)
}

func TestMakeView(t *testing.T) {
	view := MakeView(1, 2, 3, 15, 120)

	// The camera position maps to the view-space origin.
	assertVec3(t, Vec3Zero, TransformPoint(view, NewVec3(1, 2, 3)))

	// MakeView is the inverse of the camera's own placement T * Ry * Rx.
	camera := Translate(1, 2, 3).Mul4(RotateY(120)).Mul4(RotateX(15))
	assertMat4(t, Invert(camera), view)
}

func TestMakePerspective(t *testing.T) {
	near, far := float32(0.1), float32(2000)
	m := MakePerspective(40, 1, near, far)

	assert.InDelta(t, -1, TransformPoint(m, NewVec3(0, 0, -near)).Z(), 1e-4)
	assert.InDelta(t, 1, TransformPoint(m, NewVec3(0, 0, -far)).Z(), 1e-3)

	cot := 1 / math.Tan(20*math.Pi/180)
	assert.InDelta(t, cot, m[5], 1e-4)
}

func TestMakeOrtho(t *testing.T) {
	m := MakeOrtho(-2, 2, -1, 1, 0.5, 10)
	assertVec3(t, NewVec3(-1, -1, -1), TransformPoint(m, NewVec3(-2, -1, -0.5)))
	assertVec3(t, NewVec3(1, 1, 1), TransformPoint(m, NewVec3(2, 1, -10)))
}

func TestUniformScale(t *testing.T) {
	assert.InDelta(t, 1, UniformScale(Identity()), 1e-6)
	assert.InDelta(t, 2.5, UniformScale(MakeWorld(3, 1, -4, 0, 73, 0, 2.5)), 1e-5)
	assert.InDelta(t, 0.5, UniformScale(Multiply(Scale(0.25), Scale(2))), 1e-6)
}

func TestDistances(t *testing.T) {
	a := NewVec3(0, 0, 0)
	b := NewVec3(3, 100, 4)
	assert.InDelta(t, 5, HorizontalDistance(a, b), 1e-5)
	assert.Greater(t, Distance(a, b), float32(100))
}

func BenchmarkMakeWorld(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = MakeWorld(1, 2, 3, 10, 20, 30, 1.5)
	}
}

func BenchmarkInvert(b *testing.B) {
	m := MakeWorld(1, 2, 3, 10, 20, 30, 1.5)
	for i := 0; i < b.N; i++ {
		_ = Invert(m)
	}
}
