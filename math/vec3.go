package math

import "github.com/go-gl/mathgl/mgl32"

type Vec2 = mgl32.Vec2

type Vec3 = mgl32.Vec3

type Vec4 = mgl32.Vec4

var (
	Vec3Zero = Vec3{0, 0, 0}
	Vec3Up   = Vec3{0, 1, 0}
)

func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

func Distance(a, b Vec3) float32 {
	return a.Sub(b).Len()
}

// HorizontalDistance ignores the vertical (Y) component.
func HorizontalDistance(a, b Vec3) float32 {
	return mgl32.Vec2{a.X() - b.X(), a.Z() - b.Z()}.Len()
}
