package core

import (
	"github.com/marziaf/birb-hunt/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite    = Color{1, 1, 1, 1}
	ColorBlack    = Color{0, 0, 0, 1}
	ColorBark     = Color{0.45, 0.3, 0.18, 1}
	ColorLeaf     = Color{0.2, 0.55, 0.2, 1}
	ColorStone    = Color{0.5, 0.5, 0.52, 1}
	ColorGrass    = Color{0.3, 0.6, 0.25, 1}
	ColorFeathers = Color{0.9, 0.35, 0.1, 1}
)

// Vertex is the interleaved layout uploaded to the GPU: position, normal,
// uv and color, in that order.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
	Color    Color
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds returns the axis-aligned extent of the mesh positions.
func (m *MeshData) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min = m.Vertices[0].Position
	max = min
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < min[i] {
				min[i] = v.Position[i]
			}
			if v.Position[i] > max[i] {
				max[i] = v.Position[i]
			}
		}
	}
	return min, max
}

// Tint sets every vertex color.
func (m *MeshData) Tint(c Color) {
	for i := range m.Vertices {
		m.Vertices[i].Color = c
	}
}

type Viewport struct {
	X, Y, Width, Height int32
}

// Aspect is width over height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
