package io

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/math"
)

// BuiltinPrefix names meshes generated in code instead of loaded from a
// Source, e.g. "builtin:plane".
const BuiltinPrefix = "builtin:"

// Builtin meshes all rest on the y = 0 plane.
var builtins = map[string]func() *core.MeshData{
	"plane":  func() *core.MeshData { return CreatePlane(1, 1, 8) },
	"cube":   CreateCube,
	"sphere": func() *core.MeshData { return CreateSphere(0.5, 16, 12) },
	"trunk":  func() *core.MeshData { return CreateCylinder(0.4, 4, 12) },
}

func IsBuiltin(name string) bool {
	return strings.HasPrefix(name, BuiltinPrefix)
}

func Builtin(name string) (*core.MeshData, error) {
	gen, ok := builtins[strings.TrimPrefix(name, BuiltinPrefix)]
	if !ok {
		return nil, errors.Errorf("unknown builtin mesh %q", name)
	}
	return gen(), nil
}

func vertex(p, n math.Vec3, u, v float32) core.Vertex {
	return core.Vertex{Position: p, Normal: n, UV: math.Vec2{u, v}, Color: defaultVertexColor}
}

// CreatePlane generates a flat plane on y = 0 centered at the origin.
func CreatePlane(width, depth float32, subdivisions int) *core.MeshData {
	if subdivisions < 1 {
		subdivisions = 1
	}
	mesh := &core.MeshData{}
	halfW := width / 2.0
	halfD := depth / 2.0

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)
			mesh.Vertices = append(mesh.Vertices, vertex(
				math.Vec3{-halfW + u*width, 0, -halfD + v*depth}, math.Vec3Up, u, v))
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1

			mesh.Indices = append(mesh.Indices, topLeft, bottomLeft, topRight)
			mesh.Indices = append(mesh.Indices, topRight, bottomLeft, bottomRight)
		}
	}
	return mesh
}

// CreateCube generates a unit cube standing on y = 0, one quad per face so
// every face keeps its own normal.
func CreateCube() *core.MeshData {
	mesh := &core.MeshData{}
	faces := []struct {
		n, u, v math.Vec3
	}{
		{math.Vec3{0, 0, 1}, math.Vec3{1, 0, 0}, math.Vec3{0, 1, 0}},
		{math.Vec3{0, 0, -1}, math.Vec3{-1, 0, 0}, math.Vec3{0, 1, 0}},
		{math.Vec3{1, 0, 0}, math.Vec3{0, 0, -1}, math.Vec3{0, 1, 0}},
		{math.Vec3{-1, 0, 0}, math.Vec3{0, 0, 1}, math.Vec3{0, 1, 0}},
		{math.Vec3{0, 1, 0}, math.Vec3{1, 0, 0}, math.Vec3{0, 0, -1}},
		{math.Vec3{0, -1, 0}, math.Vec3{1, 0, 0}, math.Vec3{0, 0, 1}},
	}
	center := math.Vec3{0, 0.5, 0}
	for _, f := range faces {
		base := uint32(len(mesh.Vertices))
		c := center.Add(f.n.Mul(0.5))
		for _, corner := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := c.Add(f.u.Mul(corner[0] * 0.5)).Add(f.v.Mul(corner[1] * 0.5))
			mesh.Vertices = append(mesh.Vertices, vertex(p, f.n, (corner[0]+1)/2, (corner[1]+1)/2))
		}
		mesh.Indices = append(mesh.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return mesh
}

// CreateSphere generates a UV sphere resting on y = 0.
func CreateSphere(radius float32, segments, rings int) *core.MeshData {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}
	mesh := &core.MeshData{}
	lift := math.Vec3{0, radius, 0}

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math32.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2.0 * math32.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)

			normal := math.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			mesh.Vertices = append(mesh.Vertices, vertex(normal.Mul(radius).Add(lift), normal,
				float32(seg)/float32(segments), float32(ring)/float32(rings)))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			mesh.Indices = append(mesh.Indices, current, next, current+1)
			mesh.Indices = append(mesh.Indices, current+1, next, next+1)
		}
	}
	return mesh
}

// CreateCylinder generates a capped cylinder from y = 0 to y = height.
func CreateCylinder(radius, height float32, segments int) *core.MeshData {
	if segments < 3 {
		segments = 3
	}
	mesh := &core.MeshData{}

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2.0 * math32.Pi / float32(segments)
		sinT, cosT := math32.Sincos(theta)
		normal := math.Vec3{cosT, 0, sinT}
		u := float32(i) / float32(segments)

		mesh.Vertices = append(mesh.Vertices,
			vertex(math.Vec3{cosT * radius, 0, sinT * radius}, normal, u, 0),
			vertex(math.Vec3{cosT * radius, height, sinT * radius}, normal, u, 1))
	}
	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		mesh.Indices = append(mesh.Indices, base, base+1, base+2)
		mesh.Indices = append(mesh.Indices, base+2, base+1, base+3)
	}

	addCap := func(y float32, normal math.Vec3, flip bool) {
		center := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, vertex(math.Vec3{0, y, 0}, normal, 0.5, 0.5))
		for i := 0; i <= segments; i++ {
			theta := float32(i) * 2.0 * math32.Pi / float32(segments)
			sinT, cosT := math32.Sincos(theta)
			mesh.Vertices = append(mesh.Vertices, vertex(
				math.Vec3{cosT * radius, y, sinT * radius}, normal, cosT*0.5+0.5, sinT*0.5+0.5))
		}
		for i := uint32(0); i < uint32(segments); i++ {
			a, b := center+1+i, center+2+i
			if flip {
				a, b = b, a
			}
			mesh.Indices = append(mesh.Indices, center, a, b)
		}
	}
	addCap(height, math.Vec3Up, false)
	addCap(0, math.Vec3{0, -1, 0}, true)
	return mesh
}
