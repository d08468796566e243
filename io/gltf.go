package io

import (
	stdio "io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/math"
)

// ParseGLTF decodes a .glb or self-contained .gltf stream and flattens every
// mesh reachable from the default scene into one mesh, with node transforms
// baked into the vertices. Base color factors become vertex colors. Buffers
// referenced by external URI are not supported.
func ParseGLTF(r stdio.Reader) (*core.MeshData, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode gltf")
	}

	out := &core.MeshData{}
	for _, root := range gltfRoots(doc) {
		if err := flattenGLTFNode(doc, root, math.Identity(), out, 0); err != nil {
			return nil, err
		}
	}
	if len(out.Indices) == 0 {
		return nil, errors.New("no triangles found in gltf")
	}
	return out, nil
}

func gltfRoots(doc *gltf.Document) []int {
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		return doc.Scenes[*doc.Scene].Nodes
	}
	// No default scene: every parentless node is a root.
	hasParent := make([]bool, len(doc.Nodes))
	for _, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !hasParent[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

const maxGLTFDepth = 64

func gltfNodeMatrix(gn *gltf.Node) math.Mat4 {
	if gn.Matrix != gltf.DefaultMatrix && gn.Matrix != [16]float64{} {
		var m math.Mat4
		for i, v := range gn.Matrix {
			m[i] = float32(v)
		}
		return m
	}
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()
	q := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	m := mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2]))
	m = m.Mul4(q.Normalize().Mat4())
	return m.Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func flattenGLTFNode(doc *gltf.Document, idx int, parent math.Mat4, out *core.MeshData, depth int) error {
	if idx < 0 || idx >= len(doc.Nodes) {
		return errors.Errorf("gltf node %d out of range", idx)
	}
	if depth > maxGLTFDepth {
		return errors.Errorf("gltf node hierarchy deeper than %d", maxGLTFDepth)
	}
	gn := doc.Nodes[idx]
	world := math.Multiply(parent, gltfNodeMatrix(gn))

	if gn.Mesh != nil && *gn.Mesh < len(doc.Meshes) {
		gm := doc.Meshes[*gn.Mesh]
		for pi, prim := range gm.Primitives {
			if err := appendGLTFPrimitive(doc, prim, world, out); err != nil {
				return errors.Wrapf(err, "gltf mesh %q primitive %d", gm.Name, pi)
			}
		}
	}
	for _, c := range gn.Children {
		if err := flattenGLTFNode(doc, c, world, out, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func appendGLTFPrimitive(doc *gltf.Document, prim *gltf.Primitive, world math.Mat4, out *core.MeshData) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return errors.New("no POSITION attribute")
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return errors.Wrap(err, "positions")
	}

	var normals [][3]float32
	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return errors.Wrap(err, "normals")
		}
	}
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return errors.Wrap(err, "texcoords")
		}
	}

	color := core.ColorWhite
	if prim.Material != nil && *prim.Material < len(doc.Materials) {
		if pbr := doc.Materials[*prim.Material].PBRMetallicRoughness; pbr != nil {
			cf := pbr.BaseColorFactorOrDefault()
			color = core.Color{R: float32(cf[0]), G: float32(cf[1]), B: float32(cf[2]), A: float32(cf[3])}
		}
	}

	normalMatrix := world.Mat3().Inv().Transpose()
	base := uint32(len(out.Vertices))
	for i, p := range positions {
		v := core.Vertex{
			Position: math.TransformPoint(world, math.Vec3(p)),
			Normal:   math.Vec3Up,
			Color:    color,
		}
		if i < len(normals) {
			v.Normal = normalMatrix.Mul3x1(math.Vec3(normals[i])).Normalize()
		}
		if i < len(uvs) {
			v.UV = math.Vec2(uvs[i])
		}
		out.Vertices = append(out.Vertices, v)
	}

	if prim.Indices == nil {
		for i := range positions {
			out.Indices = append(out.Indices, base+uint32(i))
		}
		return nil
	}
	indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
	if err != nil {
		return errors.Wrap(err, "indices")
	}
	for _, i := range indices {
		if int(i) >= len(positions) {
			return errors.Errorf("index %d out of range", i)
		}
		out.Indices = append(out.Indices, base+i)
	}
	return nil
}
