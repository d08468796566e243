package io

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marziaf/birb-hunt/math"
)

const quadOBJ = `# quad
v 0 0 0
v 1 0 0
v 1 0 1
v 0 0 1
vt 0 0
vn 0 1 0
f 1/1/1 2/1/1 3/1/1 4/1/1
`

func TestParseOBJFanTriangulates(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, mesh.Indices)
	assert.Equal(t, math.Vec3Up, mesh.Vertices[2].Normal)
}

func TestParseOBJSharesVertices(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3\nf 3 2 4\n"))
	require.NoError(t, err)
	assert.Len(t, mesh.Vertices, 4)
	assert.Len(t, mesh.Indices, 6)
}

func TestParseOBJNegativeIndicesAndFlatNormals(t *testing.T) {
	mesh, err := ParseOBJ(strings.NewReader("v 0 0 0\nv 1 0 0\nv 0 0 -1\nf -3 -2 -1\n"))
	require.NoError(t, err)
	for _, v := range mesh.Vertices {
		assert.True(t, math.Vec3Up.ApproxEqual(v.Normal), "normal %v", v.Normal)
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := map[string]string{
		"empty":        "# nothing\n",
		"bad float":    "v 0 x 0\n",
		"short vertex": "v 0 0\n",
		"out of range": "v 0 0 0\nf 1 2 3\n",
		"degenerate":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOBJ(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestBuiltins(t *testing.T) {
	for _, name := range []string{"builtin:plane", "builtin:cube", "builtin:sphere", "builtin:trunk"} {
		mesh, err := Builtin(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, mesh.Indices, name)
		assert.Zero(t, len(mesh.Indices)%3, name)
		for _, i := range mesh.Indices {
			require.Less(t, int(i), len(mesh.Vertices), name)
		}
		min, _ := mesh.Bounds()
		assert.InDelta(t, 0, min.Y(), 1e-5, "%s rests on the ground", name)
	}

	_, err := Builtin("builtin:teapot")
	assert.Error(t, err)
}

func TestCubeBounds(t *testing.T) {
	min, max := CreateCube().Bounds()
	assert.True(t, math.NewVec3(-0.5, 0, -0.5).ApproxEqual(min))
	assert.True(t, math.NewVec3(0.5, 1, 0.5).ApproxEqual(max))
}

func triangleGLB(t *testing.T) []byte {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos},
		}},
	}}
	doc.Nodes = []*gltf.Node{{Name: "tri", Mesh: gltf.Index(0), Translation: [3]float64{0, 0, 5}}}
	doc.Scenes[0].Nodes = []int{0}

	var buf bytes.Buffer
	enc := gltf.NewEncoder(&buf)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))
	return buf.Bytes()
}

func TestParseGLTF(t *testing.T) {
	mesh, err := ParseGLTF(bytes.NewReader(triangleGLB(t)))
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, mesh.Indices)
	// The node translation is baked in.
	assert.True(t, math.NewVec3(1, 0, 5).ApproxEqual(mesh.Vertices[1].Position))
}

func TestLoadMesh(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.obj"), []byte(quadOBJ), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tri.glb"), triangleGLB(t), 0644))
	src := DirSource{Root: dir}
	ctx := context.Background()

	mesh, err := LoadMesh(ctx, src, "quad.obj")
	require.NoError(t, err)
	assert.Len(t, mesh.Indices, 6)

	mesh, err = LoadMesh(ctx, src, "tri.glb")
	require.NoError(t, err)
	assert.Len(t, mesh.Indices, 3)

	mesh, err = LoadMesh(ctx, src, "builtin:cube")
	require.NoError(t, err)
	assert.Len(t, mesh.Indices, 36)

	_, err = LoadMesh(ctx, src, "tree.fbx")
	assert.Error(t, err)
	_, err = LoadMesh(ctx, src, "missing.obj")
	assert.Error(t, err)
}
