package io

import (
	"bufio"
	stdio "io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/math"
)

var defaultVertexColor = core.Color{R: 0.8, G: 0.8, B: 0.8, A: 1.0}

// ParseOBJ reads a Wavefront .obj stream into a single indexed mesh. All
// groups end up in one mesh and material statements are skipped. N-gons are
// fan triangulated; faces without normals get flat normals.
func ParseOBJ(r stdio.Reader) (*core.MeshData, error) {
	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2

	mesh := &core.MeshData{}
	vertexMap := make(map[string]uint32) // "v/vt/vn" -> vertex index
	missingNormals := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		switch parts[0] {
		case "v", "vn":
			v, err := parseFloats(parts[1:], 3)
			if err != nil {
				return nil, errors.Wrapf(err, "obj line %d", lineNo)
			}
			if parts[0] == "v" {
				positions = append(positions, math.Vec3{v[0], v[1], v[2]})
			} else {
				normals = append(normals, math.Vec3{v[0], v[1], v[2]})
			}
		case "vt":
			v, err := parseFloats(parts[1:], 2)
			if err != nil {
				return nil, errors.Wrapf(err, "obj line %d", lineNo)
			}
			uvs = append(uvs, math.Vec2{v[0], v[1]})
		case "f":
			if len(parts) < 4 {
				return nil, errors.Errorf("obj line %d: face with %d vertices", lineNo, len(parts)-1)
			}
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, faceStr := range parts[1:] {
				if idx, ok := vertexMap[faceStr]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}

				vertex, hasNormal, err := parseFaceVertex(faceStr, positions, normals, uvs)
				if err != nil {
					return nil, errors.Wrapf(err, "obj line %d", lineNo)
				}
				missingNormals = missingNormals || !hasNormal
				newIdx := uint32(len(mesh.Vertices))
				mesh.Vertices = append(mesh.Vertices, vertex)
				vertexMap[faceStr] = newIdx
				faceVerts = append(faceVerts, newIdx)
			}

			for i := 2; i < len(faceVerts); i++ {
				mesh.Indices = append(mesh.Indices, faceVerts[0], faceVerts[i-1], faceVerts[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read obj")
	}
	if len(mesh.Indices) == 0 {
		return nil, errors.New("no faces found in obj")
	}

	if missingNormals {
		computeNormals(mesh)
	}
	return mesh, nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, errors.Errorf("expected %d components, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, errors.Wrapf(err, "bad component %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

// objIndex resolves a 1-based (or negative, relative) OBJ index.
func objIndex(s string, n int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrapf(err, "bad index %q", s)
	}
	if idx < 0 {
		idx = n + idx + 1
	}
	if idx <= 0 || idx > n {
		return 0, errors.Errorf("index %s out of range [1, %d]", s, n)
	}
	return idx - 1, nil
}

// parseFaceVertex parses an OBJ face vertex spec like "v", "v/vt", "v//vn"
// or "v/vt/vn".
func parseFaceVertex(spec string, positions, normals []math.Vec3, uvs []math.Vec2) (core.Vertex, bool, error) {
	v := core.Vertex{Color: defaultVertexColor}
	parts := strings.Split(spec, "/")

	idx, err := objIndex(parts[0], len(positions))
	if err != nil {
		return v, false, err
	}
	v.Position = positions[idx]

	if len(parts) >= 2 && parts[1] != "" {
		idx, err := objIndex(parts[1], len(uvs))
		if err != nil {
			return v, false, err
		}
		v.UV = uvs[idx]
	}

	hasNormal := false
	if len(parts) >= 3 && parts[2] != "" {
		idx, err := objIndex(parts[2], len(normals))
		if err != nil {
			return v, false, err
		}
		v.Normal = normals[idx]
		hasNormal = true
	}
	return v, hasNormal, nil
}

// computeNormals accumulates face normals into every vertex that has none.
func computeNormals(mesh *core.MeshData) {
	acc := make([]math.Vec3, len(mesh.Vertices))
	for i := 0; i+2 < len(mesh.Indices); i += 3 {
		a, b, c := mesh.Indices[i], mesh.Indices[i+1], mesh.Indices[i+2]
		pa, pb, pc := mesh.Vertices[a].Position, mesh.Vertices[b].Position, mesh.Vertices[c].Position
		n := pb.Sub(pa).Cross(pc.Sub(pa))
		acc[a] = acc[a].Add(n)
		acc[b] = acc[b].Add(n)
		acc[c] = acc[c].Add(n)
	}
	for i := range mesh.Vertices {
		if mesh.Vertices[i].Normal.Len() > 0 || acc[i].Len() == 0 {
			continue
		}
		mesh.Vertices[i].Normal = acc[i].Normalize()
	}
}
