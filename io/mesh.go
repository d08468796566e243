package io

import (
	"context"
	"path"
	"strings"

	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
)

// IsMeshFile reports whether name has an extension LoadMesh can parse.
func IsMeshFile(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".obj", ".gltf", ".glb":
		return true
	}
	return false
}

// LoadMesh resolves a mesh by name: builtin meshes are generated, otherwise
// the asset is opened from src and parsed by extension.
func LoadMesh(ctx context.Context, src Source, name string) (*core.MeshData, error) {
	if IsBuiltin(name) {
		return Builtin(name)
	}

	if !IsMeshFile(name) {
		return nil, errors.Errorf("unsupported mesh format %q", name)
	}

	r, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var mesh *core.MeshData
	if strings.EqualFold(path.Ext(name), ".obj") {
		mesh, err = ParseOBJ(r)
	} else {
		mesh, err = ParseGLTF(r)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", name)
	}
	return mesh, nil
}
