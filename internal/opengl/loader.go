package opengl

import (
	"context"
	"log/slog"

	"github.com/marziaf/birb-hunt/game"
	"github.com/marziaf/birb-hunt/io"
	"github.com/marziaf/birb-hunt/scene"
)

// Loader builds mesh entities from assets. Each mesh and color pair is parsed
// and uploaded once; every Load still returns a fresh entity.
type Loader struct {
	r      *Renderer
	src    io.Source
	logger *slog.Logger
	cache  map[game.Asset]*gpuMesh
}

func NewLoader(r *Renderer, src io.Source, logger *slog.Logger) *Loader {
	return &Loader{r: r, src: src, logger: logger, cache: make(map[game.Asset]*gpuMesh)}
}

func (l *Loader) Load(ctx context.Context, asset game.Asset) (scene.Entity, error) {
	if m, ok := l.cache[asset]; ok {
		return &MeshEntity{r: l.r, mesh: m}, nil
	}

	data, err := io.LoadMesh(ctx, l.src, asset.Mesh)
	if err != nil {
		return nil, err
	}
	data.Tint(asset.Color)

	m, err := l.r.upload(data)
	if err != nil {
		return nil, err
	}
	l.cache[asset] = m
	l.logger.Debug("mesh uploaded", "mesh", asset.Mesh, "vertices", len(data.Vertices), "indices", len(data.Indices))
	return &MeshEntity{r: l.r, mesh: m}, nil
}
