package game

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/io"
	"github.com/marziaf/birb-hunt/math"
	"github.com/marziaf/birb-hunt/scene"
)

// Asset is what an EntityLoader builds an entity from.
type Asset struct {
	Mesh  string
	Color core.Color
}

// Scene is everything the frame loop needs. Once Setup returns, only the
// frame loop mutates it.
type Scene struct {
	Graph  *scene.Graph
	Root   scene.NodeID
	Nest   scene.NodeID
	Perch  scene.NodeID // unscaled dummy under Nest that carries Bird
	Bird   scene.NodeID
	Camera *scene.Camera

	Player scene.Collider
	// Goal is the bird's collider. It is a trigger: it never blocks movement.
	Goal scene.Collider

	Flight *scene.Bird
}

// Setup builds the forest described by cfg: ground, a clearance zone around
// the spawn point, the nest with the bird circling a perch above it, and every prop kind
// placed with rejection sampling. Layout and prop names are reproducible
// from cfg.Seed.
func Setup(ctx context.Context, cfg *io.Config, aspect float32, loader EntityLoader, logger *slog.Logger) (*Scene, error) {
	g := scene.NewGraph()
	root := g.AddNode("root", nil, nil)
	namer := newPropNamer(cfg.Seed)
	placer := scene.NewPlacer(rand.New(rand.NewSource(cfg.Seed)), cfg.MaxPlacementAttempts)

	load := func(mesh string, color core.Color) (scene.Entity, error) {
		e, err := loader.Load(ctx, Asset{Mesh: mesh, Color: color})
		if err != nil {
			return nil, &AssetLoadError{Asset: mesh, Err: err}
		}
		return e, nil
	}
	attach := func(name string, entity scene.Entity, collider scene.Collider, parent scene.NodeID) (scene.NodeID, error) {
		id := g.AddNode(name, entity, collider)
		return id, g.SetParent(id, parent)
	}

	ground, err := load(cfg.Ground.Mesh, io.ColorOf(cfg.Ground.Color))
	if err != nil {
		return nil, err
	}
	groundNode, err := attach("ground", ground, nil, root)
	if err != nil {
		return nil, err
	}
	scale := cfg.Ground.Scale
	if scale <= 0 {
		scale = 1
	}
	g.SetLocalMatrix(groundNode, math.Scale(scale))

	camera := scene.NewCamera(cfg.CameraConfig(aspect))
	spawn := scene.NoNode
	if cfg.Player.SpawnClearance > 0 {
		spawn, err = attach("spawn", nil, scene.NewCylinderCollider(cfg.Player.SpawnClearance), root)
		if err != nil {
			return nil, err
		}
		p := camera.Position()
		g.SetLocalMatrix(spawn, math.Translate(p.X(), 0, p.Z()))
	}

	attempts := 0
	nestEntity, err := load(cfg.Nest.Mesh, io.ColorOf(cfg.Nest.Color))
	if err != nil {
		return nil, err
	}
	nest, err := attach("nest", nestEntity, cfg.Nest.Collider.NewCollider(), root)
	if err != nil {
		return nil, err
	}
	n, err := placer.PlaceWithRejection(g, nest, root, cfg.Nest.Placement.Params())
	if err != nil {
		return nil, err
	}
	attempts += n

	// The perch cancels the nest's placement scale, so the flight path and the
	// goal radius keep their configured world size.
	perch, err := attach("perch", nil, nil, nest)
	if err != nil {
		return nil, err
	}
	if s := math.UniformScale(g.WorldMatrix(nest)); s > 0 {
		g.SetLocalMatrix(perch, math.Scale(1/s))
	}

	birdEntity, err := load(cfg.Bird.Mesh, core.ColorFeathers)
	if err != nil {
		return nil, err
	}
	goal := scene.NewSphereCollider(cfg.Bird.ColliderRadius)
	birdNode, err := attach("bird", birdEntity, goal, perch)
	if err != nil {
		return nil, err
	}
	flight := scene.NewBird(cfg.BirdConfig())
	g.SetLocalMatrix(birdNode, flight.Local())

	for _, prop := range cfg.Props {
		for i := 0; i < prop.Count; i++ {
			entity, err := load(prop.Mesh, io.ColorOf(prop.Color))
			if err != nil {
				return nil, err
			}
			id, err := attach(namer.next(prop.Kind), entity, prop.Collider.NewCollider(), root)
			if err != nil {
				return nil, err
			}
			n, err := placer.PlaceWithRejection(g, id, root, prop.Placement.Params(), goal)
			attempts += n
			if err != nil {
				return nil, errors.Wrapf(err, "populate %s %d/%d", prop.Kind, i+1, prop.Count)
			}
		}
	}

	// The clearance zone only steers placement; detached, it no longer
	// blocks the player standing inside it.
	if spawn != scene.NoNode {
		if err := g.SetParent(spawn, scene.NoNode); err != nil {
			return nil, err
		}
	}
	g.UpdateWorldMatrix(root, nil)

	player := scene.NewSphereCollider(cfg.Player.Radius)
	player.SetLocation(camera.Position())

	logger.Info("scene ready",
		"seed", cfg.Seed,
		"nodes", g.Len(),
		"placement_attempts", attempts,
		"nest", math.Origin(g.WorldMatrix(nest)))

	return &Scene{
		Graph:  g,
		Root:   root,
		Nest:   nest,
		Perch:  perch,
		Bird:   birdNode,
		Camera: camera,
		Player: player,
		Goal:   goal,
		Flight: flight,
	}, nil
}
