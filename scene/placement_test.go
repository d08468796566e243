package scene

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marziaf/birb-hunt/math"
)

func TestRandomLocalTransformBounds(t *testing.T) {
	p := NewPlacer(rand.New(rand.NewSource(7)), 0)
	params := PlacementParams{RadiusBound: 10, MinDistance: 3, ScaleMin: 0.5, ScaleMax: 1.5}

	for i := 0; i < 500; i++ {
		m := p.RandomLocalTransform(params)
		o := math.Origin(m)
		for _, v := range []float32{o.X(), o.Z()} {
			if v < 0 {
				v = -v
			}
			assert.GreaterOrEqual(t, v, params.MinDistance)
			assert.LessOrEqual(t, v, params.MinDistance+2*params.RadiusBound)
		}
		assert.Equal(t, float32(0), o.Y())

		// Uniform scale is the length of any basis column.
		s := m.Col(1).Vec3().Len()
		assert.GreaterOrEqual(t, s, params.ScaleMin-1e-4)
		assert.LessOrEqual(t, s, params.ScaleMax+1e-4)
	}
}

func TestPlacerDeterministic(t *testing.T) {
	params := PlacementParams{RadiusBound: 5, ScaleMin: 1, ScaleMax: 1}
	a := NewPlacer(rand.New(rand.NewSource(42)), 0)
	b := NewPlacer(rand.New(rand.NewSource(42)), 0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.RandomLocalTransform(params), b.RandomLocalTransform(params))
	}
	assert.Equal(t, DefaultMaxAttempts, a.MaxAttempts())
}

func TestPlaceWithRejectionNoOverlap(t *testing.T) {
	g := NewGraph()
	root := g.AddNode("root", nil, nil)
	p := NewPlacer(rand.New(rand.NewSource(1)), 0)
	params := PlacementParams{RadiusBound: 20, ScaleMin: 1, ScaleMax: 1}

	var placed []NodeID
	for i := 0; i < 40; i++ {
		id := g.AddNode("tree", nil, NewCylinderCollider(1))
		require.NoError(t, g.SetParent(id, root))
		_, err := p.PlaceWithRejection(g, id, root, params)
		require.NoError(t, err)
		placed = append(placed, id)
	}

	for i, a := range placed {
		for _, b := range placed[i+1:] {
			assert.False(t, Colliding(g.Collider(a), g.Collider(b)))
		}
	}
}

func TestPlaceWithRejectionExhausted(t *testing.T) {
	g := NewGraph()
	root := g.AddNode("root", nil, nil)
	blocker := g.AddNode("blocker", nil, NewCylinderCollider(1000))
	require.NoError(t, g.SetParent(blocker, root))
	g.UpdateWorldMatrix(root, nil)

	id := g.AddNode("rock", nil, NewCylinderCollider(1))
	require.NoError(t, g.SetParent(id, root))

	p := NewPlacer(rand.New(rand.NewSource(3)), 25)
	attempts, err := p.PlaceWithRejection(g, id, root, PlacementParams{RadiusBound: 10, ScaleMin: 1, ScaleMax: 1})
	assert.Equal(t, 25, attempts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlacementExhausted))
	assert.Contains(t, err.Error(), `"rock"`)

	assert.Equal(t, NoNode, g.Parent(id))
	assert.NotContains(t, g.Children(root), id)
	_, hit := g.CollidingAgainstTree(g.Collider(blocker), root)
	assert.False(t, hit, "no overlapping node is left under root")
}

func TestPlaceWithRejectionWithoutCollider(t *testing.T) {
	g := NewGraph()
	root := g.AddNode("root", nil, nil)
	id := g.AddNode("ground-litter", nil, nil)
	require.NoError(t, g.SetParent(id, root))

	p := NewPlacer(rand.New(rand.NewSource(3)), 0)
	attempts, err := p.PlaceWithRejection(g, id, root, PlacementParams{RadiusBound: 1, ScaleMin: 1, ScaleMax: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
	assert.NotEqual(t, math.Identity(), g.LocalMatrix(id))
}
