package scene

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/math"
)

// DefaultMaxAttempts bounds rejection sampling when the Placer is built
// without an explicit limit.
const DefaultMaxAttempts = 1000

// ErrPlacementExhausted means no collision-free transform was found within
// the attempt limit.
var ErrPlacementExhausted = errors.New("scene: placement attempts exhausted")

// PlacementParams describes the sampling region of a prop. Each horizontal
// coordinate is drawn from ±[MinDistance, MinDistance+2*RadiusBound].
type PlacementParams struct {
	RadiusBound float32
	MinDistance float32
	ScaleMin    float32
	ScaleMax    float32
}

// Placer draws random local transforms from its own RNG, so a seeded Placer
// always produces the same layout.
type Placer struct {
	rng         *rand.Rand
	maxAttempts int
}

func NewPlacer(rng *rand.Rand, maxAttempts int) *Placer {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Placer{rng: rng, maxAttempts: maxAttempts}
}

func (p *Placer) MaxAttempts() int {
	return p.maxAttempts
}

func (p *Placer) coordinate(params PlacementParams) float32 {
	v := params.MinDistance + p.rng.Float32()*2*params.RadiusBound
	if p.rng.Intn(2) == 0 {
		return -v
	}
	return v
}

// RandomLocalTransform samples a ground-level transform. The yaw is the
// product of two uniform draws, which clusters rotations near zero.
func (p *Placer) RandomLocalTransform(params PlacementParams) math.Mat4 {
	tx := p.coordinate(params)
	tz := p.coordinate(params)
	yaw := 360 * p.rng.Float32() * p.rng.Float32()

	s := params.ScaleMin
	if params.ScaleMax > params.ScaleMin {
		s += p.rng.Float32() * (params.ScaleMax - params.ScaleMin)
	}
	return math.MakeWorld(tx, 0, tz, 0, yaw, 0, s)
}

// PlaceWithRejection draws transforms for id until its collider is clear of
// every other collider under root. The node should already be attached
// below root. A node without a collider keeps the first draw. When every
// attempt collides the node is detached and the error wraps
// ErrPlacementExhausted. It returns the number of attempts used.
func (p *Placer) PlaceWithRejection(g *Graph, id, root NodeID, params PlacementParams, ignore ...Collider) (int, error) {
	c := g.Collider(id)
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		g.SetLocalMatrix(id, p.RandomLocalTransform(params))
		if c == nil {
			return attempt, nil
		}
		if _, hit := g.CollidingAgainstTree(c, root, ignore...); !hit {
			return attempt, nil
		}
	}
	// A node left on its last draw would overlap something; take it out of
	// the tree instead.
	if err := g.SetParent(id, NoNode); err != nil {
		return p.maxAttempts, err
	}
	return p.maxAttempts, errors.Wrapf(ErrPlacementExhausted, "place %q after %d attempts", g.Name(id), p.maxAttempts)
}
