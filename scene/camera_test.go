package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marziaf/birb-hunt/math"
)

func testCamera() *Camera {
	cfg := DefaultCameraConfig()
	cfg.Position = math.NewVec3(0, 2, 0)
	cfg.Speed = 1
	cfg.Sensitivity = 1
	return NewCamera(cfg)
}

func TestCameraStateMachine(t *testing.T) {
	c := testCamera()
	assert.Equal(t, Idle, c.State())

	c.KeyDown(MoveForward)
	assert.Equal(t, Moving, c.State())
	c.KeyDown(MoveLeft)
	c.KeyUp(MoveForward)
	assert.Equal(t, Moving, c.State())
	c.KeyUp(MoveLeft)
	assert.Equal(t, Idle, c.State())

	// Releasing an unheld key while idle stays idle.
	c.KeyUp(MoveBack)
	assert.Equal(t, Idle, c.State())
}

func TestCameraPointerMove(t *testing.T) {
	c := testCamera()

	c.PointerMove(10, 0)
	assert.Equal(t, float32(-10), c.Direction())
	assert.Equal(t, float32(0), c.Elevation())

	c.PointerMove(0, 1000)
	assert.Equal(t, DefaultCameraConfig().ElevationLow, c.Elevation())
	c.PointerMove(0, -1000)
	assert.Equal(t, DefaultCameraConfig().ElevationHigh, c.Elevation())

	// Orientation changes while moving too.
	c.KeyDown(MoveForward)
	c.PointerMove(-20, 0)
	assert.Equal(t, float32(10), c.Direction())
}

func TestCameraUpdateDirections(t *testing.T) {
	cases := []struct {
		name string
		keys []MoveKey
		want math.Vec3
	}{
		{"forward", []MoveKey{MoveForward}, math.NewVec3(0, 2, -1)},
		{"back", []MoveKey{MoveBack}, math.NewVec3(0, 2, 1)},
		{"right", []MoveKey{MoveRight}, math.NewVec3(1, 2, 0)},
		{"left", []MoveKey{MoveLeft}, math.NewVec3(-1, 2, 0)},
		{"opposing", []MoveKey{MoveForward, MoveBack}, math.NewVec3(0, 2, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testCamera()
			for _, k := range tc.keys {
				c.KeyDown(k)
			}
			c.Update(1)
			assert.True(t, tc.want.ApproxEqualThreshold(c.Candidate(), 1e-5), "got %v", c.Candidate())
			assert.Equal(t, math.NewVec3(0, 2, 0), c.Position())
		})
	}
}

func TestCameraUpdateFollowsDirection(t *testing.T) {
	c := testCamera()
	c.PointerMove(-90, 0) // yaw 90: forward is -X
	c.KeyDown(MoveForward)
	c.Update(2)
	assert.True(t, math.NewVec3(-2, 2, 0).ApproxEqualThreshold(c.Candidate(), 1e-5))
}

func TestCameraIdleCandidateIsCommitted(t *testing.T) {
	c := testCamera()
	c.KeyDown(MoveForward)
	c.KeyUp(MoveForward)
	c.Update(1)
	assert.Equal(t, c.Position(), c.Candidate())
}

func TestCameraCommitIfValid(t *testing.T) {
	g := NewGraph()
	root := g.AddNode("root", nil, nil)
	wall := g.AddNode("wall", nil, NewCylinderCollider(1))
	require.NoError(t, g.SetParent(wall, root))
	g.SetLocalMatrix(wall, math.Translate(0, 0, -3))

	player := NewSphereCollider(0.5)
	c := testCamera()
	c.KeyDown(MoveForward)

	c.Update(1)
	assert.True(t, c.CommitIfValid(player, g, root))
	assert.Equal(t, c.Candidate(), c.Position())

	c.Update(1.5) // candidate z = -2.5, inside the wall
	blocked := c.Candidate()
	assert.False(t, c.CommitIfValid(player, g, root))
	assert.NotEqual(t, blocked, c.Position())
	assert.True(t, math.NewVec3(0, 2, -1).ApproxEqualThreshold(c.Position(), 1e-5))
	assert.Equal(t, c.Position(), player.Location())

	// An ignored collider does not block.
	c.Update(1.5)
	assert.True(t, c.CommitIfValid(player, g, root, g.Collider(wall)))
}

func TestCameraClipCoordinates(t *testing.T) {
	cfg := DefaultCameraConfig()
	cfg.Position = math.NewVec3(0, 2, 0)
	cfg.FovY, cfg.Aspect, cfg.Near, cfg.Far = 40, 1, 0.1, 2000
	c := NewCamera(cfg)

	_, vp := c.ViewProjectionMatrix()
	clip := math.MultiplyVector(vp, math.Vec4{0, 2, -10, 1})
	assert.InDelta(t, 0, clip.X(), 1e-5)
	assert.InDelta(t, 0, clip.Y(), 1e-5)
	assert.InDelta(t, 10, clip.W(), 1e-5)
}

func TestCameraSetAspect(t *testing.T) {
	c := testCamera()
	before := c.Projection()
	c.SetAspect(0)
	assert.Equal(t, before, c.Projection())
	c.SetAspect(2)
	assert.Equal(t, math.MakePerspective(40, 2, 0.1, 2000), c.Projection())
}
