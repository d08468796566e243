package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/marziaf/birb-hunt/math"
)

// MoveKey is a held movement input.
type MoveKey uint8

const (
	MoveForward MoveKey = iota
	MoveBack
	MoveLeft
	MoveRight
)

// MoveState of the player controller.
type MoveState uint8

const (
	Idle MoveState = iota
	Moving
)

func (s MoveState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Moving:
		return "moving"
	}
	return fmt.Sprintf("MoveState(%d)", uint8(s))
}

// CameraConfig holds the first-person camera parameters. Angles are degrees.
type CameraConfig struct {
	Position      math.Vec3
	Direction     float32
	Elevation     float32
	ElevationLow  float32
	ElevationHigh float32
	Speed         float32 // world units per second
	Sensitivity   float32 // degrees per pointer unit
	FovY          float32
	Aspect        float32
	Near          float32
	Far           float32
}

func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:      math.NewVec3(0, 2, 0),
		ElevationLow:  -60,
		ElevationHigh: 60,
		Speed:         4,
		Sensitivity:   0.2,
		FovY:          40,
		Aspect:        16.0 / 9.0,
		Near:          0.1,
		Far:           2000,
	}
}

// Camera is the player controller: pointer input turns it, held keys move a
// candidate position that only becomes the committed position once it has
// been validated against the collider tree.
type Camera struct {
	cfg CameraConfig

	position  math.Vec3
	candidate math.Vec3
	direction float32
	elevation float32

	held  [4]bool
	state MoveState

	projection math.Mat4
}

func NewCamera(cfg CameraConfig) *Camera {
	c := &Camera{
		cfg:       cfg,
		position:  cfg.Position,
		candidate: cfg.Position,
		direction: cfg.Direction,
	}
	c.elevation = c.clampElevation(cfg.Elevation)
	c.projection = math.MakePerspective(cfg.FovY, cfg.Aspect, cfg.Near, cfg.Far)
	return c
}

func (c *Camera) State() MoveState      { return c.state }
func (c *Camera) Position() math.Vec3   { return c.position }
func (c *Camera) Candidate() math.Vec3  { return c.candidate }
func (c *Camera) Direction() float32    { return c.direction }
func (c *Camera) Elevation() float32    { return c.elevation }
func (c *Camera) Projection() math.Mat4 { return c.projection }

// SetAspect rebuilds the perspective matrix, e.g. after a window resize.
func (c *Camera) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.cfg.Aspect = aspect
	c.projection = math.MakePerspective(c.cfg.FovY, aspect, c.cfg.Near, c.cfg.Far)
}

// KeyDown marks k as held. The first held key starts movement.
func (c *Camera) KeyDown(k MoveKey) {
	if int(k) >= len(c.held) {
		return
	}
	c.held[k] = true
	c.state = Moving
}

// KeyUp releases k. Releasing the last held key stops movement.
func (c *Camera) KeyUp(k MoveKey) {
	if int(k) >= len(c.held) {
		return
	}
	c.held[k] = false
	for _, h := range c.held {
		if h {
			return
		}
	}
	c.state = Idle
}

// PointerMove turns the camera regardless of the move state.
func (c *Camera) PointerMove(dx, dy float32) {
	c.direction -= dx * c.cfg.Sensitivity
	c.elevation = c.clampElevation(c.elevation - dy*c.cfg.Sensitivity)
}

func (c *Camera) clampElevation(e float32) float32 {
	if e < c.cfg.ElevationLow {
		return c.cfg.ElevationLow
	}
	if e > c.cfg.ElevationHigh {
		return c.cfg.ElevationHigh
	}
	return e
}

func axis(positive, negative bool) float32 {
	var v float32
	if positive {
		v++
	}
	if negative {
		v--
	}
	return v
}

// Update advances the candidate position from the held keys. The committed
// position is left untouched.
func (c *Camera) Update(dt float32) {
	c.candidate = c.position
	if c.state != Moving {
		return
	}

	forward := axis(c.held[MoveForward], c.held[MoveBack])
	strafe := axis(c.held[MoveRight], c.held[MoveLeft])
	if forward == 0 && strafe == 0 {
		return
	}

	angle := degToRad(c.direction) + math32.Atan2(-strafe, forward)
	step := c.cfg.Speed * dt
	c.candidate = c.position.Add(math.NewVec3(
		-math32.Sin(angle)*step,
		0,
		-math32.Cos(angle)*step,
	))
}

// CommitIfValid moves the player collider to the candidate and tests it
// against the tree under root. A clear candidate becomes the committed
// position; a colliding one is dropped and the collider is put back.
func (c *Camera) CommitIfValid(player Collider, g *Graph, root NodeID, ignore ...Collider) bool {
	player.SetLocation(c.candidate)
	if _, hit := g.CollidingAgainstTree(player, root, ignore...); hit {
		player.SetLocation(c.position)
		c.candidate = c.position
		return false
	}
	c.position = c.candidate
	return true
}

// ViewProjectionMatrix is built from the committed state only.
func (c *Camera) ViewProjectionMatrix() (view, viewProjection math.Mat4) {
	p := c.position
	view = math.MakeView(p.X(), p.Y(), p.Z(), c.elevation, c.direction)
	return view, math.Multiply(c.projection, view)
}

func degToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
