package scene

import (
	"github.com/chewxy/math32"

	"github.com/marziaf/birb-hunt/math"
)

// BirdConfig drives the bird's closed-form flight around its nest.
type BirdConfig struct {
	Radius       float32 // circle radius around the nest
	Frequency    float32 // bobbing cycles per revolution
	Amplitude    float32
	AngularSpeed float32 // degrees per second
	Height       float32
}

func DefaultBirdConfig() BirdConfig {
	return BirdConfig{
		Radius:       2,
		Frequency:    10,
		Amplitude:    0.5,
		AngularSpeed: 300,
		Height:       2,
	}
}

// Bird circles its parent node while bobbing up and down. Its pose depends
// only on the accumulated angle.
type Bird struct {
	cfg   BirdConfig
	angle float32
}

func NewBird(cfg BirdConfig) *Bird {
	return &Bird{cfg: cfg}
}

// Angle in degrees, unbounded.
func (b *Bird) Angle() float32 {
	return b.angle
}

// Advance moves the bird by dt seconds and returns its new local matrix.
func (b *Bird) Advance(dt float32) math.Mat4 {
	b.angle += b.cfg.AngularSpeed * dt
	return b.Local()
}

// Local is RotY(angle) * T(radius, height + amplitude*cos(frequency*angle), 0) * RotY(90):
// the bird faces along its circular path.
func (b *Bird) Local() math.Mat4 {
	y := b.cfg.Height + b.cfg.Amplitude*math32.Cos(degToRad(b.cfg.Frequency*b.angle))
	out := math.Multiply(math.Translate(b.cfg.Radius, y, 0), math.RotateY(90))
	return math.Multiply(math.RotateY(b.angle), out)
}
