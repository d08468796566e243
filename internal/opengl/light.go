package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/math"
)

// DirectionalLight feeds the mesh program a single sun-like light.
type DirectionalLight struct {
	r *Renderer

	Direction math.Vec3
	Color     core.Color
	Ambient   float32
}

func NewDirectionalLight(r *Renderer, direction math.Vec3, color core.Color, ambient float32) *DirectionalLight {
	if direction.Len() > 0 {
		direction = direction.Normalize()
	}
	return &DirectionalLight{r: r, Direction: direction, Color: color, Ambient: ambient}
}

// Set uploads the light. The light is in world space, so the view-projection
// is not needed.
func (l *DirectionalLight) Set(math.Mat4) {
	gl.UseProgram(l.r.program)
	gl.Uniform3f(l.r.lightDirLoc, l.Direction.X(), l.Direction.Y(), l.Direction.Z())
	setColor(l.r.lightColorLoc, l.Color)
	gl.Uniform1f(l.r.ambientLoc, l.Ambient)
}
