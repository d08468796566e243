package opengl

import (
	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/math"
)

// Skybox renders a procedural gradient sky behind the scene. A single
// fullscreen triangle is unprojected through the inverse view-projection, so
// the gradient follows the camera without any sky geometry in the graph.
type Skybox struct {
	vao  uint32
	vbo  uint32
	prog uint32

	invVPLoc   int32
	zenithLoc  int32
	horizonLoc int32
	groundLoc  int32

	Zenith  core.Color
	Horizon core.Color
	Ground  core.Color
}

const skyVertSrc = `
#version 410 core
layout(location = 0) in vec2 inPosition;

uniform mat4 inverseViewProjection;

out vec3 fragDir;

void main() {
    vec4 near = inverseViewProjection * vec4(inPosition, -1.0, 1.0);
    vec4 far  = inverseViewProjection * vec4(inPosition,  1.0, 1.0);
    fragDir = far.xyz / far.w - near.xyz / near.w;
    // Depth 1.0 keeps every sky fragment behind scene geometry.
    gl_Position = vec4(inPosition, 1.0, 1.0);
}
` + "\x00"

const skyFragSrc = `
#version 410 core
in vec3 fragDir;
out vec4 outColor;

uniform vec3 zenith;
uniform vec3 horizon;
uniform vec3 ground;

void main() {
    float t = normalize(fragDir).y;
    vec3 color;
    if (t >= 0.0) {
        color = mix(horizon, zenith, pow(t, 0.4));
    } else {
        color = mix(horizon, ground, min(-t * 3.0, 1.0));
    }
    outColor = vec4(color, 1.0);
}
` + "\x00"

// Covers clip space [-1,1]^2 with one triangle.
var skyTriangle = []float32{-1, -1, 3, -1, -1, 3}

func NewSkybox(zenith, horizon, ground core.Color) (*Skybox, error) {
	prog, err := newProgram(skyVertSrc, skyFragSrc)
	if err != nil {
		return nil, errors.Wrap(err, "skybox shader")
	}

	sb := &Skybox{
		prog:       prog,
		invVPLoc:   uniform(prog, "inverseViewProjection"),
		zenithLoc:  uniform(prog, "zenith"),
		horizonLoc: uniform(prog, "horizon"),
		groundLoc:  uniform(prog, "ground"),
		Zenith:     zenith,
		Horizon:    horizon,
		Ground:     ground,
	}

	gl.GenVertexArrays(1, &sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindVertexArray(sb.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(skyTriangle)*4, gl.Ptr(skyTriangle), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 8, gl.PtrOffset(0))
	gl.BindVertexArray(0)

	return sb, nil
}

// Draw renders the sky for a camera whose view-projection inverts to
// inverseViewProjection.
func (sb *Skybox) Draw(inverseViewProjection math.Mat4) {
	// LEQUAL lets depth-1.0 fragments pass against the cleared buffer; the
	// mask stays off so scene geometry is never rejected by the sky.
	gl.DepthFunc(gl.LEQUAL)
	gl.DepthMask(false)

	gl.UseProgram(sb.prog)
	setMat4(sb.invVPLoc, inverseViewProjection)
	setColor(sb.zenithLoc, sb.Zenith)
	setColor(sb.horizonLoc, sb.Horizon)
	setColor(sb.groundLoc, sb.Ground)

	gl.BindVertexArray(sb.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
}

func (sb *Skybox) Destroy() {
	gl.DeleteVertexArrays(1, &sb.vao)
	gl.DeleteBuffers(1, &sb.vbo)
	gl.DeleteProgram(sb.prog)
}
