package opengl

import (
	"log/slog"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/math"
)

// gpuMesh holds the buffer objects of one uploaded mesh.
type gpuMesh struct {
	vao, vbo, ebo uint32
	count         int32
}

// Renderer owns the lit mesh program. It must be created after the window's
// GL context is made current.
type Renderer struct {
	program uint32

	wvpLoc        int32
	worldLoc      int32
	lightDirLoc   int32
	lightColorLoc int32
	ambientLoc    int32

	clear  core.Color
	meshes []*gpuMesh
}

const meshVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 worldViewProjection;
uniform mat4 world;

out vec4 fragColor;
out vec3 fragNormal;

void main() {
    gl_Position = worldViewProjection * vec4(inPosition, 1.0);
    fragColor   = inColor;
    fragNormal  = mat3(world) * inNormal;
}
` + "\x00"

const meshFragSrc = `
#version 410 core
in vec4 fragColor;
in vec3 fragNormal;

uniform vec3  lightDir;
uniform vec3  lightColor;
uniform float ambient;

out vec4 outColor;

void main() {
    float diff = max(dot(normalize(fragNormal), -normalize(lightDir)), 0.0);
    vec3  lit  = fragColor.rgb * (ambient + (1.0 - ambient) * diff * lightColor);
    outColor = vec4(lit, fragColor.a);
}
` + "\x00"

// NewRenderer initialises OpenGL and compiles the mesh program. clear is the
// color the framebuffer is cleared to before the backdrop is drawn.
func NewRenderer(clear core.Color, logger *slog.Logger) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenGL")
	}
	logger.Info("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := newProgram(meshVertSrc, meshFragSrc)
	if err != nil {
		return nil, errors.Wrap(err, "mesh shader")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	return &Renderer{
		program:       prog,
		wvpLoc:        uniform(prog, "worldViewProjection"),
		worldLoc:      uniform(prog, "world"),
		lightDirLoc:   uniform(prog, "lightDir"),
		lightColorLoc: uniform(prog, "lightColor"),
		ambientLoc:    uniform(prog, "ambient"),
		clear:         clear,
	}, nil
}

func (r *Renderer) SetViewport(v core.Viewport) {
	gl.Viewport(v.X, v.Y, v.Width, v.Height)
}

// Clear resets the color and depth buffers.
func (r *Renderer) Clear() {
	gl.ClearColor(r.clear.R, r.clear.G, r.clear.B, r.clear.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Destroy releases every uploaded mesh and the program.
func (r *Renderer) Destroy() {
	for _, m := range r.meshes {
		gl.DeleteVertexArrays(1, &m.vao)
		gl.DeleteBuffers(1, &m.vbo)
		gl.DeleteBuffers(1, &m.ebo)
	}
	r.meshes = nil
	gl.DeleteProgram(r.program)
}

func (r *Renderer) upload(data *core.MeshData) (*gpuMesh, error) {
	if len(data.Vertices) == 0 || len(data.Indices) == 0 {
		return nil, errors.New("empty mesh")
	}

	var v core.Vertex
	stride := int32(unsafe.Sizeof(v))
	m := &gpuMesh{count: int32(len(data.Indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)
	gl.BindVertexArray(m.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*int(stride), gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	attrib := func(loc uint32, size int32, offset uintptr) {
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, size, gl.FLOAT, false, stride, gl.PtrOffset(int(offset)))
	}
	attrib(0, 3, unsafe.Offsetof(v.Position))
	attrib(1, 3, unsafe.Offsetof(v.Normal))
	attrib(2, 2, unsafe.Offsetof(v.UV))
	attrib(3, 4, unsafe.Offsetof(v.Color))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	r.meshes = append(r.meshes, m)
	return m, nil
}

// MeshEntity draws one uploaded mesh. Several entities may share a mesh; each
// node owns its own entity.
type MeshEntity struct {
	r    *Renderer
	mesh *gpuMesh
}

func (e *MeshEntity) Draw(worldViewProjection, world math.Mat4) {
	gl.UseProgram(e.r.program)
	setMat4(e.r.wvpLoc, worldViewProjection)
	setMat4(e.r.worldLoc, world)

	gl.BindVertexArray(e.mesh.vao)
	gl.DrawElements(gl.TRIANGLES, e.mesh.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}
