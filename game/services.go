package game

import (
	"context"

	"github.com/marziaf/birb-hunt/math"
	"github.com/marziaf/birb-hunt/scene"
)

// Renderer prepares the framebuffer for a new frame.
type Renderer interface {
	Clear()
}

// Light uploads its parameters for the frame's view-projection.
type Light interface {
	Set(viewProjection math.Mat4)
}

// Backdrop draws the sky behind the scene from the inverse view-projection.
type Backdrop interface {
	Draw(inverseViewProjection math.Mat4)
}

// EntityLoader turns an asset into something drawable. Every call must return
// an entity the caller owns exclusively. Loads happen only during Setup.
type EntityLoader interface {
	Load(ctx context.Context, asset Asset) (scene.Entity, error)
}

// Host is the window the frame loop runs in.
type Host interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
}
