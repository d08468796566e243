package host

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
)

// GLFW and the GL context must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	onKey    KeyCallback
	onCursor CursorCallback
	onResize ResizeCallback

	lastX, lastY float64
	firstCursor  bool
}

type WindowConfig struct {
	Width         int
	Height        int
	Title         string
	Resizable     bool
	VSync         bool
	Fullscreen    bool
	CaptureCursor bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:         1280,
		Height:        720,
		Title:         "Birb Hunt",
		Resizable:     true,
		VSync:         true,
		CaptureCursor: true,
	}
}

// KeyCallback receives key presses and releases; repeats are dropped.
type KeyCallback func(key int, pressed bool)

// CursorCallback receives cursor movement relative to the previous event.
type CursorCallback func(dx, dy float64)

// ResizeCallback receives the new framebuffer size.
type ResizeCallback func(width, height int)

// NewWindow opens a window with an OpenGL 4.1 core context made current on
// the calling thread.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize GLFW")
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))

	monitor := (*glfw.Monitor)(nil)
	if config.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, errors.Wrap(err, "failed to create window")
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	if config.CaptureCursor {
		handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	}

	window := &Window{
		Handle:      handle,
		Width:       config.Width,
		Height:      config.Height,
		Title:       config.Title,
		firstCursor: true,
	}

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		if window.onResize != nil {
			window.onResize(width, height)
		}
	})
	handle.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if window.onKey == nil || action == glfw.Repeat {
			return
		}
		window.onKey(int(key), action == glfw.Press)
	})
	handle.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if window.firstCursor {
			window.lastX, window.lastY = x, y
			window.firstCursor = false
			return
		}
		dx, dy := x-window.lastX, y-window.lastY
		window.lastX, window.lastY = x, y
		if window.onCursor != nil {
			window.onCursor(dx, dy)
		}
	})

	return window, nil
}

func (w *Window) SetKeyCallback(cb KeyCallback)       { w.onKey = cb }
func (w *Window) SetCursorCallback(cb CursorCallback) { w.onCursor = cb }
func (w *Window) SetResizeCallback(cb ResizeCallback) { w.onResize = cb }

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

// Close asks the event loop to stop at the next ShouldClose check.
func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// Viewport covers the whole framebuffer.
func (w *Window) Viewport() core.Viewport {
	width, height := w.GetFramebufferSize()
	return core.Viewport{Width: int32(width), Height: int32(height)}
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeyA      = int(glfw.KeyA)
	KeyD      = int(glfw.KeyD)
	KeyS      = int(glfw.KeyS)
	KeyW      = int(glfw.KeyW)
	KeyP      = int(glfw.KeyP)
	KeyEscape = int(glfw.KeyEscape)
	KeyRight  = int(glfw.KeyRight)
	KeyLeft   = int(glfw.KeyLeft)
	KeyDown   = int(glfw.KeyDown)
	KeyUp     = int(glfw.KeyUp)
	KeyF1     = int(glfw.KeyF1)
)
