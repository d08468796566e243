package game

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/marziaf/birb-hunt/math"
	"github.com/marziaf/birb-hunt/scene"
)

type FrameLoopConfig struct {
	// MaxFrameDelta caps the step after a hitch so the player cannot tunnel
	// through colliders.
	MaxFrameDelta time.Duration
	// FPSLogInterval of zero disables the periodic FPS log line.
	FPSLogInterval time.Duration
}

// FrameLoop runs the per-frame sequence over a Scene. It must be driven from
// the goroutine that owns the GL context; only Stop may be called from
// elsewhere.
type FrameLoop struct {
	scene    *Scene
	renderer Renderer
	backdrop Backdrop
	lights   []Light
	cfg      FrameLoopConfig
	logger   *slog.Logger

	// OnGoal is called once, on the frame the player reaches the bird.
	OnGoal func()

	now       func() time.Time
	frame     uint64
	last      time.Time
	goalArmed bool
	won       bool
	stopped   atomic.Bool

	fpsFrames int
	fpsSince  time.Time
}

func NewFrameLoop(s *Scene, renderer Renderer, backdrop Backdrop, lights []Light, cfg FrameLoopConfig, logger *slog.Logger) *FrameLoop {
	return &FrameLoop{
		scene:     s,
		renderer:  renderer,
		backdrop:  backdrop,
		lights:    lights,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
		goalArmed: true,
	}
}

// Won reports whether the player has reached the bird.
func (l *FrameLoop) Won() bool { return l.won }

// Frames is the number of frames run so far.
func (l *FrameLoop) Frames() uint64 { return l.frame }

// Stop makes Run return before its next frame. Safe for concurrent use.
func (l *FrameLoop) Stop() { l.stopped.Store(true) }

func (l *FrameLoop) delta(now time.Time) float32 {
	var dt time.Duration
	if !l.last.IsZero() {
		dt = now.Sub(l.last)
	}
	l.last = now
	if dt < 0 {
		dt = 0
	}
	if l.cfg.MaxFrameDelta > 0 && dt > l.cfg.MaxFrameDelta {
		dt = l.cfg.MaxFrameDelta
	}
	return float32(dt.Seconds())
}

// Frame runs one frame at wall-clock time now. A panic while updating or
// drawing is returned as a *FrameError; the next Frame call runs normally.
func (l *FrameLoop) Frame(now time.Time) (err error) {
	l.frame++
	s := l.scene

	l.renderer.Clear()
	dt := l.delta(now)

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &FrameError{Frame: l.frame, Cause: r}
			}
		}()

		s.Camera.Update(dt)
		_, viewProjection := s.Camera.ViewProjectionMatrix()

		if l.backdrop != nil {
			l.backdrop.Draw(math.Invert(viewProjection))
		}
		for _, light := range l.lights {
			light.Set(viewProjection)
		}

		if s.Flight != nil {
			s.Graph.SetLocalMatrix(s.Bird, s.Flight.Advance(dt))
		}
		s.Graph.UpdateWorldMatrix(s.Root, nil)

		s.Camera.CommitIfValid(s.Player, s.Graph, s.Root, s.Goal)
		s.Graph.Draw(s.Root, viewProjection)
	}()

	if l.goalArmed && s.Goal != nil && scene.Colliding(s.Player, s.Goal) {
		l.goalArmed = false
		l.won = true
		l.logger.Info("bird found", "frame", l.frame, "position", s.Camera.Position())
		if l.OnGoal != nil {
			l.OnGoal()
		}
	}

	l.countFPS(now)
	return err
}

func (l *FrameLoop) countFPS(now time.Time) {
	if l.cfg.FPSLogInterval <= 0 {
		return
	}
	if l.fpsSince.IsZero() {
		l.fpsSince = now
	}
	l.fpsFrames++
	if elapsed := now.Sub(l.fpsSince); elapsed >= l.cfg.FPSLogInterval {
		l.logger.Debug("fps", "fps", float64(l.fpsFrames)/elapsed.Seconds(), "frames", l.frame)
		l.fpsFrames = 0
		l.fpsSince = now
	}
}

// Run drives frames until Stop is called, ctx is done or the host asks to
// close. Per-frame errors are logged and do not end the loop.
func (l *FrameLoop) Run(ctx context.Context, host Host) error {
	for !l.stopped.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if host.ShouldClose() {
			return nil
		}
		host.PollEvents()
		if err := l.Frame(l.now()); err != nil {
			l.logger.Warn("frame failed", "err", err)
		}
		host.SwapBuffers()
	}
	return nil
}
