package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/game"
	"github.com/marziaf/birb-hunt/host"
	"github.com/marziaf/birb-hunt/internal/opengl"
	"github.com/marziaf/birb-hunt/io"
	"github.com/marziaf/birb-hunt/math"
	"github.com/marziaf/birb-hunt/scene"
)

const controls = `Find the birb!
  W A S D / arrows   walk
  mouse              look around
  Esc                quit`

var moveKeys = map[int]scene.MoveKey{
	host.KeyW:     scene.MoveForward,
	host.KeyUp:    scene.MoveForward,
	host.KeyS:     scene.MoveBack,
	host.KeyDown:  scene.MoveBack,
	host.KeyA:     scene.MoveLeft,
	host.KeyLeft:  scene.MoveLeft,
	host.KeyD:     scene.MoveRight,
	host.KeyRight: scene.MoveRight,
}

func main() {
	configPath := flag.String("config", "", "forest config (yaml); built-in defaults when empty")
	assets := flag.String("assets", "", "asset directory or http(s) URL, overrides the config")
	seed := flag.Int64("seed", 0, "layout seed, overrides the config when non-zero")
	dump := flag.Bool("dump", false, "print the scene graph and the available meshes after setup")
	saveConfig := flag.String("save-config", "", "write the effective config to this path and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*configPath, *assets, *seed, *dump, *saveConfig, logger); err != nil {
		logger.Error("birbhunt failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath, assets string, seed int64, dump bool, saveConfig string, logger *slog.Logger) error {
	cfg := io.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = io.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if assets != "" {
		cfg.Assets = assets
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if saveConfig != "" {
		return io.SaveConfig(saveConfig, cfg)
	}

	src, err := io.NewSource(cfg.Assets)
	if err != nil {
		return err
	}

	window, err := host.NewWindow(host.WindowConfig{
		Width:         cfg.Window.Width,
		Height:        cfg.Window.Height,
		Title:         cfg.Window.Title,
		Resizable:     cfg.Window.Resizable,
		VSync:         cfg.Window.VSync,
		Fullscreen:    cfg.Window.Fullscreen,
		CaptureCursor: cfg.Window.CaptureCursor,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	horizon := io.ColorOf(cfg.Sky.Horizon)
	renderer, err := opengl.NewRenderer(horizon, logger)
	if err != nil {
		return err
	}
	defer renderer.Destroy()

	sky, err := opengl.NewSkybox(io.ColorOf(cfg.Sky.Zenith), horizon, io.ColorOf(cfg.Sky.Ground))
	if err != nil {
		return err
	}
	defer sky.Destroy()

	d := cfg.Light.Direction
	sun := opengl.NewDirectionalLight(renderer, math.NewVec3(d[0], d[1], d[2]), io.ColorOf(cfg.Light.Color), cfg.Light.Ambient)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	viewport := window.Viewport()
	renderer.SetViewport(viewport)

	s, err := game.Setup(ctx, cfg, viewport.Aspect(), opengl.NewLoader(renderer, src, logger), logger)
	if err != nil {
		return errors.Wrap(err, "setup")
	}
	if dump {
		fmt.Println(s.Graph.Dump(s.Root))
		if lister, ok := src.(io.MeshLister); ok {
			meshes, err := lister.ListMeshes(ctx)
			if err != nil {
				logger.Warn("mesh list unavailable", "assets", cfg.Assets, "err", err)
			} else {
				fmt.Printf("meshes at %s: %s\n", cfg.Assets, strings.Join(meshes, ", "))
			}
		}
	}

	loop := game.NewFrameLoop(s, renderer, sky, []game.Light{sun}, game.FrameLoopConfig{
		MaxFrameDelta:  cfg.MaxFrameDelta,
		FPSLogInterval: cfg.FPSLogInterval,
	}, logger)
	loop.OnGoal = func() {
		window.SetTitle(cfg.Window.Title + " - You found the birb!")
		fmt.Println("You found the birb!")
	}

	window.SetKeyCallback(func(key int, pressed bool) {
		if key == host.KeyEscape && pressed {
			loop.Stop()
			return
		}
		k, ok := moveKeys[key]
		if !ok {
			return
		}
		if pressed {
			s.Camera.KeyDown(k)
		} else {
			s.Camera.KeyUp(k)
		}
	})
	window.SetCursorCallback(func(dx, dy float64) {
		s.Camera.PointerMove(float32(dx), float32(dy))
	})
	window.SetResizeCallback(func(width, height int) {
		v := core.Viewport{Width: int32(width), Height: int32(height)}
		renderer.SetViewport(v)
		s.Camera.SetAspect(v.Aspect())
	})

	fmt.Println(controls)
	err = loop.Run(ctx, window)
	logger.Info("bye", "frames", loop.Frames(), "found", loop.Won())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
