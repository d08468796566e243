package io

import (
	"bytes"
	stdio "io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/marziaf/birb-hunt/core"
	"github.com/marziaf/birb-hunt/math"
	"github.com/marziaf/birb-hunt/scene"
)

// Config describes one forest: what to load, where to place it and how the
// player and the bird move.
type Config struct {
	Seed   int64  `yaml:"seed"`
	Assets string `yaml:"assets"` // directory or http(s) URL

	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Player PlayerConfig `yaml:"player"`
	Bird   BirdConfig   `yaml:"bird"`
	Light  LightConfig  `yaml:"light"`
	Sky    SkyConfig    `yaml:"sky"`

	Ground PropConfig   `yaml:"ground"`
	Nest   PropConfig   `yaml:"nest"`
	Props  []PropConfig `yaml:"props"`

	MaxPlacementAttempts int           `yaml:"max_placement_attempts"`
	MaxFrameDelta        time.Duration `yaml:"max_frame_delta"`
	FPSLogInterval       time.Duration `yaml:"fps_log_interval"`
}

type WindowConfig struct {
	Width         int    `yaml:"width"`
	Height        int    `yaml:"height"`
	Title         string `yaml:"title"`
	Resizable     bool   `yaml:"resizable"`
	VSync         bool   `yaml:"vsync"`
	Fullscreen    bool   `yaml:"fullscreen"`
	CaptureCursor bool   `yaml:"capture_cursor"`
}

type CameraConfig struct {
	Position      [3]float32 `yaml:"position"`
	Direction     float32    `yaml:"direction"`
	Elevation     float32    `yaml:"elevation"`
	ElevationLow  float32    `yaml:"elevation_low"`
	ElevationHigh float32    `yaml:"elevation_high"`
	Speed         float32    `yaml:"speed"`
	Sensitivity   float32    `yaml:"sensitivity"`
	FovY          float32    `yaml:"fov_y"`
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
}

type PlayerConfig struct {
	Radius float32 `yaml:"radius"`
	// SpawnClearance keeps props away from the start position.
	SpawnClearance float32 `yaml:"spawn_clearance"`
}

type BirdConfig struct {
	Mesh           string  `yaml:"mesh"`
	ColliderRadius float32 `yaml:"collider_radius"`
	Radius         float32 `yaml:"radius"`
	Frequency      float32 `yaml:"frequency"`
	Amplitude      float32 `yaml:"amplitude"`
	AngularSpeed   float32 `yaml:"angular_speed"`
	Height         float32 `yaml:"height"`
}

type LightConfig struct {
	Direction [3]float32 `yaml:"direction"`
	Color     [3]float32 `yaml:"color"`
	Ambient   float32    `yaml:"ambient"`
}

type SkyConfig struct {
	Zenith  [3]float32 `yaml:"zenith"`
	Horizon [3]float32 `yaml:"horizon"`
	Ground  [3]float32 `yaml:"ground"`
}

// ColliderConfig selects a collider variant; an empty Kind means none.
type ColliderConfig struct {
	Kind   string  `yaml:"kind"`
	Radius float32 `yaml:"radius"`
}

type PlacementConfig struct {
	RadiusBound float32 `yaml:"radius_bound"`
	MinDistance float32 `yaml:"min_distance"`
	ScaleMin    float32 `yaml:"scale_min"`
	ScaleMax    float32 `yaml:"scale_max"`
}

// PropConfig is a kind of scenery object: Count copies of Mesh, each placed
// with rejection sampling.
type PropConfig struct {
	Kind      string          `yaml:"kind"`
	Mesh      string          `yaml:"mesh"`
	Color     [3]float32      `yaml:"color"`
	Count     int             `yaml:"count"`
	Scale     float32         `yaml:"scale"` // fixed scale for unplaced props
	Collider  ColliderConfig  `yaml:"collider"`
	Placement PlacementConfig `yaml:"placement"`
}

func DefaultConfig() *Config {
	cam := scene.DefaultCameraConfig()
	bird := scene.DefaultBirdConfig()
	return &Config{
		Seed:   1,
		Assets: "assets",
		Window: WindowConfig{
			Width:         1280,
			Height:        720,
			Title:         "Birb Hunt",
			Resizable:     true,
			VSync:         true,
			CaptureCursor: true,
		},
		Camera: CameraConfig{
			Position:      cam.Position,
			Direction:     cam.Direction,
			Elevation:     cam.Elevation,
			ElevationLow:  cam.ElevationLow,
			ElevationHigh: cam.ElevationHigh,
			Speed:         cam.Speed,
			Sensitivity:   cam.Sensitivity,
			FovY:          cam.FovY,
			Near:          cam.Near,
			Far:           cam.Far,
		},
		Player: PlayerConfig{Radius: 0.5, SpawnClearance: 3},
		Bird: BirdConfig{
			Mesh:           "builtin:sphere",
			ColliderRadius: 1.5,
			Radius:         bird.Radius,
			Frequency:      bird.Frequency,
			Amplitude:      bird.Amplitude,
			AngularSpeed:   bird.AngularSpeed,
			Height:         bird.Height,
		},
		Light: LightConfig{
			Direction: [3]float32{-0.4, -1, -0.3},
			Color:     [3]float32{1, 0.97, 0.9},
			Ambient:   0.25,
		},
		Sky: SkyConfig{
			Zenith:  [3]float32{0.25, 0.45, 0.85},
			Horizon: [3]float32{0.75, 0.85, 0.95},
			Ground:  [3]float32{0.3, 0.35, 0.25},
		},
		Ground: PropConfig{Kind: "ground", Mesh: "builtin:plane", Color: [3]float32{0.3, 0.6, 0.25}, Scale: 200},
		Nest: PropConfig{
			Kind:      "nest",
			Mesh:      "builtin:cube",
			Color:     [3]float32{0.5, 0.35, 0.2},
			Count:     1,
			Collider:  ColliderConfig{Kind: "cylinder", Radius: 0.8},
			Placement: PlacementConfig{RadiusBound: 25, MinDistance: 15, ScaleMin: 0.6, ScaleMax: 0.6},
		},
		Props: []PropConfig{
			{
				Kind:      "tree",
				Mesh:      "builtin:trunk",
				Color:     [3]float32{0.2, 0.55, 0.2},
				Count:     120,
				Collider:  ColliderConfig{Kind: "cylinder", Radius: 0.7},
				Placement: PlacementConfig{RadiusBound: 40, MinDistance: 0, ScaleMin: 0.8, ScaleMax: 1.4},
			},
			{
				Kind:      "rock",
				Mesh:      "builtin:sphere",
				Color:     [3]float32{0.5, 0.5, 0.52},
				Count:     40,
				Collider:  ColliderConfig{Kind: "cylinder", Radius: 0.6},
				Placement: PlacementConfig{RadiusBound: 40, MinDistance: 0, ScaleMin: 0.4, ScaleMax: 1.2},
			},
		},
		MaxPlacementAttempts: scene.DefaultMaxAttempts,
		MaxFrameDelta:        50 * time.Millisecond,
		FPSLogInterval:       5 * time.Second,
	}
}

// LoadConfig reads a YAML file over DefaultConfig, so omitted keys keep
// their defaults, and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, stdio.EOF) {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML, e.g. to seed a config file from defaults.
func SaveConfig(path string, cfg *Config) error {
	var buffer bytes.Buffer
	enc := yaml.NewEncoder(&buffer)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := enc.Close(); err != nil {
		return errors.Wrap(err, "failed to close yaml encoder")
	}
	return errors.Wrapf(os.WriteFile(path, buffer.Bytes(), 0644), "failed to write config %s", path)
}

func (c *Config) Validate() error {
	cam := c.Camera
	switch {
	case cam.ElevationLow > cam.ElevationHigh:
		return errors.Errorf("config: camera elevation_low %v above elevation_high %v", cam.ElevationLow, cam.ElevationHigh)
	case cam.FovY <= 0 || cam.FovY >= 180:
		return errors.Errorf("config: camera fov_y %v out of (0, 180)", cam.FovY)
	case cam.Near <= 0 || cam.Far <= cam.Near:
		return errors.Errorf("config: camera near %v / far %v invalid", cam.Near, cam.Far)
	case cam.Speed < 0:
		return errors.Errorf("config: camera speed %v negative", cam.Speed)
	case c.Player.Radius <= 0:
		return errors.Errorf("config: player radius %v must be positive", c.Player.Radius)
	case c.Bird.ColliderRadius <= 0:
		return errors.Errorf("config: bird collider_radius %v must be positive", c.Bird.ColliderRadius)
	case c.MaxFrameDelta <= 0:
		return errors.Errorf("config: max_frame_delta %v must be positive", c.MaxFrameDelta)
	}

	if err := c.Nest.validate(); err != nil {
		return err
	}
	for _, p := range c.Props {
		if err := p.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (p PropConfig) validate() error {
	if p.Mesh == "" {
		return errors.Errorf("config: prop %q has no mesh", p.Kind)
	}
	if p.Count < 0 {
		return errors.Errorf("config: prop %q count %d negative", p.Kind, p.Count)
	}
	switch p.Collider.Kind {
	case "", "sphere", "cylinder":
	default:
		return errors.Errorf("config: prop %q collider kind %q unknown", p.Kind, p.Collider.Kind)
	}
	if p.Collider.Kind != "" && p.Collider.Radius <= 0 {
		return errors.Errorf("config: prop %q collider radius %v must be positive", p.Kind, p.Collider.Radius)
	}
	if p.Placement.ScaleMin > p.Placement.ScaleMax {
		return errors.Errorf("config: prop %q scale_min above scale_max", p.Kind)
	}
	return nil
}

// NewCollider builds the configured collider, or nil when none is set.
func (c ColliderConfig) NewCollider() scene.Collider {
	switch c.Kind {
	case "sphere":
		return scene.NewSphereCollider(c.Radius)
	case "cylinder":
		return scene.NewCylinderCollider(c.Radius)
	}
	return nil
}

func (p PlacementConfig) Params() scene.PlacementParams {
	return scene.PlacementParams{
		RadiusBound: p.RadiusBound,
		MinDistance: p.MinDistance,
		ScaleMin:    p.ScaleMin,
		ScaleMax:    p.ScaleMax,
	}
}

// CameraConfig converts to the controller configuration for a viewport
// aspect ratio.
func (c *Config) CameraConfig(aspect float32) scene.CameraConfig {
	cam := c.Camera
	return scene.CameraConfig{
		Position:      math.Vec3(cam.Position),
		Direction:     cam.Direction,
		Elevation:     cam.Elevation,
		ElevationLow:  cam.ElevationLow,
		ElevationHigh: cam.ElevationHigh,
		Speed:         cam.Speed,
		Sensitivity:   cam.Sensitivity,
		FovY:          cam.FovY,
		Aspect:        aspect,
		Near:          cam.Near,
		Far:           cam.Far,
	}
}

func (c *Config) BirdConfig() scene.BirdConfig {
	b := c.Bird
	return scene.BirdConfig{
		Radius:       b.Radius,
		Frequency:    b.Frequency,
		Amplitude:    b.Amplitude,
		AngularSpeed: b.AngularSpeed,
		Height:       b.Height,
	}
}

func ColorOf(rgb [3]float32) core.Color {
	return core.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 1}
}
