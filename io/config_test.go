package io

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marziaf/birb-hunt/scene"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

// Props stand on the ground while the player collider rides at eye height,
// so only horizontal clearance can block movement.
func TestDefaultPropsUseCylinders(t *testing.T) {
	cfg := DefaultConfig()
	for _, p := range append([]PropConfig{cfg.Nest}, cfg.Props...) {
		assert.Equal(t, "cylinder", p.Collider.Kind, p.Kind)
	}
}

func TestParseConfigOverlaysDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
seed: 99
camera:
  speed: 7.5
max_frame_delta: 20ms
`))
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, float32(7.5), cfg.Camera.Speed)
	assert.Equal(t, 20*time.Millisecond, cfg.MaxFrameDelta)

	// Untouched keys keep their defaults.
	assert.Equal(t, def.Camera.FovY, cfg.Camera.FovY)
	assert.Equal(t, def.Props, cfg.Props)
	assert.Equal(t, def.FPSLogInterval, cfg.FPSLogInterval)
}

func TestParseConfigEmpty(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfigRejects(t *testing.T) {
	cases := map[string]string{
		"unknown key":   "sede: 4\n",
		"fov":           "camera: {fov_y: 0}\n",
		"near far":      "camera: {near: 10, far: 5}\n",
		"elevation":     "camera: {elevation_low: 30, elevation_high: -30}\n",
		"player radius": "player: {radius: 0}\n",
		"collider kind": "props: [{kind: tree, mesh: builtin:trunk, count: 1, collider: {kind: box, radius: 1}}]\n",
		"scale range":   "props: [{kind: rock, mesh: builtin:sphere, placement: {scale_min: 2, scale_max: 1}}]\n",
		"missing mesh":  "props: [{kind: rock, count: 2}]\n",
		"syntax":        "camera: [\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 1234
	cfg.Props = cfg.Props[:1]
	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigConversions(t *testing.T) {
	cfg := DefaultConfig()

	cam := cfg.CameraConfig(2)
	assert.Equal(t, float32(2), cam.Aspect)
	assert.Equal(t, scene.DefaultCameraConfig().Position, cam.Position)

	assert.Equal(t, scene.DefaultBirdConfig(), cfg.BirdConfig())

	assert.Nil(t, ColliderConfig{}.NewCollider())
	assert.Equal(t, scene.Cylinder, ColliderConfig{Kind: "cylinder", Radius: 1}.NewCollider().Kind())
	assert.Equal(t, scene.Sphere, ColliderConfig{Kind: "sphere", Radius: 1}.NewCollider().Kind())

	p := PlacementConfig{RadiusBound: 1, MinDistance: 2, ScaleMin: 3, ScaleMax: 4}.Params()
	assert.Equal(t, scene.PlacementParams{RadiusBound: 1, MinDistance: 2, ScaleMin: 3, ScaleMax: 4}, p)
}
