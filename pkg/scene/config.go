package scene

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
	"github.com/dlb3d/go-sprite-extrude/pkg/extrude"
	"github.com/dlb3d/go-sprite-extrude/pkg/renderer"
)

// CameraSettings is the YAML shape of the camera configuration
type CameraSettings struct {
	Position [3]float64 `yaml:"position"`
	LookAt   [3]float64 `yaml:"look_at"`
	VFov     float64    `yaml:"vfov"`
}

// ModelSettings orients the cube
type ModelSettings struct {
	YawDeg   float64 `yaml:"yaw_deg"`
	PitchDeg float64 `yaml:"pitch_deg"`
}

// TextureConfig selects the sprite source
type TextureConfig struct {
	File          string `yaml:"file,omitempty"`
	Procedural    string `yaml:"procedural,omitempty"`
	RescaleWidth  int    `yaml:"rescale_width,omitempty"`
	RescaleHeight int    `yaml:"rescale_height,omitempty"`
}

// Config is a complete scene description, loadable from YAML
type Config struct {
	Name       string         `yaml:"name"`
	Width      int            `yaml:"width"`
	Height     int            `yaml:"height"`
	Background core.Color     `yaml:"background"`
	Camera     CameraSettings `yaml:"camera"`
	Model      ModelSettings  `yaml:"model"`
	Texture    TextureConfig  `yaml:"texture"`
	Extrude    extrude.Config `yaml:"extrude"`
}

// defaultSceneConfig is the starting point for built-in scenes and for
// fields a YAML file leaves unset
func defaultSceneConfig() Config {
	return Config{
		Name:       "default",
		Width:      400,
		Height:     400,
		Background: core.NewColorA(0.09, 0.09, 0.12, 1),
		Camera: CameraSettings{
			Position: [3]float64{0.9, 0.7, 1.5},
			LookAt:   [3]float64{0, 0, 0},
			VFov:     40,
		},
		Model:   ModelSettings{YawDeg: 25},
		Texture: TextureConfig{Procedural: "ring"},
		Extrude: extrude.DefaultConfig(),
	}
}

// Load reads a scene configuration from a YAML file, applying defaults for
// unset fields
func Load(path string) (Config, error) {
	cfg := defaultSceneConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading scene config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing scene config %s: %w", path, err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps invalid values to usable ones
func (c *Config) Normalize() {
	if c.Width <= 0 {
		c.Width = 400
	}
	if c.Height <= 0 {
		c.Height = 400
	}
	if c.Camera.VFov <= 0 {
		c.Camera.VFov = 40
	}
	c.Extrude.Normalize()
}

// Build assembles a renderable scene from the configuration
func (c Config) Build() (*Scene, error) {
	tex, err := buildTexture(c.Texture)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", c.Name, err)
	}

	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(c.Camera.Position[0], c.Camera.Position[1], c.Camera.Position[2]),
		LookAt:      core.NewVec3(c.Camera.LookAt[0], c.Camera.LookAt[1], c.Camera.LookAt[2]),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        c.Camera.VFov,
		Width:       c.Width,
		AspectRatio: float64(c.Width) / float64(c.Height),
	})

	return &Scene{
		Name:       c.Name,
		Width:      c.Width,
		Height:     c.Height,
		camera:     camera,
		cube:       renderer.NewCube(c.Model.YawDeg, c.Model.PitchDeg),
		dispatcher: extrude.NewDispatcher(c.Extrude, tex),
		background: c.Background,
	}, nil
}

// isConfigPath reports whether the scene argument looks like a YAML file
func isConfigPath(s string) bool {
	return strings.HasSuffix(s, ".yaml") || strings.HasSuffix(s, ".yml")
}
