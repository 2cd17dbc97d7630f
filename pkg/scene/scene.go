package scene

import (
	"fmt"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
	"github.com/dlb3d/go-sprite-extrude/pkg/extrude"
	"github.com/dlb3d/go-sprite-extrude/pkg/renderer"
	"github.com/dlb3d/go-sprite-extrude/pkg/texture"
)

// Scene bundles everything the renderer needs: camera, cube orientation,
// the extrusion dispatcher, and a background color
type Scene struct {
	Name          string
	Width, Height int

	camera     *renderer.Camera
	cube       *renderer.Cube
	dispatcher *extrude.Dispatcher
	background core.Color
}

// Camera returns the scene's camera
func (s *Scene) Camera() *renderer.Camera { return s.camera }

// Cube returns the scene's cube
func (s *Scene) Cube() *renderer.Cube { return s.cube }

// Shader returns the scene's fragment shader
func (s *Scene) Shader() renderer.Shader { return s.dispatcher }

// Background returns the scene's background color
func (s *Scene) Background() core.Color { return s.background }

// ExtrudeConfig returns the extrusion configuration in effect
func (s *Scene) ExtrudeConfig() extrude.Config { return s.dispatcher.Config() }

// BuiltinNames lists the built-in scene names, in display order
func BuiltinNames() []string {
	return []string{"default", "sheet", "hollow"}
}

// NewDefaultScene renders a procedural ring sprite extruded into a slightly
// turned cube
func NewDefaultScene() *Scene {
	return mustBuild("default")
}

// NewSheetScene renders frame 2 of a procedural 2x2 disc spritesheet
func NewSheetScene() *Scene {
	return mustBuild("sheet")
}

// NewHollowScene renders a hollow square frame with unbounded interior
// extrusion, the infinite-holes showcase
func NewHollowScene() *Scene {
	return mustBuild("hollow")
}

func mustBuild(name string) *Scene {
	cfg, err := ConfigFor(name)
	if err == nil {
		var scene *Scene
		if scene, err = cfg.Build(); err == nil {
			return scene
		}
	}
	// Built-in configs carry no file references; building cannot fail.
	panic(err)
}

// CreateScene resolves a scene by built-in name or by YAML config path
func CreateScene(nameOrPath string) (*Scene, error) {
	if nameOrPath == "" {
		return nil, fmt.Errorf("no scene specified")
	}
	cfg, err := ConfigFor(nameOrPath)
	if err != nil {
		return nil, err
	}
	return cfg.Build()
}

// ConfigFor returns the scene configuration for a built-in name or a YAML
// path, for callers that want to adjust it before building
func ConfigFor(nameOrPath string) (Config, error) {
	cfg := defaultSceneConfig()
	switch nameOrPath {
	case "default":
		return cfg, nil
	case "sheet":
		cfg.Name = "sheet"
		cfg.Texture.Procedural = "sheet"
		cfg.Extrude.Sheet = extrude.Sheet{Columns: 2, Rows: 2, Frame: 2}
		return cfg, nil
	case "hollow":
		cfg.Name = "hollow"
		cfg.Texture.Procedural = "hollow"
		cfg.Extrude.InfiniteHoles = true
		return cfg, nil
	}
	if isConfigPath(nameOrPath) {
		return Load(nameOrPath)
	}
	return Config{}, fmt.Errorf("unknown scene %q (built-ins: %v, or a .yaml path)", nameOrPath, BuiltinNames())
}

// buildTexture resolves a texture source: a named procedural sprite or an
// image file, optionally rescaled
func buildTexture(cfg TextureConfig) (*texture.Texture, error) {
	var tex *texture.Texture

	switch {
	case cfg.File != "":
		loaded, err := texture.Load(cfg.File)
		if err != nil {
			return nil, err
		}
		tex = loaded
	case cfg.Procedural != "":
		white := core.NewColor(0.92, 0.91, 0.85)
		switch cfg.Procedural {
		case "ring":
			tex = texture.NewRingSprite(64, 0.45, 0.85, core.NewColor(0.85, 0.3, 0.25))
		case "hollow":
			tex = texture.NewHollowSquare(64, 10, core.NewColor(0.25, 0.55, 0.85))
		case "sheet":
			tex = texture.NewDiscSheet(32, 2, 2, white)
		case "solid":
			tex = texture.NewSolid(16, 16, white)
		default:
			return nil, fmt.Errorf("unknown procedural texture %q", cfg.Procedural)
		}
	default:
		return nil, fmt.Errorf("texture needs either a file or a procedural name")
	}

	if cfg.RescaleWidth > 0 && cfg.RescaleHeight > 0 {
		tex = tex.Rescale(cfg.RescaleWidth, cfg.RescaleHeight)
	}
	return tex, nil
}
