package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/dlb3d/go-sprite-extrude/pkg/renderer"
	"github.com/dlb3d/go-sprite-extrude/pkg/scene"
)

const (
	renderSize  = 200 // Offscreen render resolution
	windowScale = 3
)

// game drives an orbiting camera around the extruded cube and re-renders
// the offscreen framebuffer whenever the view changes
type game struct {
	cfg      scene.Config
	azimuth  float64 // Camera orbit angle around Y, radians
	altitude float64 // Camera elevation angle, radians
	distance float64
	dirty    bool
	frame    *ebiten.Image
}

func newGame(cfg scene.Config) *game {
	cfg.Width = renderSize
	cfg.Height = renderSize
	return &game{
		cfg:      cfg,
		azimuth:  0.5,
		altitude: 0.35,
		distance: 1.9,
		dirty:    true,
	}
}

func (g *game) Update() error {
	const angleStep = 0.04
	const zoomStep = 0.05

	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		g.azimuth -= angleStep
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		g.azimuth += angleStep
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		g.altitude = min(1.4, g.altitude+angleStep)
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		g.altitude = max(-1.4, g.altitude-angleStep)
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyQ) {
		g.distance = min(6, g.distance+zoomStep)
		g.dirty = true
	}
	if ebiten.IsKeyPressed(ebiten.KeyE) {
		g.distance = max(1.1, g.distance-zoomStep)
		g.dirty = true
	}

	// Step through spritesheet frames with [ and ].
	sheet := &g.cfg.Extrude.Sheet
	frames := max(1, sheet.Columns) * max(1, sheet.Rows)
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		sheet.Frame = (sheet.Frame + 1) % frames
		g.dirty = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		sheet.Frame = (sheet.Frame + frames - 1) % frames
		g.dirty = true
	}

	if g.dirty {
		if err := g.rerender(); err != nil {
			return err
		}
		g.dirty = false
	}
	return nil
}

// rerender rebuilds the scene with the current camera orbit and renders
// one low-resolution pass into the framebuffer image
func (g *game) rerender() error {
	cosAlt := math.Cos(g.altitude)
	g.cfg.Camera.Position = [3]float64{
		g.distance * cosAlt * math.Sin(g.azimuth),
		g.distance * math.Sin(g.altitude),
		g.distance * cosAlt * math.Cos(g.azimuth),
	}
	g.cfg.Camera.LookAt = [3]float64{0, 0, 0}

	s, err := g.cfg.Build()
	if err != nil {
		return err
	}

	r := renderer.NewRenderer(s, renderSize, renderSize)
	r.SetSamplingConfig(renderer.SamplingConfig{
		SamplesPerPixel:    2,
		AdaptiveMinSamples: 1,
		AdaptiveThreshold:  0.05,
	})
	img, _ := r.RenderPass()

	if g.frame == nil {
		g.frame = ebiten.NewImage(renderSize, renderSize)
	}
	g.frame.WritePixels(img.Pix)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return renderSize, renderSize
}

func main() {
	sceneArg := flag.String("scene", "default", "Built-in scene name or path to a scene .yaml")
	flag.Parse()

	cfg, err := scene.ConfigFor(*sceneArg)
	if err != nil {
		fmt.Printf("Error loading scene: %v\n", err)
		os.Exit(1)
	}

	ebiten.SetWindowTitle("Sprite Extruder (arrows orbit, Q/E zoom, [ ] frame)")
	ebiten.SetWindowSize(renderSize*windowScale, renderSize*windowScale)
	ebiten.SetTPS(30)

	if err := ebiten.RunGame(newGame(cfg)); err != nil {
		fmt.Printf("Viewer error: %v\n", err)
		os.Exit(1)
	}
}
