package renderer

import (
	"image"
	"math"
	"math/rand"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
	"github.com/dlb3d/go-sprite-extrude/pkg/extrude"
)

// Shader turns one cube-face fragment into an output color. The extrusion
// face dispatcher is the production implementation.
type Shader interface {
	Shade(frag extrude.Fragment) core.Color
}

// Scene is what the renderer needs from a scene, kept as an interface to
// avoid a dependency on the scene package
type Scene interface {
	Camera() *Camera
	Cube() *Cube
	Shader() Shader
	Background() core.Color
}

// SamplingConfig contains the per-pixel sampling configuration
type SamplingConfig struct {
	SamplesPerPixel    int     // Rays per pixel
	AdaptiveMinSamples float64 // Minimum samples as a fraction of the maximum
	AdaptiveThreshold  float64 // Relative error below which sampling stops
}

// DefaultSamplingConfig returns sensible default values. The shader is
// deterministic, so sampling beyond a handful of jittered rays only
// refines silhouette edges.
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel:    16,
		AdaptiveMinSamples: 0.25,
		AdaptiveThreshold:  0.01,
	}
}

// Renderer renders a scene by intersecting camera rays with the cube and
// shading the resulting fragments
type Renderer struct {
	scene         Scene
	width, height int
	config        SamplingConfig
}

// NewRenderer creates a renderer for the given scene and image size
func NewRenderer(scene Scene, width, height int) *Renderer {
	return &Renderer{
		scene:  scene,
		width:  width,
		height: height,
		config: DefaultSamplingConfig(),
	}
}

// SetSamplingConfig replaces the sampling configuration
func (r *Renderer) SetSamplingConfig(config SamplingConfig) {
	r.config = config
}

// MergeSamplingConfig overrides only the non-zero fields of the sampling
// configuration
func (r *Renderer) MergeSamplingConfig(config SamplingConfig) {
	if config.SamplesPerPixel > 0 {
		r.config.SamplesPerPixel = config.SamplesPerPixel
	}
	if config.AdaptiveMinSamples > 0 {
		r.config.AdaptiveMinSamples = config.AdaptiveMinSamples
	}
	if config.AdaptiveThreshold > 0 {
		r.config.AdaptiveThreshold = config.AdaptiveThreshold
	}
}

// RayColor computes the color seen along one camera ray: the shaded cube
// fragment composited over the scene background, or the background alone
// on a miss
func (r *Renderer) RayColor(ray core.Ray) core.Color {
	frag, ok := r.scene.Cube().Intersect(ray)
	if !ok {
		return r.scene.Background()
	}
	return r.scene.Shader().Shade(frag).Over(r.scene.Background())
}

// RenderBounds renders the pixels within bounds into the shared pixel
// stats array, sampling adaptively up to targetSamples per pixel. Bounds
// from different tiles never overlap, so concurrent calls are safe.
func (r *Renderer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats, random *rand.Rand, targetSamples int) RenderStats {
	camera := r.scene.Camera()

	stats := RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		MaxSamples:  targetSamples,
		MinSamples:  targetSamples,
	}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			used := r.samplePixel(camera, i, j, &pixelStats[j][i], random, targetSamples)
			stats.TotalSamples += used
			stats.MinSamples = min(stats.MinSamples, used)
			stats.MaxSamplesUsed = max(stats.MaxSamplesUsed, used)
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}

// samplePixel takes jittered samples for one pixel until the adaptive
// stopping criterion or the target sample count is reached
func (r *Renderer) samplePixel(camera *Camera, i, j int, ps *PixelStats, random *rand.Rand, targetSamples int) int {
	initialCount := ps.SampleCount

	for ps.SampleCount < targetSamples && !r.shouldStopSampling(ps, targetSamples) {
		ray := camera.GetRay(i, j, random)
		ps.AddSample(r.RayColor(ray))
	}

	return ps.SampleCount - initialCount
}

// shouldStopSampling stops when the pixel's perceptual relative error falls
// below the configured threshold. The shader is deterministic, so interior
// pixels converge immediately and only jittered silhouette edges keep
// sampling.
func (r *Renderer) shouldStopSampling(ps *PixelStats, targetSamples int) bool {
	minSamples := max(1, int(float64(targetSamples)*r.config.AdaptiveMinSamples))
	if ps.SampleCount < minSamples {
		return false
	}

	mean := ps.LuminanceAccum / float64(ps.SampleCount)
	meanSq := ps.LuminanceSqAccum / float64(ps.SampleCount)
	variance := math.Max(0, meanSq-mean*mean)

	if mean <= 1e-8 {
		return variance < 1e-6
	}

	relativeError := math.Sqrt(variance) / mean
	return relativeError < r.config.AdaptiveThreshold
}

// RenderPass renders the full image in a single pass with the configured
// samples per pixel
func (r *Renderer) RenderPass() (*image.RGBA, RenderStats) {
	pixelStats := make([][]PixelStats, r.height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, r.width)
	}

	random := rand.New(rand.NewSource(42))
	bounds := image.Rect(0, 0, r.width, r.height)
	stats := r.RenderBounds(bounds, pixelStats, random, r.config.SamplesPerPixel)

	img := image.NewRGBA(bounds)
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			img.SetRGBA(x, y, pixelStats[y][x].GetColor().RGBA())
		}
	}
	return img, stats
}
