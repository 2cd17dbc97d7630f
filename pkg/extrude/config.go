package extrude

import "github.com/dlb3d/go-sprite-extrude/pkg/core"

// Texture is the read-only image resource the marcher samples. Sampling
// must be non-mutating; implementations are shared across goroutines
// without locking. Nearest-neighbor filtering is expected for accurate
// extrusion boundaries.
type Texture interface {
	Sample(uv core.Vec2) core.Color
}

// Config holds all per-material extrusion parameters. It is immutable once
// passed into a Marcher or Dispatcher; there is no hidden process-wide
// state, so instances are safe for concurrent use and reentrant testing.
type Config struct {
	// ExtrudeCullAlpha is the inclusive alpha threshold for a ray-march
	// sample to count as opaque
	ExtrudeCullAlpha float64 `yaml:"extrude_cull_alpha"`
	// ImageCullAlpha is the inclusive alpha threshold for the native-image
	// fast path on each face
	ImageCullAlpha float64 `yaml:"image_cull_alpha"`
	// OpaqueExtrude forces extruded output alpha to 1
	OpaqueExtrude bool `yaml:"opaque_extrude"`
	// KeepImage enables the native-image fast path; disabling it forces
	// every fragment through the ray marcher
	KeepImage bool `yaml:"keep_image"`
	// SampleOffset shifts every texture sample in sheet space
	SampleOffset core.Vec2 `yaml:"sample_offset"`
	// TintColor and TintStrength blend extruded colors toward a tint
	TintColor    core.Color `yaml:"tint_color"`
	TintStrength float64    `yaml:"tint_strength"`
	// TextureCalls is the iteration budget per ray-march call, the dominant
	// cost driver; it bounds worst-case per-fragment latency
	TextureCalls int `yaml:"texture_calls"`
	// RayBias is the exponent biasing coarse samples toward the far end of
	// the search segment when greater than 1
	RayBias float64 `yaml:"ray_bias"`
	// InfiniteHoles leaves extrusions through enclosed transparent regions
	// unbounded instead of capping them with the opposite-side probe
	InfiniteHoles bool `yaml:"infinite_holes"`
	// Sheet is the spritesheet grid and active frame
	Sheet Sheet `yaml:"sheet"`
}

// DefaultConfig returns the parameter values used by the built-in scenes
func DefaultConfig() Config {
	return Config{
		ExtrudeCullAlpha: 0.5,
		ImageCullAlpha:   0.5,
		KeepImage:        true,
		TintColor:        core.NewColor(0, 0, 0),
		TintStrength:     0,
		TextureCalls:     64,
		RayBias:          1,
		Sheet:            DefaultSheet(),
	}
}

// Normalize clamps out-of-range values that would otherwise divide by zero
// or invert the sample spacing
func (c *Config) Normalize() {
	if c.TextureCalls < 1 {
		c.TextureCalls = 1
	}
	if c.RayBias <= 0 {
		c.RayBias = 1
	}
	if c.TintStrength < 0 {
		c.TintStrength = 0
	} else if c.TintStrength > 1 {
		c.TintStrength = 1
	}
	c.Sheet.Normalize()
}
