package extrude

import (
	"math"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

// Result is the outcome of one extrusion ray march: the color found and the
// frame-local image point it was found at. When no opaque pixel exists
// along the ray, Hit is false, the color is fully transparent and Point is
// the unit-square exit point.
type Result struct {
	Color core.Color
	Point core.Vec2
	Hit   bool
	// Immediate marks a hit on the very first coarse sample: the start
	// point is already inside the image, so no edge could be placed.
	Immediate bool
}

// Marcher finds the nearest opaque pixel along a 2D ray inside the texture
// using a coarse scan followed by a shrinking-step refinement walk. All
// marching happens in frame-local image space; the spritesheet mapping and
// sample offset apply only when the texture is sampled, so result points
// stay comparable across faces.
type Marcher struct {
	cfg Config
	tex Texture
}

// NewMarcher creates a marcher for the given configuration and texture.
// The configuration is normalized and copied; the marcher is stateless
// between calls and safe for concurrent use.
func NewMarcher(cfg Config, tex Texture) *Marcher {
	cfg.Normalize()
	return &Marcher{cfg: cfg, tex: tex}
}

// Config returns the normalized configuration the marcher was built with
func (m *Marcher) Config() Config {
	return m.cfg
}

// sample reads the texture at a frame-local point, applying the sheet
// mapping and the configured sample offset. Points outside the unit square
// read as fully transparent; the texture's wrap addressing would otherwise
// pull texels from the opposite edge into off-image probes.
func (m *Marcher) sample(p core.Vec2, flipped bool) core.Color {
	if !IsInImage(p) {
		return core.Transparent
	}
	var mapped core.Vec2
	if flipped {
		mapped = m.cfg.Sheet.MapUVFlipped(p)
	} else {
		mapped = m.cfg.Sheet.MapUV(p)
	}
	return m.tex.Sample(mapped.Add(m.cfg.SampleOffset))
}

// Extrude marches from start along rayDir (frame-local image space, Y still
// in row convention: positive rayDir.Y points up, so it is negated before
// marching). flipped selects the mirrored sheet mapping.
func (m *Marcher) Extrude(start, rayDir core.Vec2, flipped bool) Result {
	dir := core.Vec2{X: rayDir.X, Y: -rayDir.Y}
	exit := ExitUnitSquare(start, start.Add(dir))

	calls := m.cfg.TextureCalls
	threshold := m.cfg.ExtrudeCullAlpha

	// Coarse scan: sample along [start, exit] with spacing biased toward
	// the far end when RayBias > 1.
	hitIndex := -1
	var found core.Vec2
	var color core.Color
	for i := 0; i < calls; i++ {
		percentage := math.Pow(float64(i)/float64(calls), m.cfg.RayBias)
		p := Lerp(start, exit, percentage)
		s := m.sample(p, flipped)
		if s.A >= threshold {
			hitIndex, found, color = i, p, s
			break
		}
	}

	if hitIndex < 0 {
		return Result{Color: core.Transparent, Point: exit}
	}
	if hitIndex == 0 {
		// The very first sample is already inside the image; there is no
		// edge to place, so skip refinement entirely.
		res := m.finish(color, start, start)
		res.Immediate = true
		return res
	}

	// Refinement: walk a shrinking step around the boundary, flipping
	// direction whenever the probe crosses the alpha threshold. The budget
	// is what remains of the coarse budget after the hit.
	segment := exit.Subtract(start)
	pos := found
	inside := true
	budget := calls - hitIndex
	for iteration := 1; iteration <= budget; iteration++ {
		step := segment.Multiply(1.0 / (float64(calls) * float64(iteration) * 2.0))
		if inside {
			pos = pos.Subtract(step)
		} else {
			pos = pos.Add(step)
		}
		s := m.sample(pos, flipped)
		if s.A >= threshold {
			color, found = s, pos
			inside = true
		} else {
			inside = false
		}
	}

	return m.finish(color, found, start)
}

// finish applies the post-processing from the configuration: alpha forcing,
// tint blending, and the infinite-hole origin substitution
func (m *Marcher) finish(color core.Color, point, start core.Vec2) Result {
	if m.cfg.OpaqueExtrude {
		color.A = 1
	}
	if m.cfg.TintStrength > 0 {
		color = color.Lerp(m.cfg.TintColor, m.cfg.TintStrength)
	}
	if m.cfg.InfiniteHoles {
		// No boundary was determined; the extrusion is unbounded, so the
		// caller gets the starting point back.
		point = start
	}
	return Result{Color: color, Point: point, Hit: true}
}
