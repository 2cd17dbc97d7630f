package extrude

import (
	"math"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

// Face identifies one of the six cube faces by its outward normal axis
type Face int

const (
	FaceFront  Face = iota // +Z
	FaceBack               // -Z
	FaceRight              // +X
	FaceLeft               // -X
	FaceTop                // +Y
	FaceBottom             // -Y
)

// String returns the face's axis name
func (f Face) String() string {
	switch f {
	case FaceFront:
		return "+Z"
	case FaceBack:
		return "-Z"
	case FaceRight:
		return "+X"
	case FaceLeft:
		return "-X"
	case FaceTop:
		return "+Y"
	case FaceBottom:
		return "-Y"
	}
	return "invalid"
}

// faceFrame holds the per-face constants: the model-space axes spanning the
// face's image plane (axisU along increasing image u, axisV along
// decreasing image v, i.e. "up"), the outward normal, the face's cell in
// the 3x2 UV atlas, and whether the face samples the mirrored sheet
// mapping. One table entry per face replaces six bespoke sign/axis blocks.
type faceFrame struct {
	axisU   core.Vec3
	axisV   core.Vec3
	normal  core.Vec3
	col     int
	row     int
	flipped bool
}

var faceFrames = [6]faceFrame{
	FaceFront:  {axisU: core.Vec3{X: 1}, axisV: core.Vec3{Y: 1}, normal: core.Vec3{Z: 1}, col: 0, row: 0},
	FaceBack:   {axisU: core.Vec3{X: -1}, axisV: core.Vec3{Y: 1}, normal: core.Vec3{Z: -1}, col: 1, row: 0, flipped: true},
	FaceRight:  {axisU: core.Vec3{Z: -1}, axisV: core.Vec3{Y: 1}, normal: core.Vec3{X: 1}, col: 2, row: 0},
	FaceLeft:   {axisU: core.Vec3{Z: 1}, axisV: core.Vec3{Y: 1}, normal: core.Vec3{X: -1}, col: 0, row: 1},
	FaceTop:    {axisU: core.Vec3{X: 1}, axisV: core.Vec3{Z: -1}, normal: core.Vec3{Y: 1}, col: 1, row: 1},
	FaceBottom: {axisU: core.Vec3{X: 1}, axisV: core.Vec3{Z: 1}, normal: core.Vec3{Y: -1}, col: 2, row: 1},
}

// cellFaces maps a 3x2 atlas cell (row, col) back to its face
var cellFaces = [2][3]Face{
	{FaceFront, FaceBack, FaceRight},
	{FaceLeft, FaceTop, FaceBottom},
}

// Normal returns the face's outward normal in model space
func (f Face) Normal() core.Vec3 {
	return faceFrames[f].normal
}

// FaceFor selects the face for a raw atlas UV by dividing the UV into a 3x2
// grid, and returns the face-local UV rescaled to [0,1]²
func FaceFor(uv core.Vec2) (Face, core.Vec2) {
	col := min(2, max(0, int(uv.X*3)))
	row := min(1, max(0, int(uv.Y*2)))
	adjusted := core.Vec2{X: uv.X*3 - float64(col), Y: uv.Y*2 - float64(row)}
	return cellFaces[row][col], adjusted
}

// AtlasUV maps a face-local UV back into the shared 3x2 atlas
func AtlasUV(f Face, local core.Vec2) core.Vec2 {
	fr := faceFrames[f]
	return core.Vec2{
		X: (local.X + float64(fr.col)) / 3,
		Y: (local.Y + float64(fr.row)) / 2,
	}
}

// LocalUV projects a model-space point onto the face's image plane,
// returning the face-local UV (u along axisU, v growing downward). Model
// coordinates span [-0.5,0.5] on each axis, so the projection is doubled
// onto the centered [-1,1]² plane before converting to UV.
func LocalUV(f Face, p core.Vec3) core.Vec2 {
	fr := faceFrames[f]
	return ToUV(core.Vec2{X: 2 * p.Dot(fr.axisU), Y: 2 * p.Dot(fr.axisV)})
}

// Fragment carries the per-fragment inputs the host pipeline supplies: the
// raw atlas UV, the surface position in model space (components in
// [-0.5,0.5]) and the view direction in model space (fragment position
// minus camera position, transformed by the inverse model matrix).
type Fragment struct {
	UV      core.Vec2
	Local   core.Vec3
	ViewRay core.Vec3
}

// Dispatcher shades cube-face fragments. Each fragment is independent and
// the dispatcher holds no mutable state, so a single instance serves all
// render workers concurrently.
type Dispatcher struct {
	cfg     Config
	tex     Texture
	marcher *Marcher
}

// NewDispatcher creates a dispatcher for the given configuration and texture
func NewDispatcher(cfg Config, tex Texture) *Dispatcher {
	cfg.Normalize()
	return &Dispatcher{cfg: cfg, tex: tex, marcher: NewMarcher(cfg, tex)}
}

// Config returns the normalized configuration the dispatcher was built with
func (d *Dispatcher) Config() Config {
	return d.cfg
}

// sampleNative reads the texture at a face-local UV through the sheet
// mapping, without the marcher's sample offset
func (d *Dispatcher) sampleNative(local core.Vec2, flipped bool) core.Color {
	if flipped {
		return d.tex.Sample(d.cfg.Sheet.MapUVFlipped(local))
	}
	return d.tex.Sample(d.cfg.Sheet.MapUV(local))
}

// Shade computes the output color and alpha for one fragment
func (d *Dispatcher) Shade(frag Fragment) core.Color {
	if !frag.UV.IsFinite() || !frag.Local.IsFinite() || !frag.ViewRay.IsFinite() {
		return core.Transparent
	}

	face, adjusted := FaceFor(frag.UV)
	fr := faceFrames[face]

	// Native-image fast path: the texel under this fragment is opaque
	// enough to show as-is, no marching needed.
	if d.cfg.KeepImage {
		native := d.sampleNative(adjusted, fr.flipped)
		if native.A >= d.cfg.ImageCullAlpha {
			return native
		}
	}

	// Primary extrusion along the view ray projected into this face's
	// image plane.
	rayDir := core.Vec2{X: frag.ViewRay.Dot(fr.axisU), Y: frag.ViewRay.Dot(fr.axisV)}
	res := d.marcher.Extrude(adjusted, rayDir, fr.flipped)
	if !res.Hit {
		return core.Transparent
	}

	// A fragment whose own texel met the extrusion threshold is part of
	// the silhouette itself and never subject to hollow-region culling.
	if !d.cfg.InfiniteHoles && !res.Immediate {
		switch face {
		case FaceFront, FaceBack:
			if d.cullThrough(face, adjusted, rayDir, frag, res) {
				return core.Transparent
			}
		default:
			if d.cullSide(frag, res) {
				return core.Transparent
			}
		}
	}

	return res.Color
}

// imagePlaneCrossing finds where the continued view ray leaves the cube
// through the image planes: one intersection against the cube's central
// plane, then one projecting that onto the forward front/back image plane.
// Fails when the view ray is parallel to the image planes.
func imagePlaneCrossing(frag Fragment) (core.Vec3, bool) {
	zAxis := core.Vec3{Z: 1}
	q, ok := IntersectPlaneLine(core.Vec3{}, zAxis, frag.Local, frag.ViewRay)
	if !ok {
		return core.Vec3{}, false
	}
	forward := core.Vec3{Z: 0.5}
	if frag.ViewRay.Z < 0 {
		forward.Z = -0.5
	}
	return IntersectPlaneLine(forward, zAxis, q, frag.ViewRay)
}

// cullThrough is the double-sided disambiguation for the front and back
// faces: a second march from where the ray crosses to the opposite image
// plane. When that probe's boundary is not beyond the primary's along the
// march direction, the ray passes through the hollow region before
// reaching the primary's wall, so the extrusion is culled.
func (d *Dispatcher) cullThrough(face Face, adjusted, rayDir core.Vec2, frag Fragment, primary Result) bool {
	crossing, ok := imagePlaneCrossing(frag)
	if !ok {
		return false
	}
	fr := faceFrames[face]
	opposite := d.marcher.Extrude(LocalUV(face, crossing), rayDir, fr.flipped)
	if !opposite.Hit {
		return false
	}

	// Compare positions along the actual image-space march direction; its
	// Y component carries the model ray's vertical sign.
	// The two marches approach the same physical edge from different
	// starting points, so they agree only up to the refinement step size;
	// the tolerance must cover that, not float error.
	marchDir := core.Vec2{X: rayDir.X, Y: -rayDir.Y}.Normalize()
	sPrimary := primary.Point.Subtract(adjusted).Dot(marchDir)
	sOpposite := opposite.Point.Subtract(adjusted).Dot(marchDir)
	return sOpposite <= sPrimary+1e-3
}

// cullSide is the weaker disambiguation for the four side faces: re-extrude
// over the actual silhouette plane from the point where the ray crosses the
// front/back image plane. A zero-alpha probe means no extruded body exists
// along the continued ray, so the side extrusion is culled.
func (d *Dispatcher) cullSide(frag Fragment, primary Result) bool {
	if math.Abs(frag.ViewRay.Z) < 1e-8 {
		// The ray never leaves through the image planes; the primary
		// extrusion stands.
		return false
	}
	crossing, ok := imagePlaneCrossing(frag)
	if !ok {
		return false
	}

	zFace := FaceFront
	if frag.ViewRay.Z < 0 {
		zFace = FaceBack
	}
	zfr := faceFrames[zFace]
	rayDir := core.Vec2{X: frag.ViewRay.Dot(zfr.axisU), Y: frag.ViewRay.Dot(zfr.axisV)}
	probe := d.marcher.Extrude(LocalUV(zFace, crossing), rayDir, zfr.flipped)
	return !probe.Hit
}
