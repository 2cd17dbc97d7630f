package renderer

import (
	"math"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
	"github.com/dlb3d/go-sprite-extrude/pkg/extrude"
)

// Cube is the unit cube the sprite is extruded into: centered at the
// origin with half-extent 0.5 on each axis, oriented by a yaw rotation
// around Y followed by a pitch rotation around X.
type Cube struct {
	yaw   float64
	pitch float64
}

// NewCube creates a cube with the given orientation in degrees
func NewCube(yawDeg, pitchDeg float64) *Cube {
	return &Cube{
		yaw:   yawDeg * math.Pi / 180,
		pitch: pitchDeg * math.Pi / 180,
	}
}

// toModel transforms a world-space ray into the cube's object space by
// applying the inverse model rotation
func (c *Cube) toModel(ray core.Ray) core.Ray {
	origin := ray.Origin.RotateY(-c.yaw).RotateX(-c.pitch)
	direction := ray.Direction.RotateY(-c.yaw).RotateX(-c.pitch)
	return core.NewRay(origin, direction)
}

// axisFaces maps a slab axis and entering-normal sign to the cube face
var axisFaces = [3][2]extrude.Face{
	{extrude.FaceRight, extrude.FaceLeft},   // X
	{extrude.FaceTop, extrude.FaceBottom},   // Y
	{extrude.FaceFront, extrude.FaceBack},   // Z
}

// Intersect finds where a world ray enters the cube, using the slab method,
// and assembles the per-fragment inputs for the face dispatcher: the atlas
// UV, the model-space surface position, and the model-space view direction.
// Returns false when the ray misses the cube or starts inside it.
func (c *Cube) Intersect(ray core.Ray) (extrude.Fragment, bool) {
	const half = 0.5
	const tEpsilon = 1e-6

	model := c.toModel(ray)
	origins := [3]float64{model.Origin.X, model.Origin.Y, model.Origin.Z}
	directions := [3]float64{model.Direction.X, model.Direction.Y, model.Direction.Z}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)
	enterAxis := -1
	enterPositive := false

	for axis := 0; axis < 3; axis++ {
		origin := origins[axis]
		direction := directions[axis]

		if math.Abs(direction) < 1e-12 {
			// Parallel to the slab; miss unless the origin is within it.
			if origin < -half || origin > half {
				return extrude.Fragment{}, false
			}
			continue
		}

		t1 := (-half - origin) / direction
		t2 := (half - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin = t1
			enterAxis = axis
			// Entering through the face whose outward normal opposes the
			// ray direction along this axis.
			enterPositive = direction < 0
		}
		tMax = min(tMax, t2)
	}

	if tMin > tMax || tMax < tEpsilon || tMin < tEpsilon || enterAxis < 0 {
		return extrude.Fragment{}, false
	}

	point := model.At(tMin)
	var face extrude.Face
	if enterPositive {
		face = axisFaces[enterAxis][0]
	} else {
		face = axisFaces[enterAxis][1]
	}

	local := extrude.LocalUV(face, point)
	frag := extrude.Fragment{
		UV:      extrude.AtlasUV(face, local),
		Local:   point,
		ViewRay: model.Direction,
	}
	return frag, true
}
