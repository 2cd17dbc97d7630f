package extrude

import (
	"math"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

// IsInImage reports whether p lies inside the unit square image domain,
// boundary included
func IsInImage(p core.Vec2) bool {
	return p.X >= 0 && p.X <= 1 && p.Y >= 0 && p.Y <= 1
}

// Lerp interpolates component-wise between a and b. t is not clamped.
func Lerp(a, b core.Vec2, t float64) core.Vec2 {
	return core.Vec2{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
}

// ExitUnitSquare returns the point where the line from origin through
// `through` leaves the unit square, moving in the direction of travel.
// Uses the parametric slab method: for each axis, the exit parameter is the
// distance to the boundary the direction is heading toward; the smaller of
// the two is the forward exit. Axis-aligned directions leave the other
// axis' parameter infinite, so vertical and horizontal lines fall out of
// the same computation. A degenerate line (origin == through) returns
// origin unchanged.
func ExitUnitSquare(origin, through core.Vec2) core.Vec2 {
	dir := through.Subtract(origin)
	if dir.X == 0 && dir.Y == 0 {
		return origin
	}

	tx := math.Inf(1)
	if dir.X > 0 {
		tx = (1 - origin.X) / dir.X
	} else if dir.X < 0 {
		tx = -origin.X / dir.X
	}

	ty := math.Inf(1)
	if dir.Y > 0 {
		ty = (1 - origin.Y) / dir.Y
	} else if dir.Y < 0 {
		ty = -origin.Y / dir.Y
	}

	t := min(tx, ty)
	if t < 0 {
		// Origin outside the square with the square behind the direction of
		// travel; there is no forward exit.
		return origin
	}
	return origin.Add(dir.Multiply(t))
}

// ToCentered maps a UV in [0,1]² to centered coordinates in [-1,1]² with Y
// pointing up (image rows grow downward, so Y is negated)
func ToCentered(uv core.Vec2) core.Vec2 {
	return core.Vec2{X: uv.X*2 - 1, Y: -(uv.Y*2 - 1)}
}

// ToUV is the inverse of ToCentered
func ToUV(p core.Vec2) core.Vec2 {
	return core.Vec2{X: (p.X + 1) / 2, Y: (1 - p.Y) / 2}
}

// IntersectPlaneLine intersects the line through linePoint with direction
// lineDir against the plane through planePoint with normal planeNormal.
// Returns false when the line is parallel to the plane (denominator close
// to zero), which callers must treat as "no crossing" rather than letting a
// non-finite point propagate.
func IntersectPlaneLine(planePoint, planeNormal, linePoint, lineDir core.Vec3) (core.Vec3, bool) {
	denominator := lineDir.Dot(planeNormal)
	if math.Abs(denominator) < 1e-8 {
		return core.Vec3{}, false
	}
	t := planePoint.Subtract(linePoint).Dot(planeNormal) / denominator
	return linePoint.Add(lineDir.Multiply(t)), true
}
