package extrude

import (
	"math"
	"math/rand"
	"testing"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

func TestIsInImage(t *testing.T) {
	tests := []struct {
		name     string
		point    core.Vec2
		expected bool
	}{
		{"Center", core.Vec2{X: 0.5, Y: 0.5}, true},
		{"Origin corner", core.Vec2{X: 0, Y: 0}, true},
		{"Far corner", core.Vec2{X: 1, Y: 1}, true},
		{"Left edge", core.Vec2{X: 0, Y: 0.3}, true},
		{"Just outside left", core.Vec2{X: -0.001, Y: 0.5}, false},
		{"Just outside right", core.Vec2{X: 1.001, Y: 0.5}, false},
		{"Above", core.Vec2{X: 0.5, Y: -0.2}, false},
		{"Below", core.Vec2{X: 0.5, Y: 1.5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInImage(tt.point); got != tt.expected {
				t.Errorf("IsInImage(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	a := core.Vec2{X: 1, Y: 2}
	b := core.Vec2{X: 3, Y: 6}

	mid := Lerp(a, b, 0.5)
	expected := core.Vec2{X: 2, Y: 4}
	if mid.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Lerp midpoint: expected %v, got %v", expected, mid)
	}

	// t is not clamped; extrapolation is intentional.
	beyond := Lerp(a, b, 2)
	expected = core.Vec2{X: 5, Y: 10}
	if beyond.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Lerp extrapolation: expected %v, got %v", expected, beyond)
	}
}

func TestExitUnitSquare(t *testing.T) {
	tests := []struct {
		name     string
		origin   core.Vec2
		through  core.Vec2
		expected core.Vec2
	}{
		{
			name:     "Horizontal right",
			origin:   core.Vec2{X: 0.5, Y: 0.5},
			through:  core.Vec2{X: 1.5, Y: 0.5},
			expected: core.Vec2{X: 1, Y: 0.5},
		},
		{
			name:     "Horizontal left, direction of travel wins",
			origin:   core.Vec2{X: 0.5, Y: 0.5},
			through:  core.Vec2{X: 0.25, Y: 0.5},
			expected: core.Vec2{X: 0, Y: 0.5},
		},
		{
			name:     "Vertical up",
			origin:   core.Vec2{X: 0.5, Y: 0.5},
			through:  core.Vec2{X: 0.5, Y: -0.5},
			expected: core.Vec2{X: 0.5, Y: 0},
		},
		{
			name:     "Diagonal to far corner",
			origin:   core.Vec2{X: 0.25, Y: 0.25},
			through:  core.Vec2{X: 0.75, Y: 0.75},
			expected: core.Vec2{X: 1, Y: 1},
		},
		{
			name:     "Shallow slope exits through side",
			origin:   core.Vec2{X: 0.5, Y: 0.5},
			through:  core.Vec2{X: 1.0, Y: 0.6},
			expected: core.Vec2{X: 1, Y: 0.6},
		},
		{
			name:     "Degenerate line returns origin",
			origin:   core.Vec2{X: 0.3, Y: 0.7},
			through:  core.Vec2{X: 0.3, Y: 0.7},
			expected: core.Vec2{X: 0.3, Y: 0.7},
		},
		{
			name:     "Outside origin heading away returns origin",
			origin:   core.Vec2{X: -0.5, Y: 0.5},
			through:  core.Vec2{X: -1.5, Y: 0.5},
			expected: core.Vec2{X: -0.5, Y: 0.5},
		},
	}

	const tolerance = 1e-9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExitUnitSquare(tt.origin, tt.through)
			if got.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("ExitUnitSquare(%v, %v) = %v, expected %v",
					tt.origin, tt.through, got, tt.expected)
			}
		})
	}
}

func TestExitUnitSquare_BoundaryProperty(t *testing.T) {
	// For any interior origin the exit point must land on the square's
	// boundary.
	random := rand.New(rand.NewSource(7))
	const tolerance = 1e-9
	for i := 0; i < 200; i++ {
		origin := core.Vec2{X: random.Float64(), Y: random.Float64()}
		angle := random.Float64() * 2 * math.Pi
		through := origin.Add(core.Vec2{X: math.Cos(angle), Y: math.Sin(angle)})

		exit := ExitUnitSquare(origin, through)
		onX := math.Abs(exit.X) < tolerance || math.Abs(exit.X-1) < tolerance
		onY := math.Abs(exit.Y) < tolerance || math.Abs(exit.Y-1) < tolerance
		if !onX && !onY {
			t.Fatalf("exit %v from origin %v angle %.4f not on boundary", exit, origin, angle)
		}
		if !IsInImage(exit) {
			t.Fatalf("exit %v from origin %v angle %.4f outside the square", exit, origin, angle)
		}
	}
}

func TestToCenteredToUV(t *testing.T) {
	tests := []struct {
		name     string
		uv       core.Vec2
		centered core.Vec2
	}{
		{"Top-left", core.Vec2{X: 0, Y: 0}, core.Vec2{X: -1, Y: 1}},
		{"Bottom-right", core.Vec2{X: 1, Y: 1}, core.Vec2{X: 1, Y: -1}},
		{"Center", core.Vec2{X: 0.5, Y: 0.5}, core.Vec2{X: 0, Y: 0}},
		{"Quarter", core.Vec2{X: 0.25, Y: 0.75}, core.Vec2{X: -0.5, Y: -0.5}},
	}

	const tolerance = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToCentered(tt.uv)
			if got.Subtract(tt.centered).Length() > tolerance {
				t.Errorf("ToCentered(%v) = %v, expected %v", tt.uv, got, tt.centered)
			}
			back := ToUV(got)
			if back.Subtract(tt.uv).Length() > tolerance {
				t.Errorf("ToUV(ToCentered(%v)) = %v, round trip failed", tt.uv, back)
			}
		})
	}
}

func TestIntersectPlaneLine(t *testing.T) {
	planePoint := core.Vec3{}
	planeNormal := core.Vec3{Y: 1}

	point, ok := IntersectPlaneLine(planePoint, planeNormal,
		core.Vec3{X: 2, Y: 1, Z: 3}, core.Vec3{Y: -1})
	if !ok {
		t.Fatal("expected intersection with non-parallel line")
	}
	expected := core.Vec3{X: 2, Y: 0, Z: 3}
	if point.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, point)
	}

	// Oblique line.
	point, ok = IntersectPlaneLine(planePoint, planeNormal,
		core.Vec3{X: 0, Y: 2, Z: 0}, core.Vec3{X: 1, Y: -1, Z: 0})
	if !ok {
		t.Fatal("expected intersection with oblique line")
	}
	expected = core.Vec3{X: 2, Y: 0, Z: 0}
	if point.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", expected, point)
	}

	if _, ok := IntersectPlaneLine(planePoint, planeNormal,
		core.Vec3{Y: 1}, core.Vec3{X: 1, Z: 1}); ok {
		t.Error("expected no intersection for a line parallel to the plane")
	}
}
