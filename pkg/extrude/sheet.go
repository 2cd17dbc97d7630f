package extrude

import "github.com/dlb3d/go-sprite-extrude/pkg/core"

// Sheet describes a spritesheet grid and the active frame within it.
// A 1x1 sheet with frame 0 maps every UV to itself.
type Sheet struct {
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
	Frame   int `yaml:"frame"`
}

// DefaultSheet returns the single-frame identity sheet
func DefaultSheet() Sheet {
	return Sheet{Columns: 1, Rows: 1, Frame: 0}
}

// Normalize clamps the grid to at least one tile per axis
func (s *Sheet) Normalize() {
	if s.Columns < 1 {
		s.Columns = 1
	}
	if s.Rows < 1 {
		s.Rows = 1
	}
	if s.Frame < 0 {
		s.Frame = 0
	}
}

// MapUV maps a frame-local UV in [0,1]² into the active frame's tile of the
// full sheet. The tile column is frame modulo Columns; the tile row divides
// by Rows, not Columns. Out-of-range coordinates wrap on sampling.
func (s Sheet) MapUV(uv core.Vec2) core.Vec2 {
	cols := max(1, s.Columns)
	rows := max(1, s.Rows)
	col := s.Frame % cols
	row := s.Frame / rows
	return core.Vec2{
		X: (uv.X + float64(col)) / float64(cols),
		Y: (uv.Y + float64(row)) / float64(rows),
	}
}

// MapUVFlipped mirrors the UV horizontally around the frame's own center
// before mapping, for faces whose texture must appear mirrored to stay
// visually contiguous with the front face around the silhouette
func (s Sheet) MapUVFlipped(uv core.Vec2) core.Vec2 {
	uv.X = 1 - uv.X
	return s.MapUV(uv)
}
