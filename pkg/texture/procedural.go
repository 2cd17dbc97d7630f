package texture

import (
	"math"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

// NewSolid creates a texture filled with a single color
func NewSolid(width, height int, c core.Color) *Texture {
	t := New(width, height)
	for i := range t.Pix {
		t.Pix[i] = c
	}
	return t
}

// NewRingSprite creates a square sprite with an opaque ring between the
// inner and outer radius fractions and transparent pixels elsewhere. The
// transparent center is fully enclosed, which makes it a natural test case
// for hollow-region handling.
func NewRingSprite(size int, inner, outer float64, c core.Color) *Texture {
	t := New(size, size)
	center := float64(size-1) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := (float64(x) - center) / center
			dy := (float64(y) - center) / center
			r := math.Sqrt(dx*dx + dy*dy)
			if r >= inner && r <= outer {
				t.Set(x, y, c)
			}
		}
	}
	return t
}

// NewHollowSquare creates a sprite whose border frame is opaque and whose
// interior is fully transparent
func NewHollowSquare(size, border int, c core.Color) *Texture {
	t := New(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			onBorder := x < border || y < border || x >= size-border || y >= size-border
			if onBorder {
				t.Set(x, y, c)
			}
		}
	}
	return t
}

// NewDiscSheet creates a spritesheet of cols x rows frames, each frame a
// centered opaque disc whose radius shrinks with the frame index. Useful
// for exercising frame mapping with a visible per-frame difference.
func NewDiscSheet(tileSize, cols, rows int, c core.Color) *Texture {
	t := New(tileSize*cols, tileSize*rows)
	frames := cols * rows
	for frame := 0; frame < frames; frame++ {
		fx := (frame % cols) * tileSize
		fy := (frame / cols) * tileSize
		radius := 0.9 - 0.6*float64(frame)/float64(max(1, frames-1))
		center := float64(tileSize-1) / 2
		for y := 0; y < tileSize; y++ {
			for x := 0; x < tileSize; x++ {
				dx := (float64(x) - center) / center
				dy := (float64(y) - center) / center
				if math.Sqrt(dx*dx+dy*dy) <= radius {
					t.Set(fx+x, fy+y, c)
				}
			}
		}
	}
	return t
}
