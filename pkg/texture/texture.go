package texture

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

// Texture is a 2D RGBA image with float channels in [0,1], sampled with
// nearest-neighbor filtering. Pixels are row-major: Pix[y*Width + x].
// Sampling never mutates, so a texture is shared freely across goroutines.
type Texture struct {
	Width  int
	Height int
	Pix    []core.Color
}

// New creates an empty (fully transparent) texture
func New(width, height int) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pix:    make([]core.Color, width*height),
	}
}

// FromImage converts any image.Image into a texture with straight alpha
func FromImage(img image.Image) *Texture {
	bounds := img.Bounds()
	t := New(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				t.Pix[i] = core.Transparent
			} else {
				// RGBA() is premultiplied; divide alpha back out.
				af := float64(a)
				t.Pix[i] = core.Color{
					R: float64(r) / af,
					G: float64(g) / af,
					B: float64(b) / af,
					A: af / 65535.0,
				}
			}
			i++
		}
	}
	return t
}

// Sample returns the texel at the given UV using nearest-neighbor
// filtering. Out-of-range coordinates wrap; a coordinate of exactly 0 or 1
// clamps to the edge texel so extrusion boundaries stay exact.
func (t *Texture) Sample(uv core.Vec2) core.Color {
	u := uv.X
	if u < 0 || u > 1 {
		u -= math.Floor(u)
	}
	v := uv.Y
	if v < 0 || v > 1 {
		v -= math.Floor(v)
	}

	x := int(u * float64(t.Width))
	y := int(v * float64(t.Height))
	if x >= t.Width {
		x = t.Width - 1
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return t.Pix[y*t.Width+x]
}

// Set assigns the texel at (x, y)
func (t *Texture) Set(x, y int, c core.Color) {
	t.Pix[y*t.Width+x] = c
}

// At returns the texel at (x, y)
func (t *Texture) At(x, y int) core.Color {
	return t.Pix[y*t.Width+x]
}

// ToNRGBA converts the texture to a straight-alpha image.NRGBA
func (t *Texture) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := t.At(x, y).Clamp()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(c.R*255.0 + 0.5)
			img.Pix[i+1] = uint8(c.G*255.0 + 0.5)
			img.Pix[i+2] = uint8(c.B*255.0 + 0.5)
			img.Pix[i+3] = uint8(c.A*255.0 + 0.5)
		}
	}
	return img
}

// Rescale resamples the texture to a new size with nearest-neighbor
// filtering, which preserves the hard alpha edges the ray marcher depends on
func (t *Texture) Rescale(width, height int) *Texture {
	if width == t.Width && height == t.Height {
		return t
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	src := t.ToNRGBA()
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}
