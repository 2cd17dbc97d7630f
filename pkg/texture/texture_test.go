package texture

import (
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

var (
	red   = core.NewColor(1, 0, 0)
	green = core.NewColor(0, 1, 0)
	blue  = core.NewColor(0, 0, 1)
	white = core.NewColor(1, 1, 1)
)

// quad returns a 2x2 texture with a distinct color per texel
func quad() *Texture {
	t := New(2, 2)
	t.Set(0, 0, red)
	t.Set(1, 0, green)
	t.Set(0, 1, blue)
	t.Set(1, 1, white)
	return t
}

func TestTexture_Sample(t *testing.T) {
	tex := quad()

	tests := []struct {
		name     string
		uv       core.Vec2
		expected core.Color
	}{
		{"Top-left texel", core.Vec2{X: 0.25, Y: 0.25}, red},
		{"Top-right texel", core.Vec2{X: 0.75, Y: 0.25}, green},
		{"Bottom-left texel", core.Vec2{X: 0.25, Y: 0.75}, blue},
		{"Bottom-right texel", core.Vec2{X: 0.75, Y: 0.75}, white},
		{"Zero clamps to first texel", core.Vec2{X: 0, Y: 0}, red},
		{"One clamps to last texel", core.Vec2{X: 1, Y: 1}, white},
		{"Wrap past right edge", core.Vec2{X: 1.25, Y: 0.25}, red},
		{"Wrap past left edge", core.Vec2{X: -0.25, Y: 0.25}, green},
		{"Wrap below", core.Vec2{X: 0.25, Y: 1.75}, blue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tex.Sample(tt.uv); got != tt.expected {
				t.Errorf("Sample(%v) = %v, expected %v", tt.uv, got, tt.expected)
			}
		})
	}
}

func TestNew_IsTransparent(t *testing.T) {
	tex := New(4, 3)
	if tex.Width != 4 || tex.Height != 3 {
		t.Fatalf("dimensions %dx%d, expected 4x3", tex.Width, tex.Height)
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if tex.At(x, y).A != 0 {
				t.Fatalf("texel (%d,%d) not transparent in a fresh texture", x, y)
			}
		}
	}
}

func TestFromImage_StraightAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{})

	tex := FromImage(img)
	const tolerance = 0.01

	got := tex.At(0, 0)
	// The premultiplied RGBA() value must be divided back out to straight
	// alpha: a half-transparent red keeps R at full intensity.
	if math.Abs(got.R-1) > tolerance || math.Abs(got.A-128.0/255.0) > tolerance {
		t.Errorf("half-transparent red decoded as %v", got)
	}
	if tex.At(1, 0) != core.Transparent {
		t.Errorf("zero-alpha texel decoded as %v, expected Transparent", tex.At(1, 0))
	}
}

func TestToNRGBA_RoundTrip(t *testing.T) {
	tex := quad()
	back := FromImage(tex.ToNRGBA())

	const tolerance = 0.01
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want := tex.At(x, y)
			got := back.At(x, y)
			if math.Abs(got.R-want.R) > tolerance || math.Abs(got.G-want.G) > tolerance ||
				math.Abs(got.B-want.B) > tolerance || math.Abs(got.A-want.A) > tolerance {
				t.Errorf("texel (%d,%d) round-tripped to %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestRescale(t *testing.T) {
	tex := quad()

	same := tex.Rescale(2, 2)
	if same != tex {
		t.Error("rescale to the same size should return the texture unchanged")
	}

	big := tex.Rescale(4, 4)
	if big.Width != 4 || big.Height != 4 {
		t.Fatalf("rescaled to %dx%d, expected 4x4", big.Width, big.Height)
	}
	// Nearest-neighbor keeps the quadrant colors exact.
	if big.At(0, 0) != red || big.At(3, 0) != green || big.At(0, 3) != blue || big.At(3, 3) != white {
		t.Errorf("rescaled quadrants: %v %v %v %v",
			big.At(0, 0), big.At(3, 0), big.At(0, 3), big.At(3, 3))
	}
}

func TestLoad_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, quad().ToNRGBA()); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	tex, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tex.Width != 2 || tex.Height != 2 {
		t.Fatalf("loaded %dx%d, expected 2x2", tex.Width, tex.Height)
	}
	if got := tex.At(1, 1); math.Abs(got.R-1) > 0.01 || math.Abs(got.A-1) > 0.01 {
		t.Errorf("texel (1,1) loaded as %v, expected white", got)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestNewSolid(t *testing.T) {
	tex := NewSolid(3, 3, red)
	for i := range tex.Pix {
		if tex.Pix[i] != red {
			t.Fatalf("texel %d = %v, expected %v", i, tex.Pix[i], red)
		}
	}
}

func TestNewRingSprite(t *testing.T) {
	tex := NewRingSprite(16, 0.5, 0.9, red)
	if tex.At(7, 7).A != 0 {
		t.Error("ring center should be transparent")
	}
	if tex.At(0, 0).A != 0 {
		t.Error("ring corner should be transparent")
	}
	if tex.At(2, 7) != red {
		t.Errorf("texel on the ring = %v, expected %v", tex.At(2, 7), red)
	}
}

func TestNewHollowSquare(t *testing.T) {
	tex := NewHollowSquare(8, 2, red)
	if tex.At(0, 0) != red || tex.At(7, 7) != red {
		t.Error("border corners should be opaque")
	}
	if tex.At(4, 4).A != 0 || tex.At(3, 3).A != 0 {
		t.Error("interior should be transparent")
	}
}

func TestNewDiscSheet(t *testing.T) {
	tex := NewDiscSheet(8, 2, 2, red)
	if tex.Width != 16 || tex.Height != 16 {
		t.Fatalf("sheet is %dx%d, expected 16x16", tex.Width, tex.Height)
	}
	// Every frame keeps an opaque disc center; corners stay transparent.
	if tex.At(3, 3) != red || tex.At(11, 11) != red {
		t.Error("disc centers should be opaque in every frame")
	}
	if tex.At(0, 0).A != 0 || tex.At(8, 8).A != 0 {
		t.Error("frame corners should be transparent")
	}
}
