package core

import "image/color"

// Color represents an RGBA color with components in [0,1]
type Color struct {
	R, G, B, A float64
}

// NewColor creates a new opaque color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// NewColorA creates a new color with explicit alpha
func NewColorA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Transparent is the fully transparent zero color
var Transparent = Color{}

// Lerp blends the RGB channels toward other by t, leaving alpha unchanged
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A,
	}
}

// Over composites c over background using straight alpha
func (c Color) Over(background Color) Color {
	inv := 1 - c.A
	return Color{
		R: c.R*c.A + background.R*background.A*inv,
		G: c.G*c.A + background.G*background.A*inv,
		B: c.B*c.A + background.B*background.A*inv,
		A: c.A + background.A*inv,
	}
}

// Multiply returns the color with all channels scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{R: c.R * scalar, G: c.G * scalar, B: c.B * scalar, A: c.A * scalar}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B, A: c.A + other.A}
}

// Luminance returns the perceptual luminance of the RGB channels
// Uses standard luminance weights: 0.299*R + 0.587*G + 0.114*B
func (c Color) Luminance() float64 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Clamp returns the color with all channels clamped to [0,1]
func (c Color) Clamp() Color {
	clamp := func(v float64) float64 {
		return max(0, min(1, v))
	}
	return Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

// RGBA converts to an 8-bit color.RGBA value
func (c Color) RGBA() color.RGBA {
	cl := c.Clamp()
	return color.RGBA{
		R: uint8(cl.R*255.0 + 0.5),
		G: uint8(cl.G*255.0 + 0.5),
		B: uint8(cl.B*255.0 + 0.5),
		A: uint8(cl.A*255.0 + 0.5),
	}
}
