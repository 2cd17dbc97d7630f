package renderer

import (
	"math"
	"math/rand"

	"github.com/dlb3d/go-sprite-extrude/pkg/core"
)

// CameraConfig contains the parameters for creating a camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position in world space
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	VFov        float64   // Vertical field of view in degrees
	Width       int       // Image width in pixels
	AspectRatio float64   // Width / height
}

// Camera generates primary rays for rendering
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	width, height   int
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	if config.Up.Length() == 0 {
		config.Up = core.NewVec3(0, 1, 0)
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.VFov <= 0 {
		config.VFov = 40
	}

	theta := config.VFov * math.Pi / 180
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	height := int(float64(config.Width) / config.AspectRatio)

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		width:           config.Width,
		height:          height,
	}
}

// Config returns the configuration the camera was built with
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Height returns the image height implied by width and aspect ratio
func (c *Camera) Height() int {
	return c.height
}

// GetRay generates a ray through pixel (i, j). When random is non-nil the
// sample position is jittered inside the pixel; otherwise it goes through
// the pixel center.
func (c *Camera) GetRay(i, j int, random *rand.Rand) core.Ray {
	offsetX, offsetY := 0.5, 0.5
	if random != nil {
		offsetX = random.Float64()
		offsetY = random.Float64()
	}

	s := (float64(i) + offsetX) / float64(c.width)
	t := 1.0 - (float64(j)+offsetY)/float64(c.height) // pixel rows grow downward

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
