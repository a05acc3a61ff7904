package renderer

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrInvalidConfig is returned when a camera or render configuration cannot be rendered
var ErrInvalidConfig = errors.New("invalid render configuration")

// CameraConfig contains all parameters needed to set up a camera and the image it produces
type CameraConfig struct {
	AspectRatio     float64   // Ratio of image width over height
	ImageWidth      int       // Rendered image width in pixel count
	SamplesPerPixel int       // Count of random samples for each pixel
	MaxDepth        int       // Maximum number of ray bounces into scene
	VFov            float64   // Vertical view angle (field of view) in degrees
	LookFrom        core.Vec3 // Point camera is looking from
	LookAt          core.Vec3 // Point camera is looking at
	VUp             core.Vec3 // Camera-relative "up" direction
	DefocusAngle    float64   // Variation angle of rays through each pixel, 0 = pinhole
	FocusDist       float64   // Distance from camera lookfrom point to plane of perfect focus
}

// DefaultCameraConfig returns the classic starting camera: square image looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     1.0,
		ImageWidth:      100,
		SamplesPerPixel: 10,
		MaxDepth:        10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       10,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied on top
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	zero := core.Vec3{}
	if override.LookFrom != zero {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.VUp != zero {
		result.VUp = override.VUp
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDist != 0 {
		result.FocusDist = override.FocusDist
	}

	return result
}

// Validate checks that the configuration describes a renderable camera
func (c CameraConfig) Validate() error {
	switch {
	case c.ImageWidth <= 0:
		return fmt.Errorf("%w: image width must be positive, got %d", ErrInvalidConfig, c.ImageWidth)
	case c.AspectRatio <= 0 || math.IsNaN(c.AspectRatio) || math.IsInf(c.AspectRatio, 0):
		return fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidConfig, c.AspectRatio)
	case c.SamplesPerPixel < 1:
		return fmt.Errorf("%w: samples per pixel must be at least 1, got %d", ErrInvalidConfig, c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidConfig, c.MaxDepth)
	case c.VFov <= 0 || c.VFov >= 180:
		return fmt.Errorf("%w: vertical field of view must be in (0, 180), got %v", ErrInvalidConfig, c.VFov)
	case c.LookFrom.Equals(c.LookAt):
		return fmt.Errorf("%w: lookfrom and lookat must differ, both are %v", ErrInvalidConfig, c.LookFrom)
	case c.FocusDist <= 0:
		return fmt.Errorf("%w: focus distance must be positive, got %v", ErrInvalidConfig, c.FocusDist)
	case c.DefocusAngle < 0:
		return fmt.Errorf("%w: defocus angle must not be negative, got %v", ErrInvalidConfig, c.DefocusAngle)
	case c.VUp.Cross(c.LookFrom.Subtract(c.LookAt)).NearZero():
		return fmt.Errorf("%w: vup %v is parallel to the view direction", ErrInvalidConfig, c.VUp)
	}
	return nil
}

// ImageHeight returns the image height implied by width and aspect ratio, at least 1
func (c CameraConfig) ImageHeight() int {
	return max(1, int(math.Round(float64(c.ImageWidth)/c.AspectRatio)))
}

// Camera generates rays for rendering. All derived state is fixed by NewCamera.
type Camera struct {
	config       CameraConfig
	imageHeight  int       // Rendered image height
	center       core.Vec3 // Camera center
	pixel00Loc   core.Vec3 // Location of pixel 0, 0
	pixelDeltaU  core.Vec3 // Offset to pixel to the right
	pixelDeltaV  core.Vec3 // Offset to pixel below
	u, v, w      core.Vec3 // Camera frame basis vectors
	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius
}

// NewCamera validates config and computes the viewport and defocus disk
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	imageHeight := config.ImageHeight()
	center := config.LookFrom

	// Determine viewport dimensions
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * (float64(config.ImageWidth) / float64(imageHeight))

	// Calculate the u,v,w unit basis vectors for the camera coordinate frame
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	// Horizontal and vertical delta vectors from pixel to pixel
	pixelDeltaU := viewportU.Divide(float64(config.ImageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	// Location of the upper left pixel
	viewportUpperLeft := center.
		Subtract(w.Multiply(config.FocusDist)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00Loc := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	// Camera defocus disk basis vectors
	defocusRadius := config.FocusDist * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:       config,
		imageHeight:  imageHeight,
		center:       center,
		pixel00Loc:   pixel00Loc,
		pixelDeltaU:  pixelDeltaU,
		pixelDeltaV:  pixelDeltaV,
		u:            u,
		v:            v,
		w:            w,
		defocusDiskU: u.Multiply(defocusRadius),
		defocusDiskV: v.Multiply(defocusRadius),
	}, nil
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// ImageWidth returns the rendered image width
func (c *Camera) ImageWidth() int {
	return c.config.ImageWidth
}

// ImageHeight returns the rendered image height
func (c *Camera) ImageHeight() int {
	return c.imageHeight
}

// Center returns the camera center
func (c *Camera) Center() core.Vec3 {
	return c.center
}

// Forward returns the unit direction the camera looks along
func (c *Camera) Forward() core.Vec3 {
	return c.w.Negate()
}

// PixelCenter returns the world-space center of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Vec3 {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// GetRay constructs a camera ray originating from the defocus disk and directed at a randomly
// sampled point around the pixel location i, j
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampleSquare(sampler)
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// sampleSquare returns a vector to a random point in the [-.5,-.5]-[+.5,+.5) unit square
func sampleSquare(sampler core.Sampler) core.Vec2 {
	s := sampler.Get2D()
	return core.NewVec2(s.X-0.5, s.Y-0.5)
}

// defocusDiskSample returns a random point in the camera defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}
