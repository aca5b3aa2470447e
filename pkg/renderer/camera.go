package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	Center        core.Vec3 // Eye position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Cone angle in degrees through each pixel; 0 disables depth of field
	FocusDistance float64   // Distance to the plane of perfect focus (0 = distance to LookAt)
}

// DefaultCameraConfig looks down -z from the origin with a 90 degree field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
}

// ImageHeight returns the image height for a width and aspect ratio, never less than 1
func ImageHeight(width int, aspectRatio float64) int {
	return max(1, int(math.Round(float64(width)/aspectRatio)))
}

// Validate reports configurations the camera cannot render
func (c CameraConfig) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("image width must be positive, got %d", c.Width)
	}
	if c.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", c.AspectRatio)
	}
	if c.VFov <= 0 || c.VFov >= 180 {
		return fmt.Errorf("vertical field of view must be in (0, 180) degrees, got %g", c.VFov)
	}
	if c.DefocusAngle < 0 {
		return fmt.Errorf("defocus angle must not be negative, got %g", c.DefocusAngle)
	}
	if c.FocusDistance < 0 {
		return fmt.Errorf("focus distance must not be negative, got %g", c.FocusDistance)
	}
	if c.Center == c.LookAt {
		return fmt.Errorf("camera center and look-at point must differ, both are %v", c.Center)
	}
	if c.Up.Cross(c.Center.Subtract(c.LookAt)).NearZero() {
		return fmt.Errorf("up vector %v is parallel to the view direction", c.Up)
	}
	return nil
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	return result
}

// Camera generates rays for rendering. All derived geometry is computed once in NewCamera.
type Camera struct {
	config        CameraConfig
	width, height int
	center        core.Vec3
	pixel00       core.Vec3 // Center of pixel (0, 0)
	pixelDeltaU   core.Vec3 // Offset to the pixel to the right
	pixelDeltaV   core.Vec3 // Offset to the pixel below
	u, v, w       core.Vec3 // Camera frame basis vectors
	defocusDiskU  core.Vec3
	defocusDiskV  core.Vec3
	focusDistance float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	width := config.Width
	height := ImageHeight(width, config.AspectRatio)
	center := config.Center

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	// Viewport dimensions at the focus plane
	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * focusDistance
	viewportWidth := viewportHeight * (float64(width) / float64(height))

	// Orthonormal basis: w points backwards, u right, v up
	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	// Viewport edges; v runs down the image
	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Negate().Multiply(viewportHeight)

	pixelDeltaU := viewportU.Divide(float64(width))
	pixelDeltaV := viewportV.Divide(float64(height))

	viewportUpperLeft := center.
		Subtract(w.Multiply(focusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	defocusRadius := focusDistance * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:        config,
		width:         width,
		height:        height,
		center:        center,
		pixel00:       pixel00,
		pixelDeltaU:   pixelDeltaU,
		pixelDeltaV:   pixelDeltaV,
		u:             u,
		v:             v,
		w:             w,
		defocusDiskU:  u.Multiply(defocusRadius),
		defocusDiskV:  v.Multiply(defocusRadius),
		focusDistance: focusDistance,
	}
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig {
	return c.config
}

// GetRay generates a ray through a jittered point inside pixel (i, j).
// Column i runs left to right and row j top to bottom.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := core.SampleSquare(sampler)
	pixelSample := c.pixel00.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// defocusDiskSample returns a random point on the camera's lens disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.SampleInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// GetCameraForward returns the direction the camera is looking
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}
