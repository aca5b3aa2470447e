package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/integrator"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate reports sampling settings the renderer cannot use
func (s SamplingConfig) Validate() error {
	if s.SamplesPerPixel <= 0 {
		return fmt.Errorf("samples per pixel must be positive, got %d", s.SamplesPerPixel)
	}
	if s.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", s.MaxDepth)
	}
	return nil
}

// MergeSamplingConfig overlays the non-zero fields of override onto base
func MergeSamplingConfig(base, override SamplingConfig) SamplingConfig {
	result := base
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}

// DefaultSeed seeds the sampler when none is supplied
const DefaultSeed = 42

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

// Raytracer handles the rendering process
type Raytracer struct {
	camera     *Camera
	world      geometry.Shape
	integrator integrator.Integrator
	config     SamplingConfig
	sampler    core.Sampler
	logger     core.Logger
}

// NewRaytracer creates a new path-tracing raytracer with a deterministic sampler
func NewRaytracer(camera *Camera, world geometry.Shape, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Raytracer{
		camera:     camera,
		world:      world,
		integrator: integrator.NewPathTracingIntegrator(),
		config:     config,
		sampler:    core.NewSeededSampler(DefaultSeed),
		logger:     logger,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// SetSampler replaces the random source
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SamplePixel averages SamplesPerPixel jittered samples of pixel (i, j)
func (rt *Raytracer) SamplePixel(i, j int) core.Vec3 {
	var ps PixelStats
	for s := 0; s < rt.config.SamplesPerPixel; s++ {
		ray := rt.camera.GetRay(i, j, rt.sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.world, rt.sampler, rt.config.MaxDepth))
	}
	return ps.GetColor()
}

// Render renders the image row by row, top to bottom and left to right
func (rt *Raytracer) Render() (*image.RGBA, RenderStats) {
	width, height := rt.camera.Width(), rt.camera.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	startTime := time.Now()

	for j := 0; j < height; j++ {
		rt.logger.Printf("Scanlines remaining: %d\n", height-j)
		for i := 0; i < width; i++ {
			img.SetRGBA(i, j, ColorToRGBA(rt.SamplePixel(i, j)))
		}
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
		Duration:        time.Since(startTime),
	}
	rt.logger.Printf("Done: %d pixels, %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Duration)

	return img, stats
}

// intensity is the displayable range of a gamma-corrected channel
var intensity = core.NewInterval(0.000, 0.999)

// LinearToGamma applies gamma 2 correction; negative components map to 0
func LinearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ColorToRGBA converts a linear color to an opaque 8-bit pixel
func ColorToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: toByte(c.X),
		G: toByte(c.Y),
		B: toByte(c.Z),
		A: 255,
	}
}

func toByte(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(LinearToGamma(linear)))
}
