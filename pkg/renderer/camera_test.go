package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
)

func defaultTestConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        90.0,
	}
}

func TestImageHeight(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		aspectRatio float64
		expected    int
	}{
		{"16:9 at 400", 400, 16.0 / 9.0, 225},
		{"square", 100, 1.0, 100},
		{"rounds to nearest", 10, 3.0, 3},
		{"rounds up", 11, 2.0, 6},
		{"never below one", 10, 100.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImageHeight(tt.width, tt.aspectRatio); got != tt.expected {
				t.Errorf("Expected height %d, got %d", tt.expected, got)
			}
		})
	}

	camera := NewCamera(defaultTestConfig())
	if camera.Width() != 400 || camera.Height() != 225 {
		t.Errorf("Expected 400x225 camera, got %dx%d", camera.Width(), camera.Height())
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	config := defaultTestConfig()
	config.Center = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(1, 2, -7)
	camera := NewCamera(config)

	forward := camera.GetCameraForward()
	expected := core.NewVec3(0, 0, -1)
	if forward.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected forward direction %v, got %v", expected, forward)
	}
}

func TestCamera_CenterPixelLooksForward(t *testing.T) {
	config := defaultTestConfig()
	config.Width = 15
	config.AspectRatio = 15.0 / 9.0
	camera := NewCamera(config)

	// A 0.5 draw means no jitter
	ray := camera.GetRay(7, 4, core.NewConstantSampler(0.5))
	if ray.Origin != config.Center {
		t.Errorf("Expected ray from eye %v, got %v", config.Center, ray.Origin)
	}
	dir := ray.Direction.Normalize()
	if dir.Subtract(core.NewVec3(0, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected center pixel to look down -z, got %v", dir)
	}
}

func TestCamera_ViewportMatchesFieldOfView(t *testing.T) {
	config := defaultTestConfig()
	config.Width = 200
	config.AspectRatio = 1.0
	config.VFov = 60
	camera := NewCamera(config)

	// Top edge of the viewport at the focus plane sits at tan(fov/2)
	sampler := &core.ConstantSampler{X: 0.5, Y: 0.0, Z: 0.5}
	top := camera.GetRay(100, 0, sampler)
	p := top.At(1)
	expected := math.Tan(core.DegreesToRadians(30))
	if math.Abs(p.Y-expected) > 1e-9 {
		t.Errorf("Expected top edge at y=%f, got %f", expected, p.Y)
	}
	if math.Abs(p.Z+1) > 1e-9 {
		t.Errorf("Expected viewport at z=-1, got %f", p.Z)
	}
}

func TestCamera_RowsRunTopToBottom(t *testing.T) {
	camera := NewCamera(defaultTestConfig())
	sampler := core.NewConstantSampler(0.5)

	topLeft := camera.GetRay(0, 0, sampler).Direction
	bottomRight := camera.GetRay(camera.Width()-1, camera.Height()-1, sampler).Direction
	if topLeft.X >= 0 || topLeft.Y <= 0 {
		t.Errorf("Pixel (0,0) should look up and left, got %v", topLeft)
	}
	if bottomRight.X <= 0 || bottomRight.Y >= 0 {
		t.Errorf("Last pixel should look down and right, got %v", bottomRight)
	}
}

func TestCamera_JitterStaysInsidePixel(t *testing.T) {
	config := defaultTestConfig()
	config.Width = 10
	config.AspectRatio = 1
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(42)

	pixelSize := 2.0 / 10.0
	centerX := -1 + pixelSize*3.5
	centerY := 1 - pixelSize*5.5
	for i := 0; i < 500; i++ {
		p := camera.GetRay(3, 5, sampler).At(1)
		if math.Abs(p.X-centerX) > pixelSize/2+1e-12 || math.Abs(p.Y-centerY) > pixelSize/2+1e-12 {
			t.Fatalf("Jittered sample %v left pixel centered at (%f, %f)", p, centerX, centerY)
		}
	}
}

func TestCamera_DefocusDisk(t *testing.T) {
	config := CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		Width:         120,
		AspectRatio:   16.0 / 9.0,
		VFov:          20,
		DefocusAngle:  10,
		FocusDistance: 10,
	}
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(7)

	radius := 10 * math.Tan(core.DegreesToRadians(5))
	forward := camera.GetCameraForward()
	spread := false
	for i := 0; i < 500; i++ {
		ray := camera.GetRay(60, 30, sampler)
		offset := ray.Origin.Subtract(config.Center)
		if offset.Length() > radius+1e-9 {
			t.Fatalf("Ray origin %v lies outside the lens disk of radius %f", ray.Origin, radius)
		}
		if math.Abs(offset.Dot(forward)) > 1e-9 {
			t.Fatalf("Lens offset %v is not perpendicular to the view direction", offset)
		}
		if offset.Length() > radius/2 {
			spread = true
		}

		// Every ray passes through the focus plane at t=1
		depth := ray.At(1).Subtract(config.Center).Dot(forward)
		if math.Abs(depth-10) > 1e-9 {
			t.Fatalf("Expected ray to reach focus plane at distance 10, got %f", depth)
		}
	}
	if !spread {
		t.Error("Expected lens samples to spread across the disk")
	}
}

func TestCamera_AutoFocusDistance(t *testing.T) {
	config := defaultTestConfig()
	config.LookAt = core.NewVec3(0, 0, -4)
	camera := NewCamera(config)
	if camera.focusDistance != 4 {
		t.Errorf("Expected focus distance to default to look-at distance 4, got %f", camera.focusDistance)
	}
}

func TestCameraConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*CameraConfig)
		wantErr bool
	}{
		{"valid", func(c *CameraConfig) {}, false},
		{"zero width", func(c *CameraConfig) { c.Width = 0 }, true},
		{"negative aspect", func(c *CameraConfig) { c.AspectRatio = -1 }, true},
		{"fov 180", func(c *CameraConfig) { c.VFov = 180 }, true},
		{"negative defocus", func(c *CameraConfig) { c.DefocusAngle = -1 }, true},
		{"eye at look-at", func(c *CameraConfig) { c.LookAt = c.Center }, true},
		{"up parallel to view", func(c *CameraConfig) { c.Up = core.NewVec3(0, 0, 1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := defaultTestConfig()
			tt.modify(&config)
			err := config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := defaultTestConfig()
	merged := MergeCameraConfig(base, CameraConfig{Width: 64, VFov: 20})

	if merged.Width != 64 || merged.VFov != 20 {
		t.Errorf("Expected overrides to apply, got width %d vfov %f", merged.Width, merged.VFov)
	}
	if merged.Center != base.Center || merged.AspectRatio != base.AspectRatio || merged.Up != base.Up {
		t.Error("Zero-valued override fields should keep base values")
	}
}
