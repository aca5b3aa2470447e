package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
	World          *geometry.ShapeList // Objects in the scene, tested in insertion order
}

// New creates an empty scene
func New(name string, cameraConfig renderer.CameraConfig, samplingConfig renderer.SamplingConfig) *Scene {
	return &Scene{
		Name:           name,
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		World:          geometry.NewShapeList(),
	}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.World.Add(geometry.NewSphere(center, radius, mat))
}

// ApplyOverrides merges non-zero camera and sampling overrides into the scene defaults
func (s *Scene) ApplyOverrides(camera renderer.CameraConfig, sampling renderer.SamplingConfig) {
	s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, camera)
	s.SamplingConfig = renderer.MergeSamplingConfig(s.SamplingConfig, sampling)
}

// Validate checks the scene's camera and sampling settings
func (s *Scene) Validate() error {
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q camera: %w", s.Name, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q sampling: %w", s.Name, err)
	}
	return nil
}

// NewRaytracer builds a camera for the scene and wraps it in a raytracer
func (s *Scene) NewRaytracer(logger core.Logger) *renderer.Raytracer {
	camera := renderer.NewCamera(s.CameraConfig)
	return renderer.NewRaytracer(camera, s.World, s.SamplingConfig, logger)
}

var builtins = map[string]func() *Scene{
	"basic":     NewBasicScene,
	"materials": NewMaterialsScene,
	"default":   NewDefaultScene,
}

// Lookup returns a freshly built copy of a built-in scene
func Lookup(name string) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	return build(), nil
}

// Names lists the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
