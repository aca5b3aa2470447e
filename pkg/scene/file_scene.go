package scene

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/loaders"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// LoadFile loads a scene from a JSON description on disk
func LoadFile(filename string) (*Scene, error) {
	desc, err := loaders.LoadSceneDescription(filename)
	if err != nil {
		return nil, err
	}
	if desc.Name == "" {
		desc.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return FromDescription(desc)
}

// Parse reads a scene from a JSON description
func Parse(r io.Reader) (*Scene, error) {
	desc, err := loaders.ParseSceneDescription(r)
	if err != nil {
		return nil, err
	}
	return FromDescription(desc)
}

// FromDescription builds a scene from a parsed description.
// Omitted camera and sampling fields fall back to the defaults, and
// objects naming the same material share one instance.
func FromDescription(desc *loaders.SceneDescription) (*Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	s := New(desc.Name, cameraFromDescription(desc.Camera), renderer.MergeSamplingConfig(
		renderer.DefaultSamplingConfig(),
		renderer.SamplingConfig{
			SamplesPerPixel: desc.Sampling.SamplesPerPixel,
			MaxDepth:        desc.Sampling.MaxDepth,
		},
	))

	materials := make(map[string]material.Material, len(desc.Materials))
	for name, md := range desc.Materials {
		mat, err := materialFromDescription(md)
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		materials[name] = mat
	}

	for _, obj := range desc.Objects {
		s.AddSphere(toVec3(obj.Center), obj.Radius, materials[obj.Material])
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func cameraFromDescription(cd loaders.CameraDescription) renderer.CameraConfig {
	config := renderer.MergeCameraConfig(renderer.DefaultCameraConfig(), renderer.CameraConfig{
		Width:         cd.Width,
		AspectRatio:   cd.AspectRatio,
		VFov:          cd.VFov,
		DefocusAngle:  cd.DefocusAngle,
		FocusDistance: cd.FocusDistance,
	})
	// Vectors are applied directly so an explicit [0, 0, 0] is honored
	if cd.Center != nil {
		config.Center = toVec3(*cd.Center)
	}
	if cd.LookAt != nil {
		config.LookAt = toVec3(*cd.LookAt)
	}
	if cd.Up != nil {
		config.Up = toVec3(*cd.Up)
	}
	return config
}

func materialFromDescription(md loaders.MaterialDescription) (material.Material, error) {
	switch md.Type {
	case loaders.MaterialLambertian:
		return material.NewLambertian(toVec3(md.Albedo)), nil
	case loaders.MaterialMetal:
		return material.NewMetal(toVec3(md.Albedo), md.Fuzz), nil
	case loaders.MaterialDielectric:
		return material.NewDielectric(md.RefractiveIndex), nil
	default:
		return nil, fmt.Errorf("unknown material type %q", md.Type)
	}
}

func toVec3(v loaders.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
