package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Vec3 is a JSON triple [x, y, z]
type Vec3 [3]float64

// CameraDescription mirrors the camera configuration; omitted fields keep their defaults
type CameraDescription struct {
	Center        *Vec3   `json:"center,omitempty"`
	LookAt        *Vec3   `json:"lookAt,omitempty"`
	Up            *Vec3   `json:"up,omitempty"`
	Width         int     `json:"width,omitempty"`
	AspectRatio   float64 `json:"aspectRatio,omitempty"`
	VFov          float64 `json:"vfov,omitempty"`
	DefocusAngle  float64 `json:"defocusAngle,omitempty"`
	FocusDistance float64 `json:"focusDistance,omitempty"`
}

// SamplingDescription mirrors the sampling configuration
type SamplingDescription struct {
	SamplesPerPixel int `json:"samplesPerPixel,omitempty"`
	MaxDepth        int `json:"maxDepth,omitempty"`
}

// MaterialDescription describes one named material
type MaterialDescription struct {
	Type            string  `json:"type"`                      // "lambertian", "metal" or "dielectric"
	Albedo          Vec3    `json:"albedo,omitempty"`          // lambertian, metal
	Fuzz            float64 `json:"fuzz,omitempty"`            // metal
	RefractiveIndex float64 `json:"refractiveIndex,omitempty"` // dielectric
}

// ObjectDescription describes one primitive and the material it references by name
type ObjectDescription struct {
	Type     string  `json:"type"` // "sphere"
	Center   Vec3    `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// SceneDescription is the on-disk scene format
type SceneDescription struct {
	Name      string                         `json:"name"`
	Camera    CameraDescription              `json:"camera"`
	Sampling  SamplingDescription            `json:"sampling"`
	Materials map[string]MaterialDescription `json:"materials"`
	Objects   []ObjectDescription            `json:"objects"`
}

// Supported type names
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
	ObjectSphere       = "sphere"
)

// ParseSceneDescription decodes and validates a scene description
func ParseSceneDescription(r io.Reader) (*SceneDescription, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		return nil, fmt.Errorf("failed to decode scene description: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// LoadSceneDescription reads a scene description from a JSON file
func LoadSceneDescription(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseSceneDescription(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// Validate checks materials and objects for values the renderer cannot use
func (d *SceneDescription) Validate() error {
	for name, mat := range d.Materials {
		switch mat.Type {
		case MaterialLambertian:
		case MaterialMetal:
			if mat.Fuzz < 0 || mat.Fuzz > 1 {
				return fmt.Errorf("material %q: fuzz must be in [0, 1], got %g", name, mat.Fuzz)
			}
		case MaterialDielectric:
			if mat.RefractiveIndex <= 0 {
				return fmt.Errorf("material %q: refractive index must be positive, got %g", name, mat.RefractiveIndex)
			}
		default:
			return fmt.Errorf("material %q: unknown type %q", name, mat.Type)
		}
	}

	if len(d.Objects) == 0 {
		return fmt.Errorf("scene has no objects")
	}
	for i, obj := range d.Objects {
		if obj.Type != ObjectSphere {
			return fmt.Errorf("object %d: unknown type %q", i, obj.Type)
		}
		if obj.Radius <= 0 {
			return fmt.Errorf("object %d: radius must be positive, got %g", i, obj.Radius)
		}
		if _, ok := d.Materials[obj.Material]; !ok {
			return fmt.Errorf("object %d: unknown material %q", i, obj.Material)
		}
	}
	return nil
}
