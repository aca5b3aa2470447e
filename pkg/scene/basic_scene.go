package scene

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/material"
	"github.com/df07/go-weekend-pathtracer/pkg/renderer"
)

// NewBasicScene creates a single diffuse sphere resting on a huge ground sphere
func NewBasicScene() *Scene {
	s := New("basic", renderer.DefaultCameraConfig(), renderer.DefaultSamplingConfig())

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.AddSphere(core.NewVec3(0, 0, -1), 0.5, gray)
	s.AddSphere(core.NewVec3(0, -100.5, -1), 100, gray)

	return s
}
