package integrator

import (
	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
)

// NormalIntegrator shades each hit by its surface normal mapped into [0,1]³.
// Materials are ignored, which makes it a quick geometry preview.
type NormalIntegrator struct{}

// NewNormalIntegrator creates a new normal-shading integrator
func NewNormalIntegrator() *NormalIntegrator {
	return &NormalIntegrator{}
}

// RayColor returns 0.5*(normal + 1) on a hit and the background gradient on a miss
func (n *NormalIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{X: 0, Y: 0, Z: 0}
	}

	hit, isHit := world.Hit(ray, hitRange())
	if !isHit {
		return BackgroundGradient(ray)
	}

	return hit.Normal.Add(white).Multiply(0.5)
}
