package integrator

import (
	"math"

	"github.com/df07/go-weekend-pathtracer/pkg/core"
	"github.com/df07/go-weekend-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound on accepted hit distances.
// It keeps scattered rays from re-hitting the surface they leave.
const ShadowAcneEpsilon = 0.001

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the radiance carried back along ray, recursing at most depth times
	RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3
}

var (
	white   = core.NewVec3(1.0, 1.0, 1.0)
	skyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// BackgroundGradient returns the sky color seen along a ray that escapes the scene:
// white looking down, sky blue looking up.
func BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return white.Multiply(1.0 - a).Add(skyBlue.Multiply(a))
}

// hitRange is the accepted parameter range for primary and scattered rays
func hitRange() core.Interval {
	return core.NewInterval(ShadowAcneEpsilon, math.Inf(1))
}
