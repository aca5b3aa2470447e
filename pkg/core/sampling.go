package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own deterministic source
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// Get3D returns three random float64 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return NewVec3(r.random.Float64(), r.random.Float64(), r.random.Float64())
}

// SampleSquare returns a point in the [-0.5, 0.5) x [-0.5, 0.5) square, used for pixel jitter
func SampleSquare(sampler Sampler) Vec2 {
	s := sampler.Get2D()
	return NewVec2(s.X-0.5, s.Y-0.5)
}

// SampleUnitVector returns a uniformly distributed unit vector.
// Points are drawn from the [-1,1]³ cube until one lands inside the unit ball
// away from the origin, then projected onto the sphere.
func SampleUnitVector(sampler Sampler) Vec3 {
	for {
		s := sampler.Get3D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 2*s.Z-1)
		lensq := p.LengthSquared()
		if 1e-160 < lensq && lensq <= 1 {
			return p.Normalize()
		}
	}
}

// SampleInUnitDisk returns a random point in the z=0 unit disk (for depth of field)
func SampleInUnitDisk(sampler Sampler) Vec3 {
	for {
		s := sampler.Get2D()
		p := NewVec3(2*s.X-1, 2*s.Y-1, 0)
		if p.LengthSquared() < 1 {
			return p
		}
	}
}

// ConstantSampler returns the same values on every call, for deterministic tests.
// Rejection samplers never terminate when fed values that fall outside their acceptance region.
type ConstantSampler struct {
	X, Y, Z float64
}

// NewConstantSampler creates a sampler returning v for every dimension
func NewConstantSampler(v float64) *ConstantSampler {
	return &ConstantSampler{X: v, Y: v, Z: v}
}

// Get1D returns X
func (c *ConstantSampler) Get1D() float64 {
	return c.X
}

// Get2D returns (X, Y)
func (c *ConstantSampler) Get2D() Vec2 {
	return NewVec2(c.X, c.Y)
}

// Get3D returns (X, Y, Z)
func (c *ConstantSampler) Get3D() Vec3 {
	return NewVec3(c.X, c.Y, c.Z)
}
