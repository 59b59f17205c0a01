package core

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float32
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

// NewSeededSampler creates a sampler with its own generator seeded from seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// Get2D returns two random float32 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return Vec2{r.random.Float32(), r.random.Float32()}
}

// Get3D returns three random float32 values in [0, 1)
func (r *RandomSampler) Get3D() Vec3 {
	return Vec3{r.random.Float32(), r.random.Float32(), r.random.Float32()}
}

// ConstantSampler returns the same value for every draw
type ConstantSampler float32

// Get1D returns the constant
func (c ConstantSampler) Get1D() float32 { return float32(c) }

// Get2D returns the constant in both components
func (c ConstantSampler) Get2D() Vec2 { return Vec2{float32(c), float32(c)} }

// Get3D returns the constant in all components
func (c ConstantSampler) Get3D() Vec3 { return Splat(float32(c)) }

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	phi := 2 * math32.Pi * sample[0]
	r := math32.Sqrt(sample[1])

	x := r * math32.Cos(phi)
	y := r * math32.Sin(phi)
	z := math32.Sqrt(1 - sample[1])

	// Orthonormal basis with the normal as the w axis
	u := Orthogonal(normal)
	v := u.Cross(normal)

	return u.Mul(x).Add(v.Mul(y)).Add(normal.Mul(z))
}

// SamplePointInUnitDisk generates a random point in a unit disk using concentric mapping
// This avoids rejection sampling by mapping a square uniformly to a disk
func SamplePointInUnitDisk(sample Vec2) Vec2 {
	// Map sample to [-1,1]² and handle degeneracy at the origin
	ox := 2*sample[0] - 1
	oy := 2*sample[1] - 1
	if ox == 0 && oy == 0 {
		return Vec2{}
	}

	var theta, r float32
	if math32.Abs(ox) > math32.Abs(oy) {
		r = ox
		theta = math32.Pi / 4 * (oy / ox)
	} else {
		r = oy
		theta = math32.Pi/2 - math32.Pi/4*(ox/oy)
	}

	return Vec2{r * math32.Cos(theta), r * math32.Sin(theta)}
}

// SamplePointInUnitSphere generates a random point inside a unit sphere using spherical coordinates
// This avoids rejection sampling by using the inverse CDF method
func SamplePointInUnitSphere(sample Vec3) Vec3 {
	r := math32.Pow(sample[0], 1.0/3.0)
	phi := 2 * math32.Pi * sample[1]
	cosTheta := 2*sample[2] - 1
	sinTheta := math32.Sqrt(max(0, 1-cosTheta*cosTheta))

	return Vec3{
		r * sinTheta * math32.Cos(phi),
		r * sinTheta * math32.Sin(phi),
		r * cosTheta,
	}
}
