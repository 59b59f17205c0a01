package material

import (
	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Surface
	Roughness float32 // 0 = perfect mirror; scales the perturbation of the reflection
}

// NewMetal creates a new metal material
func NewMetal(roughness float32) *Metal {
	return &Metal{Roughness: roughness}
}

// Kind implements Material
func (m *Metal) Kind() Kind { return KindMetal }

func (m *Metal) sealed() {}

// Validate implements Material
func (m *Metal) Validate() error {
	if !(m.Roughness >= 0) {
		return errors.Errorf("roughness %v must be non-negative", m.Roughness)
	}
	return nil
}

// Scatter reflects the incoming direction and perturbs it by a random point
// in a sphere of radius Roughness, approximating a specular lobe
func (m *Metal) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) core.Ray {
	reflected := core.Reflect(rayIn.Direction, hit.Normal)
	reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Mul(m.Roughness))
	return core.NewRay(hit.Offset(1), reflected.Normalize())
}
