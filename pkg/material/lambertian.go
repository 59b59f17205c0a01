package material

import (
	"go.uber.org/multierr"

	"github.com/patricklbell/raytracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Surface
	Albedo   core.Vec3 // Base reflectance
	Emissive core.Vec3 // Radiance emitted from the surface
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Kind implements Material
func (l *Lambertian) Kind() Kind { return KindLambertian }

func (l *Lambertian) sealed() {}

// Validate implements Material
func (l *Lambertian) Validate() error {
	return multierr.Combine(
		validateColor("albedo", l.Albedo),
		validateColor("emissive", l.Emissive),
	)
}

// Scatter returns a cosine-weighted bounce ray leaving the surface.
// Cosine-weighted importance sampling cancels the cos/π term, so the
// bounce radiance only needs multiplying by Albedo.
func (l *Lambertian) Scatter(hit HitRecord, sampler core.Sampler) core.Ray {
	return core.NewRay(hit.Offset(1), core.SampleCosineHemisphere(hit.Normal, sampler.Get2D()))
}

// Shade combines incoming radiance from the bounce with emission
func (l *Lambertian) Shade(incoming core.Vec3) core.Vec3 {
	return core.MulElem(l.Albedo, incoming).Add(l.Emissive)
}
