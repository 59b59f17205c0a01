package material

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/patricklbell/raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	IOR      float32   // Index of refraction (e.g., 1.5 for glass)
	Emissive core.Vec3 // Radiance emitted from the surface
}

// NewDielectric creates a new dielectric material
func NewDielectric(ior float32) *Dielectric {
	return &Dielectric{IOR: ior}
}

// Kind implements Material
func (d *Dielectric) Kind() Kind { return KindDielectric }

// IsBillboard is always false; refraction depends on the true facing
func (d *Dielectric) IsBillboard() bool { return false }

func (d *Dielectric) sealed() {}

// Validate implements Material
func (d *Dielectric) Validate() error {
	var err error
	if !(d.IOR > 0) {
		err = errors.Errorf("index of refraction %v must be positive", d.IOR)
	}
	return multierr.Append(err, validateColor("emissive", d.Emissive))
}

// DielectricScatter is the outcome of one reflect-or-refract decision
type DielectricScatter struct {
	Ray       core.Ray
	Refracted bool
	Entering  bool    // the hit was on the front face
	EtaT      float32 // index of the medium the refracted ray travels in
}

// Scatter chooses between reflection and refraction at a dielectric boundary.
// etaI is the index of the medium the ray travels in; etaOutside is the index
// of the medium beyond the surface when leaving the material.
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, etaI, etaOutside float32, sampler core.Sampler) DielectricScatter {
	idotn := -hit.Normal.Dot(rayIn.Direction)
	entering := idotn >= 0

	// Work with the normal on the incoming side
	corrected := hit
	etaT := etaOutside
	if entering {
		etaT = d.IOR
	} else {
		corrected.Normal = hit.Normal.Mul(-1)
	}

	eta := etaI / etaT
	cosTheta := math32.Abs(idotn)
	sinTheta := math32.Sqrt(max(0, 1-idotn*idotn))
	cannotRefract := sinTheta*eta > 1

	if cannotRefract || Reflectance(etaI, etaT, cosTheta) > sampler.Get1D() {
		return DielectricScatter{
			Ray:      core.NewRay(corrected.Offset(1), core.Reflect(rayIn.Direction, corrected.Normal)),
			Entering: entering,
			EtaT:     etaT,
		}
	}

	return DielectricScatter{
		Ray:       core.NewRay(corrected.Offset(-1), core.Refract(rayIn.Direction, corrected.Normal, eta).Normalize()),
		Refracted: true,
		Entering:  entering,
		EtaT:      etaT,
	}
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(etaI, etaT, cosine float32) float32 {
	r0 := (etaI - etaT) / (etaI + etaT)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
