// Package material defines the surface models a path can scatter from.
// Material is a closed set: every consumer switches over the concrete
// variants and panics on anything else.
package material

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/core"
)

// SurfaceOffset is how far spawned rays start from a surface to avoid
// re-hitting it
const SurfaceOffset float32 = 0.001

// Material is implemented only by the variants in this package
type Material interface {
	// Kind identifies the variant
	Kind() Kind
	// IsBillboard reports whether the shading normal is flipped to face the incoming ray
	IsBillboard() bool
	// Validate checks the parameters are physically usable
	Validate() error

	sealed()
}

// Kind enumerates the material variants
type Kind int

const (
	KindLambertian Kind = iota + 1
	KindDielectric
	KindMetal
	KindNormalDebug
	KindLight
)

func (k Kind) String() string {
	switch k {
	case KindLambertian:
		return "lambertian"
	case KindDielectric:
		return "dielectric"
	case KindMetal:
		return "metal"
	case KindNormalDebug:
		return "normal"
	case KindLight:
		return "light"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Surface holds options shared by opaque materials.
// Dielectrics do not embed it because refraction needs the true facing.
type Surface struct {
	Billboard bool
}

// IsBillboard reports whether the surface is shaded the same from both sides
func (s Surface) IsBillboard() bool {
	return s.Billboard
}

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	Point  core.Vec3 // Point of intersection
	Normal core.Vec3 // Unit surface normal at intersection
	T      float32   // Parameter t along the ray
}

// Offset returns the hit point pushed along the normal by SurfaceOffset times sign
func (h HitRecord) Offset(sign float32) core.Vec3 {
	return h.Point.Add(h.Normal.Mul(SurfaceOffset * sign))
}

// FaceForward flips the normal when it points along the incoming direction
func (h *HitRecord) FaceForward(dir core.Vec3) {
	if h.Normal.Dot(dir) > 0 {
		h.Normal = h.Normal.Mul(-1)
	}
}

// NormalToRadiance maps a unit normal from [-1,1] to [0,1] per channel
func NormalToRadiance(n core.Vec3) core.Vec3 {
	return n.Add(core.Splat(1)).Mul(0.5)
}

func validateColor(name string, c core.Vec3) error {
	if !core.IsFinite(c) || !core.LessEqual(core.Vec3{}, c) {
		return errors.Errorf("%s %v must be finite and non-negative", name, c)
	}
	return nil
}
