package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is the 3-component float32 vector used for points, directions and radiance
type Vec3 = mgl32.Vec3

// Vec2 is the 2-component float32 vector used for samples and disk offsets
type Vec2 = mgl32.Vec2

// Quat is the rotation quaternion used by instance transforms
type Quat = mgl32.Quat

// Epsilon is the machine epsilon of float32
const Epsilon float32 = 1.1920929e-07

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Splat returns a vector with every component set to s
func Splat(s float32) Vec3 {
	return Vec3{s, s, s}
}

// MulElem returns the component-wise product of a and b
func MulElem(a, b Vec3) Vec3 {
	return Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

// DivElem returns the component-wise quotient of a and b
func DivElem(a, b Vec3) Vec3 {
	return Vec3{a[0] / b[0], a[1] / b[1], a[2] / b[2]}
}

// MinElem returns the component-wise minimum of a and b
func MinElem(a, b Vec3) Vec3 {
	return Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])}
}

// MaxElem returns the component-wise maximum of a and b
func MaxElem(a, b Vec3) Vec3 {
	return Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])}
}

// LessEqual reports whether every component of a is <= the matching component of b
func LessEqual(a, b Vec3) bool {
	return a[0] <= b[0] && a[1] <= b[1] && a[2] <= b[2]
}

// Lerp linearly interpolates between a (t=0) and b (t=1)
func Lerp(a, b Vec3, t float32) Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// Clamp returns a vector with components clamped to [lo, hi]
func Clamp(v Vec3, lo, hi float32) Vec3 {
	return Vec3{
		max(lo, min(hi, v[0])),
		max(lo, min(hi, v[1])),
		max(lo, min(hi, v[2])),
	}
}

// IsFinite reports whether no component is NaN or infinite
func IsFinite(v Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Reflect mirrors i about the normal n
func Reflect(i, n Vec3) Vec3 {
	// r = i - 2*dot(i,n)*n
	return i.Sub(n.Mul(2 * i.Dot(n)))
}

// Refract bends the unit vector uv through a surface with normal n using Snell's law,
// where eta is the ratio of the incident to the transmitted index of refraction
func Refract(uv, n Vec3, eta float32) Vec3 {
	cosTheta := min(-uv.Dot(n), 1)
	outPerp := uv.Add(n.Mul(cosTheta)).Mul(eta)
	outParallel := n.Mul(-math32.Sqrt(math32.Abs(1 - outPerp.LenSqr())))
	return outPerp.Add(outParallel)
}

// Orthogonal returns a unit vector perpendicular to n
func Orthogonal(n Vec3) Vec3 {
	if math32.Abs(n[0]) > math32.Abs(n[2]) {
		return Vec3{-n[1], n[0], 0}.Normalize()
	}
	return Vec3{0, -n[2], n[1]}.Normalize()
}
