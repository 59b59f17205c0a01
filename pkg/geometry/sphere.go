package geometry

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/patricklbell/raytracer/pkg/core"
)

// IntersectSphere tests if a ray intersects a sphere within the interval.
// On a hit the interval's Max is narrowed to the hit distance.
func IntersectSphere(ray core.Ray, center core.Vec3, radius float32, iv *core.Interval) bool {
	if radius <= 0 {
		panic(fmt.Sprintf("sphere radius must be positive, got %v", radius))
	}

	// Vector from sphere center to ray origin
	oc := ray.Origin.Sub(center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - radius*radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return false
	}

	sqrtD := math32.Sqrt(discriminant)

	// a is never negative so the minus root is the nearer one
	root := (-halfB - sqrtD) / a
	if !iv.Contains(root) {
		root = (-halfB + sqrtD) / a
		if !iv.Contains(root) {
			return false
		}
	}

	iv.Max = root
	return true
}

// SphereNormal returns the outward unit normal at point p on the sphere
func SphereNormal(p, center core.Vec3, radius float32) core.Vec3 {
	return p.Sub(center).Mul(1 / radius)
}

// SphereAABB returns the box center ± radius
func SphereAABB(center core.Vec3, radius float32) core.AABB {
	r := core.Splat(radius)
	return core.NewAABB(center.Sub(r), center.Add(r))
}
