package geometry

import "github.com/patricklbell/raytracer/pkg/core"

// IntersectTriangle tests if a ray intersects the triangle (v0, v1, v2) using the
// Möller-Trumbore algorithm. On a hit the interval's Max is narrowed to the hit
// distance and the barycentric coordinates (u, v) of the hit are returned.
func IntersectTriangle(ray core.Ray, v0, v1, v2 core.Vec3, iv *core.Interval) (u, v float32, ok bool) {
	const epsilon = core.Epsilon

	// Calculate two edge vectors
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Ray lies in the plane of the triangle, or the triangle is degenerate
	if det == 0 {
		return 0, 0, false
	}

	f := 1 / det
	s := ray.Origin.Sub(v0)
	u = f * s.Dot(h)
	if u < -epsilon || u > 1+epsilon {
		return 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < -epsilon || u+v > 1+epsilon {
		return 0, 0, false
	}

	t := f * edge2.Dot(q)
	if !iv.Contains(t) {
		return 0, 0, false
	}

	iv.Max = t
	return u, v, true
}

// TriangleAABB returns the bounding box of three vertices
func TriangleAABB(v0, v1, v2 core.Vec3) core.AABB {
	return core.NewAABB(
		core.MinElem(core.MinElem(v0, v1), v2),
		core.MaxElem(core.MaxElem(v0, v1), v2),
	)
}

// TriangleNormal returns the unnormalized counter-clockwise face normal
func TriangleNormal(v0, v1, v2 core.Vec3) core.Vec3 {
	return v1.Sub(v0).Cross(v2.Sub(v0))
}
