package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that any Merge or Extend replaces
func EmptyAABB() AABB {
	return AABB{
		Min: Splat(math.MaxFloat32),
		Max: Splat(-math.MaxFloat32),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box = box.Extend(point)
	}
	return box
}

// Extend returns the box grown to include p
func (aabb AABB) Extend(p Vec3) AABB {
	return AABB{Min: MinElem(aabb.Min, p), Max: MaxElem(aabb.Max, p)}
}

// Merge returns an AABB that bounds both this AABB and another
func (aabb AABB) Merge(other AABB) AABB {
	return AABB{
		Min: MinElem(aabb.Min, other.Min),
		Max: MaxElem(aabb.Max, other.Max),
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Mul(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Sub(aabb.Min)
}

// Corners returns the eight corners of the box
func (aabb AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corners[i][axis] = aabb.Max[axis]
			} else {
				corners[i][axis] = aabb.Min[axis]
			}
		}
	}
	return corners
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return LessEqual(aabb.Min, other.Min) && LessEqual(other.Max, aabb.Max)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return LessEqual(aabb.Min, aabb.Max)
}

// Hit tests if a ray intersects with this AABB within the interval using the slab method.
// The interval is taken by value; box tests never narrow the caller's interval.
func (aabb AABB) Hit(ray Ray, iv Interval) bool {
	for axis := 0; axis < 3; axis++ {
		// Zero components give ±Inf here, which the comparisons below tolerate
		invD := 1 / ray.Direction[axis]
		t0 := (aabb.Min[axis] - ray.Origin[axis]) * invD
		t1 := (aabb.Max[axis] - ray.Origin[axis]) * invD

		// Negative directions enter through the max plane
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > iv.Min {
			iv.Min = t0
		}
		if t1 < iv.Max {
			iv.Max = t1
		}

		if iv.Max < iv.Min {
			return false
		}
	}

	return true
}
