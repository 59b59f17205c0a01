package geometry

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/patricklbell/raytracer/pkg/core"
)

// TRS places local-space geometry in the world: scale, then rotate, then translate
type TRS struct {
	Translation core.Vec3
	Rotation    core.Quat
	Scale       core.Vec3
}

// IdentityTRS returns a transform that leaves points unchanged
func IdentityTRS() TRS {
	return TRS{
		Rotation: mgl32.QuatIdent(),
		Scale:    core.Splat(1),
	}
}

// TransformPoint maps a local point to world space
func (tr TRS) TransformPoint(p core.Vec3) core.Vec3 {
	return tr.Rotation.Rotate(core.MulElem(p, tr.Scale)).Add(tr.Translation)
}

// InverseTransformPoint maps a world point to local space
func (tr TRS) InverseTransformPoint(p core.Vec3) core.Vec3 {
	return core.DivElem(tr.Rotation.Inverse().Rotate(p.Sub(tr.Translation)), tr.Scale)
}

// TransformDir maps a local direction to world space without normalizing
func (tr TRS) TransformDir(d core.Vec3) core.Vec3 {
	return tr.Rotation.Rotate(core.MulElem(d, tr.Scale))
}

// InverseTransformDir maps a world direction to local space without normalizing
func (tr TRS) InverseTransformDir(d core.Vec3) core.Vec3 {
	return core.DivElem(tr.Rotation.Inverse().Rotate(d), tr.Scale)
}

// TransformNormal maps a local surface normal to a unit world normal.
// Normals scale by the reciprocal of the scale so they stay perpendicular
// to non-uniformly scaled surfaces.
func (tr TRS) TransformNormal(n core.Vec3) core.Vec3 {
	return tr.Rotation.Rotate(core.DivElem(n, tr.Scale)).Normalize()
}

// InverseTransformRay maps a world ray to local space with a unit direction
func (tr TRS) InverseTransformRay(ray core.Ray) core.Ray {
	return core.NewRay(
		tr.InverseTransformPoint(ray.Origin),
		tr.InverseTransformDir(ray.Direction).Normalize(),
	)
}

// TransformAABB bounds the eight transformed corners of a local box.
// The result is conservative, not tight, under rotation.
func (tr TRS) TransformAABB(box core.AABB) core.AABB {
	out := core.EmptyAABB()
	for _, c := range box.Corners() {
		out = out.Extend(tr.TransformPoint(c))
	}
	return out
}
