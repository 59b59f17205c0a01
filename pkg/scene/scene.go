// Package scene builds the demo worlds the CLI can render
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/renderer"
	"github.com/patricklbell/raytracer/pkg/world"
)

// Scene is a populated world and the way it is meant to be viewed
type Scene struct {
	World  *world.World
	Camera renderer.CameraConfig
	Sky    bool // misses see the sky gradient rather than black
}

// Validate checks the world and that the camera has something to look along
func (s *Scene) Validate() error {
	if s.Camera.LookAt.Sub(s.Camera.Center).Len() <= core.Epsilon {
		return errors.New("camera center and look-at coincide")
	}
	return errors.Wrap(s.World.Validate(), "invalid world")
}

// quadNormal is the face normal of geometry.NewQuadMesh
var quadNormal = core.Vec3{0, 1, 0}

// AddQuad instances the unit quad mesh as the rectangle centered at c with
// perpendicular half-extents u and v. Its normal is u×v.
func AddQuad(w *world.World, quad, mat world.Handle, c, u, v core.Vec3) world.Handle {
	return w.AddMeshInstance(quad, geometry.TRS{
		Translation: c,
		Rotation:    quadRotation(u, v),
		Scale:       core.Vec3{u.Len(), 1, v.Len()},
	}, mat)
}

// quadRotation maps local +X onto u and +Y onto u×v. Local Z lands on -v,
// which the symmetric quad does not notice.
func quadRotation(u, v core.Vec3) core.Quat {
	x := u.Normalize()
	y := u.Cross(v).Normalize()
	z := x.Cross(y)
	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

// NewBillboardLambertian is a matte material shaded the same from both sides
func NewBillboardLambertian(albedo core.Vec3) *material.Lambertian {
	m := material.NewLambertian(albedo)
	m.Billboard = true
	return m
}
