package scene

import (
	"github.com/chewxy/math32"

	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/renderer"
	"github.com/patricklbell/raytracer/pkg/world"
)

// NewTriangleScene creates a single equilateral triangle without an index buffer,
// seen from behind through an orthographic camera
func NewTriangleScene() *Scene {
	w := world.New()

	h := math32.Sqrt(3) / 4
	tri := w.AddMesh(geometry.NewTriangleMesh(
		core.Vec3{-0.5, -h, 0},
		core.Vec3{0.5, -h, 0},
		core.Vec3{0, h, 0},
	))
	gray := w.AddMaterial(material.NewLambertian(core.Splat(0.5)))
	w.AddMeshInstance(tri, geometry.IdentityTRS(), gray)

	return &Scene{
		World: w,
		Camera: renderer.CameraConfig{
			Center:       core.Vec3{0, 0, -1},
			LookAt:       core.Vec3{0, 0, 0},
			Orthographic: true,
		},
		Sky: true,
	}
}
