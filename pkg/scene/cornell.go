package scene

import (
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/renderer"
	"github.com/patricklbell/raytracer/pkg/world"
)

// cornellExtents is half the side of the standard 555 unit box
const cornellExtents = 277.5

// NewCornellScene creates a classic Cornell box with quad walls and an area light.
// The walls are billboards so their winding does not matter; nothing lights the
// box except the ceiling quad.
func NewCornellScene() *Scene {
	w := world.New()
	quad := w.AddMesh(geometry.NewQuadMesh())

	// Create materials
	white := w.AddMaterial(NewBillboardLambertian(core.Splat(0.73)))
	red := w.AddMaterial(NewBillboardLambertian(core.Vec3{0.65, 0.05, 0.05}))
	green := w.AddMaterial(NewBillboardLambertian(core.Vec3{0.12, 0.45, 0.15}))
	light := w.AddMaterial(material.NewLight(core.Splat(15)))

	e := float32(cornellExtents)

	// Floor and ceiling
	AddQuad(w, quad, white, core.Vec3{0, -e, 0}, core.Vec3{e, 0, 0}, core.Vec3{0, 0, e})
	AddQuad(w, quad, white, core.Vec3{0, e, 0}, core.Vec3{e, 0, 0}, core.Vec3{0, 0, e})

	// Back wall
	AddQuad(w, quad, white, core.Vec3{0, 0, -e}, core.Vec3{e, 0, 0}, core.Vec3{0, e, 0})

	// Left (green) and right (red) walls
	AddQuad(w, quad, green, core.Vec3{-e, 0, 0}, core.Vec3{0, 0, e}, core.Vec3{0, e, 0})
	AddQuad(w, quad, red, core.Vec3{e, 0, 0}, core.Vec3{0, 0, e}, core.Vec3{0, e, 0})

	// Light just below the ceiling
	AddQuad(w, quad, light, core.Vec3{0, e - 1, 0}, core.Vec3{e / 4, 0, 0}, core.Vec3{0, 0, e / 4})

	// Two blocks sharing the box mesh
	box := w.AddMesh(geometry.NewBoxMesh())
	w.AddMeshInstance(box, geometry.TRS{
		Translation: core.Vec3{-90, -e + 165, -60},
		Rotation:    yaw(15),
		Scale:       core.Vec3{82.5, 165, 82.5},
	}, white)
	w.AddMeshInstance(box, geometry.TRS{
		Translation: core.Vec3{95, -e + 82.5, 70},
		Rotation:    yaw(-18),
		Scale:       core.Splat(82.5),
	}, white)

	return &Scene{
		World: w,
		Camera: renderer.CameraConfig{
			Center: core.Vec3{0, 0, 2 * e}, // Position camera outside the box looking in
			LookAt: core.Vec3{0, 0, 0},
			VFov:   40,
		},
		Sky: false,
	}
}
