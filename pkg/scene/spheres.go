package scene

import (
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/renderer"
	"github.com/patricklbell/raytracer/pkg/world"
)

// NewSpheresScene creates a glass shell around a matte sphere, flanked by a polished
// and a rough metal sphere, resting above a large ground sphere
func NewSpheresScene() *Scene {
	w := world.New()

	glass := w.AddMaterial(material.NewDielectric(1.52))
	pink := w.AddMaterial(material.NewLambertian(core.Vec3{0.8, 0.5, 0.5}))
	polished := w.AddMaterial(material.NewMetal(0.1))
	brushed := w.AddMaterial(material.NewMetal(0.9))
	ground := w.AddMaterial(material.NewLambertian(core.Vec3{0.5, 0.6, 0.5}))

	w.AddSphere(core.Vec3{0, 0, 0}, 1, glass)
	w.AddSphere(core.Vec3{0, 0, 0}, 0.8, pink)
	w.AddSphere(core.Vec3{-1.6, 0, 0}, 0.5, polished)
	w.AddSphere(core.Vec3{1.6, 0, 0}, 0.5, brushed)
	w.AddSphere(core.Vec3{0, -101, 0}, 100, ground)

	return &Scene{
		World: w,
		Camera: renderer.CameraConfig{
			Center:       core.Vec3{0, 0, 2.5},
			LookAt:       core.Vec3{0, 0, 0},
			VFov:         45,
			DefocusAngle: 5,
		},
		Sky: true,
	}
}
