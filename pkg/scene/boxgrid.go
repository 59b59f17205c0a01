package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/renderer"
	"github.com/patricklbell/raytracer/pkg/world"
)

const boxGridSize = 6

// yaw is a rotation about +Y by degrees
func yaw(degrees float32) core.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), core.Vec3{0, 1, 0})
}

// hueColor returns a saturated linear RGB color around the hue circle
func hueColor(hue float64) core.Vec3 {
	r, g, b := colorful.Hcl(hue, 0.5, 0.65).Clamped().LinearRgb()
	return core.Vec3{float32(r), float32(g), float32(b)}
}

// NewBoxGridScene creates a grid of boxes that all instance one indexed mesh, each
// with its own rotation, non-uniform scale and color. Every third box is metal.
func NewBoxGridScene() *Scene {
	w := world.New()
	box := w.AddMesh(geometry.NewBoxMesh())

	ground := w.AddMaterial(material.NewLambertian(core.Splat(0.5)))
	w.AddSphere(core.Vec3{0, -1000, 0}, 1000, ground)

	spacing := float32(2.5)
	offset := spacing * (boxGridSize - 1) / 2
	for i := 0; i < boxGridSize; i++ {
		for j := 0; j < boxGridSize; j++ {
			n := i*boxGridSize + j

			var mat world.Handle
			if n%3 == 2 {
				mat = w.AddMaterial(material.NewMetal(float32(j) / boxGridSize))
			} else {
				mat = w.AddMaterial(material.NewLambertian(hueColor(float64(n) * 360 / boxGridSize / boxGridSize)))
			}

			height := 0.3 + 0.15*float32((i+2*j)%5)
			w.AddMeshInstance(box, geometry.TRS{
				Translation: core.Vec3{float32(i)*spacing - offset, height, float32(j)*spacing - offset},
				Rotation:    yaw(float32(n) * 17),
				Scale:       core.Vec3{0.7, height, 0.4 + 0.1*float32(i)},
			}, mat)
		}
	}

	// A glass sphere floating over the middle
	w.AddSphere(core.Vec3{0, 3, 0}, 1.2, w.AddMaterial(material.NewDielectric(1.5)))

	return &Scene{
		World: w,
		Camera: renderer.CameraConfig{
			Center:       core.Vec3{0, 9, 16},
			LookAt:       core.Vec3{0, 0.5, 0},
			VFov:         40,
			DefocusAngle: 0.3,
		},
		Sky: true,
	}
}

// NewNormalsScene shades a sphere and a tilted box by their surface normals
func NewNormalsScene() *Scene {
	w := world.New()
	normals := w.AddMaterial(material.NewNormalDebug())

	w.AddSphere(core.Vec3{-1.2, 0, 0}, 1, normals)
	w.AddMeshInstance(w.AddMesh(geometry.NewBoxMesh()), geometry.TRS{
		Translation: core.Vec3{1.3, 0, 0},
		Rotation:    mgl32.AnglesToQuat(0.4, 0.7, 0, mgl32.XYZ),
		Scale:       core.Vec3{0.6, 0.9, 0.6},
	}, normals)

	return &Scene{
		World: w,
		Camera: renderer.CameraConfig{
			Center: core.Vec3{0, 0, 6},
			LookAt: core.Vec3{0, 0, 0},
			VFov:   45,
		},
		Sky: false,
	}
}
