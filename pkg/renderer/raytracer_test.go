package renderer

import (
	"context"
	"testing"

	"go.viam.com/test"

	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/integrator"
	"github.com/patricklbell/raytracer/pkg/logging/logtest"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/world"
)

func newTestTracer(t *testing.T, settings integrator.Settings, w *world.World) *Tracer {
	t.Helper()
	tracer := New(settings, logtest.NewLogger(t))
	t.Cleanup(tracer.Close)
	test.That(t, tracer.BuildBLAS(w), test.ShouldBeNil)
	test.That(t, tracer.BuildTLAS(w), test.ShouldBeNil)
	return tracer
}

func createTestWorld() *world.World {
	w := world.New()
	ground := w.AddMaterial(material.NewLambertian(core.Vec3{0.5, 0.5, 0.5}))
	w.AddSphere(core.Vec3{0, -1000, 0}, 1000, ground)
	w.AddSphere(core.Vec3{0, 1, 0}, 1, w.AddMaterial(material.NewDielectric(1.5)))
	w.AddSphere(core.Vec3{-2, 1, 0}, 1, w.AddMaterial(material.NewMetal(0.1)))
	box := w.AddMesh(geometry.NewBoxMesh())
	w.AddMeshInstance(box, geometry.TRS{
		Translation: core.Vec3{2, 0.5, 0},
		Rotation:    core.Quat{W: 1},
		Scale:       core.Splat(0.5),
	}, ground)
	return w
}

func TestCastDeterministic(t *testing.T) {
	const width, height = 24, 16
	w := createTestWorld()
	tracer := newTestTracer(t, integrator.Settings{MaxBounces: 6, Sky: true}, w)
	cast := NewCastSettings(CameraConfig{Center: core.Vec3{0, 2, 8}, LookAt: core.Vec3{0, 1, 0}, DefocusAngle: 1}, width, height, 2)

	render := func(workers int, seed int64) []core.Vec3 {
		out := make([]core.Vec3, width*height)
		cfg := RenderConfig{TileSize: 5, NumWorkers: workers, Seed: seed}
		stats, err := tracer.Cast(context.Background(), cast, cfg, out, width, height)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, stats.TotalPixels, test.ShouldEqual, width*height)
		test.That(t, stats.TotalSamples, test.ShouldEqual, width*height*4)
		test.That(t, stats.Rays, test.ShouldBeGreaterThanOrEqualTo, int64(width*height*4))
		return out
	}

	reference := render(1, 42)
	for _, workers := range []int{2, 7} {
		test.That(t, render(workers, 42), test.ShouldResemble, reference)
	}
	test.That(t, render(3, 43), test.ShouldNotResemble, reference)

	for _, c := range reference {
		test.That(t, core.IsFinite(c), test.ShouldBeTrue)
		test.That(t, core.LessEqual(core.Vec3{}, c), test.ShouldBeTrue)
	}
}

func TestCastOrthographicNormalSphere(t *testing.T) {
	const size = 9
	w := world.New()
	w.AddSphere(core.Vec3{}, 1, w.AddMaterial(material.NewNormalDebug()))
	tracer := newTestTracer(t, integrator.Settings{MaxBounces: 4}, w)

	cast := NewCastSettings(CameraConfig{Center: core.Vec3{0, 0, 5}, Orthographic: true}, size, size, 1)
	out := make([]core.Vec3, size*size)
	_, err := tracer.Cast(context.Background(), cast, DefaultRenderConfig(), out, size, size)
	test.That(t, err, test.ShouldBeNil)

	center := out[(size/2)*size+size/2]
	test.That(t, center.ApproxEqualThreshold(core.Vec3{0.5, 0.5, 1}, 1e-4), test.ShouldBeTrue)
	// the focus plane is wider than the sphere, so the corners miss into the black sky
	test.That(t, out[0], test.ShouldResemble, core.Vec3{})
	// left of center the normal leans toward -X
	test.That(t, out[(size/2)*size+size/2-1].X(), test.ShouldBeLessThan, float32(0.5))
}

func TestCastSkyOnly(t *testing.T) {
	tracer := newTestTracer(t, integrator.Settings{MaxBounces: 1, Sky: true}, world.New())
	cast := NewCastSettings(CameraConfig{Center: core.Vec3{0, 0, 0}, LookAt: core.Vec3{0, 1, -1}}, 1, 1, 1)
	out := make([]core.Vec3, 1)
	_, err := tracer.Cast(context.Background(), cast, DefaultRenderConfig(), out, 1, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out[0].ApproxEqualThreshold(integrator.SkyRadiance(core.Vec3{0, 1, -1}.Normalize()), 1e-3), test.ShouldBeTrue)
}

func TestCastErrors(t *testing.T) {
	w := createTestWorld()
	cast := NewCastSettings(CameraConfig{Center: core.Vec3{0, 0, 5}}, 4, 4, 1)
	out := make([]core.Vec3, 16)
	ctx := context.Background()

	t.Run("before building", func(t *testing.T) {
		tracer := New(integrator.DefaultSettings(), logtest.NewLogger(t))
		defer tracer.Close()
		_, err := tracer.Cast(ctx, cast, DefaultRenderConfig(), out, 4, 4)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "TLAS has not been built")

		err = tracer.BuildTLAS(w)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "BLAS has not been built")
	})

	t.Run("rebuilding the BLAS drops the TLAS", func(t *testing.T) {
		tracer := newTestTracer(t, integrator.DefaultSettings(), w)
		test.That(t, tracer.BuildBLAS(w), test.ShouldBeNil)
		test.That(t, tracer.TLAS(), test.ShouldBeNil)
		_, err := tracer.Cast(ctx, cast, DefaultRenderConfig(), out, 4, 4)
		test.That(t, err, test.ShouldNotBeNil)
	})

	t.Run("bad arguments", func(t *testing.T) {
		tracer := newTestTracer(t, integrator.DefaultSettings(), w)

		_, err := tracer.Cast(ctx, cast, DefaultRenderConfig(), out[:15], 4, 4)
		test.That(t, err.Error(), test.ShouldContainSubstring, "output holds 15 pixels")

		_, err = tracer.Cast(ctx, cast, DefaultRenderConfig(), out, 0, 4)
		test.That(t, err.Error(), test.ShouldContainSubstring, "must be positive")

		_, err = tracer.Cast(ctx, cast, RenderConfig{TileSize: 0, NumWorkers: -1}, out, 4, 4)
		test.That(t, err.Error(), test.ShouldContainSubstring, "tile size 0")
		test.That(t, err.Error(), test.ShouldContainSubstring, "worker count -1")

		bad := cast
		bad.Samples = 0
		_, err = tracer.Cast(ctx, bad, DefaultRenderConfig(), out, 4, 4)
		test.That(t, err.Error(), test.ShouldContainSubstring, "samples 0")
	})

	t.Run("cancelled", func(t *testing.T) {
		tracer := newTestTracer(t, integrator.DefaultSettings(), w)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := tracer.Cast(cancelled, cast, DefaultRenderConfig(), out, 4, 4)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, context.Canceled.Error())
	})

	t.Run("closed", func(t *testing.T) {
		tracer := New(integrator.DefaultSettings(), logtest.NewLogger(t))
		tracer.Close()
		test.That(t, tracer.BuildBLAS(w), test.ShouldNotBeNil)
		_, err := tracer.Cast(ctx, cast, DefaultRenderConfig(), out, 4, 4)
		test.That(t, err.Error(), test.ShouldContainSubstring, "closed")
	})

	t.Run("invalid settings panic", func(t *testing.T) {
		test.That(t, func() { New(integrator.Settings{}, logtest.NewLogger(t)) }, test.ShouldPanic)
	})
}

func TestBuildLogsStats(t *testing.T) {
	logger, logs := logtest.NewObservedLogger(t)
	tracer := New(integrator.DefaultSettings(), logger)
	defer tracer.Close()

	w := createTestWorld()
	test.That(t, tracer.BuildBLAS(w), test.ShouldBeNil)
	test.That(t, tracer.BuildTLAS(w), test.ShouldBeNil)

	blas := logs.FilterMessage("built BLAS").All()
	test.That(t, blas, test.ShouldHaveLength, 1)
	test.That(t, blas[0].ContextMap()["meshes"], test.ShouldEqual, int64(1))
	test.That(t, blas[0].ContextMap()["leaves"], test.ShouldEqual, int64(12))

	tlas := logs.FilterMessage("built TLAS").All()
	test.That(t, tlas, test.ShouldHaveLength, 1)
	test.That(t, tlas[0].ContextMap()["instances"], test.ShouldEqual, int64(4))
	test.That(t, tlas[0].ContextMap()["nodes"], test.ShouldEqual, int64(7))

	out := make([]core.Vec3, 4)
	cast := NewCastSettings(CameraConfig{Center: core.Vec3{0, 2, 8}, LookAt: core.Vec3{0, 1, 0}}, 2, 2, 1)
	_, err := tracer.Cast(context.Background(), cast, DefaultRenderConfig(), out, 2, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, logs.FilterMessage("render complete").Len(), test.ShouldEqual, 1)
}
