package accel

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"go.viam.com/test"

	"github.com/patricklbell/raytracer/pkg/arena"
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/lbvh"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/world"
)

func build(t *testing.T, w *world.World) *TLAS {
	t.Helper()
	blas, err := BuildBLAS(arena.New[lbvh.Node](0), w)
	test.That(t, err, test.ShouldBeNil)
	tlas, err := BuildTLAS(arena.New[lbvh.Node](0), blas, w)
	test.That(t, err, test.ShouldBeNil)
	return tlas
}

func TestEmptyWorld(t *testing.T) {
	tlas := build(t, world.New())
	_, ok := tlas.Intersect(core.NewRay(core.Vec3{}, core.Vec3{0, 1, 0}), core.PositiveInterval())
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, tlas.Stats().Nodes, test.ShouldEqual, 0)
}

func TestSphereInstances(t *testing.T) {
	w := world.New()
	red := w.AddMaterial(material.NewLambertian(core.Vec3{1, 0, 0}))
	blue := w.AddMaterial(material.NewLambertian(core.Vec3{0, 0, 1}))
	near := w.AddSphere(core.Vec3{0, 0, -5}, 1, red)
	w.AddSphere(core.Vec3{0, 0, -10}, 2, blue)
	tlas := build(t, w)

	hit, ok := tlas.Intersect(core.NewRay(core.Vec3{}, core.Vec3{0, 0, -1}), core.PositiveInterval())
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, hit.T, test.ShouldAlmostEqual, 4, 1e-5)
	test.That(t, hit.Point.ApproxEqualThreshold(core.Vec3{0, 0, -4}, 1e-5), test.ShouldBeTrue)
	test.That(t, hit.Normal.ApproxEqualThreshold(core.Vec3{0, 0, 1}, 1e-5), test.ShouldBeTrue)
	test.That(t, hit.Material, test.ShouldResemble, red)
	test.That(t, hit.Instance, test.ShouldResemble, near)
	test.That(t, hit.Triangle, test.ShouldEqual, -1)

	t.Run("interval limits", func(t *testing.T) {
		hit, ok := tlas.Intersect(core.NewRay(core.Vec3{}, core.Vec3{0, 0, -1}), core.NewInterval(7, 100))
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, hit.T, test.ShouldAlmostEqual, 8, 1e-5)
		test.That(t, hit.Material, test.ShouldResemble, blue)

		_, ok = tlas.Intersect(core.NewRay(core.Vec3{}, core.Vec3{0, 0, -1}), core.NewInterval(0, 3))
		test.That(t, ok, test.ShouldBeFalse)
	})
}

func TestMeshInstance(t *testing.T) {
	w := world.New()
	mat := w.AddMaterial(material.NewNormalDebug())
	quad := w.AddMesh(geometry.NewQuadMesh())

	// Stand the quad up so its +Y normal faces +Z, 4 wide and 6 tall, at z=-3
	tr := geometry.TRS{
		Translation: core.Vec3{1, 0, -3},
		Rotation:    mgl32.QuatBetweenVectors(core.Vec3{0, 1, 0}, core.Vec3{0, 0, 1}),
		Scale:       core.Vec3{2, 1, 3},
	}
	inst := w.AddMeshInstance(quad, tr, mat)
	tlas := build(t, w)

	tests := []struct {
		name   string
		origin core.Vec3
		hit    bool
	}{
		{"center", core.Vec3{1, 0, 5}, true},
		{"near x edge", core.Vec3{2.9, 0, 5}, true},
		{"past x edge", core.Vec3{3.1, 0, 5}, false},
		{"near y edge", core.Vec3{1, 2.9, 5}, true},
		{"past y edge", core.Vec3{1, 3.1, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := tlas.Intersect(core.NewRay(tt.origin, core.Vec3{0, 0, -1}), core.PositiveInterval())
			test.That(t, ok, test.ShouldEqual, tt.hit)
			if !ok {
				return
			}
			test.That(t, hit.T, test.ShouldAlmostEqual, 8, 1e-4)
			test.That(t, hit.Point.Z(), test.ShouldAlmostEqual, -3, 1e-4)
			test.That(t, hit.Normal.ApproxEqualThreshold(core.Vec3{0, 0, 1}, 1e-5), test.ShouldBeTrue)
			test.That(t, hit.Instance, test.ShouldResemble, inst)
			test.That(t, hit.Triangle, test.ShouldBeIn, 0, 1)
		})
	}

	t.Run("mesh records its BLAS slot", func(t *testing.T) {
		m, _ := w.ResolveMesh(quad)
		test.That(t, m.BLASIndex, test.ShouldEqual, 0)
		test.That(t, tlas.Nodes[0].BLAS.Mesh, test.ShouldEqual, m)
		test.That(t, tlas.Nodes[0].BLAS.AutoIndex, test.ShouldBeFalse)
	})
}

func TestMeshInstanceMatchesWorldSpace(t *testing.T) {
	w := world.New()
	box := w.AddMesh(geometry.NewBoxMesh())
	tr := geometry.TRS{
		Translation: core.Vec3{0.5, -1, 2},
		Rotation:    mgl32.AnglesToQuat(0.3, 1.1, -0.4, mgl32.XYZ),
		Scale:       core.Vec3{3, 0.5, 1.5},
	}
	w.AddMeshInstance(box, tr, world.Handle{})
	tlas := build(t, w)

	// The same box with its vertices moved into world space up front
	m, _ := w.ResolveMesh(box)
	var worldTris [][3]core.Vec3
	for i := 0; i < m.TriangleCount(); i++ {
		v0, v1, v2 := m.Triangle(i)
		worldTris = append(worldTris, [3]core.Vec3{tr.TransformPoint(v0), tr.TransformPoint(v1), tr.TransformPoint(v2)})
	}

	rng := rand.New(rand.NewSource(17))
	hits := 0
	for i := 0; i < 300; i++ {
		origin := core.Vec3{rng.Float32()*20 - 10, rng.Float32()*20 - 10, rng.Float32()*20 - 10}
		target := core.Vec3{rng.Float32()*4 - 2, rng.Float32()*2 - 2, rng.Float32()*4}
		ray := core.NewRay(origin, target.Sub(origin).Normalize())

		brute := core.PositiveInterval()
		bruteHit := false
		var bruteNormal core.Vec3
		for _, tri := range worldTris {
			if _, _, ok := geometry.IntersectTriangle(ray, tri[0], tri[1], tri[2], &brute); ok {
				bruteHit = true
				bruteNormal = geometry.TriangleNormal(tri[0], tri[1], tri[2]).Normalize()
			}
		}

		hit, ok := tlas.Intersect(ray, core.PositiveInterval())
		test.That(t, ok, test.ShouldEqual, bruteHit)
		if !ok {
			continue
		}
		hits++
		test.That(t, hit.T, test.ShouldAlmostEqual, brute.Max, 1e-3)
		test.That(t, hit.Normal.Len(), test.ShouldAlmostEqual, 1, 1e-5)
		test.That(t, hit.Normal.Dot(bruteNormal), test.ShouldAlmostEqual, 1, 1e-3)
	}
	test.That(t, hits, test.ShouldBeGreaterThan, 50)
}

func TestTLASBoundsAreConservative(t *testing.T) {
	w := world.New()
	box := w.AddMesh(geometry.NewBoxMesh())
	tr := geometry.TRS{
		Rotation: mgl32.QuatRotate(math.Pi/4, core.Vec3{0, 1, 0}),
		Scale:    core.Splat(1),
	}
	w.AddMeshInstance(box, tr, world.Handle{})
	tlas := build(t, w)

	bounds := tlas.Tree.Bounds()
	r := float32(math.Sqrt2)
	test.That(t, bounds.Min.ApproxEqualThreshold(core.Vec3{-r, -1, -r}, 1e-5), test.ShouldBeTrue)
	test.That(t, bounds.Max.ApproxEqualThreshold(core.Vec3{r, 1, r}, 1e-5), test.ShouldBeTrue)
}

func TestAutoIndexedMesh(t *testing.T) {
	w := world.New()
	tri := w.AddMesh(geometry.NewTriangleMesh(core.Vec3{-1, -1, 0}, core.Vec3{1, -1, 0}, core.Vec3{0, 1, 0}))
	w.AddMeshInstance(tri, geometry.IdentityTRS(), world.Handle{})
	tlas := build(t, w)

	test.That(t, tlas.Nodes[0].BLAS.AutoIndex, test.ShouldBeTrue)
	hit, ok := tlas.Intersect(core.NewRay(core.Vec3{0, 0, 2}, core.Vec3{0, 0, -1}), core.PositiveInterval())
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, hit.Triangle, test.ShouldEqual, 0)
	test.That(t, hit.Material.IsZero(), test.ShouldBeTrue)
	test.That(t, hit.U+hit.V, test.ShouldBeLessThanOrEqualTo, 1+core.Epsilon)
}

func TestNonUniformScaleNormal(t *testing.T) {
	w := world.New()
	box := w.AddMesh(geometry.NewBoxMesh())
	w.AddMeshInstance(box, geometry.TRS{Rotation: mgl32.QuatIdent(), Scale: core.Vec3{4, 1, 1}}, world.Handle{})
	tlas := build(t, w)

	hit, ok := tlas.Intersect(core.NewRay(core.Vec3{10, 0.2, 0.1}, core.Vec3{-1, 0, 0}), core.PositiveInterval())
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, hit.T, test.ShouldAlmostEqual, 6, 1e-4)
	test.That(t, hit.Normal.ApproxEqualThreshold(core.Vec3{1, 0, 0}, 1e-5), test.ShouldBeTrue)
}

func TestBuildErrors(t *testing.T) {
	t.Run("mesh without triangles", func(t *testing.T) {
		w := world.New()
		w.AddMesh(geometry.NewMesh(nil, nil))
		_, err := BuildBLAS(arena.New[lbvh.Node](0), w)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "no triangles")
	})

	t.Run("dangling mesh handle", func(t *testing.T) {
		w := world.New()
		mesh := w.AddMesh(geometry.NewQuadMesh())
		w.AddMeshInstance(mesh, geometry.IdentityTRS(), world.Handle{})
		blas, err := BuildBLAS(arena.New[lbvh.Node](0), w)
		test.That(t, err, test.ShouldBeNil)

		w.Remove(mesh)
		_, err = BuildTLAS(arena.New[lbvh.Node](0), blas, w)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "does not resolve")
	})

	t.Run("mesh added after the BLAS", func(t *testing.T) {
		w := world.New()
		blas, err := BuildBLAS(arena.New[lbvh.Node](0), w)
		test.That(t, err, test.ShouldBeNil)

		mesh := w.AddMesh(geometry.NewQuadMesh())
		w.AddMeshInstance(mesh, geometry.IdentityTRS(), world.Handle{})
		_, err = BuildTLAS(arena.New[lbvh.Node](0), blas, w)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "no BLAS")
	})

	t.Run("unsupported primitive panics", func(t *testing.T) {
		w := world.New()
		m := geometry.NewQuadMesh()
		m.Primitive = geometry.PrimitiveLines
		w.AddMesh(m)
		test.That(t, func() { BuildBLAS(arena.New[lbvh.Node](0), w) }, test.ShouldPanic)
	})

	t.Run("vertex normals panic when shading", func(t *testing.T) {
		w := world.New()
		m := geometry.NewQuadMesh()
		m.Attributes = geometry.AttributePosition | geometry.AttributeNormal
		m.Vertices = make([]float32, m.VertexCount*m.Attributes.Size())
		quad := geometry.NewQuadMesh()
		for i := 0; i < m.VertexCount; i++ {
			p := quad.Position(i)
			copy(m.Vertices[m.Attributes.VertexOffset(geometry.AttributePosition, i):], p[:])
			copy(m.Vertices[m.Attributes.VertexOffset(geometry.AttributeNormal, i):], []float32{0, 1, 0})
		}
		mesh := w.AddMesh(m)
		w.AddMeshInstance(mesh, geometry.IdentityTRS(), world.Handle{})
		tlas := build(t, w)

		ray := core.NewRay(core.Vec3{0, 5, 0}, core.Vec3{0, -1, 0})
		test.That(t, func() { tlas.Intersect(ray, core.PositiveInterval()) }, test.ShouldPanic)
	})
}

func TestBLASStats(t *testing.T) {
	w := world.New()
	w.AddMesh(geometry.NewBoxMesh())
	w.AddMesh(geometry.NewQuadMesh())
	blas, err := BuildBLAS(arena.New[lbvh.Node](0), w)
	test.That(t, err, test.ShouldBeNil)

	stats := blas.Stats()
	test.That(t, stats.Leaves, test.ShouldEqual, 14)
	test.That(t, stats.Nodes, test.ShouldEqual, 2*12-1+2*2-1)
}
