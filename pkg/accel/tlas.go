package accel

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/arena"
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/lbvh"
	"github.com/patricklbell/raytracer/pkg/world"
)

// TLASNode references one instance and, for mesh instances, its BLAS node
type TLASNode struct {
	Instance *world.Instance
	Handle   world.Handle
	BLAS     *BLASNode
}

// TLAS is the hierarchy over every instance. Leaf IDs are 1-based node indices.
type TLAS struct {
	Tree  lbvh.Tree
	Nodes []TLASNode
}

// Hit describes the closest intersection found by TLAS.Intersect
type Hit struct {
	T        float32
	Point    core.Vec3
	Normal   core.Vec3 // unit, outward for spheres, counter-clockwise face normal for meshes
	Material world.Handle
	Instance world.Handle
	Triangle int // 0-based triangle index, -1 for spheres
	U, V     float32
}

// BuildTLAS builds the instance hierarchy for w. Mesh instances take their bounds from
// the eight transformed corners of their BLAS root box. A world without instances
// yields a TLAS every ray misses.
func BuildTLAS(nodes *arena.Arena[lbvh.Node], blas *BLAS, w *world.World) (*TLAS, error) {
	tlas := &TLAS{Nodes: make([]TLASNode, 0, w.InstanceCount())}
	boxes := make([]core.AABB, 0, w.InstanceCount())

	for h, inst := range w.Instances() {
		node := TLASNode{Instance: inst, Handle: h}

		switch s := inst.Shape.(type) {
		case world.Sphere:
			boxes = append(boxes, geometry.SphereAABB(s.Center, s.Radius))
		case world.MeshShape:
			mesh, ok := w.ResolveMesh(s.Mesh)
			if !ok {
				return nil, errors.Errorf("%v references %v which does not resolve", h, s.Mesh)
			}
			if mesh.BLASIndex < 0 || mesh.BLASIndex >= len(blas.Nodes) || blas.Nodes[mesh.BLASIndex].Mesh != mesh {
				return nil, errors.Errorf("%v references %v which has no BLAS; build the BLAS first", h, s.Mesh)
			}
			node.BLAS = &blas.Nodes[mesh.BLASIndex]
			boxes = append(boxes, s.Transform.TransformAABB(node.BLAS.Tree.Bounds()))
		default:
			panic(fmt.Sprintf("unknown shape %T", s))
		}

		tlas.Nodes = append(tlas.Nodes, node)
	}

	if len(boxes) > 0 {
		tlas.Tree = lbvh.Build(nodes, boxes)
	}
	return tlas, nil
}

type tlasHit struct {
	node     *TLASNode
	triangle int
	u, v     float32
}

// Intersect finds the closest hit along ray within iv
func (t *TLAS) Intersect(ray core.Ray, iv core.Interval) (Hit, bool) {
	var closest tlasHit
	id := t.Tree.QueryRay(ray, &iv, func(id uint64, ray core.Ray, iv *core.Interval) bool {
		if id == 0 || id > uint64(len(t.Nodes)) {
			panic(fmt.Sprintf("tlas leaf id %d outside [1, %d]", id, len(t.Nodes)))
		}
		node := &t.Nodes[id-1]
		h, ok := intersectNode(node, ray, iv)
		if ok {
			closest = h
		}
		return ok
	})
	if id == 0 {
		return Hit{}, false
	}

	inst := closest.node.Instance
	hit := Hit{
		T:        iv.Max,
		Point:    ray.At(iv.Max),
		Material: inst.Material,
		Instance: closest.node.Handle,
		Triangle: closest.triangle,
		U:        closest.u,
		V:        closest.v,
	}

	switch s := inst.Shape.(type) {
	case world.Sphere:
		hit.Normal = geometry.SphereNormal(hit.Point, s.Center, s.Radius)
	case world.MeshShape:
		mesh := closest.node.BLAS.Mesh
		if mesh.Attributes.Has(geometry.AttributeNormal) {
			panic("shading with vertex normals is not implemented")
		}
		n := geometry.TriangleNormal(mesh.Triangle(closest.triangle))
		hit.Normal = s.Transform.TransformNormal(n)
	default:
		panic(fmt.Sprintf("unknown shape %T", s))
	}

	return hit, true
}

// intersectNode tests one instance, narrowing iv on a hit
func intersectNode(node *TLASNode, ray core.Ray, iv *core.Interval) (tlasHit, bool) {
	switch s := node.Instance.Shape.(type) {
	case world.Sphere:
		if geometry.IntersectSphere(ray, s.Center, s.Radius, iv) {
			return tlasHit{node: node, triangle: -1}, true
		}
		return tlasHit{}, false

	case world.MeshShape:
		local := s.Transform.InverseTransformRay(ray)

		// World distance covered per unit of local distance along the ray
		localToWorld := core.MulElem(local.Direction, s.Transform.Scale).Len()
		if math32.Abs(localToWorld) <= core.Epsilon {
			panic(fmt.Sprintf("degenerate instance transform, scale %v", s.Transform.Scale))
		}
		localIV := iv.Scale(1 / localToWorld)

		tri, u, v, ok := node.BLAS.intersect(local, &localIV)
		if !ok {
			return tlasHit{}, false
		}
		iv.Max = localIV.Max * localToWorld
		return tlasHit{node: node, triangle: tri, u: u, v: v}, true

	default:
		panic(fmt.Sprintf("unknown shape %T", s))
	}
}

// Stats returns the shape of the instance hierarchy
func (t *TLAS) Stats() lbvh.Stats {
	return t.Tree.Stats()
}
