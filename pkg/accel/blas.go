// Package accel builds the two-level acceleration structure: one LBVH per
// mesh in local space (BLAS) and one LBVH over all instances in world
// space (TLAS).
package accel

import (
	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/arena"
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/lbvh"
	"github.com/patricklbell/raytracer/pkg/world"
)

// BLASNode is the hierarchy over one mesh's triangles. Leaf IDs are 1-based
// triangle indices.
type BLASNode struct {
	Tree      lbvh.Tree
	Mesh      *world.Mesh
	Handle    world.Handle
	AutoIndex bool
}

// BLAS holds one node per mesh, in world mesh order
type BLAS struct {
	Nodes []BLASNode
}

// BuildBLAS builds a hierarchy for every mesh in w and records each mesh's slot
// in Mesh.BLASIndex. Nodes are allocated from nodes.
func BuildBLAS(nodes *arena.Arena[lbvh.Node], w *world.World) (*BLAS, error) {
	blas := &BLAS{Nodes: make([]BLASNode, 0, w.MeshCount())}

	for h, mesh := range w.Meshes() {
		// Panics on primitives other than triangle lists
		count := mesh.TriangleCount()
		if count == 0 {
			return nil, errors.Errorf("%v has no triangles", h)
		}

		boxes := make([]core.AABB, count)
		for i := range boxes {
			boxes[i] = geometry.TriangleAABB(mesh.Triangle(i))
		}

		mesh.BLASIndex = len(blas.Nodes)
		blas.Nodes = append(blas.Nodes, BLASNode{
			Tree:      lbvh.Build(nodes, boxes),
			Mesh:      mesh,
			Handle:    h,
			AutoIndex: mesh.AutoIndex(),
		})
	}

	return blas, nil
}

// Stats sums the tree statistics of every node. MaxDepth is the deepest of any node.
func (b *BLAS) Stats() lbvh.Stats {
	var total lbvh.Stats
	depthSum := 0.0
	for i := range b.Nodes {
		s := b.Nodes[i].Tree.Stats()
		total.Nodes += s.Nodes
		total.Leaves += s.Leaves
		total.MaxDepth = max(total.MaxDepth, s.MaxDepth)
		depthSum += s.AvgLeafDepth * float64(s.Leaves)
	}
	if total.Leaves > 0 {
		total.AvgLeafDepth = depthSum / float64(total.Leaves)
	}
	return total
}

// intersect finds the closest triangle hit with a local-space ray
func (n *BLASNode) intersect(ray core.Ray, iv *core.Interval) (tri int, u, v float32, ok bool) {
	id := n.Tree.QueryRay(ray, iv, func(id uint64, ray core.Ray, iv *core.Interval) bool {
		v0, v1, v2 := n.Mesh.Triangle(int(id - 1))
		hu, hv, hit := geometry.IntersectTriangle(ray, v0, v1, v2, iv)
		if hit {
			tri, u, v = int(id-1), hu, hv
		}
		return hit
	})
	return tri, u, v, id > 0
}
