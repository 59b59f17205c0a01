package lbvh

import "github.com/patricklbell/raytracer/pkg/core"

// HitFunc tests the payload of leaf id against the ray. It returns true and
// narrows iv.Max on an accepted hit.
type HitFunc func(id uint64, ray core.Ray, iv *core.Interval) bool

// QueryRay walks the tree depth first, calling hit for each leaf whose box the ray
// enters within iv. It returns the id of the last accepted leaf, or 0 when
// nothing was hit. Closest-hit semantics come from hit narrowing iv.
func (t Tree) QueryRay(ray core.Ray, iv *core.Interval, hit HitFunc) uint64 {
	if t.Root == nil {
		return 0
	}
	return queryNode(t.Root, ray, iv, hit)
}

func queryNode(node *Node, ray core.Ray, iv *core.Interval, hit HitFunc) uint64 {
	if !node.AABB.Hit(ray, *iv) {
		return 0
	}
	if node.ID > 0 && hit(node.ID, ray, iv) {
		return node.ID
	}

	var left, right uint64
	if node.Left != nil {
		left = queryNode(node.Left, ray, iv, hit)
	}
	if node.Right != nil {
		right = queryNode(node.Right, ray, iv, hit)
	}

	if right > 0 {
		return right
	}
	return left
}
