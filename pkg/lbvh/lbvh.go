// Package lbvh builds linear bounding volume hierarchies: binary trees over
// axis-aligned boxes whose leaves are ordered along a Morton curve.
package lbvh

import (
	"fmt"
	"math/bits"
	"sort"

	"github.com/patricklbell/raytracer/pkg/arena"
	"github.com/patricklbell/raytracer/pkg/core"
)

// Node is either a leaf carrying a non-zero ID or an internal node with two children
type Node struct {
	AABB  core.AABB
	ID    uint64 // 1-based index of the input box, 0 for internal nodes
	Left  *Node
	Right *Node
}

// IsLeaf reports whether the node has no children
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree is a built hierarchy. The zero Tree is empty and every query misses.
type Tree struct {
	Root *Node
}

// Bounds returns the box enclosing every leaf
func (t Tree) Bounds() core.AABB {
	if t.Root == nil {
		return core.EmptyAABB()
	}
	return t.Root.AABB
}

// IsEmpty reports whether the tree has no nodes
func (t Tree) IsEmpty() bool {
	return t.Root == nil
}

// Build creates a tree over boxes with nodes allocated from nodes.
// Leaf IDs are 1-based indices into boxes. Panics if boxes is empty.
func Build(nodes *arena.Arena[Node], boxes []core.AABB) Tree {
	if len(boxes) == 0 {
		panic("lbvh: cannot build a tree over zero boxes")
	}

	// Bounds of the box centroids
	centroids := core.EmptyAABB()
	for _, b := range boxes {
		centroids = centroids.Extend(b.Center())
	}
	extents := centroids.Size()

	entries := make([]entry, len(boxes))
	for i, b := range boxes {
		entries[i] = entry{
			code: MortonCode(b.Center(), centroids.Min, extents),
			id:   uint64(i + 1),
		}
	}
	radixSort(entries)

	b := builder{nodes: nodes, entries: entries, boxes: boxes}
	return Tree{Root: b.subtree(0, len(entries))}
}

type builder struct {
	nodes   *arena.Arena[Node]
	entries []entry
	boxes   []core.AABB
}

func (b *builder) subtree(start, count int) *Node {
	node := b.nodes.Alloc()

	if count == 1 {
		node.ID = b.entries[start].id
		node.AABB = b.boxes[node.ID-1]
		return node
	}

	m := splitIndex(b.entries[start : start+count])
	node.Left = b.subtree(start, m)
	node.Right = b.subtree(start+m, count-m)
	node.AABB = node.Left.AABB.Merge(node.Right.AABB)
	return node
}

// splitIndex returns the first position whose code has the highest bit that
// differs between the first and last code set. Equal codes split in the middle.
func splitIndex(entries []entry) int {
	count := len(entries)
	first := entries[0].code
	last := entries[count-1].code
	if first == last {
		return count / 2
	}

	splitBit := uint64(1) << (63 - bits.LeadingZeros64(first^last))
	split := sort.Search(count, func(i int) bool {
		return entries[i].code&splitBit != 0
	})
	if split <= 0 || split >= count {
		panic(fmt.Sprintf("lbvh: split %d outside (0, %d)", split, count))
	}
	return split
}
