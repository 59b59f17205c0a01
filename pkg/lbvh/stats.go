package lbvh

// Stats summarizes the shape of a tree
type Stats struct {
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
}

// Walk visits every node in preorder with its depth, the root at depth 0.
// Returning false from fn skips the node's children.
func (t Tree) Walk(fn func(n *Node, depth int) bool) {
	if t.Root == nil {
		return
	}
	walk(t.Root, 0, fn)
}

func walk(n *Node, depth int, fn func(n *Node, depth int) bool) {
	if !fn(n, depth) {
		return
	}
	if n.Left != nil {
		walk(n.Left, depth+1, fn)
	}
	if n.Right != nil {
		walk(n.Right, depth+1, fn)
	}
}

// Leaves returns the leaves in left-to-right order
func (t Tree) Leaves() []*Node {
	var leaves []*Node
	t.Walk(func(n *Node, _ int) bool {
		if n.IsLeaf() {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

// Stats computes node counts and depths
func (t Tree) Stats() Stats {
	var s Stats
	depthSum := 0
	t.Walk(func(n *Node, depth int) bool {
		s.Nodes++
		s.MaxDepth = max(s.MaxDepth, depth)
		if n.IsLeaf() {
			s.Leaves++
			depthSum += depth
		}
		return true
	})
	if s.Leaves > 0 {
		s.AvgLeafDepth = float64(depthSum) / float64(s.Leaves)
	}
	return s
}
