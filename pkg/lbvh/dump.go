package lbvh

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/arena"
	"github.com/patricklbell/raytracer/pkg/core"
)

// dumpRecord is the fixed part written for every present node
type dumpRecord struct {
	ID  uint64
	Min [3]float32
	Max [3]float32
}

// Dump writes the tree in preorder. Each slot is a sentinel byte (0 for an absent
// child, 1 otherwise) followed, for present nodes, by the little-endian id and
// the box min and max, then the left and right subtrees.
func (t Tree) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if err := dumpNode(bw, t.Root); err != nil {
		return errors.Wrap(err, "writing lbvh dump")
	}
	return errors.Wrap(bw.Flush(), "flushing lbvh dump")
}

func dumpNode(w io.Writer, n *Node) error {
	if n == nil {
		_, err := w.Write([]byte{0})
		return err
	}
	if _, err := w.Write([]byte{1}); err != nil {
		return err
	}
	rec := dumpRecord{ID: n.ID, Min: n.AABB.Min, Max: n.AABB.Max}
	if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
		return err
	}
	if err := dumpNode(w, n.Left); err != nil {
		return err
	}
	return dumpNode(w, n.Right)
}

// Load reads a tree written by Dump, allocating nodes from nodes
func Load(r io.Reader, nodes *arena.Arena[Node]) (Tree, error) {
	br := bufio.NewReader(r)
	root, err := loadNode(br, nodes)
	if err != nil {
		return Tree{}, errors.Wrap(err, "reading lbvh dump")
	}
	return Tree{Root: root}, nil
}

func loadNode(r *bufio.Reader, nodes *arena.Arena[Node]) (*Node, error) {
	sentinel, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch sentinel {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, errors.Errorf("bad node sentinel %d", sentinel)
	}

	var rec dumpRecord
	if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
		return nil, err
	}
	n := nodes.Alloc()
	n.ID = rec.ID
	n.AABB = core.NewAABB(rec.Min, rec.Max)

	if n.Left, err = loadNode(r, nodes); err != nil {
		return nil, err
	}
	if n.Right, err = loadNode(r, nodes); err != nil {
		return nil, err
	}
	return n, nil
}
