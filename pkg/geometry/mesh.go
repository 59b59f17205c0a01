package geometry

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/core"
)

// Mesh is a packed vertex buffer with an optional index buffer.
// An empty Indices slice means consecutive vertex triples form triangles.
type Mesh struct {
	Vertices    []float32
	VertexCount int
	Indices     []uint32
	Primitive   Primitive
	Attributes  Attributes
}

// NewMesh packs positions into a position-only triangle list
func NewMesh(positions []core.Vec3, indices []uint32) Mesh {
	attrs := AttributePosition
	stride := attrs.Size()
	vertices := make([]float32, len(positions)*stride)
	for i, p := range positions {
		copy(vertices[i*stride:], []float32{p[0], p[1], p[2], 1})
	}
	return Mesh{
		Vertices:    vertices,
		VertexCount: len(positions),
		Indices:     indices,
		Primitive:   PrimitiveTriangleList,
		Attributes:  attrs,
	}
}

// AutoIndex reports whether triangles are implied by vertex order
func (m *Mesh) AutoIndex() bool {
	return len(m.Indices) == 0
}

func (m *Mesh) requireTriangleList() {
	if m.Primitive != PrimitiveTriangleList {
		panic(fmt.Sprintf("primitive %v is not supported", m.Primitive))
	}
}

// TriangleCount returns the number of triangles in the mesh
func (m *Mesh) TriangleCount() int {
	m.requireTriangleList()
	if m.AutoIndex() {
		return m.VertexCount / 3
	}
	return len(m.Indices) / 3
}

// Position returns the position of vertex i
func (m *Mesh) Position(i int) core.Vec3 {
	off := m.Attributes.VertexOffset(AttributePosition, i)
	return core.Vec3{m.Vertices[off], m.Vertices[off+1], m.Vertices[off+2]}
}

// Triangle returns the vertices of the 0-based triangle tri
func (m *Mesh) Triangle(tri int) (v0, v1, v2 core.Vec3) {
	m.requireTriangleList()
	idx := tri * 3
	if m.AutoIndex() {
		return m.Position(idx), m.Position(idx + 1), m.Position(idx + 2)
	}
	return m.Position(int(m.Indices[idx])),
		m.Position(int(m.Indices[idx+1])),
		m.Position(int(m.Indices[idx+2]))
}

// Validate checks the buffers agree with the declared layout
func (m *Mesh) Validate() error {
	if m.Primitive != PrimitiveTriangleList {
		return errors.Errorf("unsupported primitive %v", m.Primitive)
	}
	if !m.Attributes.Has(AttributePosition) {
		return errors.New("mesh has no position attribute")
	}
	if need := m.VertexCount * m.Attributes.Size(); len(m.Vertices) < need {
		return errors.Errorf("vertex buffer holds %d floats, layout needs %d", len(m.Vertices), need)
	}
	if m.AutoIndex() {
		if m.VertexCount%3 != 0 {
			return errors.Errorf("auto-indexed mesh has %d vertices, not a multiple of 3", m.VertexCount)
		}
	} else {
		if len(m.Indices)%3 != 0 {
			return errors.Errorf("mesh has %d indices, not a multiple of 3", len(m.Indices))
		}
		for i, idx := range m.Indices {
			if int(idx) >= m.VertexCount {
				return errors.Errorf("index %d references vertex %d of %d", i, idx, m.VertexCount)
			}
		}
	}
	if m.TriangleCount() == 0 {
		return errors.New("mesh has no triangles")
	}
	return nil
}
