package geometry

import (
	"fmt"
	"math/bits"
)

// Attributes is a bitmask of the per-vertex attributes stored in a vertex buffer.
// Present attributes are packed in declaration order, each in one SlotSize-float slot
// regardless of how many components it uses.
type Attributes uint32

const (
	AttributePosition Attributes = 1 << iota
	AttributeNormal
	AttributeUV
	AttributeColor
)

// SlotSize is the number of float32 values each present attribute occupies
const SlotSize = 4

// Primitive is the topology of a mesh's index or vertex stream
type Primitive int

const (
	PrimitiveTriangleList Primitive = iota + 1
	PrimitiveTriangleStrip
	PrimitiveLines
	PrimitivePoints
)

func (p Primitive) String() string {
	switch p {
	case PrimitiveTriangleList:
		return "triangle-list"
	case PrimitiveTriangleStrip:
		return "triangle-strip"
	case PrimitiveLines:
		return "lines"
	case PrimitivePoints:
		return "points"
	default:
		return fmt.Sprintf("Primitive(%d)", int(p))
	}
}

// Has reports whether attr is present
func (a Attributes) Has(attr Attributes) bool {
	return a&attr != 0
}

// Size returns the number of floats per vertex
func (a Attributes) Size() int {
	return bits.OnesCount32(uint32(a)) * SlotSize
}

// Offset returns the float offset of attr within one vertex. Panics if attr is absent.
func (a Attributes) Offset(attr Attributes) int {
	if !a.Has(attr) {
		panic(fmt.Sprintf("vertex attribute %#x not present in layout %#x", uint32(attr), uint32(a)))
	}
	return bits.OnesCount32(uint32(a&(attr-1))) * SlotSize
}

// Stride returns the float distance between consecutive values of attr
func (a Attributes) Stride(attr Attributes) int {
	if !a.Has(attr) {
		panic(fmt.Sprintf("vertex attribute %#x not present in layout %#x", uint32(attr), uint32(a)))
	}
	return a.Size()
}

// VertexOffset returns the float offset of attr for vertex i
func (a Attributes) VertexOffset(attr Attributes, i int) int {
	return a.Offset(attr) + i*a.Stride(attr)
}
