package world

import "fmt"

// Kind is the list a handle belongs to
type Kind uint8

const (
	KindMesh Kind = iota + 1
	KindMaterial
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindMesh:
		return "mesh"
	case KindMaterial:
		return "material"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Handle is an opaque reference to an entry in a World. The zero Handle
// refers to nothing. A handle stops resolving once its entry is removed.
type Handle struct {
	index      uint32
	generation uint32
	kind       Kind
}

// IsZero reports whether h is the zero handle
func (h Handle) IsZero() bool {
	return h == Handle{}
}

// Kind returns the list h belongs to
func (h Handle) Kind() Kind {
	return h.kind
}

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("%v#%d.%d", h.kind, h.index, h.generation)
}
