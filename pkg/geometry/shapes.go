package geometry

import "github.com/patricklbell/raytracer/pkg/core"

// NewQuadMesh creates a unit quad in the XZ plane spanning [-1,1] with a +Y normal
func NewQuadMesh() Mesh {
	corners := []core.Vec3{
		{-1, 0, -1},
		{1, 0, -1},
		{1, 0, 1},
		{-1, 0, 1},
	}
	// Wound so the face normal points +Y
	return NewMesh(corners, []uint32{0, 2, 1, 0, 3, 2})
}

// NewBoxMesh creates an indexed box spanning [-1,1] on every axis with outward faces
func NewBoxMesh() Mesh {
	// Define the 8 corners of a unit box centered at origin
	corners := []core.Vec3{
		{-1, -1, -1}, // 0: left-bottom-back
		{1, -1, -1},  // 1: right-bottom-back
		{1, 1, -1},   // 2: right-top-back
		{-1, 1, -1},  // 3: left-top-back
		{-1, -1, 1},  // 4: left-bottom-front
		{1, -1, 1},   // 5: right-bottom-front
		{1, 1, 1},    // 6: right-top-front
		{-1, 1, 1},   // 7: left-top-front
	}
	indices := []uint32{
		0, 2, 1, 0, 3, 2, // back (-Z)
		4, 5, 6, 4, 6, 7, // front (+Z)
		1, 2, 6, 1, 6, 5, // right (+X)
		0, 4, 7, 0, 7, 3, // left (-X)
		3, 7, 6, 3, 6, 2, // top (+Y)
		0, 1, 5, 0, 5, 4, // bottom (-Y)
	}
	return NewMesh(corners, indices)
}

// NewTriangleMesh creates a single auto-indexed triangle
func NewTriangleMesh(v0, v1, v2 core.Vec3) Mesh {
	return NewMesh([]core.Vec3{v0, v1, v2}, nil)
}
