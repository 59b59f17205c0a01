// Package world is the handle-addressed scene graph: meshes, materials and
// the instances that place them.
package world

import (
	"iter"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/geometry"
	"github.com/patricklbell/raytracer/pkg/material"
)

// Mesh is a vertex buffer registered with a World
type Mesh struct {
	geometry.Mesh
	BLASIndex int // slot in the last built BLAS, -1 until built
}

// Instance places a shape in the world with a material
type Instance struct {
	Material Handle // zero renders with a diagnostic color
	Shape    Shape
}

// Shape is either a Sphere or a MeshShape
type Shape interface {
	shape()
}

// Sphere is an analytic sphere in world space
type Sphere struct {
	Center core.Vec3
	Radius float32
}

// MeshShape is a mesh placed by a transform
type MeshShape struct {
	Mesh      Handle
	Transform geometry.TRS
}

func (Sphere) shape()    {}
func (MeshShape) shape() {}

// World owns meshes, materials and instances. It is not safe for concurrent
// mutation; tracing only reads it.
type World struct {
	meshes    list[Mesh]
	materials list[material.Material]
	instances list[Instance]
}

// New creates an empty world
func New() *World {
	return &World{
		meshes:    newList[Mesh](KindMesh),
		materials: newList[material.Material](KindMaterial),
		instances: newList[Instance](KindInstance),
	}
}

// AddMesh registers a mesh. The world references the buffers, it does not copy them.
func (w *World) AddMesh(m geometry.Mesh) Handle {
	return w.meshes.add(Mesh{Mesh: m, BLASIndex: -1})
}

// AddMaterial registers a material
func (w *World) AddMaterial(m material.Material) Handle {
	return w.materials.add(m)
}

// AddInstance registers an instance
func (w *World) AddInstance(inst Instance) Handle {
	return w.instances.add(inst)
}

// AddSphere is shorthand for adding a sphere instance
func (w *World) AddSphere(center core.Vec3, radius float32, mat Handle) Handle {
	return w.AddInstance(Instance{Material: mat, Shape: Sphere{Center: center, Radius: radius}})
}

// AddMeshInstance is shorthand for placing a mesh with a transform
func (w *World) AddMeshInstance(mesh Handle, tr geometry.TRS, mat Handle) Handle {
	return w.AddInstance(Instance{Material: mat, Shape: MeshShape{Mesh: mesh, Transform: tr}})
}

// ResolveMesh returns the mesh h refers to
func (w *World) ResolveMesh(h Handle) (*Mesh, bool) {
	return w.meshes.resolve(h)
}

// ResolveMaterial returns the material h refers to
func (w *World) ResolveMaterial(h Handle) (material.Material, bool) {
	m, ok := w.materials.resolve(h)
	if !ok {
		return nil, false
	}
	return *m, true
}

// ResolveInstance returns the instance h refers to
func (w *World) ResolveInstance(h Handle) (*Instance, bool) {
	return w.instances.resolve(h)
}

// Remove unlinks the entry h refers to and invalidates h. The entry's slot is
// not reclaimed until the world is released.
func (w *World) Remove(h Handle) bool {
	switch h.kind {
	case KindMesh:
		return w.meshes.remove(h)
	case KindMaterial:
		return w.materials.remove(h)
	case KindInstance:
		return w.instances.remove(h)
	default:
		return false
	}
}

// Meshes yields live meshes in insertion order
func (w *World) Meshes() iter.Seq2[Handle, *Mesh] {
	return w.meshes.all()
}

// Materials yields live materials in insertion order
func (w *World) Materials() iter.Seq2[Handle, material.Material] {
	return func(yield func(Handle, material.Material) bool) {
		for h, m := range w.materials.all() {
			if !yield(h, *m) {
				return
			}
		}
	}
}

// Instances yields live instances in insertion order
func (w *World) Instances() iter.Seq2[Handle, *Instance] {
	return w.instances.all()
}

// MeshCount returns the number of live meshes
func (w *World) MeshCount() int { return w.meshes.length }

// MaterialCount returns the number of live materials
func (w *World) MaterialCount() int { return w.materials.length }

// InstanceCount returns the number of live instances
func (w *World) InstanceCount() int { return w.instances.length }

// Release drops every entry. All handles become invalid.
func (w *World) Release() {
	w.meshes.release()
	w.materials.release()
	w.instances.release()
}

// Validate checks every entry and the references between them
func (w *World) Validate() error {
	var err error
	for h, m := range w.Meshes() {
		err = multierr.Append(err, errors.Wrapf(m.Validate(), "%v", h))
	}
	for h, m := range w.Materials() {
		err = multierr.Append(err, errors.Wrapf(m.Validate(), "%v %v", h, m.Kind()))
	}
	for h, inst := range w.Instances() {
		err = multierr.Append(err, errors.Wrapf(w.validateInstance(inst), "%v", h))
	}
	return err
}

func (w *World) validateInstance(inst *Instance) error {
	var err error
	if !inst.Material.IsZero() {
		if _, ok := w.ResolveMaterial(inst.Material); !ok {
			err = multierr.Append(err, errors.Errorf("material %v does not resolve", inst.Material))
		}
	}

	switch s := inst.Shape.(type) {
	case Sphere:
		if !(s.Radius > 0) {
			err = multierr.Append(err, errors.Errorf("sphere radius %v must be positive", s.Radius))
		}
	case MeshShape:
		if _, ok := w.ResolveMesh(s.Mesh); !ok {
			err = multierr.Append(err, errors.Errorf("mesh %v does not resolve", s.Mesh))
		}
		for axis := 0; axis < 3; axis++ {
			if s.Transform.Scale[axis] == 0 {
				err = multierr.Append(err, errors.Errorf("scale %v has a zero component", s.Transform.Scale))
				break
			}
		}
		if l := s.Transform.Rotation.Len(); l < 0.999 || l > 1.001 {
			err = multierr.Append(err, errors.Errorf("rotation %v is not a unit quaternion", s.Transform.Rotation))
		}
	case nil:
		err = multierr.Append(err, errors.New("instance has no shape"))
	default:
		panic(errors.Errorf("unknown shape %T", s))
	}
	return err
}
