package material

import "github.com/patricklbell/raytracer/pkg/core"

// Light is a surface that only emits
type Light struct {
	Surface
	Emissive core.Vec3
}

// NewLight creates a new emitting material
func NewLight(emissive core.Vec3) *Light {
	return &Light{Emissive: emissive}
}

// Kind implements Material
func (l *Light) Kind() Kind { return KindLight }

func (l *Light) sealed() {}

// Validate implements Material
func (l *Light) Validate() error {
	return validateColor("emissive", l.Emissive)
}

// NormalDebug shades a surface with its normal
type NormalDebug struct {
	Surface
}

// NewNormalDebug creates a new normal visualization material
func NewNormalDebug() *NormalDebug {
	return &NormalDebug{}
}

// Kind implements Material
func (n *NormalDebug) Kind() Kind { return KindNormalDebug }

func (n *NormalDebug) sealed() {}

// Validate implements Material
func (n *NormalDebug) Validate() error { return nil }
