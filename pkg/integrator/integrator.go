// Package integrator implements the recursive path-tracing kernel
package integrator

import (
	"github.com/pkg/errors"

	"github.com/patricklbell/raytracer/pkg/core"
)

// MaxMaxBounces bounds the recursion depth any Settings may request
const MaxMaxBounces = 128

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along a camera ray that starts in a
	// medium with index of refraction ior. Counts are accumulated into stats.
	RayColor(ray core.Ray, ior float32, sampler core.Sampler, stats *Stats) core.Vec3
}

// Settings configures the path tracer
type Settings struct {
	MaxBounces int  // recursion depth of each camera ray
	Sky        bool // shade misses with the analytic sky instead of black
}

// DefaultSettings returns the settings the demos render with
func DefaultSettings() Settings {
	return Settings{
		MaxBounces: 8,
		Sky:        true,
	}
}

// Validate checks the bounce limit
func (s Settings) Validate() error {
	if s.MaxBounces <= 0 || s.MaxBounces >= MaxMaxBounces {
		return errors.Errorf("max bounces %d must be in [1, %d)", s.MaxBounces, MaxMaxBounces)
	}
	return nil
}

// Stats counts the work done while tracing
type Stats struct {
	Rays   int64 // rays that reached the intersection test
	Hits   int64
	Misses int64
}

// Add accumulates other into s
func (s *Stats) Add(other Stats) {
	s.Rays += other.Rays
	s.Hits += other.Hits
	s.Misses += other.Misses
}
