package integrator

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/patricklbell/raytracer/pkg/accel"
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/material"
	"github.com/patricklbell/raytracer/pkg/world"
)

var (
	skyHorizon = core.Vec3{1, 1, 1}
	skyZenith  = core.Vec3{0.5, 0.7, 1}
	// Radiance returned for surfaces without a material
	missingMaterial = core.Splat(1)
)

// PathTracingIntegrator implements unidirectional path tracing over a TLAS.
// The world and TLAS must not change while it is in use.
type PathTracingIntegrator struct {
	settings Settings
	tlas     *accel.TLAS
	world    *world.World
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(settings Settings, tlas *accel.TLAS, w *world.World) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		settings: settings,
		tlas:     tlas,
		world:    w,
	}
}

// path is the mutable state of one camera ray's recursive chain
type path struct {
	// ior is a stack of the media the path is inside; ior[0] is the camera medium
	ior     []float32
	sampler core.Sampler
	stats   *Stats
}

// RayColor implements Integrator
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, ior float32, sampler core.Sampler, stats *Stats) core.Vec3 {
	if stats == nil {
		stats = &Stats{}
	}
	p := &path{
		ior:     append(make([]float32, 0, pt.settings.MaxBounces+1), ior),
		sampler: sampler,
		stats:   stats,
	}
	return pt.trace(p, ray, pt.settings.MaxBounces)
}

func (pt *PathTracingIntegrator) trace(p *path, ray core.Ray, depth int) core.Vec3 {
	if l := ray.Direction.LenSqr(); math32.Abs(l-1) >= 1e-3 {
		panic(fmt.Sprintf("ray direction %v is not unit length", ray.Direction))
	}
	if depth <= 0 {
		return core.Vec3{}
	}

	p.stats.Rays++
	hit, ok := pt.tlas.Intersect(ray, core.PositiveInterval())
	if !ok {
		p.stats.Misses++
		return pt.miss(ray)
	}
	p.stats.Hits++
	return pt.closestHit(p, ray, hit, depth)
}

func (pt *PathTracingIntegrator) closestHit(p *path, ray core.Ray, hit accel.Hit, depth int) core.Vec3 {
	if hit.Material.IsZero() {
		return missingMaterial
	}
	mat, ok := pt.world.ResolveMaterial(hit.Material)
	if !ok {
		return missingMaterial
	}

	rec := material.HitRecord{Point: hit.Point, Normal: hit.Normal, T: hit.T}
	if mat.IsBillboard() {
		rec.FaceForward(ray.Direction)
	}

	switch m := mat.(type) {
	case *material.Lambertian:
		incoming := pt.trace(p, m.Scatter(rec, p.sampler), depth-1)
		return m.Shade(incoming)

	case *material.Metal:
		return pt.trace(p, m.Scatter(ray, rec, p.sampler), depth-1)

	case *material.Dielectric:
		return pt.dielectric(p, ray, rec, m, depth)

	case *material.Light:
		return m.Emissive

	case *material.NormalDebug:
		return material.NormalToRadiance(rec.Normal)

	default:
		panic(fmt.Sprintf("unknown material %T", mat))
	}
}

// dielectric scatters at a transparent boundary, keeping the IOR stack in step
// with the media the path is inside for the duration of the recursive trace
func (pt *PathTracingIntegrator) dielectric(p *path, ray core.Ray, rec material.HitRecord, m *material.Dielectric, depth int) core.Vec3 {
	top := len(p.ior) - 1
	etaI := p.ior[top]
	etaOutside := p.ior[max(top-1, 0)]

	s := m.Scatter(ray, rec, etaI, etaOutside, p.sampler)
	if !s.Refracted {
		return pt.trace(p, s.Ray, depth-1).Add(m.Emissive)
	}

	var radiance core.Vec3
	switch {
	case s.Entering:
		p.ior = append(p.ior, s.EtaT)
		radiance = pt.trace(p, s.Ray, depth-1)
		p.ior = p.ior[:len(p.ior)-1]
	case top > 0:
		popped := p.ior[top]
		p.ior = p.ior[:top]
		radiance = pt.trace(p, s.Ray, depth-1)
		p.ior = append(p.ior, popped)
	default:
		// Leaving a volume the path never entered; the camera medium stays
		radiance = pt.trace(p, s.Ray, depth-1)
	}
	return radiance.Add(m.Emissive)
}

// miss returns the background radiance for a ray that hit nothing
func (pt *PathTracingIntegrator) miss(ray core.Ray) core.Vec3 {
	if !pt.settings.Sky {
		return core.Vec3{}
	}
	return SkyRadiance(ray.Direction)
}

// SkyRadiance is a gradient from a white horizon to a blue zenith, darkened
// toward the horizon. Directions at or below the horizon get 0.7 of the
// horizon color.
func SkyRadiance(dir core.Vec3) core.Vec3 {
	y := min(max(dir.Y(), 0), 1)
	t := math32.Sqrt(y)
	return core.Lerp(skyHorizon, skyZenith, t).Mul(0.7 + 0.25*y)
}

var _ Integrator = (*PathTracingIntegrator)(nil)
