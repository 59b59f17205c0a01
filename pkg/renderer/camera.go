package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/patricklbell/raytracer/pkg/core"
)

// MaxSamples bounds the per-axis sample count; a pixel takes MaxSamples² rays at most
const MaxSamples = 255

// CameraConfig describes a camera by where it is and what it looks at
type CameraConfig struct {
	Center       core.Vec3 // Eye position
	LookAt       core.Vec3 // Point in focus
	VFov         float32   // Vertical field of view in degrees, 45 when zero
	DefocusAngle float32   // Cone angle in degrees of rays through each pixel, 0 for a pinhole
	Orthographic bool
}

// CastSettings is the camera basis and sampling setup used to generate camera rays
type CastSettings struct {
	Eye      core.Vec3
	Up       core.Vec3
	Forward  core.Vec3
	Right    core.Vec3
	Viewport core.Vec3 // width and height of the focus plane, then the distance to it

	Samples int     // per axis; each pixel averages Samples² rays
	IOR     float32 // index of refraction of the medium around the camera

	Defocus      bool
	DefocusDisk  core.Vec2 // lens radius along Right and Up
	Orthographic bool
}

// NewCastSettings derives the camera basis and viewport from cfg for a width×height image
func NewCastSettings(cfg CameraConfig, width, height, samples int) CastSettings {
	d := cfg.LookAt.Sub(cfg.Center)
	up := core.Vec3{0, 1, 0}
	forward := d.Normalize()
	right := forward.Cross(up)
	// Left unnormalized when forward is vertical so Validate can reject it
	if right.LenSqr() > core.Epsilon {
		right = right.Normalize()
		up = right.Cross(forward)
	}

	aspect := float32(width) / float32(height)
	vfov := cfg.VFov
	if vfov <= 0 {
		vfov = 45
	}
	focusDistance := d.Len()

	h := math32.Tan(mgl32.DegToRad(vfov) / 2)
	focusPlaneHeight := 2 * h * focusDistance
	defocusRadius := focusDistance * math32.Tan(mgl32.DegToRad(cfg.DefocusAngle)/2)

	return CastSettings{
		Eye:          cfg.Center,
		Up:           up,
		Forward:      forward,
		Right:        right,
		Viewport:     core.Vec3{focusPlaneHeight * aspect, focusPlaneHeight, focusDistance},
		Samples:      samples,
		IOR:          1,
		Defocus:      cfg.DefocusAngle > 0,
		DefocusDisk:  core.Vec2{defocusRadius, defocusRadius},
		Orthographic: cfg.Orthographic,
	}
}

// Validate reports every problem with the settings
func (s CastSettings) Validate() error {
	var err error
	if s.Samples < 1 || s.Samples > MaxSamples {
		err = multierr.Append(err, errors.Errorf("samples %d must be in [1, %d]", s.Samples, MaxSamples))
	}
	if !(s.IOR > 0) {
		err = multierr.Append(err, errors.Errorf("camera index of refraction %v must be positive", s.IOR))
	}
	if !core.IsFinite(s.Viewport) || !(s.Viewport.X() > 0 && s.Viewport.Y() > 0 && s.Viewport.Z() > 0) {
		err = multierr.Append(err, errors.Errorf("viewport %v must be positive", s.Viewport))
	}
	if !core.IsFinite(s.Forward) || math32.Abs(s.Forward.LenSqr()-1) >= 1e-3 {
		err = multierr.Append(err, errors.Errorf("forward %v is not unit length", s.Forward))
	}
	if s.Right.LenSqr() <= core.Epsilon {
		err = multierr.Append(err, errors.New("forward is parallel to up"))
	}
	return err
}

// GetRay generates the camera ray for sub-sample (xs, ys) of pixel (x, y) in a
// width×height image. (0,0) is the top-left pixel. Sub-samples are jittered
// within their stratum when Samples > 1 and centered otherwise.
func (s CastSettings) GetRay(x, y, xs, ys, width, height int, sampler core.Sampler) core.Ray {
	xStratum := 1 / float32(width*s.Samples)
	yStratum := 1 / float32(height*s.Samples)

	jitter := core.Vec2{0.5, 0.5}
	if s.Samples > 1 {
		jitter = sampler.Get2D()
	}
	xNorm := float32(x)/float32(width) + (float32(xs)+jitter.X())*xStratum
	yNorm := float32(y)/float32(height) + (float32(ys)+jitter.Y())*yStratum

	// Offset from the focus plane center in units of the full viewport
	ndc := core.Vec3{xNorm - 0.5, 0.5 - yNorm, 1}
	view := core.MulElem(ndc, s.Viewport)

	sample := s.Eye.
		Add(s.Right.Mul(view.X())).
		Add(s.Up.Mul(view.Y())).
		Add(s.Forward.Mul(view.Z()))

	origin := s.Eye
	if s.Orthographic {
		origin = sample.Sub(s.Forward)
	}
	if s.Defocus {
		disk := core.SamplePointInUnitDisk(sampler.Get2D())
		origin = origin.
			Add(s.Right.Mul(disk.X() * s.DefocusDisk.X())).
			Add(s.Up.Mul(disk.Y() * s.DefocusDisk.Y()))
	}

	return core.NewRay(origin, sample.Sub(origin).Normalize())
}
