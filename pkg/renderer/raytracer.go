// Package renderer turns a World into an image: it owns the acceleration
// structures, generates camera rays and renders tiles in parallel.
package renderer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/patricklbell/raytracer/pkg/accel"
	"github.com/patricklbell/raytracer/pkg/arena"
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/integrator"
	"github.com/patricklbell/raytracer/pkg/lbvh"
	"github.com/patricklbell/raytracer/pkg/world"
)

// RenderConfig controls how a render is split into parallel work
type RenderConfig struct {
	TileSize   int   // Size of each tile (64x64 recommended)
	NumWorkers int   // Number of parallel workers (0 = use CPU count)
	Seed       int64 // Seeds every tile's generator; equal seeds give equal images
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Validate checks the tile and worker settings
func (c RenderConfig) Validate() error {
	var err error
	if c.TileSize <= 0 {
		err = multierr.Append(err, errors.Errorf("tile size %d must be positive", c.TileSize))
	}
	if c.NumWorkers < 0 {
		err = multierr.Append(err, errors.Errorf("worker count %d must not be negative", c.NumWorkers))
	}
	return err
}

// Tracer owns the acceleration structures built from a World and renders it.
// BuildBLAS then BuildTLAS must be called, in that order, whenever the world's
// meshes or instances change. The world must not change during Cast.
type Tracer struct {
	settings integrator.Settings
	logger   *zap.SugaredLogger

	blasNodes *arena.Arena[lbvh.Node]
	tlasNodes *arena.Arena[lbvh.Node]
	blas      *accel.BLAS
	tlas      *accel.TLAS
	world     *world.World
	closed    bool
}

// New creates a tracer; it panics if settings are invalid
func New(settings integrator.Settings, logger *zap.SugaredLogger) *Tracer {
	if err := settings.Validate(); err != nil {
		panic(err)
	}
	return &Tracer{
		settings:  settings,
		logger:    logger,
		blasNodes: arena.New[lbvh.Node](0),
		tlasNodes: arena.New[lbvh.Node](0),
	}
}

// BuildBLAS rebuilds one hierarchy per mesh in w. Any TLAS built before is discarded.
func (t *Tracer) BuildBLAS(w *world.World) error {
	if t.closed {
		return errors.New("tracer is closed")
	}
	start := time.Now()

	t.tlas = nil
	t.tlasNodes.Clear()
	t.blasNodes.Clear()

	blas, err := accel.BuildBLAS(t.blasNodes, w)
	if err != nil {
		t.blas = nil
		return errors.Wrap(err, "building BLAS")
	}
	t.blas = blas

	stats := blas.Stats()
	t.logger.Debugw("built BLAS",
		"meshes", len(blas.Nodes),
		"nodes", stats.Nodes,
		"leaves", stats.Leaves,
		"maxDepth", stats.MaxDepth,
		"duration", time.Since(start))
	return nil
}

// BuildTLAS rebuilds the instance hierarchy of w on top of the last BLAS
func (t *Tracer) BuildTLAS(w *world.World) error {
	if t.closed {
		return errors.New("tracer is closed")
	}
	if t.blas == nil {
		return errors.New("BLAS has not been built")
	}
	start := time.Now()

	t.tlasNodes.Clear()
	tlas, err := accel.BuildTLAS(t.tlasNodes, t.blas, w)
	if err != nil {
		t.tlas = nil
		return errors.Wrap(err, "building TLAS")
	}
	t.tlas = tlas
	t.world = w

	stats := tlas.Stats()
	t.logger.Debugw("built TLAS",
		"instances", len(tlas.Nodes),
		"nodes", stats.Nodes,
		"maxDepth", stats.MaxDepth,
		"avgLeafDepth", stats.AvgLeafDepth,
		"duration", time.Since(start))
	return nil
}

// TLAS returns the last instance hierarchy built, or nil
func (t *Tracer) TLAS() *accel.TLAS {
	return t.tlas
}

// BLAS returns the last mesh hierarchies built, or nil
func (t *Tracer) BLAS() *accel.BLAS {
	return t.blas
}

// Cast renders width×height linear radiance values into out, row-major from the
// top-left pixel. Rendering stops early with ctx's error when ctx is cancelled.
func (t *Tracer) Cast(ctx context.Context, cast CastSettings, cfg RenderConfig, out []core.Vec3, width, height int) (RenderStats, error) {
	if t.closed {
		return RenderStats{}, errors.New("tracer is closed")
	}
	if t.tlas == nil {
		return RenderStats{}, errors.New("TLAS has not been built")
	}
	if width <= 0 || height <= 0 {
		return RenderStats{}, errors.Errorf("image size %dx%d must be positive", width, height)
	}
	if len(out) < width*height {
		return RenderStats{}, errors.Errorf("output holds %d pixels, need %d", len(out), width*height)
	}
	if err := multierr.Combine(cast.Validate(), cfg.Validate()); err != nil {
		return RenderStats{}, errors.Wrap(err, "invalid render settings")
	}

	start := time.Now()
	pt := integrator.NewPathTracingIntegrator(t.settings, t.tlas, t.world)
	tr := NewTileRenderer(pt, cast, width, height)
	tiles := NewTileGrid(width, height, cfg.TileSize, cfg.Seed)
	pool := NewWorkerPool(cfg.NumWorkers)

	t.logger.Debugw("rendering",
		"width", width,
		"height", height,
		"samples", cast.Samples*cast.Samples,
		"tiles", len(tiles),
		"workers", pool.GetNumWorkers())

	results, err := pool.Run(ctx, tiles, func(tile *Tile) RenderStats {
		return tr.RenderTile(tile, out)
	})
	if err != nil {
		return RenderStats{}, errors.Wrap(err, "render interrupted")
	}

	var stats RenderStats
	for _, r := range results {
		stats.Add(r.Stats)
	}
	stats.Duration = time.Since(start)

	t.logger.Infow("render complete",
		"pixels", stats.TotalPixels,
		"samples", stats.TotalSamples,
		"rays", stats.Rays,
		"raysPerSample", stats.AverageRaysPerSample(),
		"duration", stats.Duration)
	return stats, nil
}

// Close releases the acceleration structures. The tracer cannot be used afterwards.
func (t *Tracer) Close() {
	t.blasNodes.Release()
	t.tlasNodes.Release()
	t.blas = nil
	t.tlas = nil
	t.world = nil
	t.closed = true
}
