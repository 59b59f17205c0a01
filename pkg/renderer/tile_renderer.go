package renderer

import (
	"github.com/patricklbell/raytracer/pkg/core"
	"github.com/patricklbell/raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	integrator    integrator.Integrator
	cast          CastSettings
	width, height int
}

// NewTileRenderer creates a tile renderer for a width×height image
func NewTileRenderer(integratorInst integrator.Integrator, cast CastSettings, width, height int) *TileRenderer {
	return &TileRenderer{
		integrator: integratorInst,
		cast:       cast,
		width:      width,
		height:     height,
	}
}

// RenderTile writes the mean radiance of every pixel in tile into out, which is
// row-major with the full image width. Tiles never overlap so they may render concurrently.
func (tr *TileRenderer) RenderTile(tile *Tile, out []core.Vec3) RenderStats {
	sampler := core.NewRandomSampler(tile.Random)
	samples := tr.cast.Samples
	invSampleCount := 1 / float32(samples*samples)

	var paths integrator.Stats
	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var c core.Vec3
			for ys := 0; ys < samples; ys++ {
				for xs := 0; xs < samples; xs++ {
					ray := tr.cast.GetRay(x, y, xs, ys, tr.width, tr.height, sampler)
					c = c.Add(tr.integrator.RayColor(ray, tr.cast.IOR, sampler, &paths))
				}
			}
			out[y*tr.width+x] = c.Mul(invSampleCount)
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	stats := RenderStats{
		TotalPixels:  pixels,
		TotalSamples: pixels * samples * samples,
		Tiles:        1,
	}
	stats.addPath(paths)
	return stats
}
