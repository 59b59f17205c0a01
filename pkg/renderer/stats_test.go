package renderer

import (
	"testing"
	"time"

	"go.viam.com/test"
)

func TestRenderStats(t *testing.T) {
	var total RenderStats
	total.Add(RenderStats{TotalPixels: 4, TotalSamples: 16, Tiles: 1, Rays: 40, Hits: 30, Misses: 10})
	total.Add(RenderStats{TotalPixels: 2, TotalSamples: 8, Tiles: 1, Rays: 8, Hits: 0, Misses: 8, Duration: time.Hour})

	test.That(t, total, test.ShouldResemble, RenderStats{TotalPixels: 6, TotalSamples: 24, Tiles: 2, Rays: 48, Hits: 30, Misses: 18})
	test.That(t, total.AverageRaysPerSample(), test.ShouldEqual, 2.0)
	test.That(t, total.RaysPerSecond(), test.ShouldEqual, 0.0)

	total.Duration = 2 * time.Second
	test.That(t, total.RaysPerSecond(), test.ShouldEqual, 24.0)
	test.That(t, RenderStats{}.AverageRaysPerSample(), test.ShouldEqual, 0.0)
}
