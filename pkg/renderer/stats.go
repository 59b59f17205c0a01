package renderer

import (
	"time"

	"github.com/patricklbell/raytracer/pkg/integrator"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int   // Total number of pixels rendered
	TotalSamples int   // Total number of camera rays cast
	Tiles        int   // Tiles completed
	Rays         int64 // Rays intersected against the TLAS, camera rays included
	Hits         int64
	Misses       int64
	Duration     time.Duration
}

// Add accumulates the counts of other into s. Duration is left alone.
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.Tiles += other.Tiles
	s.Rays += other.Rays
	s.Hits += other.Hits
	s.Misses += other.Misses
}

func (s *RenderStats) addPath(p integrator.Stats) {
	s.Rays += p.Rays
	s.Hits += p.Hits
	s.Misses += p.Misses
}

// AverageRaysPerSample is the mean path length in traced rays
func (s RenderStats) AverageRaysPerSample() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.Rays) / float64(s.TotalSamples)
}

// RaysPerSecond is the TLAS query throughput of the render
func (s RenderStats) RaysPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Duration.Seconds()
}
