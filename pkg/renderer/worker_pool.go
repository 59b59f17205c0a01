package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders tiles in parallel with a bounded number of goroutines
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool; numWorkers <= 0 uses one worker per CPU
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every tile with render and returns the results indexed like tiles.
// Cancelling ctx stops tiles that have not started; tiles in flight finish.
func (wp *WorkerPool) Run(ctx context.Context, tiles []*Tile, render func(*Tile) RenderStats) ([]TileResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	results := make([]TileResult, len(tiles))
	for i, tile := range tiles {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = TileResult{TaskID: tile.ID, Stats: render(tile)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Scheduling stops on cancellation without any tile returning an error
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
