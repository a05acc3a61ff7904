package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/integrator"
	"github.com/df07/go-weekend-raytracer/pkg/log"
)

// DefaultSeed seeds the per-tile samplers when no seed is given
const DefaultSeed = 42

// RenderOptions controls how a render is parallelized
type RenderOptions struct {
	Workers  int   // Number of parallel workers (0 = logical core count)
	TileSize int   // Edge length of square tiles (0 = DefaultTileSize)
	Seed     int64 // Base seed for the per-tile samplers

	// Progress, if set, is called after each tile with the number of tiles done so far.
	// It runs on the goroutine that called Render.
	Progress func(tilesDone, tilesTotal int)

	// Logger receives render progress messages (nil = the "renderer" module logger)
	Logger log.Logger
}

// DefaultRenderOptions returns sensible default values
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Workers:  0,
		TileSize: DefaultTileSize,
		Seed:     DefaultSeed,
	}
}

// Raytracer renders a world through a camera into a Frame
type Raytracer struct {
	world      integrator.World
	camera     *Camera
	integrator integrator.Integrator
	options    RenderOptions
	logger     log.Logger
}

// NewRaytracer validates the camera configuration and prepares a render
func NewRaytracer(world integrator.World, config CameraConfig, options RenderOptions) (*Raytracer, error) {
	camera, err := NewCamera(config)
	if err != nil {
		return nil, err
	}

	if options.TileSize < 0 || options.Workers < 0 {
		return nil, fmt.Errorf("%w: tile size and workers must not be negative", ErrInvalidConfig)
	}
	if options.TileSize == 0 {
		options.TileSize = DefaultTileSize
	}
	if options.Workers == 0 {
		options.Workers = DefaultWorkers()
	}

	logger := options.Logger
	if logger == nil {
		logger = log.New("renderer")
	}

	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(),
		options:    options,
		logger:     logger,
	}, nil
}

// Camera returns the camera the raytracer renders through
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Options returns the effective render options
func (rt *Raytracer) Options() RenderOptions {
	return rt.options
}

// Render traces every pixel and returns the accumulated frame. The output is identical for a
// given seed whatever the number of workers. If ctx is cancelled, tiles not yet started are
// skipped and ctx.Err() is returned together with the partial frame.
func (rt *Raytracer) Render(ctx context.Context) (*Frame, RenderStats, error) {
	startTime := time.Now()
	config := rt.camera.Config()
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()

	frame := NewFrame(width, height, config.SamplesPerPixel)
	tiles := NewTileGrid(width, height, rt.options.TileSize)

	tileRenderer := NewTileRenderer(rt.world, rt.integrator, rt.camera, frame, rt.options.Seed)
	workerPool := NewWorkerPool(tileRenderer, len(tiles), rt.options.Workers)

	stats := RenderStats{
		Width:      width,
		Height:     height,
		TotalTiles: len(tiles),
		Workers:    make([]WorkerStats, workerPool.GetNumWorkers()),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	rt.logger.Noticef("rendering %dx%d, %d samples/pixel, depth %d: %d tiles on %d workers",
		width, height, config.SamplesPerPixel, config.MaxDepth, len(tiles), workerPool.GetNumWorkers())

	workerPool.Start(ctx)

	// Submit all tiles as tasks; the queue holds them all
	for taskID, tile := range tiles {
		workerPool.SubmitTask(TileTask{Tile: tile, TaskID: taskID})
	}

	var renderErr error
	for done := 1; done <= len(tiles); done++ {
		result, ok := workerPool.GetResult()
		if !ok {
			break
		}

		if result.Error != nil {
			renderErr = result.Error
		} else {
			stats.addTile(result.WorkerID, result.Stats)
			rt.logger.Debugf("tile %d done by worker %d in %v", result.TaskID, result.WorkerID, result.Stats.Duration)
		}

		if rt.options.Progress != nil {
			rt.options.Progress(done, len(tiles))
		}
	}

	workerPool.Stop()
	stats.finalize(time.Since(startTime))

	if renderErr != nil {
		rt.logger.Warningf("render cancelled after %d of %d tiles: %v", stats.TilesRendered, len(tiles), renderErr)
		return frame, stats, renderErr
	}

	rt.logger.Noticef("render finished in %v (%.0f samples/s)", stats.Duration, stats.SamplesPerSecond())
	return frame, stats, nil
}
