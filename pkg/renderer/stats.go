package renderer

import (
	"time"
)

// TileStats contains statistics about a single rendered tile
type TileStats struct {
	Pixels   int           // Number of pixels in the tile
	Samples  int           // Number of camera rays traced
	Duration time.Duration // Wall time spent on the tile
}

// WorkerStats accumulates the work done by one worker
type WorkerStats struct {
	ID       int
	Tiles    int
	Pixels   int
	Samples  int
	Duration time.Duration // Time spent rendering tiles, excluding idle time
}

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width          int
	Height         int
	TotalTiles     int           // Tiles in the grid
	TilesRendered  int           // Tiles actually rendered, fewer than TotalTiles after cancellation
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of samples taken
	AverageSamples float64       // Average samples per rendered pixel
	Duration       time.Duration // Wall time of the whole render
	Workers        []WorkerStats // Per-worker breakdown, indexed by worker id
}

// addTile folds one tile result into the totals
func (rs *RenderStats) addTile(workerID int, stats TileStats) {
	rs.TilesRendered++
	rs.TotalPixels += stats.Pixels
	rs.TotalSamples += stats.Samples

	ws := &rs.Workers[workerID]
	ws.Tiles++
	ws.Pixels += stats.Pixels
	ws.Samples += stats.Samples
	ws.Duration += stats.Duration
}

// finalize calculates derived statistics after all tiles are collected
func (rs *RenderStats) finalize(duration time.Duration) {
	rs.Duration = duration
	if rs.TotalPixels > 0 {
		rs.AverageSamples = float64(rs.TotalSamples) / float64(rs.TotalPixels)
	}
}

// SamplesPerSecond returns the camera ray throughput of the render
func (rs RenderStats) SamplesPerSecond() float64 {
	if rs.Duration <= 0 {
		return 0
	}
	return float64(rs.TotalSamples) / rs.Duration.Seconds()
}

// SamplesPerSecond returns the camera ray throughput of a worker while busy
func (ws WorkerStats) SamplesPerSecond() float64 {
	if ws.Duration <= 0 {
		return 0
	}
	return float64(ws.Samples) / ws.Duration.Seconds()
}
