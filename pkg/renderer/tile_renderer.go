package renderer

import (
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world      integrator.World
	integrator integrator.Integrator
	camera     *Camera
	frame      *Frame
	seed       int64
}

// NewTileRenderer creates a tile renderer writing into frame
func NewTileRenderer(world integrator.World, integratorInst integrator.Integrator, camera *Camera, frame *Frame, seed int64) *TileRenderer {
	return &TileRenderer{
		world:      world,
		integrator: integratorInst,
		camera:     camera,
		frame:      frame,
		seed:       seed,
	}
}

// RenderTile renders every pixel of tile into the frame. Tiles never overlap, so concurrent calls
// for different tiles write disjoint frame regions.
func (tr *TileRenderer) RenderTile(tile *Tile) TileStats {
	start := time.Now()
	sampler := core.NewSeededSampler(tile.Seed(tr.seed))

	config := tr.camera.Config()
	bounds := tile.Bounds

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			tr.frame.Set(i, j, tr.samplePixel(i, j, sampler, config.SamplesPerPixel, config.MaxDepth))
		}
	}

	pixels := bounds.Dx() * bounds.Dy()
	return TileStats{
		Pixels:   pixels,
		Samples:  pixels * config.SamplesPerPixel,
		Duration: time.Since(start),
	}
}

// samplePixel returns the sum of samplesPerPixel radiance estimates through pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, sampler core.Sampler, samplesPerPixel, maxDepth int) core.Vec3 {
	colorAccum := core.Vec3{X: 0, Y: 0, Z: 0}
	for sample := 0; sample < samplesPerPixel; sample++ {
		ray := tr.camera.GetRay(i, j, sampler)
		colorAccum = colorAccum.Add(tr.integrator.RayColor(ray, tr.world, sampler, maxDepth))
	}
	return colorAccum
}
