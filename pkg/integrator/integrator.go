package integrator

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// World is what an integrator needs from a scene.
// Implementations must be safe for concurrent reads.
type World interface {
	// Hit finds the nearest intersection strictly inside rayT and stores it in rec
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool
	// BackgroundColors returns the sky gradient seen by rays that escape the scene
	BackgroundColors() (topColor, bottomColor core.Vec3)
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance carried back along ray, following at most depth bounces
	RayColor(ray core.Ray, world World, sampler core.Sampler, depth int) core.Vec3
}
