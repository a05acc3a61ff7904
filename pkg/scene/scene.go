package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

var (
	// DefaultTopColor is the sky color straight up
	DefaultTopColor = core.NewVec3(0.5, 0.7, 1.0)
	// DefaultBottomColor is the sky color straight down
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Shapes       []geometry.Shape      // Objects in the scene, in insertion order
	TopColor     core.Vec3             // Background gradient color straight up
	BottomColor  core.Vec3             // Background gradient color straight down
	CameraConfig renderer.CameraConfig // Camera the scene is meant to be viewed through
}

// New creates an empty scene with the default sky and the given camera
func New(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Shapes:       make([]geometry.Shape, 0),
		TopColor:     DefaultTopColor,
		BottomColor:  DefaultBottomColor,
		CameraConfig: cameraConfig,
	}
}

// Add appends shapes to the scene
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddSphere adds a sphere with the given material and returns it
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, mat)
	s.Add(sphere)
	return sphere
}

// Hit checks the ray against every shape and keeps the closest intersection in rec
func (s *Scene) Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool {
	_, hit := s.HitShape(ray, rayT, rec)
	return hit
}

// HitShape is Hit that also returns the shape owning the closest intersection. On ties the
// earlier shape wins.
func (s *Scene) HitShape(ray core.Ray, rayT core.Interval, rec *material.HitRecord) (geometry.Shape, bool) {
	var nearest geometry.Shape
	closestSoFar := rayT.Max

	for _, shape := range s.Shapes {
		if shape.Hit(ray, rayT.WithMax(closestSoFar), rec) {
			nearest = shape
			closestSoFar = rec.T
		}
	}

	return nearest, nearest != nil
}

// BackgroundColors returns the top and bottom colors of the sky gradient
func (s *Scene) BackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Shapes)
}
