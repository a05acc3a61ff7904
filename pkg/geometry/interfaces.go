package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit reports whether ray meets the shape at a t strictly inside rayT.
// rec is only written when Hit returns true.
type Shape interface {
	Hit(ray core.Ray, rayT core.Interval, rec *material.HitRecord) bool
}
