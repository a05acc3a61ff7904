package integrator

import "github.com/df07/go-weekend-raytracer/pkg/core"

// panicSampler fails the test if any random number is drawn
type panicSampler struct{}

func (panicSampler) Get1D() float64   { panic("unexpected random draw") }
func (panicSampler) Get2D() core.Vec2 { panic("unexpected random draw") }
func (panicSampler) Get3D() core.Vec3 { panic("unexpected random draw") }
