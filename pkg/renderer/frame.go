package renderer

import (
	"image"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Frame holds the accumulated, un-averaged radiance of every pixel, row-major, top row first
type Frame struct {
	Width           int
	Height          int
	SamplesPerPixel int
	Pixels          []core.Vec3
}

// NewFrame creates a black frame
func NewFrame(width, height, samplesPerPixel int) *Frame {
	return &Frame{
		Width:           width,
		Height:          height,
		SamplesPerPixel: samplesPerPixel,
		Pixels:          make([]core.Vec3, width*height),
	}
}

// Bounds returns the pixel rectangle covered by the frame
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At returns the accumulated radiance sum of pixel (x, y)
func (f *Frame) At(x, y int) core.Vec3 {
	return f.Pixels[y*f.Width+x]
}

// Set stores the accumulated radiance sum of pixel (x, y)
func (f *Frame) Set(x, y int, sum core.Vec3) {
	f.Pixels[y*f.Width+x] = sum
}

// Average returns the mean radiance of pixel (x, y)
func (f *Frame) Average(x, y int) core.Vec3 {
	if f.SamplesPerPixel <= 0 {
		return core.Vec3{}
	}
	return f.At(x, y).Divide(float64(f.SamplesPerPixel))
}

// SizeBytes returns the memory held by the pixel buffer
func (f *Frame) SizeBytes() uint64 {
	return FrameSizeBytes(f.Width, f.Height)
}

// FrameSizeBytes returns the pixel buffer size a width x height frame needs
func FrameSizeBytes(width, height int) uint64 {
	const bytesPerPixel = 3 * 8
	return uint64(width) * uint64(height) * bytesPerPixel
}
