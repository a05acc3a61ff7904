package output

import (
	"math"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// intensity bounds quantized channel values so that 256*x never reaches 256
var intensity = core.NewInterval(0.000, 0.999)

// PixelEncoder turns accumulated radiance sums into 8-bit gamma-encoded colors
type PixelEncoder struct {
	SamplesPerPixel int
}

// NewPixelEncoder creates an encoder averaging over samplesPerPixel samples
func NewPixelEncoder(samplesPerPixel int) PixelEncoder {
	return PixelEncoder{SamplesPerPixel: samplesPerPixel}
}

// Encode averages sum, applies gamma 2 and quantizes each channel to [0, 255]
func (e PixelEncoder) Encode(sum core.Vec3) (r, g, b uint8) {
	scale := 1.0
	if e.SamplesPerPixel > 0 {
		scale = 1.0 / float64(e.SamplesPerPixel)
	}
	color := sum.Multiply(scale)

	return quantize(linearToGamma(color.X)),
		quantize(linearToGamma(color.Y)),
		quantize(linearToGamma(color.Z))
}

// linearToGamma applies gamma 2. NaN and non-positive values become 0.
func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

func quantize(x float64) uint8 {
	return uint8(256 * intensity.Clamp(x))
}
