package output

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned for output paths whose extension has no encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// Image format names, matching the file extensions they are written with
const (
	FormatPPM  = "ppm"
	FormatPNG  = "png"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// WritePPM writes frame as a plain-text P3 PPM image, one "r g b" line per pixel
func WritePPM(w io.Writer, frame *renderer.Frame) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", frame.Width, frame.Height)

	encoder := NewPixelEncoder(frame.SamplesPerPixel)
	for _, sum := range frame.Pixels {
		r, g, b := encoder.Encode(sum)
		fmt.Fprintf(bw, "%d %d %d\n", r, g, b)
	}

	return bw.Flush()
}

// RGBStream returns the encoded frame as packed R, G, B bytes, row-major top row first
func RGBStream(frame *renderer.Frame) []byte {
	encoder := NewPixelEncoder(frame.SamplesPerPixel)
	stream := make([]byte, 0, 3*len(frame.Pixels))
	for _, sum := range frame.Pixels {
		r, g, b := encoder.Encode(sum)
		stream = append(stream, r, g, b)
	}
	return stream
}

// ToImage converts frame into an opaque RGBA image
func ToImage(frame *renderer.Frame) *image.RGBA {
	img := image.NewRGBA(frame.Bounds())
	encoder := NewPixelEncoder(frame.SamplesPerPixel)

	for y := 0; y < frame.Height; y++ {
		for x := 0; x < frame.Width; x++ {
			r, g, b := encoder.Encode(frame.At(x, y))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	return img
}

// FormatFromPath returns the image format implied by the extension of path
func FormatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		return FormatPPM, nil
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".tif", ".tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

// Encode writes frame to w in the named format
func Encode(w io.Writer, frame *renderer.Frame, format string) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, frame)
	case FormatPNG:
		return png.Encode(w, ToImage(frame))
	case FormatBMP:
		return bmp.Encode(w, ToImage(frame))
	case FormatTIFF:
		return tiff.Encode(w, ToImage(frame), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}

// Save writes frame to path, choosing the encoder from the file extension
func Save(path string, frame *renderer.Frame) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := Encode(f, frame, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s image: %w", format, err)
	}
	return f.Close()
}
