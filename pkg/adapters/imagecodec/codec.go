// Package imagecodec encodes sampled frames to still images using the
// imaging library, and downscales them with golang.org/x/image.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/user/droneframes/pkg/ports"
)

// ErrUnsupportedFormat is returned for extensions no encoder is registered for.
var ErrUnsupportedFormat = errors.New("imagecodec: unsupported image format")

// rgbaConverter is implemented by decoder-native images that convert to
// *image.RGBA faster than the encoders can walk them pixel by pixel.
type rgbaConverter interface {
	ToRGBA() *image.RGBA
}

// Codec implements ports.ImageEncoder.
type Codec struct{}

// New creates a new Codec.
func New() *Codec {
	return &Codec{}
}

// EncodeImage encodes img in the format named by ext.
func (c *Codec) EncodeImage(img image.Image, ext string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	if c, ok := img.(rgbaConverter); ok {
		img = c.ToRGBA()
	}

	switch ports.FormatFromExtension(ext) {
	case ports.FormatJPEG:
		if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(ClampQuality(quality))); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		level := PNGCompressionLevel(quality)
		if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(level)); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		format, err := imaging.FormatFromExtension(strings.TrimPrefix(ext, "."))
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
		}
		if err := imaging.Encode(&buf, img, format); err != nil {
			return nil, fmt.Errorf("encode %s: %w", format, err)
		}
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (c *Codec) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// ClampQuality limits a JPEG quality to 1-100.
func ClampQuality(quality int) int {
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}
	return quality
}

// CompressionLevel returns the 0-9 zlib level for a quality: 9 - quality/11.
// Higher quality therefore means faster, lighter compression; PNG stays lossless.
func CompressionLevel(quality int) int {
	level := 9 - ClampQuality(quality)/11
	if level < 0 {
		return 0
	}
	return level
}

// PNGCompressionLevel maps CompressionLevel onto the presets of image/png.
func PNGCompressionLevel(quality int) png.CompressionLevel {
	switch level := CompressionLevel(quality); {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}

// Ensure Codec implements ports.ImageEncoder
var _ ports.ImageEncoder = (*Codec)(nil)
