package ports

import (
	"image"
	"strings"
)

// ImageEncoder abstracts still image encoding.
type ImageEncoder interface {
	// EncodeImage encodes an image in the format named by ext (e.g. "jpg", "png").
	// Quality is 1-100; PNG derives its compression level from it and other
	// formats use the encoder defaults.
	EncodeImage(img image.Image, ext string, quality int) ([]byte, error)

	// ResizeImage resizes an image to the specified dimensions.
	ResizeImage(img image.Image, width, height int) image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	// FormatOther covers extensions without dedicated settings; encoder defaults apply.
	FormatOther ImageFormat = iota
	FormatJPEG
	FormatPNG
)

// String returns the canonical name of the format.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatPNG:
		return "png"
	default:
		return "other"
	}
}

// FormatFromExtension maps a file extension (with or without the dot) to an ImageFormat.
func FormatFromExtension(ext string) ImageFormat {
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG
	case "png":
		return FormatPNG
	default:
		return FormatOther
	}
}
