package mocks

import (
	"image"
	"sync"

	"github.com/user/droneframes/pkg/ports"
)

// ImageEncoder is a mock implementation of ports.ImageEncoder.
// It is safe for concurrent use by batch workers.
type ImageEncoder struct {
	mu sync.Mutex

	EncodeImageFunc func(img image.Image, ext string, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image

	// Recorded calls for verification
	EncodeCalls []EncodeCall
	ResizeCalls []ResizeCall
}

// NewImageEncoder creates a mock encoder that returns a minimal JPEG payload.
func NewImageEncoder() *ImageEncoder {
	return &ImageEncoder{}
}

// EncodeCall records a call to EncodeImage.
type EncodeCall struct {
	Ext     string
	Quality int
	Width   int
	Height  int
}

// ResizeCall records a call to ResizeImage.
type ResizeCall struct {
	Width  int
	Height int
}

func (m *ImageEncoder) EncodeImage(img image.Image, ext string, quality int) ([]byte, error) {
	b := img.Bounds()
	m.mu.Lock()
	m.EncodeCalls = append(m.EncodeCalls, EncodeCall{Ext: ext, Quality: quality, Width: b.Dx(), Height: b.Dy()})
	m.mu.Unlock()
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, ext, quality)
	}
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}, nil
}

func (m *ImageEncoder) ResizeImage(img image.Image, width, height int) image.Image {
	m.mu.Lock()
	m.ResizeCalls = append(m.ResizeCalls, ResizeCall{Width: width, Height: height})
	m.mu.Unlock()
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.ImageEncoder = (*ImageEncoder)(nil)
