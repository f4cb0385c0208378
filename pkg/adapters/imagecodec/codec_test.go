package imagecodec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// createTestImage creates a simple gradient image.
func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / width), G: uint8(y * 255 / height), B: 128, A: 255})
		}
	}
	return img
}

func TestCodec_EncodeJPEG(t *testing.T) {
	codec := New()
	img := createTestImage(64, 48)

	for _, ext := range []string{"jpg", "jpeg", ".JPG"} {
		data, err := codec.EncodeImage(img, ext, 95)
		if err != nil {
			t.Fatalf("EncodeImage(%s) failed: %v", ext, err)
		}
		decoded, err := jpeg.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("output of %s is not JPEG: %v", ext, err)
		}
		if decoded.Bounds().Dx() != 64 || decoded.Bounds().Dy() != 48 {
			t.Errorf("unexpected size %v", decoded.Bounds())
		}
	}
}

func TestCodec_JPEGQualityAffectsSize(t *testing.T) {
	codec := New()
	img := createTestImage(128, 128)

	low, err := codec.EncodeImage(img, "jpg", 10)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	high, err := codec.EncodeImage(img, "jpg", 100)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(low) >= len(high) {
		t.Errorf("expected quality 10 (%d bytes) to be smaller than quality 100 (%d bytes)", len(low), len(high))
	}
}

func TestCodec_EncodePNG(t *testing.T) {
	codec := New()

	data, err := codec.EncodeImage(createTestImage(32, 32), "png", 95)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not PNG: %v", err)
	}
}

func TestCodec_OtherFormatUsesDefaults(t *testing.T) {
	codec := New()

	data, err := codec.EncodeImage(createTestImage(16, 16), "bmp", 50)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("BM")) {
		t.Error("expected BMP header")
	}
}

func TestCodec_UnknownFormat(t *testing.T) {
	_, err := New().EncodeImage(createTestImage(4, 4), "webp", 90)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCompressionLevel(t *testing.T) {
	tests := []struct {
		quality int
		want    int
		preset  png.CompressionLevel
	}{
		{100, 0, png.NoCompression},
		{95, 1, png.BestSpeed},
		{66, 3, png.BestSpeed},
		{50, 5, png.DefaultCompression},
		{30, 7, png.BestCompression},
		{1, 9, png.BestCompression},
		{0, 9, png.BestCompression},
	}
	for _, tt := range tests {
		if got := CompressionLevel(tt.quality); got != tt.want {
			t.Errorf("CompressionLevel(%d) = %d, want %d", tt.quality, got, tt.want)
		}
		if got := PNGCompressionLevel(tt.quality); got != tt.preset {
			t.Errorf("PNGCompressionLevel(%d) = %d, want %d", tt.quality, got, tt.preset)
		}
	}
}

func TestCodec_ResizeImage(t *testing.T) {
	resized := New().ResizeImage(createTestImage(200, 100), 100, 50)
	if resized.Bounds().Dx() != 100 || resized.Bounds().Dy() != 50 {
		t.Errorf("unexpected size %v", resized.Bounds())
	}
}
