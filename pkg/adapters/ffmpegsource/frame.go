package ffmpegsource

import (
	"image"
	"image/color"
)

// RGB24 is a packed 8-bit RGB image as produced by ffmpeg's rgb24 pixel format.
type RGB24 struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// NewRGB24 wraps pix, which must hold w*h*3 bytes.
func NewRGB24(pix []byte, w, h int) *RGB24 {
	return &RGB24{Pix: pix, Stride: w * 3, Rect: image.Rect(0, 0, w, h)}
}

func (p *RGB24) ColorModel() color.Model { return color.RGBAModel }

func (p *RGB24) Bounds() image.Rectangle { return p.Rect }

func (p *RGB24) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
	return color.RGBA{R: p.Pix[i], G: p.Pix[i+1], B: p.Pix[i+2], A: 0xff}
}

// Opaque reports that every pixel is fully opaque.
func (p *RGB24) Opaque() bool { return true }

// ToRGBA copies the image into a new *image.RGBA.
func (p *RGB24) ToRGBA() *image.RGBA {
	w, h := p.Rect.Dx(), p.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		src := p.Pix[y*p.Stride : y*p.Stride+w*3]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			row[x*4] = src[x*3]
			row[x*4+1] = src[x*3+1]
			row[x*4+2] = src[x*3+2]
			row[x*4+3] = 0xff
		}
	}
	return dst
}
