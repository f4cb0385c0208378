// Package framewriter encodes sampled frames and writes them as numbered
// image files.
package framewriter

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
)

// FrameName returns {stem}_frame_{seq:06d}_t{timestampMs}.{ext}.
func FrameName(stem string, seq, timestampMs int, ext string) string {
	return fmt.Sprintf("%s_frame_%06d_t%d.%s", stem, seq, timestampMs, strings.TrimPrefix(ext, "."))
}

// Writer writes the frames of one video into one directory.
type Writer struct {
	fs      ports.FileSystem
	encoder ports.ImageEncoder
	dir     string
	stem    string
	ext     string
	quality int
	maxDim  int

	dirReady bool
}

// New creates a Writer for the frames of the video named stem.
func New(fs ports.FileSystem, encoder ports.ImageEncoder, dir, stem string, cfg pipeline.ExtractionConfig) *Writer {
	return &Writer{
		fs:      fs,
		encoder: encoder,
		dir:     dir,
		stem:    stem,
		ext:     strings.TrimPrefix(cfg.Format, "."),
		quality: cfg.Quality,
		maxDim:  cfg.MaxDimension,
	}
}

// Write encodes img and stores it under the name for seq and timestampMs.
// The output directory is created before the first write.
func (w *Writer) Write(img image.Image, seq, frameIndex, timestampMs int) (pipeline.FrameRecord, error) {
	if !w.dirReady {
		if err := w.fs.MkdirAll(w.dir); err != nil {
			return pipeline.FrameRecord{}, fmt.Errorf("create output directory: %w", err)
		}
		w.dirReady = true
	}

	if w.maxDim > 0 {
		b := img.Bounds()
		nw, nh := FitWithin(b.Dx(), b.Dy(), w.maxDim)
		if nw != b.Dx() || nh != b.Dy() {
			img = w.encoder.ResizeImage(img, nw, nh)
		}
	}

	data, err := w.encoder.EncodeImage(img, w.ext, w.quality)
	if err != nil {
		return pipeline.FrameRecord{}, fmt.Errorf("encode frame %d: %w", frameIndex, err)
	}

	name := FrameName(w.stem, seq, timestampMs, w.ext)
	path := filepath.Join(w.dir, name)
	if err := w.fs.WriteFile(path, data); err != nil {
		return pipeline.FrameRecord{}, fmt.Errorf("write %s: %w", name, err)
	}

	return pipeline.FrameRecord{
		Path:        path,
		Name:        name,
		Sequence:    seq,
		FrameIndex:  frameIndex,
		TimestampMs: timestampMs,
	}, nil
}

// FitWithin returns the size of a w x h image scaled down so its longest side
// is at most maxDim. Sizes already within bounds, or maxDim <= 0, are returned unchanged.
func FitWithin(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}
