// Package mp4probe reads video stream properties from MP4 and MOV containers
// without decoding any samples.
package mp4probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/droneframes/pkg/ports"
)

// ErrNoVideoTrack is returned when the container has no "vide" track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Prober implements ports.VideoProber for ISO-BMFF files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// Supports reports whether path has an ISO-BMFF extension.
func Supports(path string) bool {
	switch strings.ToLower(strings.TrimPrefix(extOf(path), ".")) {
	case "mp4", "mov", "m4v", "3gp":
		return true
	}
	return false
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

// Probe parses the moov box of path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	if err := ctx.Err(); err != nil {
		return ports.VideoInfo{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	// Lazy mode leaves mdat on disk; only box headers and moov are read.
	mp4File, err := mp4.DecodeFile(f, mp4.WithDecodeMode(mp4.DecModeLazyMdat))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	info, err := FromFile(mp4File)
	if err != nil {
		return ports.VideoInfo{}, err
	}
	info.Container = strings.ToLower(strings.TrimPrefix(extOf(path), "."))
	return info, nil
}

// FromFile extracts VideoInfo from a decoded MP4 file.
func FromFile(mp4File *mp4.File) (ports.VideoInfo, error) {
	// Check fragmented MP4
	if mp4File.IsFragmented() && mp4File.Init != nil && mp4File.Init.Moov != nil {
		moov := mp4File.Init.Moov
		for _, trak := range moov.Traks {
			info, ok := FromTrak(trak)
			if !ok {
				continue
			}
			frames, dur := countFragmentSamples(mp4File, trak.Tkhd.TrackID, moov)
			info.FrameCount = frames
			if dur > 0 && trak.Mdia.Mdhd.Timescale > 0 {
				info.FPS = float64(trak.Mdia.Mdhd.Timescale) / float64(dur)
			}
			return info, nil
		}
	}

	// Check progressive MP4
	if mp4File.Moov != nil {
		for _, trak := range mp4File.Moov.Traks {
			if info, ok := FromTrak(trak); ok {
				return info, nil
			}
		}
	}

	return ports.VideoInfo{}, ErrNoVideoTrack
}

// FromTrak reads codec, size and progressive timing from a single track.
// ok is false when trak is not a video track.
func FromTrak(trak *mp4.TrakBox) (info ports.VideoInfo, ok bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return info, false
	}

	if trak.Tkhd != nil {
		info.Width = int(uint32(trak.Tkhd.Width) >> 16)
		info.Height = int(uint32(trak.Tkhd.Height) >> 16)
	}

	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return info, true
	}
	stbl := trak.Mdia.Minf.Stbl

	if stbl.Stsd != nil {
		for _, child := range stbl.Stsd.Children {
			info.Codec = codecName(child.Type())
			if vse, isVisual := child.(*mp4.VisualSampleEntryBox); isVisual {
				// Sample entry dimensions are the coded size; prefer them over tkhd,
				// which may carry a rotation-adjusted display size.
				if vse.Width > 0 && vse.Height > 0 {
					info.Width = int(vse.Width)
					info.Height = int(vse.Height)
				}
			}
			break
		}
	}

	if stbl.Stsz != nil {
		info.FrameCount = int(stbl.Stsz.SampleNumber)
	}

	var timescale uint32
	if trak.Mdia.Mdhd != nil {
		timescale = trak.Mdia.Mdhd.Timescale
	}
	if timescale > 0 && stbl.Stts != nil {
		var samples, total uint64
		for i, count := range stbl.Stts.SampleCount {
			samples += uint64(count)
			total += uint64(count) * uint64(stbl.Stts.SampleTimeDelta[i])
		}
		if samples > 0 && total > 0 {
			info.FPS = float64(samples) * float64(timescale) / float64(total)
		}
	}

	return info, true
}

// countFragmentSamples returns the number of samples of trackID across all
// fragments and the duration of the first one.
func countFragmentSamples(mp4File *mp4.File, trackID uint32, moov *mp4.MoovBox) (int, uint32) {
	var defaultDur uint32
	if moov.Mvex != nil {
		for _, trex := range moov.Mvex.Trexs {
			if trex.TrackID == trackID {
				defaultDur = trex.DefaultSampleDuration
			}
		}
	}

	count := 0
	var firstDur uint32
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd == nil || traf.Tfhd.TrackID != trackID {
					continue
				}
				for _, trun := range traf.Truns {
					count += int(trun.SampleCount())
					if firstDur == 0 && len(trun.Samples) > 0 {
						firstDur = trun.Samples[0].Dur
					}
				}
				if firstDur == 0 && traf.Tfhd.HasDefaultSampleDuration() {
					firstDur = traf.Tfhd.DefaultSampleDuration
				}
			}
		}
	}
	if firstDur == 0 {
		firstDur = defaultDur
	}
	return count, firstDur
}

func codecName(sampleEntry string) string {
	switch sampleEntry {
	case "avc1", "avc3":
		return "h264"
	case "hvc1", "hev1":
		return "hevc"
	case "av01":
		return "av1"
	case "vp09":
		return "vp9"
	case "mp4v":
		return "mpeg4"
	default:
		return sampleEntry
	}
}

// Ensure Prober implements ports.VideoProber
var _ ports.VideoProber = (*Prober)(nil)
