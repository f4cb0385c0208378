package sampler

import (
	"errors"
	"fmt"
	"io"

	"github.com/user/droneframes/pkg/ports"
)

// Sample is a kept frame.
type Sample struct {
	Frame ports.VideoFrame
}

// Sampler walks a VideoSource once and yields the frames selected by a Plan.
// It is lazy, finite and cannot be restarted. Closing the source remains the
// caller's responsibility.
type Sampler struct {
	src     ports.VideoSource
	plan    Plan
	started bool
	done    bool
	next    int // absolute index of the next frame to be read
	current Sample
	err     error

	// OnFrame, when set, is called for every frame read inside the range.
	OnFrame func(index int)
}

// New creates a Sampler over src.
func New(src ports.VideoSource, plan Plan) *Sampler {
	return &Sampler{src: src, plan: plan}
}

// Plan returns the plan the sampler follows.
func (s *Sampler) Plan() Plan {
	return s.plan
}

// Next advances to the next kept frame. It returns false when the range or
// the stream is exhausted, or when decoding fails; check Err afterwards.
func (s *Sampler) Next() bool {
	if s.done {
		return false
	}
	if !s.started {
		s.started = true
		if err := s.seekToStart(); err != nil {
			s.fail(err)
			return false
		}
	}

	for {
		if s.plan.EndIndex != NoEnd && s.next >= s.plan.EndIndex {
			s.done = true
			return false
		}

		frame, err := s.src.Next()
		if errors.Is(err, io.EOF) {
			s.done = true
			return false
		}
		if err != nil {
			s.fail(fmt.Errorf("decode frame %d: %w", s.next, err))
			return false
		}

		// Sources that know the absolute index report it; trust ours otherwise.
		if frame.Index < s.next {
			frame.Index = s.next
		}
		s.next = frame.Index + 1

		if !s.plan.InRange(frame.Index) {
			continue
		}
		if s.OnFrame != nil {
			s.OnFrame(frame.Index)
		}
		if s.plan.Keep(frame.Index) {
			s.current = Sample{Frame: frame}
			return true
		}
	}
}

// Sample returns the frame selected by the last successful call to Next.
func (s *Sampler) Sample() Sample {
	return s.current
}

// Err returns the first error encountered, if any.
func (s *Sampler) Err() error {
	return s.err
}

func (s *Sampler) seekToStart() error {
	if s.plan.StartIndex <= 0 {
		return nil
	}
	err := s.src.Seek(s.plan.StartIndex)
	if err == nil {
		s.next = s.plan.StartIndex
		return nil
	}
	if errors.Is(err, ports.ErrSeekUnsupported) {
		// Frames before the start are read and discarded in Next.
		return nil
	}
	return fmt.Errorf("seek to frame %d: %w", s.plan.StartIndex, err)
}

func (s *Sampler) fail(err error) {
	s.err = err
	s.done = true
}
