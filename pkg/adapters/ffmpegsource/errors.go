package ffmpegsource

import "errors"

var (
	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegsource: ffmpeg not found")

	// ErrNoVideoStream is returned when the probe reports no decodable video stream.
	ErrNoVideoStream = errors.New("ffmpegsource: no video stream found")

	// ErrAlreadyStarted is returned by Seek after the first frame has been read.
	ErrAlreadyStarted = errors.New("ffmpegsource: seek after first read")
)
