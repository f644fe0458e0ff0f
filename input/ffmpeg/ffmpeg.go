// Package ffmpeg captures and decodes audio through the ffmpeg binary.
package ffmpeg

import (
	"fmt"

	"github.com/noriah/showcqt/input"
	"github.com/noriah/showcqt/input/common/execread"
)

type FFmpegBackend interface {
	InputArgs() []string
}

// NewSession returns a session decoding the input of b to interleaved f64le.
func NewSession(b FFmpegBackend, cfg input.SessionConfig) (*execread.Session, error) {
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "panic"}
	args = append(args, b.InputArgs()...)
	args = append(args,
		"-ar", fmt.Sprintf("%.0f", cfg.SampleRate),
		"-ac", fmt.Sprintf("%d", cfg.FrameSize),
		"-f", "f64le",
		"-",
	)

	return execread.NewSession(args, false, cfg), nil
}
