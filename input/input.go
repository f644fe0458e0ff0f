// Package input reads interleaved stereo audio from external sources.
package input

import (
	"context"
	"fmt"
)

// Device is an input device of a backend.
type Device interface {
	fmt.Stringer
}

// SessionConfig is the setup of an input session.
type SessionConfig struct {
	Device     Device  // device to read from
	FrameSize  int     // channels per frame, 2 for the transform
	SampleSize int     // frames per block handed to the processor
	SampleRate float64 // sample rate
}

// Samples returns the number of values in one block.
func (cfg SessionConfig) Samples() int {
	return cfg.SampleSize * cfg.FrameSize
}

// Processor consumes blocks of interleaved samples.
type Processor interface {
	Process(samples []float64) error
}

// Session is a running input.
type Session interface {
	// Start reads until the source ends, the context is done or proc fails.
	// It returns nil at the end of the source.
	Start(ctx context.Context, proc Processor) error
}
