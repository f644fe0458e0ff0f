package main

import (
	"github.com/noriah/showcqt/config"
	"github.com/noriah/showcqt/input"
	"github.com/pkg/errors"
)

// options holds the command line parameters
type options struct {
	// backend is the backend name from list-backends
	backend string
	// device is the device name from list-devices
	device string
	// sampleSize is the number of frames read at a time. 0 reads one hop
	sampleSize int
	// raw prints numbers instead of drawing
	raw bool
	// rawColumns is the number of numbers printed per frame
	rawColumns int
	// verbose turns on debug logging
	verbose bool
	// engine is the transform setup
	engine config.Config
}

// newOptions returns the default command options.
func newOptions() options {
	return options{
		backend:    input.DefaultBackend(),
		rawColumns: 50,
		engine:     config.NewZeroConfig(44100),
	}
}

func (cfg *options) validate() error {
	if cfg.backend == "" {
		return errors.New("no backend available, pass one with -b")
	}

	if cfg.rawColumns < 1 {
		return errors.Errorf("too few raw columns (%d)", cfg.rawColumns)
	}

	if cfg.sampleSize < 0 {
		return errors.Errorf("negative sample size (%d)", cfg.sampleSize)
	}

	return cfg.engine.Validate()
}
