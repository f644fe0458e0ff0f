// Package showcqt runs a constant-q transform of an audio input into an
// output, one row per transform step.
package showcqt

import (
	"context"

	"github.com/noriah/showcqt/input"
	"github.com/noriah/showcqt/processor"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Run builds the transform, starts the input and feeds it until the input
// ends or ctx is done. A finished input is drained before Run returns.
func Run(ctx context.Context, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	// PROCESSOR SETUP

	proc, err := processor.New(ctx, cfg.Engine, cfg.Output, log)
	if err != nil {
		return err
	}

	// INPUT SETUP

	backend, err := input.InitBackend(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	sessConfig := input.SessionConfig{
		FrameSize:  ChannelCount,
		SampleSize: cfg.blockSize(),
		SampleRate: float64(cfg.Engine.SampleRate),
	}

	if sessConfig.Device, err = input.GetDevice(backend, cfg.Device); err != nil {
		return err
	}

	audio, err := backend.Start(sessConfig)
	if err != nil {
		return errors.Wrap(err, "failed to start the input backend")
	}

	// OUTPUT SETUP

	if cfg.SetupFunc != nil {
		if err := cfg.SetupFunc(); err != nil {
			return err
		}
	}

	if cfg.CleanupFunc != nil {
		defer func() {
			if err := cfg.CleanupFunc(); err != nil {
				log.WithError(err).Warn("cleanup failed")
			}
		}()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.StartFunc != nil {
		if ctx, err = cfg.StartFunc(ctx); err != nil {
			return err
		}
	}

	log.WithFields(logrus.Fields{
		"backend": cfg.Backend,
		"device":  sessConfig.Device.String(),
		"rate":    cfg.Engine.SampleRate,
	}).Info("starting input")

	if err := audio.Start(ctx, proc); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "failed to run input session")
	}

	if ctx.Err() != nil {
		return nil
	}

	if err := proc.Drain(); !errors.Is(err, processor.ErrInputExhausted) {
		return errors.Wrap(err, "failed to drain")
	}

	log.WithFields(logrus.Fields{
		"steps":  proc.Steps(),
		"frames": proc.Frames(),
	}).Info("input finished")

	return nil
}
