package showcqt

import (
	"context"

	"github.com/noriah/showcqt/config"
	"github.com/noriah/showcqt/processor"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ChannelCount is the number of channels read from every input. The
// transform packs left and right into one complex buffer.
const ChannelCount = 2

// SetupFunc is called once the engine is built, before the input starts.
type SetupFunc func() error

// StartFunc is called with the run context and may replace it.
type StartFunc func(ctx context.Context) (context.Context, error)

// CleanupFunc is called when the run ends if SetupFunc succeeded.
type CleanupFunc func() error

type Config struct {
	// The name of the backend from the input package
	Backend string
	// The name of the device to pull data from
	Device string
	// The number of frames per input block. 0 reads one hop at a time
	SampleSize int
	// Transform parameters
	Engine config.Config
	// Logger for progress reports. nil uses the standard logger
	Logger logrus.FieldLogger

	// Function to call when setting up the pipeline
	SetupFunc SetupFunc
	// Function to call when starting the pipeline
	StartFunc StartFunc
	// Function to call when cleaning up the pipeline
	CleanupFunc CleanupFunc
	// Where to send the rows of the transform
	Output processor.Output
}

func NewZeroConfig() Config {
	return Config{
		Engine: config.NewZeroConfig(44100),
	}
}

func (cfg *Config) Validate() error {
	if err := cfg.Engine.Validate(); err != nil {
		return err
	}

	if cfg.SampleSize < 0 {
		return errors.Wrapf(config.ErrInvalid, "negative sample size (%d)", cfg.SampleSize)
	}

	if cfg.Output == nil {
		return errors.Wrap(config.ErrInvalid, "no output")
	}

	return nil
}

// blockSize resolves SampleSize.
func (cfg *Config) blockSize() int {
	if cfg.SampleSize > 0 {
		return cfg.SampleSize
	}
	return cfg.Engine.Step()
}
