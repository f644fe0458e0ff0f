// Package config holds the parameters of the constant-q transform engine.
package config

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
)

// ErrInvalid is returned (wrapped) for any configuration the engine can not
// run with. It is raised before anything is allocated.
var ErrInvalid = errors.New("invalid configuration")

// Defaults taken from the showcqt filter.
const (
	// BaseFreq is the center frequency of bin 0.
	BaseFreq = 20.051392800492

	// BinsPerSemitone is the number of bins in each semitone.
	BinsPerSemitone = 16

	// BinsPerOctave is the number of bins between a frequency and its double.
	BinsPerOctave = BinsPerSemitone * 12

	// DefaultBins covers 10 octaves, one bin per column of a full hd frame.
	DefaultBins = BinsPerOctave * 10

	// CoeffClampScale scales CoeffClamp into a fraction of kernel magnitude.
	CoeffClampScale = 1.0e-4
)

// Config is the engine configuration.
type Config struct {
	// SampleRate is the rate of the input feed in Hz.
	SampleRate int
	// Volume scales every kernel. Power scales with Volume squared.
	Volume float64
	// TimeClamp is the longest window in seconds. Lower is more time
	// accurate, higher is more frequency accurate at low frequencies.
	TimeClamp float64
	// CoeffClamp trades kernel precision for speed. Lower is more precise.
	CoeffClamp float64
	// Gamma is the intensity curve. Lower is more contrast, higher is more
	// range.
	Gamma float64
	// FPS is the number of rows emitted as frames every second.
	FPS int
	// Count is the number of transforms per frame.
	Count int
	// BaseFreq is the center frequency of the first bin.
	BaseFreq float64
	// Bins is the number of output bins.
	Bins int
	// Workers is the number of goroutines building kernels. 0 uses GOMAXPROCS.
	Workers int
}

// NewZeroConfig returns the default config for a sample rate.
func NewZeroConfig(sampleRate int) Config {
	return Config{
		SampleRate: sampleRate,
		Volume:     16,
		TimeClamp:  0.17,
		CoeffClamp: 1,
		Gamma:      3,
		FPS:        25,
		Count:      6,
		BaseFreq:   BaseFreq,
		Bins:       DefaultBins,
	}
}

// Validate checks ranges and that the hop size is a whole number of samples.
func (cfg *Config) Validate() error {
	switch {
	case cfg.SampleRate <= 0:
		return errors.Wrapf(ErrInvalid, "sample rate must be positive (%d)", cfg.SampleRate)

	case cfg.Volume <= 0 || cfg.Volume > 100:
		return errors.Wrapf(ErrInvalid, "volume out of range (0, 100] (%g)", cfg.Volume)

	case cfg.TimeClamp < 0.1 || cfg.TimeClamp > 1.0:
		return errors.Wrapf(ErrInvalid, "timeclamp out of range [0.1, 1] (%g)", cfg.TimeClamp)

	case cfg.CoeffClamp < 0.1 || cfg.CoeffClamp > 10:
		return errors.Wrapf(ErrInvalid, "coeffclamp out of range [0.1, 10] (%g)", cfg.CoeffClamp)

	case cfg.Gamma < 1 || cfg.Gamma > 7:
		return errors.Wrapf(ErrInvalid, "gamma out of range [1, 7] (%g)", cfg.Gamma)

	case cfg.FPS < 10 || cfg.FPS > 100:
		return errors.Wrapf(ErrInvalid, "fps out of range [10, 100] (%d)", cfg.FPS)

	case cfg.Count < 1 || cfg.Count > 30:
		return errors.Wrapf(ErrInvalid, "count out of range [1, 30] (%d)", cfg.Count)

	case cfg.BaseFreq <= 0:
		return errors.Wrapf(ErrInvalid, "base frequency must be positive (%g)", cfg.BaseFreq)

	case cfg.Bins < 1:
		return errors.Wrapf(ErrInvalid, "too few bins (%d)", cfg.Bins)

	case cfg.Workers < 0:
		return errors.Wrapf(ErrInvalid, "negative worker count (%d)", cfg.Workers)
	}

	if rate := cfg.FPS * cfg.Count; cfg.SampleRate%rate != 0 {
		return errors.Wrapf(ErrInvalid,
			"rate (%d) is not divisible by fps*count (%d*%d)", cfg.SampleRate, cfg.FPS, cfg.Count)
	}

	if cfg.Step() > cfg.FFTLen() {
		return errors.Wrapf(ErrInvalid,
			"hop size (%d) larger than transform (%d)", cfg.Step(), cfg.FFTLen())
	}

	return nil
}

// MaxLen is the window length ceiling in samples.
func (cfg *Config) MaxLen() float64 {
	return float64(cfg.SampleRate) * cfg.TimeClamp
}

// FFTBits is the log2 of the transform length: the smallest power of two not
// below MaxLen.
func (cfg *Config) FFTBits() int {
	bits := int(math.Ceil(math.Log2(cfg.MaxLen())))
	if bits < 1 {
		return 1
	}
	return bits
}

// FFTLen is the transform length.
func (cfg *Config) FFTLen() int {
	return 1 << cfg.FFTBits()
}

// Step is the hop size, the number of new samples between transforms.
func (cfg *Config) Step() int {
	return cfg.SampleRate / (cfg.FPS * cfg.Count)
}

// WorkerCount resolves Workers.
func (cfg *Config) WorkerCount() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// BinFreq returns the center frequency of bin k.
func (cfg *Config) BinFreq(k int) float64 {
	return cfg.BaseFreq * math.Exp2(float64(k)/BinsPerOctave)
}
