// Package wavfile reads stereo WAV files without external programs.
package wavfile

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/noriah/showcqt/input"
	"github.com/pkg/errors"
	"github.com/youpy/go-riff"
	"github.com/youpy/go-wav"
)

func init() {
	input.RegisterBackend("wav", Backend{})
}

// Backend plays WAV files. Every readable path is a device.
type Backend struct{}

func (b Backend) Init() error {
	return nil
}

func (b Backend) Close() error {
	return nil
}

func (b Backend) Devices() ([]input.Device, error) {
	return nil, nil
}

func (b Backend) DefaultDevice() (input.Device, error) {
	return nil, errors.New("no default file; pass a path as the device")
}

// ParseDevice accepts a path to an existing file.
func (b Backend) ParseDevice(name string) (input.Device, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input file")
	}

	if info.IsDir() {
		return nil, errors.Errorf("%q is a directory", name)
	}

	return FileDevice{Path: name, Realtime: true}, nil
}

func (b Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(FileDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	file, err := os.Open(dv.Path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input file")
	}

	sess, err := NewSession(file, cfg)
	if err != nil {
		file.Close()
		return nil, err
	}

	sess.closer = file
	sess.realtime = dv.Realtime

	return sess, nil
}

// FileDevice is a WAV file.
type FileDevice struct {
	Path string
	// Realtime throttles reading to the playback rate.
	Realtime bool
}

func (d FileDevice) String() string {
	return d.Path
}

// Session reads blocks of samples from a WAV stream.
type Session struct {
	reader   *wav.Reader
	cfg      input.SessionConfig
	closer   io.Closer
	realtime bool
}

// NewSession checks the stream format against cfg. The stream must hold two
// channels at the session sample rate.
func NewSession(r riff.RIFFReader, cfg input.SessionConfig) (*Session, error) {
	reader := wav.NewReader(r)

	format, err := reader.Format()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read wav format")
	}

	if int(format.NumChannels) != cfg.FrameSize {
		return nil, errors.Errorf("wav has %d channels, want %d", format.NumChannels, cfg.FrameSize)
	}

	if float64(format.SampleRate) != cfg.SampleRate {
		return nil, errors.Errorf("wav sample rate is %d, want %g", format.SampleRate, cfg.SampleRate)
	}

	return &Session{reader: reader, cfg: cfg}, nil
}

// Start reads the file to the end.
func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	if s.closer != nil {
		defer s.closer.Close()
	}

	var tick <-chan time.Time
	if s.realtime {
		period := time.Duration(float64(s.cfg.SampleSize) / s.cfg.SampleRate * float64(time.Second))

		ticker := time.NewTicker(period)
		defer ticker.Stop()

		tick = ticker.C
	}

	buf := make([]float64, s.cfg.Samples())
	channels := uint(s.cfg.FrameSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		samples, err := s.reader.ReadSamples(uint32(s.cfg.SampleSize))
		if err == io.EOF {
			return nil
		}

		if err != nil {
			return errors.Wrap(err, "failed to read wav samples")
		}

		n := 0
		for _, sample := range samples {
			for ch := uint(0); ch < channels; ch++ {
				buf[n] = s.reader.FloatValue(sample, ch)
				n++
			}
		}

		if err := proc.Process(buf[:n]); err != nil {
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
}
