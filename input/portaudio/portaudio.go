//go:build cgo && portaudio

// Package portaudio reads stereo input through libportaudio.
package portaudio

import (
	"context"

	"github.com/gordonklaus/portaudio"
	"github.com/noriah/showcqt/input"
	"github.com/pkg/errors"
)

var GlobalBackend = &Backend{}

func init() {
	input.RegisterBackend("portaudio", GlobalBackend)
}

// Backend represents the Portaudio backend. A zero-value instance is a
// valid instance.
type Backend struct {
	devices []*portaudio.DeviceInfo
}

func (b *Backend) Init() error {
	return portaudio.Initialize()
}

func (b *Backend) Close() error {
	return portaudio.Terminate()
}

// Devices lists the devices with at least two input channels.
func (b *Backend) Devices() ([]input.Device, error) {
	if b.devices == nil {
		devices, err := portaudio.Devices()
		if err != nil {
			return nil, err
		}
		b.devices = devices
	}

	var gDevices []input.Device
	for _, device := range b.devices {
		if device.MaxInputChannels >= 2 {
			gDevices = append(gDevices, Device{device})
		}
	}

	return gDevices, nil
}

func (b *Backend) DefaultDevice() (input.Device, error) {
	defaultHost, err := portaudio.DefaultHostApi()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get default host API")
	}

	if defaultHost.DefaultInputDevice == nil {
		return nil, errors.New("no default input device found")
	}

	return Device{defaultHost.DefaultInputDevice}, nil
}

func (b *Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	return NewSession(cfg)
}

// Device represents a Portaudio device.
type Device struct {
	*portaudio.DeviceInfo
}

// String returns the device name.
func (d Device) String() string {
	return d.Name
}

// Session is an input source that pulls from Portaudio.
type Session struct {
	stream    *portaudio.Stream
	sampleBuf []float32
	samples   []float64
}

// NewSession opens a blocking stream on the session device.
func NewSession(cfg input.SessionConfig) (*Session, error) {
	dv, ok := cfg.Device.(Device)
	if !ok {
		return nil, errors.Errorf("device is on unknown type %T", cfg.Device)
	}

	param := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dv.DeviceInfo,
			Latency:  dv.DefaultLowInputLatency,
			Channels: cfg.FrameSize,
		},
		SampleRate:      cfg.SampleRate,
		FramesPerBuffer: cfg.SampleSize,
	}

	buffer := make([]float32, cfg.Samples())

	stream, err := portaudio.OpenStream(param, buffer)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open stream")
	}

	return &Session{
		stream:    stream,
		sampleBuf: buffer,
		samples:   make([]float64, len(buffer)),
	}, nil
}

// Start runs the stream until ctx is done. Overflows drop input silently.
func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	if err := s.stream.Start(); err != nil {
		return errors.Wrap(err, "failed to start stream")
	}

	defer s.stream.Close()
	defer s.stream.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := s.stream.Read(); err != nil && err != portaudio.InputOverflowed {
			return errors.Wrap(err, "failed to read stream")
		}

		for x, v := range s.sampleBuf {
			s.samples[x] = float64(v)
		}

		if err := proc.Process(s.samples); err != nil {
			return err
		}
	}
}
