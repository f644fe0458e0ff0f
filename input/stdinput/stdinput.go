// Package stdinput reads raw little endian floats from standard input.
package stdinput

import (
	"context"
	"io"
	"os"

	"github.com/noriah/showcqt/input"
	"github.com/noriah/showcqt/input/common/execread"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("stdin", StdinBackend{})
}

type StdinBackend struct{}

func (b StdinBackend) Init() error {
	return nil
}

func (b StdinBackend) Close() error {
	return nil
}

// Devices lists the accepted sample formats.
func (b StdinBackend) Devices() ([]input.Device, error) {
	return []input.Device{Float32, Float64}, nil
}

func (b StdinBackend) DefaultDevice() (input.Device, error) {
	return Float32, nil
}

func (b StdinBackend) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(StdInputDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	return NewSession(os.Stdin, dv, cfg), nil
}

// StdInputDevice is the sample format on stdin.
type StdInputDevice string

const (
	Float32 StdInputDevice = "f32le"
	Float64 StdInputDevice = "f64le"
)

func (d StdInputDevice) String() string {
	return string(d)
}

type Session struct {
	r   io.Reader
	cfg input.SessionConfig
	// maligned.
	f32mode bool
}

// NewSession returns a session reading from r.
func NewSession(r io.Reader, dv StdInputDevice, cfg input.SessionConfig) *Session {
	return &Session{
		r:       r,
		cfg:     cfg,
		f32mode: dv != Float64,
	}
}

func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	return execread.Stream(ctx, s.r, s.f32mode, s.cfg, proc)
}
