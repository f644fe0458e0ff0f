package ffmpeg

import (
	"os"

	"github.com/noriah/showcqt/input"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("ffmpeg-file", File{})
}

// File decodes any media file ffmpeg can read. The file is read at its
// natural pace so the output follows playback.
type File struct{}

func (p File) Init() error {
	return nil
}

func (p File) Close() error {
	return nil
}

// Devices is empty, any readable path is a device.
func (p File) Devices() ([]input.Device, error) {
	return nil, nil
}

func (p File) DefaultDevice() (input.Device, error) {
	return nil, errors.New("no default file; pass a path as the device")
}

// ParseDevice accepts a path to an existing file.
func (p File) ParseDevice(name string) (input.Device, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open input file")
	}

	if info.IsDir() {
		return nil, errors.Errorf("%q is a directory", name)
	}

	return FileDevice{Path: name, Realtime: true}, nil
}

func (p File) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(FileDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	return NewSession(dv, cfg)
}

// FileDevice is a media file.
type FileDevice struct {
	Path string
	// Realtime throttles decoding to the playback rate.
	Realtime bool
}

func (d FileDevice) InputArgs() []string {
	if d.Realtime {
		return []string{"-re", "-i", d.Path}
	}
	return []string{"-i", d.Path}
}

func (d FileDevice) String() string {
	return d.Path
}
