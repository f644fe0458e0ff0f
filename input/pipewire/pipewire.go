// Package pipewire records through pw-cat.
package pipewire

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/noriah/showcqt/input"
	"github.com/noriah/showcqt/input/common/execread"
	"github.com/pkg/errors"
)

func init() {
	input.RegisterBackend("pipewire", Backend{})
}

type Backend struct{}

func (p Backend) Init() error {
	return nil
}

func (p Backend) Close() error {
	return nil
}

func (p Backend) Devices() ([]input.Device, error) {
	pwObjs, err := pwDump(context.Background())
	if err != nil {
		return nil, err
	}

	return devices(pwObjs), nil
}

func devices(objs pwObjects) []input.Device {
	targets := objs.Filter(isCaptureTarget)

	devices := make([]input.Device, len(targets))
	for i, node := range targets {
		devices[i] = AudioDevice{node.Info.Props.NodeName}
	}

	return devices
}

func (p Backend) DefaultDevice() (input.Device, error) {
	return AudioDevice{"auto"}, nil
}

func (p Backend) Start(cfg input.SessionConfig) (input.Session, error) {
	return NewSession(cfg)
}

type AudioDevice struct {
	name string
}

func (d AudioDevice) String() string {
	return d.name
}

// NewSession creates a new PipeWire session.
func NewSession(cfg input.SessionConfig) (*execread.Session, error) {
	dv, ok := cfg.Device.(AudioDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	// pw-cat 1.4.0 introduces explicit stdout support, needs --raw arg
	// see https://gitlab.freedesktop.org/pipewire/pipewire/-/issues/4629#top
	useRawArg, err := checkNeedRawArg()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check need of pipewire '--raw' arg")
	}

	return execread.NewSession(recordArgs(dv, cfg, useRawArg), true, cfg), nil
}

func recordArgs(dv AudioDevice, cfg input.SessionConfig, raw bool) []string {
	args := []string{
		"pw-cat",
		"--record",
		"--format", "f32",
		"--rate", fmt.Sprint(cfg.SampleRate),
		"--latency", fmt.Sprint(cfg.SampleSize),
		"--channels", fmt.Sprint(cfg.FrameSize),
		"--target", dv.name,
		"--quality", "0",
		"--media-category", "Capture",
		"--media-role", "DSP",
		"-P", "{ stream.capture.sink=true application.name=showcqt }",
	}

	if raw {
		args = append(args, "--raw")
	}

	// output to STDOUT
	return append(args, "-")
}

func checkNeedRawArg() (bool, error) {
	out, err := exec.Command("pw-cat", "--help").Output()
	if err != nil {
		return false, err
	}

	return strings.Contains(string(out), "--raw"), nil
}
