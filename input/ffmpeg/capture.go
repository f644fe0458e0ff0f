package ffmpeg

import (
	"bufio"
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/noriah/showcqt/input"
	"github.com/noriah/showcqt/input/common/execread"
	"github.com/pkg/errors"
)

// listDevices runs the device listing of an ffmpeg input format and parses
// its log output.
func listDevices(format string, parse func([]byte) ([]input.Device, error)) ([]input.Device, error) {
	cmd := exec.Command(
		"ffmpeg", "-hide_banner", "-loglevel", "info",
		"-f", format, "-list_devices", "true",
		"-i", "",
	)

	// ffmpeg exits with an error after listing.
	o, _ := cmd.CombinedOutput()

	devices, err := parse(o)
	if err != nil {
		return nil, err
	}

	if len(devices) == 0 {
		// This is completely for visual.
		lines := strings.Split(string(o), "\n")
		for i, line := range lines {
			lines[i] = "\t" + line
		}

		return nil, errors.Errorf("no devices found; ffmpeg output:\n%s", strings.Join(lines, "\n"))
	}

	return devices, nil
}

// trimLogPrefix drops the "[context @ addr] " prefix of an ffmpeg log line.
func trimLogPrefix(text, context string) string {
	if strings.HasPrefix(text, "["+context) {
		if _, rest, ok := strings.Cut(text, "] "); ok {
			return rest
		}
	}
	return text
}

// AVFoundation is the avfoundation input for FFmpeg.
type AVFoundation struct{}

func (p AVFoundation) Init() error {
	return nil
}

func (p AVFoundation) Close() error {
	return nil
}

func (p AVFoundation) Devices() ([]input.Device, error) {
	return listDevices("avfoundation", parseAVFoundation)
}

func parseAVFoundation(o []byte) ([]input.Device, error) {
	var audio bool
	var devices []input.Device

	scanner := bufio.NewScanner(bytes.NewReader(o))
	for scanner.Scan() {
		text := trimLogPrefix(scanner.Text(), "AVFoundation")

		if text == "AVFoundation audio devices:" {
			audio = true
			continue
		}

		// Device lines start with their index in brackets.
		if !strings.HasPrefix(text, "[") {
			audio = false
			continue
		}

		if !audio {
			continue
		}

		index, name, ok := strings.Cut(text, " ")
		if !ok {
			continue
		}

		n, err := strconv.Atoi(strings.Trim(index, "[]"))
		if err != nil {
			return nil, errors.Wrap(err, "failed to parse device index")
		}

		devices = append(devices, AVFoundationDevice{Index: n, Name: name})
	}

	return devices, nil
}

func (p AVFoundation) DefaultDevice() (input.Device, error) {
	return AVFoundationDevice{-1, "default"}, nil
}

func (p AVFoundation) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(AVFoundationDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	return NewSession(dv, cfg)
}

type AVFoundationDevice struct {
	Index int
	Name  string
}

func (d AVFoundationDevice) InputArgs() []string {
	input := "none:default"
	if d.Index > -1 {
		input = fmt.Sprintf("none:%d", d.Index)
	}
	return []string{"-f", "avfoundation", "-i", input}
}

func (d AVFoundationDevice) String() string {
	return fmt.Sprintf("%d:%s", d.Index, d.Name)
}

// DShow is the DirectShow input for FFmpeg on Windows.
type DShow struct{}

func (p DShow) Init() error {
	return nil
}

func (p DShow) Close() error {
	return nil
}

func (p DShow) Devices() ([]input.Device, error) {
	return listDevices("dshow", parseDShow)
}

// parseDShow picks the audio entries out of lines like
// `[dshow @ 0x1] "Microphone (Realtek Audio)" (audio)`.
func parseDShow(o []byte) ([]input.Device, error) {
	var devices []input.Device

	scanner := bufio.NewScanner(bytes.NewReader(o))
	for scanner.Scan() {
		text := trimLogPrefix(scanner.Text(), "dshow")

		if !strings.HasPrefix(text, `"`) {
			continue
		}

		name, kind, ok := strings.Cut(text[1:], `" (`)
		if !ok || !strings.HasPrefix(kind, "audio") {
			continue
		}

		devices = append(devices, DShowDevice{Name: name})
	}

	return devices, nil
}

func (p DShow) DefaultDevice() (input.Device, error) {
	devices, err := p.Devices()
	if err != nil {
		return nil, err
	}
	return devices[0], nil
}

func (p DShow) Start(cfg input.SessionConfig) (input.Session, error) {
	dv, ok := cfg.Device.(DShowDevice)
	if !ok {
		return nil, errors.Errorf("invalid device type %T", cfg.Device)
	}

	return NewDShowSession(dv, cfg), nil
}

// NewDShowSession sets the capture format on the dshow input itself, which
// does not resample.
func NewDShowSession(b FFmpegBackend, cfg input.SessionConfig) *execread.Session {
	args := []string{"ffmpeg", "-hide_banner", "-loglevel", "panic"}
	args = append(args,
		"-f", "dshow", "-audio_buffer_size", "20",
		"-sample_rate", fmt.Sprintf("%.0f", cfg.SampleRate),
		"-channels", fmt.Sprintf("%d", cfg.FrameSize),
	)
	args = append(args, b.InputArgs()...)
	args = append(args, "-f", "f64le", "-")

	return execread.NewSession(args, false, cfg)
}

type DShowDevice struct {
	Name string
}

func (d DShowDevice) InputArgs() []string {
	return []string{"-i", "audio=" + d.Name}
}

func (d DShowDevice) String() string {
	return d.Name
}
