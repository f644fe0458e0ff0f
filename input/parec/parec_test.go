package parec

import (
	"slices"
	"testing"

	"github.com/noriah/showcqt/input"
)

func TestNewSession(t *testing.T) {
	cfg := input.SessionConfig{
		Device:     PulseDevice("alsa_output.monitor"),
		FrameSize:  2,
		SampleSize: 320,
		SampleRate: 48000,
	}

	session, err := NewSession(cfg)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"parec", "--format=float32le", "--rate=48000", "--channels=2",
		"--latency=2560", "-d", "alsa_output.monitor",
	}

	if got := session.Argv(); !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	cfg.FrameSize = 1
	if _, err := NewSession(cfg); err == nil {
		t.Error("mono session accepted")
	}
}
