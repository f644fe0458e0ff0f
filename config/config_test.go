package config

import (
	"testing"

	"github.com/pkg/errors"
)

func TestValidateDefaults(t *testing.T) {
	for _, rate := range []int{44100, 48000} {
		cfg := NewZeroConfig(rate)
		if err := cfg.Validate(); err != nil {
			t.Fatalf("default config for %d rejected: %v", rate, err)
		}
	}
}

func TestValidateDivisibility(t *testing.T) {
	cfg := NewZeroConfig(44101)

	err := cfg.Validate()
	if err == nil {
		t.Fatal("44101 accepted with fps=25 count=6")
	}

	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("error is not ErrInvalid: %v", err)
	}
}

func TestValidateRanges(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"volume", func(c *Config) { c.Volume = 0 }},
		{"timeclamp low", func(c *Config) { c.TimeClamp = 0.05 }},
		{"timeclamp high", func(c *Config) { c.TimeClamp = 1.5 }},
		{"coeffclamp", func(c *Config) { c.CoeffClamp = 11 }},
		{"gamma", func(c *Config) { c.Gamma = 0.5 }},
		{"fps", func(c *Config) { c.FPS = 9 }},
		{"count", func(c *Config) { c.Count = 31 }},
		{"bins", func(c *Config) { c.Bins = 0 }},
		{"rate", func(c *Config) { c.SampleRate = 0 }},
	}

	for _, tt := range tests {
		cfg := NewZeroConfig(48000)
		tt.mod(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

func TestDerived(t *testing.T) {
	cfg := NewZeroConfig(48000)

	if step := cfg.Step(); step != 320 {
		t.Errorf("step: got %d, want 320", step)
	}

	// 48000 * 0.17 = 8160
	if n := cfg.FFTLen(); n != 8192 {
		t.Errorf("fft length: got %d, want 8192", n)
	}

	cfg.SampleRate, cfg.TimeClamp = 16384, 0.5
	if n := cfg.FFTLen(); n != 8192 {
		t.Errorf("exact power of two: got %d, want 8192", n)
	}

	if f := cfg.BinFreq(BinsPerOctave); f != 2*BaseFreq {
		t.Errorf("octave: got %g, want %g", f, 2*BaseFreq)
	}
}
