package stdinput

import (
	"bytes"
	"context"
	"encoding/binary"
	"testing"

	"github.com/noriah/showcqt/input"
)

type sumProcessor struct {
	frames int
	sum    float64
}

func (sP *sumProcessor) Process(samples []float64) error {
	sP.frames += len(samples) / 2
	for _, v := range samples {
		sP.sum += v
	}
	return nil
}

func TestSession(t *testing.T) {
	var buf bytes.Buffer
	for x := 0; x < 100; x++ {
		binary.Write(&buf, binary.LittleEndian, [2]float64{0.25, -0.5})
	}

	cfg := input.SessionConfig{
		Device:     Float64,
		FrameSize:  2,
		SampleSize: 32,
		SampleRate: 48000,
	}

	session, err := StdinBackend{}.Start(cfg)
	if err != nil {
		t.Fatal(err)
	}

	// swap the reader so the test does not touch os.Stdin
	session.(*Session).r = &buf

	proc := &sumProcessor{}
	if err := session.Start(context.Background(), proc); err != nil {
		t.Fatal(err)
	}

	if proc.frames != 100 || proc.sum != -25 {
		t.Errorf("got %d frames summing to %g", proc.frames, proc.sum)
	}
}

func TestStartRejectsDevice(t *testing.T) {
	cfg := input.SessionConfig{Device: badDevice{}, FrameSize: 2, SampleSize: 1}

	if _, err := (StdinBackend{}).Start(cfg); err == nil {
		t.Fatal("expected an error for a foreign device")
	}
}

type badDevice struct{}

func (badDevice) String() string { return "bad" }
