package wavfile

import (
	"bytes"
	"context"
	"testing"

	"github.com/noriah/showcqt/input"
	"github.com/youpy/go-wav"
)

type sumProcessor struct {
	blocks      int
	left, right []float64
}

func (p *sumProcessor) Process(samples []float64) error {
	p.blocks++
	for x := 0; x < len(samples); x += 2 {
		p.left = append(p.left, samples[x])
		p.right = append(p.right, samples[x+1])
	}
	return nil
}

func writeWav(t *testing.T, frames int, rate uint32) *bytes.Reader {
	t.Helper()

	samples := make([]wav.Sample, frames)
	for i := range samples {
		v := (i%100 - 50) * 256
		samples[i] = wav.Sample{Values: [2]int{v, -v}}
	}

	var buf bytes.Buffer
	w := wav.NewWriter(&buf, uint32(frames), 2, rate, 16)
	if err := w.WriteSamples(samples); err != nil {
		t.Fatal(err)
	}

	return bytes.NewReader(buf.Bytes())
}

func sessionConfig() input.SessionConfig {
	return input.SessionConfig{
		Device:     FileDevice{Path: "test.wav"},
		FrameSize:  2,
		SampleSize: 64,
		SampleRate: 8000,
	}
}

func TestSession(t *testing.T) {
	sess, err := NewSession(writeWav(t, 1000, 8000), sessionConfig())
	if err != nil {
		t.Fatal(err)
	}

	proc := &sumProcessor{}
	if err := sess.Start(context.Background(), proc); err != nil {
		t.Fatal(err)
	}

	if len(proc.left) != 1000 {
		t.Fatalf("read %d frames, want 1000", len(proc.left))
	}

	for i := range proc.left {
		want := float64((i%100-50)*256) / 32768
		if proc.left[i] != want || proc.right[i] != -want {
			t.Fatalf("frame %d: got (%g, %g), want (%g, %g)",
				i, proc.left[i], proc.right[i], want, -want)
		}
	}
}

func TestSessionRate(t *testing.T) {
	if _, err := NewSession(writeWav(t, 10, 44100), sessionConfig()); err == nil {
		t.Fatal("accepted a file at another sample rate")
	}
}

func TestSessionCanceled(t *testing.T) {
	sess, err := NewSession(writeWav(t, 1000, 8000), sessionConfig())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := &sumProcessor{}
	if err := sess.Start(ctx, proc); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if proc.blocks != 0 {
		t.Errorf("processed %d blocks after cancel", proc.blocks)
	}
}

func TestParseDevice(t *testing.T) {
	if _, err := (Backend{}).ParseDevice(t.TempDir()); err == nil {
		t.Error("accepted a directory")
	}
}
