// Package execread provides a shared struct that wraps around cmd.
package execread

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"os"
	"os/exec"

	"github.com/noriah/showcqt/input"
	"github.com/pkg/errors"
)

// Session is a session that reads floating-point audio values from a Cmd.
type Session struct {
	// OnStart is called when the session starts. Nil by default.
	OnStart func(ctx context.Context, cmd *exec.Cmd) error

	// prevents cmd.Stderr from poiting to os.Stderr. false by default.
	DisconnectedStderr bool

	argv []string
	cfg  input.SessionConfig

	f32mode bool
}

// NewSession creates a new execread session. It never returns an error.
func NewSession(argv []string, f32mode bool, cfg input.SessionConfig) *Session {
	if len(argv) < 1 {
		panic("argv has no arg0")
	}

	return &Session{
		argv:    argv,
		cfg:     cfg,
		f32mode: f32mode,
	}
}

// Argv returns the command line of the session.
func (s *Session) Argv() []string {
	return s.argv
}

func (s *Session) Start(ctx context.Context, proc input.Processor) error {
	cmd := exec.CommandContext(ctx, s.argv[0], s.argv[1:]...)

	if !s.DisconnectedStderr {
		cmd.Stderr = os.Stderr
	}

	o, err := cmd.StdoutPipe()
	if err != nil {
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "failed to start "+s.argv[0])
	}

	if s.OnStart != nil {
		if err := s.OnStart(ctx, cmd); err != nil {
			return err
		}
	}

	err = Stream(ctx, o, s.f32mode, s.cfg, proc)

	// Unblocks the command if we stopped reading early.
	o.Close()

	// The source ended on its own, so a failed exit is a real failure.
	if werr := cmd.Wait(); err == nil && werr != nil && ctx.Err() == nil {
		return errors.Wrap(werr, s.argv[0]+" failed")
	}

	return err
}

// Stream decodes little endian floats from r in blocks of cfg.Samples() and
// hands each block to proc. A short final block is cut to whole frames. It
// returns nil once r is exhausted.
func Stream(ctx context.Context, r io.Reader, f32mode bool, cfg input.SessionConfig, proc input.Processor) error {
	if cfg.FrameSize < 1 || cfg.SampleSize < 1 {
		return errors.Errorf("invalid block of %d frames of %d", cfg.SampleSize, cfg.FrameSize)
	}

	reader := floatReader{
		order: binary.LittleEndian,
		f64:   !f32mode,
	}

	samples := cfg.Samples()
	frameBytes := cfg.FrameSize * reader.size()

	raw := make([]byte, samples*reader.size())
	buf := make([]float64, samples)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := io.ReadFull(r, raw)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			n -= n % frameBytes
		default:
			return errors.Wrap(err, "failed to read samples")
		}

		count := reader.decode(buf, raw[:n])

		if count > 0 {
			if perr := proc.Process(buf[:count]); perr != nil {
				return perr
			}
		}

		if err != nil {
			return nil
		}
	}
}

type floatReader struct {
	order binary.ByteOrder
	f64   bool
}

func (f *floatReader) size() int {
	if f.f64 {
		return 8
	}
	return 4
}

// decode fills dst from b and returns the number of values written.
func (f *floatReader) decode(dst []float64, b []byte) int {
	n := 0

	if f.f64 {
		for ; len(b) >= 8 && n < len(dst); n++ {
			dst[n] = math.Float64frombits(f.order.Uint64(b))
			b = b[8:]
		}
		return n
	}

	for ; len(b) >= 4 && n < len(dst); n++ {
		dst[n] = float64(math.Float32frombits(f.order.Uint32(b)))
		b = b[4:]
	}
	return n
}
