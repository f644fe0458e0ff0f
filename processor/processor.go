// Package processor runs the streaming constant-q transform.
package processor

import (
	"context"

	"github.com/noriah/showcqt/config"
	"github.com/noriah/showcqt/dsp"
	"github.com/noriah/showcqt/fft"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInputExhausted is returned once the stream has been drained.
	ErrInputExhausted = errors.New("input exhausted")

	// ErrPartialFrame is returned for input that does not hold whole stereo
	// frames.
	ErrPartialFrame = errors.New("odd interleaved sample count")
)

// Output receives one row per transform step. frame is set on the first step
// of every group of Count steps. The row is reused after Write returns.
type Output interface {
	Write(row []dsp.Power, frame bool) error
}

// State is the stage of the stream.
type State int

const (
	// Priming is the state before the first step.
	Priming State = iota
	// Steady is the state once steps run on live input.
	Steady
	// Draining is the state while the buffered input is flushed.
	Draining
	// Exhausted is the state after Drain.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Priming:
		return "priming"
	case Steady:
		return "steady"
	case Draining:
		return "draining"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Processor turns interleaved stereo samples into rows of bin powers.
type Processor struct {
	cfg config.Config
	log logrus.FieldLogger

	buf     *Buffer
	plan    *fft.Plan
	kernels []dsp.Kernel

	left  []complex128
	right []complex128
	row   []dsp.Power

	out   Output
	state State

	steps  int
	frames int
}

// New validates cfg, builds the kernels and returns a Processor writing to out.
// A nil log uses the standard logger.
func New(ctx context.Context, cfg config.Config, out Output, log logrus.FieldLogger) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logrus.StandardLogger()
	}

	plan, err := fft.NewPlan(cfg.FFTBits())
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"fft":     fft.Engine,
		"fft_len": plan.Len(),
		"bins":    cfg.Bins,
		"step":    cfg.Step(),
	}).Info("calculating spectral kernel")

	kernels, stats, err := dsp.BuildKernels(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build kernels")
	}

	log.WithFields(logrus.Fields{
		"fft_len":    stats.FFTLen,
		"num_coeffs": stats.Coeffs,
		"elapsed":    stats.Elapsed,
	}).Info("spectral kernel ready")

	return &Processor{
		cfg:     cfg,
		log:     log,
		buf:     NewBuffer(plan.Len(), cfg.Step()),
		plan:    plan,
		kernels: kernels,
		left:    make([]complex128, plan.Len()),
		right:   make([]complex128, plan.Len()),
		row:     make([]dsp.Power, cfg.Bins),
		out:     out,
	}, nil
}

// State returns the stage of the stream.
func (p *Processor) State() State {
	return p.state
}

// Frames returns the number of frame rows written so far.
func (p *Processor) Frames() int {
	return p.frames
}

// Steps returns the number of rows written so far.
func (p *Processor) Steps() int {
	return p.steps
}

// Kernels returns the kernel table.
func (p *Processor) Kernels() []dsp.Kernel {
	return p.kernels
}

// Process consumes a block of interleaved stereo samples, running a step
// every time the hop fills up. Blocks may hold any number of frames.
func (p *Processor) Process(samples []float64) error {
	if p.state >= Draining {
		return ErrInputExhausted
	}

	if len(samples)%2 != 0 {
		return errors.Wrapf(ErrPartialFrame, "%d samples", len(samples))
	}

	for len(samples) > 0 {
		samples = samples[p.buf.Fill(samples):]

		if !p.buf.Ready() {
			break
		}

		p.state = Steady

		if err := p.step(); err != nil {
			return err
		}

		p.buf.Shift()
	}

	return nil
}

// Drain flushes the input still waiting in the buffer, padding with silence.
// It always ends with ErrInputExhausted unless the output fails.
func (p *Processor) Drain() error {
	if p.state >= Draining {
		return ErrInputExhausted
	}

	p.state = Draining
	defer func() { p.state = Exhausted }()

	drained := 0
	for p.buf.Draining() {
		p.buf.Pad()

		if err := p.step(); err != nil {
			return err
		}

		p.buf.Shift()
		drained++
	}

	p.log.WithFields(logrus.Fields{
		"steps":  drained,
		"frames": p.frames,
	}).Debug("drained")

	return ErrInputExhausted
}

func (p *Processor) step() error {
	copy(p.left, p.buf.Data())

	p.plan.Execute(p.left)
	dsp.Separate(p.left, p.right)

	gamma := p.cfg.Gamma

	for k := range p.kernels {
		l, r := p.kernels[k].Apply(p.left, p.right)
		p.row[k] = dsp.NewPower(l, r, gamma)
	}

	frame := p.steps%p.cfg.Count == 0
	p.steps++

	if frame {
		p.frames++
	}

	if p.out == nil {
		return nil
	}

	return errors.Wrap(p.out.Write(p.row, frame), "output write failed")
}
