//go:build ktye && !(cgo && fftw)

package fft

import (
	ktye "github.com/ktye/fft"
	"github.com/pkg/errors"
)

// FFTW is false when built without the fftw tag.
const FFTW = false

// Engine names the transform implementation.
const Engine = "ktye"

// Plan holds the twiddle tables of a ktye transform.
type Plan struct {
	bits int
	fft  ktye.FFT
}

func newPlan(bits int) (*Plan, error) {
	f, err := ktye.New(1 << bits)
	if err != nil {
		return nil, errors.Wrap(ErrAllocation, err.Error())
	}

	return &Plan{bits: bits, fft: f}, nil
}

// Execute replaces buf with its forward transform, sum x[j]*exp(-2πi*jk/n).
// The result is not normalized.
func (p *Plan) Execute(buf []complex128) {
	p.check(buf)
	copy(buf, p.fft.Transform(buf))
}

// Inverse replaces buf with its inverse transform. The result is not
// normalized; Execute followed by Inverse scales by Len.
func (p *Plan) Inverse(buf []complex128) {
	p.check(buf)

	for i, v := range buf {
		buf[i] = complex(real(v), -imag(v))
	}

	copy(buf, p.fft.Transform(buf))

	for i, v := range buf {
		buf[i] = complex(real(v), -imag(v))
	}
}
