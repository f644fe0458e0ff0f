//go:build !(cgo && fftw) && !ktye

package fft

import "gonum.org/v1/gonum/dsp/fourier"

// FFTW is false when built without the fftw tag. It will use gonum instead.
const FFTW = false

// Engine names the transform implementation.
const Engine = "gonum"

// Plan holds a gonum complex FFT. A Plan keeps scratch space and must not be
// used from more than one goroutine at a time.
type Plan struct {
	bits int
	fft  *fourier.CmplxFFT
}

func newPlan(bits int) (*Plan, error) {
	return &Plan{
		bits: bits,
		fft:  fourier.NewCmplxFFT(1 << bits),
	}, nil
}

// Execute replaces buf with its forward transform, sum x[j]*exp(-2πi*jk/n).
// The result is not normalized.
func (p *Plan) Execute(buf []complex128) {
	p.check(buf)
	p.fft.Coefficients(buf, buf)
}

// Inverse replaces buf with its inverse transform. The result is not
// normalized; Execute followed by Inverse scales by Len.
func (p *Plan) Inverse(buf []complex128) {
	p.check(buf)
	p.fft.Sequence(buf, buf)
}
