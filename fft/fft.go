// Package fft provides the complex transform used for both kernel
// construction and the streaming analysis.
//
// The default build uses gonum. Building with cgo and the fftw tag uses
// libfftw3 instead, the ktye tag uses github.com/ktye/fft.
package fft

import "github.com/pkg/errors"

// MaxBits is the largest supported transform, 2^24 points.
const MaxBits = 24

// ErrAllocation is returned when a transform of the requested size can not
// be set up.
var ErrAllocation = errors.New("fft allocation failed")

// NewPlan returns a forward/inverse complex transform of length 2^bits.
func NewPlan(bits int) (*Plan, error) {
	if bits < 1 || bits > MaxBits {
		return nil, errors.Wrapf(ErrAllocation, "unsupported transform size 2^%d", bits)
	}

	return newPlan(bits)
}

// Len returns the transform length.
func (p *Plan) Len() int {
	return 1 << p.bits
}

// Bits returns log2 of the transform length.
func (p *Plan) Bits() int {
	return p.bits
}

func (p *Plan) check(buf []complex128) {
	if len(buf) != p.Len() {
		panic("fft: buffer length mismatch")
	}
}
