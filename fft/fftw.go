//go:build cgo && fftw

package fft

// Only the complex 1d plans are bound here.

// #cgo pkg-config: fftw3
// #include <fftw3.h>
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
)

// FFTW is true when built with cgo and the fftw tag.
const FFTW = true

// Engine names the transform implementation.
const Engine = "fftw"

// Plan holds a pair of FFTW C plans.
type Plan struct {
	bits     int
	forward  C.fftw_plan
	backward C.fftw_plan
}

func newPlan(bits int) (*Plan, error) {
	n := 1 << bits

	// Plan on scratch memory so no Go pointer is retained by the plans.
	scratch := (*C.fftw_complex)(C.fftw_malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(complex128(0)))))
	if scratch == nil {
		return nil, errors.Wrap(ErrAllocation, "fftw_malloc")
	}
	defer C.fftw_free(unsafe.Pointer(scratch))

	flags := C.uint(C.FFTW_ESTIMATE | C.FFTW_UNALIGNED)

	plan := &Plan{
		bits:     bits,
		forward:  C.fftw_plan_dft_1d(C.int(n), scratch, scratch, C.FFTW_FORWARD, flags),
		backward: C.fftw_plan_dft_1d(C.int(n), scratch, scratch, C.FFTW_BACKWARD, flags),
	}

	if plan.forward == nil || plan.backward == nil {
		plan.destroy()
		return nil, errors.Wrap(ErrAllocation, "fftw_plan_dft_1d")
	}

	// Rely on the runtime to free memory.
	runtime.SetFinalizer(plan, (*Plan).destroy)

	return plan, nil
}

// Execute replaces buf with its forward transform. Not normalized.
func (p *Plan) Execute(buf []complex128) {
	p.check(buf)
	ptr := (*C.fftw_complex)(unsafe.Pointer(&buf[0]))
	C.fftw_execute_dft(p.forward, ptr, ptr)
}

// Inverse replaces buf with its inverse transform. Not normalized.
func (p *Plan) Inverse(buf []complex128) {
	p.check(buf)
	ptr := (*C.fftw_complex)(unsafe.Pointer(&buf[0]))
	C.fftw_execute_dft(p.backward, ptr, ptr)
}

// destroy releases resources
func (p *Plan) destroy() {
	if p.forward != nil {
		C.fftw_destroy_plan(p.forward)
		p.forward = nil
	}
	if p.backward != nil {
		C.fftw_destroy_plan(p.backward)
		p.backward = nil
	}
}
