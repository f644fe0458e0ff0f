package window

import "math"

// RenormalizeEvery is how many steps a Rotator takes between magnitude
// corrections.
const RenormalizeEvery = 1024

// Rotator walks the unit circle by a fixed angle using angle addition, with
// no trigonometric calls after construction.
//
// Each step multiplies in a relative rounding error of a few ulps, so the
// magnitude drifts by roughly n*2^-52 after n steps. The magnitude is reset
// to one every RenormalizeEvery steps, which bounds the drift to about 1e-13.
type Rotator struct {
	c, s   float64 // current position
	cs, ss float64 // step
	n      int
}

// NewRotator returns a Rotator positioned at angle and stepping by angle.
func NewRotator(angle float64) Rotator {
	s, c := math.Sincos(angle)
	return Rotator{c: c, s: s, cs: c, ss: s}
}

// Value returns the cosine and sine of the current angle.
func (r *Rotator) Value() (float64, float64) {
	return r.c, r.s
}

// Advance moves the rotator forward by one step.
func (r *Rotator) Advance() {
	c := r.c*r.cs - r.s*r.ss
	r.s = r.s*r.cs + r.c*r.ss
	r.c = c

	if r.n++; r.n == RenormalizeEvery {
		r.n = 0
		m := 1.0 / math.Hypot(r.c, r.s)
		r.c *= m
		r.s *= m
	}
}
