// Package window builds the analysis windows of the constant-q kernels.
//
// See https://wikipedia.org/wiki/Window_function
package window

import (
	"math"
	"math/cmplx"
)

// Nuttall coefficients from Albert H. Nuttall, "Some Windows with Very Good
// Sidelobe Behavior": -93.32 dB peak sidelobe and 18 dB/octave asymptotic
// decay. Normalized so that a0 = 1.
const (
	a0 = 0.355768
	a1 = 0.487396 / a0
	a2 = 0.144232 / a0
	a3 = 0.012604 / a0
)

// CyclesPerWindow is the number of oscillator cycles in an unclamped window,
// 24 cycles for each of the 16 bins of a semitone.
const CyclesPerWindow = 24.0 * 16.0

// Length returns the window length in samples for freq. Long windows at low
// frequencies are harmonically clamped toward maxLen.
func Length(freq, rate, maxLen float64) float64 {
	tlen := rate * CyclesPerWindow / freq
	return tlen * maxLen / (tlen + maxLen)
}

// Nuttall evaluates the normalized window at the unit vector (cos θ, sin θ),
// θ being the phase from the window center.
func Nuttall(cw, sw float64) float64 {
	cw2 := cw*cw - sw*sw
	sw2 := cw*sw + sw*cw
	cw3 := cw*cw2 - sw*sw2

	return 1.0 + a1*cw + a2*cw2 + a3*cw3
}

// Analytic fills dst with a Nuttall windowed complex exponential at freq,
// centered at len(dst)/2 and scaled by volume/(tlen*len(dst)).
//
// The two halves are conjugates of each other, so the transform of dst is
// real. len(dst) must be larger than the window length.
func Analytic(dst []complex128, freq, rate, maxLen, volume float64) {
	size := len(dst)
	half := size >> 1

	tlen := Length(freq, rate, maxLen)
	scale := volume / (tlen * float64(size))

	clear(dst)

	dst[half] = complex(Nuttall(1, 0)*scale, 0)

	osc := NewRotator(2.0 * math.Pi * freq / rate)
	win := NewRotator(2.0 * math.Pi / tlen)

	for x := 1; float64(x) < 0.5*tlen && x < half; x++ {
		cw, sw := win.Value()
		cv, sv := osc.Value()

		w := Nuttall(cw, sw) * scale
		v := complex(w*cv, w*sv)

		dst[half+x] = v
		dst[half-x] = cmplx.Conj(v)

		osc.Advance()
		win.Advance()
	}
}
