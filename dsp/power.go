package dsp

import "math"

// MaxIntensity is the intensity of a full scale bin.
const MaxIntensity = 255.0

// Power is the output of one bin for one transform step.
type Power struct {
	Left  float64 // left intensity
	Right float64 // right intensity
	Mix   float64 // mix intensity
	Raw   float64 // mix power before gamma
}

// Intensity maps power to [0, MaxIntensity] with the curve p^(1/gamma).
func Intensity(p, gamma float64) float64 {
	switch {
	case p <= 0:
		return 0
	case p >= 1:
		return MaxIntensity
	}

	return MaxIntensity * math.Pow(p, 1.0/gamma)
}

// NewPower computes the row entry for a bin with complex amplitudes l and r.
func NewPower(l, r complex128, gamma float64) Power {
	pl := real(l)*real(l) + imag(l)*imag(l)
	pr := real(r)*real(r) + imag(r)*imag(r)
	mix := 0.5 * (pl + pr)

	return Power{
		Left:  Intensity(pl, gamma),
		Right: Intensity(pr, gamma),
		Mix:   Intensity(mix, gamma),
		Raw:   mix,
	}
}
