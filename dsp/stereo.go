package dsp

import "math/cmplx"

// Separate splits the transform of a packed stereo buffer (real part left,
// imaginary part right) into the spectra of the two channels.
//
// On entry left holds the packed transform F. On return left holds
// F[x] + conj(F[N-x]) and right holds -i(F[x] - conj(F[N-x])), which are the
// channel spectra scaled by two. right must be as long as left.
func Separate(left, right []complex128) {
	size := len(left)
	if len(right) != size {
		panic("dsp: spectrum length mismatch")
	}

	dc := left[0]
	left[0] = complex(2*real(dc), 0)
	right[0] = complex(2*imag(dc), 0)

	for x := 1; x <= size>>1; x++ {
		a := left[x]
		b := cmplx.Conj(left[size-x])

		l := a + b
		r := complex(imag(a-b), -real(a-b))

		left[x], left[size-x] = l, cmplx.Conj(l)
		right[x], right[size-x] = r, cmplx.Conj(r)
	}
}
