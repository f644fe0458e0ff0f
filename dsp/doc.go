// Package dsp provides the constant-q kernels and the per step math that
// turns a packed stereo spectrum into bin intensities.
//
// Some notes:
//
// Judith C. Brown and Miller S. Puckette, "An efficient algorithm for the
// calculation of a constant Q transform", JASA 92(5), 1992.
// https://wikipedia.org/wiki/Constant-Q_transform
// https://www.dspguide.com/ch12/5.htm (two real transforms with one complex FFT)
package dsp
