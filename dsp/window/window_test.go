package window

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/noriah/showcqt/fft"
	gwindow "gonum.org/v1/gonum/dsp/window"
)

func TestRotatorDrift(t *testing.T) {
	const (
		angle = 0.0123
		steps = 1000000
	)

	r := NewRotator(angle)
	for n := 1; n < steps; n++ {
		r.Advance()
	}

	c, s := r.Value()
	if m := math.Hypot(c, s); math.Abs(m-1) > 1e-12 {
		t.Errorf("magnitude drifted to %.17f", m)
	}

	ws, wc := math.Sincos(angle * steps)
	if math.Abs(c-wc) > 1e-8 || math.Abs(s-ws) > 1e-8 {
		t.Errorf("phase drifted: got (%g, %g), want (%g, %g)", c, s, wc, ws)
	}
}

func TestNuttallEdges(t *testing.T) {
	if v := Nuttall(-1, 0); math.Abs(v) > 1e-6 {
		t.Errorf("window edge not zero: %g", v)
	}

	if v := Nuttall(1, 0); math.Abs(v-1/a0) > 1e-12 {
		t.Errorf("window peak: got %g, want %g", v, 1/a0)
	}
}

// The envelope is gonum's Nuttall window shifted to the center and divided
// by a0.
func TestNuttallMatchesGonum(t *testing.T) {
	const size = 101

	seq := make([]float64, size)
	for i := range seq {
		seq[i] = 1
	}

	gwindow.Nuttall(seq)

	for i, want := range seq {
		sw, cw := math.Sincos(2*math.Pi*float64(i)/(size-1) - math.Pi)
		if got := Nuttall(cw, sw) * a0; math.Abs(got-want) > 1e-12 {
			t.Fatalf("index %d: got %g, want %g", i, got, want)
		}
	}
}

func TestLengthClamp(t *testing.T) {
	const rate, maxLen = 48000.0, 8160.0

	low := Length(20, rate, maxLen)
	high := Length(20000, rate, maxLen)

	if low >= maxLen || high >= low {
		t.Fatalf("bad clamp: low %g high %g max %g", low, high, maxLen)
	}

	// rate*384/20000 = 921.6, nearly unaffected by the ceiling
	if math.Abs(high-921.6) > 921.6*0.11 {
		t.Errorf("high frequency window too far from unclamped: %g", high)
	}
}

func TestAnalytic(t *testing.T) {
	const (
		bits   = 11
		rate   = 8000.0
		maxLen = 1360.0
		freq   = 160.0
		volume = 16.0
	)

	size := 1 << bits
	half := size / 2
	buf := make([]complex128, size)

	Analytic(buf, freq, rate, maxLen, volume)

	tlen := Length(freq, rate, maxLen)
	scale := volume / (tlen * float64(size))

	sum := 0.0
	for x := 1; x < half; x++ {
		if buf[half+x] != cmplx.Conj(buf[half-x]) {
			t.Fatalf("halves not conjugate at %d", x)
		}

		if float64(x) >= 0.5*tlen && buf[half+x] != 0 {
			t.Fatalf("sample %d outside the window is %v", x, buf[half+x])
		}

		sum += 2 * cmplx.Abs(buf[half+x])
	}
	sum += cmplx.Abs(buf[half])

	// The normalized window averages to one over its length.
	if got := sum / scale; math.Abs(got-tlen) > tlen*1e-3 {
		t.Errorf("window area: got %g, want %g", got, tlen)
	}

	plan, err := fft.NewPlan(bits)
	if err != nil {
		t.Fatal(err)
	}

	plan.Execute(buf)

	peak := 0
	for x := range buf {
		if math.Abs(imag(buf[x])) > 1e-12 {
			t.Fatalf("transform not real at %d: %v", x, buf[x])
		}

		if math.Abs(real(buf[x])) > math.Abs(real(buf[peak])) {
			peak = x
		}
	}

	// 160 Hz lands on index 160*2048/8000 = 40.96
	if peak != 41 && peak != 40 {
		t.Errorf("kernel peak at %d, want 41", peak)
	}
}
