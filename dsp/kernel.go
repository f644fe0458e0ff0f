package dsp

import (
	"cmp"
	"context"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/noriah/showcqt/config"
	"github.com/noriah/showcqt/dsp/window"
	"github.com/noriah/showcqt/fft"
)

// SparseCoeff is one nonzero term of a kernel in the frequency domain.
type SparseCoeff struct {
	Value float64 // real weight
	Index int     // fft index
}

// Kernel is the sparse frequency domain form of one bin's analysis window.
type Kernel struct {
	Freq   float64       // center frequency
	Coeffs []SparseCoeff // highest magnitude coefficients, ascending
}

// KernelStats describes a finished kernel build.
type KernelStats struct {
	FFTLen  int           // transform length
	Coeffs  int           // retained coefficients over all bins
	Elapsed time.Duration // wall time of the build
}

// Apply computes the complex amplitudes of the bin in the left and right
// spectra.
func (k *Kernel) Apply(left, right []complex128) (complex128, complex128) {
	var lr, li, rr, ri float64

	for _, c := range k.Coeffs {
		l, r := left[c.Index], right[c.Index]
		lr += c.Value * real(l)
		li += c.Value * imag(l)
		rr += c.Value * real(r)
		ri += c.Value * imag(r)
	}

	return complex(lr, li), complex(rr, ri)
}

// BuildKernels computes the sparse kernel of every bin in cfg.
//
// Bins are independent, so the work is split over cfg.WorkerCount()
// goroutines, each owning its own transform and scratch space.
func BuildKernels(ctx context.Context, cfg config.Config) ([]Kernel, KernelStats, error) {
	start := time.Now()

	kernels := make([]Kernel, cfg.Bins)
	stats := KernelStats{FFTLen: cfg.FFTLen()}

	workers := min(cfg.WorkerCount(), cfg.Bins)

	plans := make([]*fft.Plan, workers)
	for idx := range plans {
		plan, err := fft.NewPlan(cfg.FFTBits())
		if err != nil {
			return nil, stats, err
		}
		plans[idx] = plan
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	wg.Add(workers)

	for _, plan := range plans {
		go func(plan *fft.Plan) {
			defer wg.Done()

			kb := newKernelBuilder(plan, &cfg)

			for k := range jobs {
				kernels[k] = kb.build(k)
			}
		}(plan)
	}

	var err error

feed:
	for k := range kernels {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- k:
		}
	}

	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, stats, err
	}

	for idx := range kernels {
		stats.Coeffs += len(kernels[idx].Coeffs)
	}

	stats.Elapsed = time.Since(start)

	return kernels, stats, nil
}

// kernelBuilder holds the per worker scratch space.
type kernelBuilder struct {
	cfg    *config.Config
	plan   *fft.Plan
	buf    []complex128
	sorted []SparseCoeff
}

func newKernelBuilder(plan *fft.Plan, cfg *config.Config) *kernelBuilder {
	return &kernelBuilder{
		cfg:    cfg,
		plan:   plan,
		buf:    make([]complex128, plan.Len()),
		sorted: make([]SparseCoeff, plan.Len()),
	}
}

func (kb *kernelBuilder) build(k int) Kernel {
	cfg := kb.cfg
	freq := cfg.BinFreq(k)

	window.Analytic(kb.buf, freq, float64(cfg.SampleRate), cfg.MaxLen(), cfg.Volume)
	kb.plan.Execute(kb.buf)

	// The window is conjugate symmetric about the center, the imaginary part
	// of its transform is rounding noise.
	for x, v := range kb.buf {
		kb.sorted[x] = SparseCoeff{Value: real(v), Index: x}
	}

	SortCoeffs(kb.sorted)

	return Kernel{
		Freq:   freq,
		Coeffs: slices.Clone(Prune(kb.sorted, cfg.CoeffClamp*config.CoeffClampScale)),
	}
}

// SortCoeffs sorts coeffs by ascending magnitude. Equal magnitudes keep their
// order.
func SortCoeffs(coeffs []SparseCoeff) {
	slices.SortStableFunc(coeffs, func(a, b SparseCoeff) int {
		return cmp.Compare(math.Abs(a.Value), math.Abs(b.Value))
	})
}

// Prune returns the high magnitude tail of sorted, which must be in
// ascending magnitude order. Coefficients are dropped from the small end for
// as long as their summed magnitude stays within clamp times the total.
//
// If the threshold is never crossed the whole slice is returned.
func Prune(sorted []SparseCoeff, clamp float64) []SparseCoeff {
	total := 0.0
	for _, c := range sorted {
		total += math.Abs(c.Value)
	}

	threshold := total * clamp
	partial := 0.0

	for x, c := range sorted {
		partial += math.Abs(c.Value)
		if partial > threshold {
			return sorted[x:]
		}
	}

	return sorted
}
