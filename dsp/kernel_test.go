package dsp

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/noriah/showcqt/config"
	"github.com/noriah/showcqt/fft"
	"github.com/pkg/errors"
)

// testConfig is small enough to build every kernel in a test.
func testConfig() config.Config {
	cfg := config.NewZeroConfig(8000)
	cfg.FPS = 25
	cfg.Count = 4
	cfg.Bins = 960
	return cfg
}

func magnitude(coeffs []SparseCoeff) float64 {
	sum := 0.0
	for _, c := range coeffs {
		sum += math.Abs(c.Value)
	}
	return sum
}

func TestPruneKeepsHighMagnitudeTail(t *testing.T) {
	sorted := []SparseCoeff{
		{Value: 0.001, Index: 7},
		{Value: -0.002, Index: 3},
		{Value: 0.003, Index: 5},
		{Value: 1, Index: 1},
		{Value: -2, Index: 0},
		{Value: 4, Index: 2},
	}

	// total is 7.006, 0.006 fits under 0.007
	got := Prune(sorted, 0.001)

	if len(got) != 3 {
		t.Fatalf("kept %d coefficients, want 3", len(got))
	}

	for i, want := range []int{1, 0, 2} {
		if got[i].Index != want {
			t.Errorf("position %d: got index %d, want %d", i, got[i].Index, want)
		}
	}
}

func TestPruneDense(t *testing.T) {
	zeros := make([]SparseCoeff, 16)
	if got := Prune(zeros, 0.5); len(got) != len(zeros) {
		t.Fatalf("zero kernel pruned to %d", len(got))
	}
}

func TestPruneBound(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	coeffs := make([]SparseCoeff, 4096)
	for i := range coeffs {
		coeffs[i] = SparseCoeff{Value: rng.NormFloat64() * math.Exp(-float64(i)/64), Index: i}
	}

	SortCoeffs(coeffs)

	for i := 1; i < len(coeffs); i++ {
		if math.Abs(coeffs[i].Value) < math.Abs(coeffs[i-1].Value) {
			t.Fatalf("not sorted at %d", i)
		}
	}

	for _, clamp := range []float64{1e-5, 1e-4, 1e-3} {
		kept := Prune(coeffs, clamp)
		total := magnitude(coeffs)
		dropped := magnitude(coeffs[:len(coeffs)-len(kept)])

		if dropped > total*clamp {
			t.Errorf("clamp %g: dropped %g of %g", clamp, dropped, total)
		}

		// One more coefficient would have crossed the threshold.
		if dropped+math.Abs(kept[0].Value) <= total*clamp {
			t.Errorf("clamp %g: pruning stopped early", clamp)
		}
	}
}

func TestSortCoeffsStable(t *testing.T) {
	coeffs := []SparseCoeff{
		{Value: 1, Index: 0},
		{Value: -1, Index: 1},
		{Value: 0.5, Index: 2},
		{Value: 1, Index: 3},
	}

	SortCoeffs(coeffs)

	for i, want := range []int{2, 0, 1, 3} {
		if coeffs[i].Index != want {
			t.Errorf("position %d: got index %d, want %d", i, coeffs[i].Index, want)
		}
	}
}

func TestBuildKernels(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 3

	kernels, stats, err := BuildKernels(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	if len(kernels) != cfg.Bins {
		t.Fatalf("got %d kernels, want %d", len(kernels), cfg.Bins)
	}

	if stats.FFTLen != 2048 {
		t.Errorf("fft length: got %d, want 2048", stats.FFTLen)
	}

	count := 0
	for k := range kernels {
		kern := &kernels[k]
		count += len(kern.Coeffs)

		if len(kern.Coeffs) == 0 || len(kern.Coeffs) >= stats.FFTLen/4 {
			t.Fatalf("bin %d: %d coefficients", k, len(kern.Coeffs))
		}

		// the largest weight sits on the fft index of the center frequency
		top := kern.Coeffs[len(kern.Coeffs)-1].Index
		want := kern.Freq * float64(stats.FFTLen) / float64(cfg.SampleRate)
		if math.Abs(float64(top)-want) > 1 {
			t.Errorf("bin %d: peak at %d, want near %g", k, top, want)
		}
	}

	if count != stats.Coeffs {
		t.Errorf("stats counted %d coefficients, kernels hold %d", stats.Coeffs, count)
	}
}

// The retained part of each kernel must match a full build with no pruning
// except for at most the clamped fraction.
func TestBuildKernelsSparsityBound(t *testing.T) {
	cfg := testConfig()
	cfg.Bins = 8
	cfg.BaseFreq = 110

	kernels, _, err := BuildKernels(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}

	plan, err := fft.NewPlan(cfg.FFTBits())
	if err != nil {
		t.Fatal(err)
	}

	kb := newKernelBuilder(plan, &cfg)
	clamp := cfg.CoeffClamp * config.CoeffClampScale

	for k := range kernels {
		kb.build(k)

		total := magnitude(kb.sorted)
		kept := magnitude(kernels[k].Coeffs)

		if total-kept > total*clamp*(1+1e-9) {
			t.Errorf("bin %d: dropped %g of %g", k, total-kept, total)
		}
	}
}

func TestBuildKernelsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := BuildKernels(ctx, testConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestKernelApply(t *testing.T) {
	kern := Kernel{Coeffs: []SparseCoeff{{Value: 2, Index: 1}, {Value: -1, Index: 3}}}

	left := []complex128{9, 1 + 2i, 9, 3 - 1i}
	right := []complex128{9, 1i, 9, 1}

	l, r := kern.Apply(left, right)

	if l != complex(2-3, 4+1) {
		t.Errorf("left: got %v", l)
	}

	if r != complex(-1, 2) {
		t.Errorf("right: got %v", r)
	}
}

func BenchmarkBuildKernels(b *testing.B) {
	cfg := config.NewZeroConfig(48000)

	for i := 0; i < b.N; i++ {
		if _, _, err := BuildKernels(context.Background(), cfg); err != nil {
			b.Fatal(err)
		}
	}
}
