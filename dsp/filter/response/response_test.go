package response

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/biquad"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/lti"
	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func mustTF(t *testing.T, b, a []float64, domain lti.Domain) lti.TransferFunction {
	t.Helper()

	h, err := lti.NewTransferFunction(b, a, domain)
	if err != nil {
		t.Fatal(err)
	}

	return h
}

func TestContinuous_FirstOrderLowpass(t *testing.T) {
	h := mustTF(t, []float64{1}, []float64{1, 1}, lti.Continuous)

	r, err := Continuous(h, 10, WithSampleCount(11))
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Frequencies) != 11 || r.Frequencies[0] != 0 || r.Frequencies[10] != 10 {
		t.Fatalf("grid: %v", r.Frequencies)
	}

	if r.GroupDelay != nil {
		t.Fatal("continuous response should not carry group delay")
	}

	if !almostEqual(r.Magnitude[0], 1, 1e-15) || !almostEqual(r.MagnitudeDB[0], 0, 1e-12) {
		t.Fatalf("DC: mag %v, dB %v", r.Magnitude[0], r.MagnitudeDB[0])
	}

	// w = 1 is the -3 dB corner with -pi/4 phase.
	if !almostEqual(r.Magnitude[1], 1/math.Sqrt2, 1e-15) {
		t.Fatalf("corner magnitude: %v", r.Magnitude[1])
	}

	if !almostEqual(r.Phase[1], -math.Pi/4, 1e-15) {
		t.Fatalf("corner phase: %v", r.Phase[1])
	}

	for i := 1; i < len(r.Magnitude); i++ {
		if r.Magnitude[i] >= r.Magnitude[i-1] {
			t.Fatalf("magnitude not decreasing at %d", i)
		}
	}
}

func TestContinuous_DefaultGrid(t *testing.T) {
	h := mustTF(t, []float64{1}, []float64{1, 1}, lti.Continuous)

	r, err := Continuous(h, 5)
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Magnitude) != DefaultContinuousSamples {
		t.Fatalf("samples: got %d, want %d", len(r.Magnitude), DefaultContinuousSamples)
	}
}

func TestContinuous_InvalidInput(t *testing.T) {
	hs := mustTF(t, []float64{1}, []float64{1, 1}, lti.Continuous)
	hz := mustTF(t, []float64{1}, []float64{1, -0.5}, lti.Discrete)

	tests := []struct {
		name string
		h    lti.TransferFunction
		max  float64
		opts []Option
	}{
		{"zero value", lti.TransferFunction{}, 1, nil},
		{"discrete", hz, 1, nil},
		{"zero max", hs, 0, nil},
		{"nan max", hs, math.NaN(), nil},
		{"one sample", hs, 1, []Option{WithSampleCount(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Continuous(tt.h, tt.max, tt.opts...); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestDiscrete_MatchesDirectEvaluation(t *testing.T) {
	h := mustTF(t, []float64{0.1, 0.2, 0.1}, []float64{1, -1.2, 0.5}, lti.Discrete)

	for _, n := range []int{512, 500} {
		r, err := Discrete(h, WithSampleCount(n))
		if err != nil {
			t.Fatal(err)
		}

		for i, w := range r.Frequencies {
			if !almostEqual(w, math.Pi*float64(i)/float64(n), 1e-15) {
				t.Fatalf("n=%d: grid[%d] = %v", n, i, w)
			}

			want := h.EvalFrequency(w)
			if !almostEqual(r.Magnitude[i], cmplx.Abs(want), 1e-12) {
				t.Fatalf("n=%d: |H| at %d: got %v, want %v", n, i, r.Magnitude[i], cmplx.Abs(want))
			}

			if !almostEqual(r.Phase[i], cmplx.Phase(want), 1e-10) {
				t.Fatalf("n=%d: phase at %d: got %v, want %v", n, i, r.Phase[i], cmplx.Phase(want))
			}
		}
	}
}

func TestDiscrete_PeakIsZeroDB(t *testing.T) {
	h := mustTF(t, []float64{0.1, 0.2, 0.1}, []float64{1, -1.2, 0.5}, lti.Discrete)

	r, err := Discrete(h)
	if err != nil {
		t.Fatal(err)
	}

	peak := math.Inf(-1)
	for _, v := range r.MagnitudeDB {
		peak = math.Max(peak, v)
	}

	if !almostEqual(peak, 0, 1e-12) {
		t.Fatalf("peak dB: got %v, want 0", peak)
	}
}

func TestDiscrete_ZeroNumeratorIsFinite(t *testing.T) {
	h := mustTF(t, []float64{0}, []float64{1, -0.5}, lti.Discrete)

	r, err := Discrete(h, WithSampleCount(16))
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, r.MagnitudeDB)
	testutil.RequireFinite(t, r.Phase)
}

func TestDiscrete_GroupDelayOfPureDelay(t *testing.T) {
	h := mustTF(t, []float64{0, 0, 0, 1}, []float64{1}, lti.Discrete)

	r, err := Discrete(h, WithSampleCount(256))
	if err != nil {
		t.Fatal(err)
	}

	for i, gd := range r.GroupDelay {
		if !almostEqual(gd, 3, 1e-9) {
			t.Fatalf("group delay[%d]: got %v, want 3", i, gd)
		}
	}
}

func TestDiscrete_GroupDelayOfOnePole(t *testing.T) {
	const pole = 0.5

	h := mustTF(t, []float64{1}, []float64{1, -pole}, lti.Discrete)

	r, err := Discrete(h)
	if err != nil {
		t.Fatal(err)
	}

	for _, i := range []int{256, 512, 1024, 1536} {
		c := math.Cos(r.Frequencies[i])
		want := (pole*c - pole*pole) / (1 - 2*pole*c + pole*pole)

		if !almostEqual(r.GroupDelay[i], want, 1e-5) {
			t.Fatalf("group delay[%d]: got %v, want %v", i, r.GroupDelay[i], want)
		}
	}
}

func TestDiscrete_InvalidInput(t *testing.T) {
	hs := mustTF(t, []float64{1}, []float64{1, 1}, lti.Continuous)
	if _, err := Discrete(hs); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	hz := mustTF(t, []float64{1}, []float64{1, -0.5}, lti.Discrete)
	if _, err := Discrete(hz, WithSampleCount(0)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestDiscreteSOS_MatchesExpandedTransferFunction(t *testing.T) {
	sections := []biquad.Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}

	const gain = 2.0

	b := conv([]float64{0.25, 0.5, 0.25}, []float64{0.1, 0.2, 0.1})
	for i := range b {
		b[i] *= gain
	}

	a := conv([]float64{1, -0.2, 0.04}, []float64{1, -0.5, 0.1})
	h := mustTF(t, b, a, lti.Discrete)

	want, err := Discrete(h, WithSampleCount(128))
	if err != nil {
		t.Fatal(err)
	}

	got, err := DiscreteSOS(sections, gain, WithSampleCount(128))
	if err != nil {
		t.Fatal(err)
	}

	for i := range want.Magnitude {
		if !almostEqual(got.Magnitude[i], want.Magnitude[i], 1e-12) {
			t.Fatalf("|H|[%d]: got %v, want %v", i, got.Magnitude[i], want.Magnitude[i])
		}

		if !almostEqual(got.GroupDelay[i], want.GroupDelay[i], 1e-9) {
			t.Fatalf("group delay[%d]: got %v, want %v", i, got.GroupDelay[i], want.GroupDelay[i])
		}
	}
}

func TestDiscreteSOS_NoSections(t *testing.T) {
	if _, err := DiscreteSOS(nil, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUnwrap(t *testing.T) {
	in := []float64{3, -3, -0.5, 3.1, -3.1}
	got := Unwrap(in)

	want := []float64{3, -3 + 2*math.Pi, -0.5 + 2*math.Pi, 3.1, -3.1 + 2*math.Pi}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-15) {
			t.Fatalf("unwrap[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func conv(x, y []float64) []float64 {
	out := make([]float64, len(x)+len(y)-1)
	for i, xv := range x {
		for j, yv := range y {
			out[i+j] += xv * yv
		}
	}

	return out
}
