package testutil

import (
	"math"
	"testing"
)

// recorder captures Fatalf without stopping the calling test.
type recorder struct {
	testing.TB
	failed bool
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(string, ...any) { r.failed = true }

func TestRequireSliceNearlyEqual(t *testing.T) {
	tests := []struct {
		name     string
		got      []float64
		want     []float64
		eps      float64
		wantFail bool
	}{
		{"equal", []float64{1, 2}, []float64{1, 2}, 0, false},
		{"within eps", []float64{1, 2}, []float64{1, 2.05}, 0.1, false},
		{"outside eps", []float64{1, 2}, []float64{1, 2.5}, 0.1, true},
		{"length", []float64{1}, []float64{1, 2}, 1, true},
		{"nan", []float64{math.NaN()}, []float64{0}, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{TB: t}
			RequireSliceNearlyEqual(r, tt.got, tt.want, tt.eps)

			if r.failed != tt.wantFail {
				t.Fatalf("failed = %v, want %v", r.failed, tt.wantFail)
			}
		})
	}
}

func TestRequireComplexNearlyEqual(t *testing.T) {
	r := &recorder{TB: t}
	RequireComplexNearlyEqual(r, []complex128{complex(1, 1)}, []complex128{complex(1, 1.05)}, 0.1)

	if r.failed {
		t.Fatal("unexpected failure within eps")
	}

	RequireComplexNearlyEqual(r, []complex128{complex(1, 1)}, []complex128{complex(1.1, 1.1)}, 0.1)

	if !r.failed {
		t.Fatal("expected failure outside eps")
	}
}

func TestRequireFinite(t *testing.T) {
	r := &recorder{TB: t}
	RequireFinite(r, []float64{0, -1, 1e300})

	if r.failed {
		t.Fatal("unexpected failure for finite data")
	}

	RequireFinite(r, []float64{0, math.Inf(1)})

	if !r.failed {
		t.Fatal("expected failure for Inf")
	}
}
