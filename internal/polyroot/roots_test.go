package polyroot

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func TestRoots_Quadratic(t *testing.T) {
	// s^2 - 3s + 2 = (s-1)(s-2)
	roots, err := Roots([]float64{1, -3, 2})
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireComplexNearlyEqual(t, roots, []complex128{1, 2}, 1e-12)
}

func TestRoots_CanonicalOrder(t *testing.T) {
	// (s+1)(s^2+2s+5): roots -1, -1-2j, -1+2j
	roots, err := Roots([]float64{1, 3, 7, 5})
	if err != nil {
		t.Fatal(err)
	}

	want := []complex128{complex(-1, -2), complex(-1, 0), complex(-1, 2)}
	testutil.RequireComplexNearlyEqual(t, roots, want, 1e-10)
}

func TestRoots_LeadingAndTrailingZeros(t *testing.T) {
	// 0*s^3 + s^2 - s + 0 = s(s-1)
	roots, err := Roots([]float64{0, 1, -1, 0})
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %v", roots)
	}

	if roots[0] != 0 || cmplx.Abs(roots[1]-1) > 1e-12 {
		t.Fatalf("expected roots {0, 1}, got %v", roots)
	}
}

func TestRoots_Constant(t *testing.T) {
	roots, err := Roots([]float64{3})
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 0 {
		t.Fatalf("expected no roots, got %v", roots)
	}
}

func TestRoots_Degenerate(t *testing.T) {
	for _, c := range [][]float64{nil, {0, 0}, {1, math.NaN()}} {
		if _, err := Roots(c); !errors.Is(err, ErrDegeneratePolynomial) {
			t.Errorf("Roots(%v): expected ErrDegeneratePolynomial, got %v", c, err)
		}
	}
}

func TestRoots_PolyRoundTrip(t *testing.T) {
	want := []complex128{
		complex(-0.3, -0.9), complex(-0.3, 0.9),
		complex(-0.8, -0.4), complex(-0.8, 0.4),
		complex(-1.5, 0),
	}

	c, residue := RealPart(Poly(want))
	if residue > 1e-12 {
		t.Fatalf("conjugate roots expanded with imaginary residue %g", residue)
	}

	got, err := Roots(c)
	if err != nil {
		t.Fatal(err)
	}

	SortCanonical(want)

	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("root %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGroupRoots_MergesNearDuplicates(t *testing.T) {
	// (s+1)^2 (s+2)
	c := []float64{1, 4, 5, 2}
	roots := []complex128{
		complex(-1+1e-8, 1e-8),
		complex(-2, 0),
		complex(-1-1e-8, -1e-8),
	}

	clusters := GroupRoots(c, roots, GroupTol)
	if len(clusters) != 2 {
		t.Fatalf("expected 2 clusters, got %v", clusters)
	}

	if clusters[0].Multiplicity != 1 || cmplx.Abs(clusters[0].Root+2) > 1e-15 {
		t.Errorf("cluster 0: got %+v", clusters[0])
	}

	if clusters[1].Multiplicity != 2 || cmplx.Abs(clusters[1].Root+1) > 1e-15 {
		t.Errorf("cluster 1: got %+v", clusters[1])
	}
}

func TestGroupRoots_KeepsCloseDistinctRoots(t *testing.T) {
	// (s+1)(s+1.02)(s+3)
	c, _ := RealPart(Poly([]complex128{-1, -1.02, -3}))

	roots, err := Roots(c)
	if err != nil {
		t.Fatal(err)
	}

	clusters := GroupRoots(c, roots, GroupTol)
	if len(clusters) != 3 {
		t.Fatalf("expected 3 simple roots, got %+v", clusters)
	}

	for _, cl := range clusters {
		if cl.Multiplicity != 1 {
			t.Errorf("root %v merged with multiplicity %d", cl.Root, cl.Multiplicity)
		}
	}
}

func TestGroupRoots_HighMultiplicity(t *testing.T) {
	// The computed members of an m-fold root spread by about eps^(1/m),
	// which is around 1e-2 for m = 8.
	for m := 2; m <= 8; m++ {
		t.Run(fmt.Sprintf("m=%d", m), func(t *testing.T) {
			want := make([]complex128, 0, m+1)
			for range m {
				want = append(want, -1)
			}

			want = append(want, -3)

			c, _ := RealPart(Poly(want))

			roots, err := Roots(c)
			if err != nil {
				t.Fatal(err)
			}

			clusters := GroupRoots(c, roots, GroupTol)
			if len(clusters) != 2 {
				t.Fatalf("expected 2 clusters, got %+v", clusters)
			}

			if clusters[0].Multiplicity != 1 || cmplx.Abs(clusters[0].Root+3) > 1e-9 {
				t.Errorf("simple root: got %+v", clusters[0])
			}

			if clusters[1].Multiplicity != m || cmplx.Abs(clusters[1].Root+1) > 1e-9 {
				t.Errorf("repeated root: got %+v, want -1 with multiplicity %d", clusters[1], m)
			}
		})
	}
}
