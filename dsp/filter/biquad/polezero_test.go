package biquad

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-filterdesign/internal/testutil"
)

func TestCoefficients_Poles_SecondOrder(t *testing.T) {
	p := complex(0.72, 0.19)
	c := Coefficients{
		B0: 2.3,
		A1: -2 * real(p),
		A2: real(p * cmplx.Conj(p)),
	}

	testutil.RequireComplexNearlyEqual(t, c.Poles(), []complex128{cmplx.Conj(p), p}, 1e-12)
}

func TestCoefficients_Poles_FirstOrder(t *testing.T) {
	c := Coefficients{B0: 1, B1: -0.3, A1: -0.8}

	testutil.RequireComplexNearlyEqual(t, c.Poles(), []complex128{0.8}, 1e-12)
}

func TestCoefficients_Poles_Passthrough(t *testing.T) {
	c := passthrough()
	if p := c.Poles(); p != nil {
		t.Fatalf("passthrough poles: got %v, want none", p)
	}
}

func TestChain_PolesAndRadius(t *testing.T) {
	chain := NewChain([]Coefficients{
		{B0: 1, A1: -1.4, A2: 0.53},
		{B0: 1, A1: -0.8},
	})

	poles := chain.Poles()
	if len(poles) != chain.Order() {
		t.Fatalf("pole count: got %d, want %d", len(poles), chain.Order())
	}

	if !almostEqual(cmplx.Abs(poles[0]), math.Sqrt(0.53), 1e-12) {
		t.Fatalf("smallest pole: got %v, want magnitude %v", poles[0], math.Sqrt(0.53))
	}

	if r := chain.PoleRadius(); !almostEqual(r, 0.8, 1e-12) {
		t.Fatalf("PoleRadius: got %v, want 0.8", r)
	}
}

func TestChain_PoleRadius_AgreesWithIsStable(t *testing.T) {
	for _, a2 := range []float64{0.5, 0.99, 1.01, 1.5} {
		chain := NewChain([]Coefficients{{B0: 1, A1: -0.2, A2: a2}})

		if stable := chain.PoleRadius() < 1; stable != chain.IsStable() {
			t.Fatalf("A2=%v: PoleRadius %v but IsStable %v", a2, chain.PoleRadius(), chain.IsStable())
		}
	}
}
