package biquad

import (
	"cmp"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// Poles returns the z-plane poles of the section, as many as its Order:
// the roots of z^2 + A1 z + A2, or of z + A1 for a first-order section.
// Poles at the origin that only balance numerator delays are not reported.
// Non-finite coefficients yield nil.
func (c *Coefficients) Poles() []complex128 {
	degree := c.Order()
	if degree == 0 {
		return nil
	}

	roots, err := polyroot.Roots([]float64{1, c.A1, c.A2}[:degree+1])
	if err != nil {
		return nil
	}

	return roots
}

// Poles returns the poles of every section, sorted by increasing magnitude.
func (c *Chain) Poles() []complex128 {
	var out []complex128
	for i := range c.sections {
		out = append(out, c.sections[i].Poles()...)
	}

	slices.SortStableFunc(out, func(a, b complex128) int { return cmp.Compare(cmplx.Abs(a), cmplx.Abs(b)) })

	return out
}

// PoleRadius returns the largest pole magnitude of the chain. A chain is
// stable exactly when this is below 1; the distance to 1 is its stability
// margin.
func (c *Chain) PoleRadius() float64 {
	r := 0.0
	for _, p := range c.Poles() {
		r = max(r, cmplx.Abs(p))
	}

	return r
}
