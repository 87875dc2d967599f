package analog

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
)

// MaxOrder is the largest order the selectors return. Tighter specifications
// fail with ErrInvalidSpecification. Above it the expanded Chebyshev
// denominator loses the passband edge to coefficient roundoff.
const MaxOrder = 24

// Selection is the outcome of order selection: the smallest order meeting a
// Spec and the cutoff frequency to hand to the prototype designer.
type Selection struct {
	Order  int
	Cutoff float64
}

// ButterworthOrder returns the smallest Butterworth order meeting s:
//
//	N = ceil(log10((10^(Rp/10)-1) / (10^(As/10)-1)) / (2 log10(Wp/Ws)))
//
// and the cutoff Wp / (10^(Rp/10)-1)^(1/(2N)), which puts the passband edge
// exactly at Rp dB. When As is at or below the ripple level the requirement
// is met by N = 1.
func ButterworthOrder(s Spec) (Selection, error) {
	if err := s.Validate(); err != nil {
		return Selection{}, err
	}

	rp := core.DBPowerToLinear(s.Rp) - 1
	as := core.DBPowerToLinear(s.As) - 1

	n, err := ceilOrder(math.Log10(rp/as) / (2 * math.Log10(s.Wp/s.Ws)))
	if err != nil {
		return Selection{}, err
	}

	cutoff := s.Wp / math.Pow(rp, 1/(2*float64(n)))

	return Selection{Order: n, Cutoff: cutoff}, nil
}

// Chebyshev1Order returns the smallest Chebyshev type I order meeting s:
//
//	N = ceil(log10(g + sqrt(g^2-1)) / log10(Wr + sqrt(Wr^2-1)))
//
// with eps = sqrt(10^(Rp/10)-1), A = 10^(As/20), Wr = Ws/Wp and
// g = sqrt(A^2-1)/eps. The cutoff is Wp, the ripple band edge.
func Chebyshev1Order(s Spec) (Selection, error) {
	if err := s.Validate(); err != nil {
		return Selection{}, err
	}

	eps := core.RippleFactor(s.Rp)
	a := core.DBToLinear(s.As)
	wr := s.Ws / s.Wp
	g := math.Sqrt(a*a-1) / eps

	n := 1
	if g > 1 {
		var err error

		n, err = ceilOrder(math.Log10(g+math.Sqrt(g*g-1)) / math.Log10(wr+math.Sqrt(wr*wr-1)))
		if err != nil {
			return Selection{}, err
		}
	}

	return Selection{Order: n, Cutoff: s.Wp}, nil
}

// ceilOrder rounds an analytic order up. Non-positive and NaN requirements
// (As at or below the ripple level) map to 1.
func ceilOrder(x float64) (int, error) {
	if !(x > 1) {
		return 1, nil
	}

	if x > MaxOrder {
		return 0, fmt.Errorf("%w: required order %.4g exceeds %d", ErrInvalidSpecification, x, MaxOrder)
	}

	return int(math.Ceil(x)), nil
}
