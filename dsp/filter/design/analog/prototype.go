package analog

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/core"
	"github.com/cwbudde/algo-filterdesign/dsp/filter/lti"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// prototypeTol is the relative error allowed in the passband edge gain of an
// expanded prototype.
const prototypeTol = 1e-4

// ButterworthPrototype returns the unnormalized Butterworth analog lowpass
// of the given order with -3 dB cutoff at cutoff (rad/s):
//
//	H(s) = cutoff^N / prod(s - cutoff*p_k)
//
// where p_k = -exp(j*pi*m/(2N)), m = -N+1, -N+3, ..., N-1, are the
// normalized poles on the left half of the unit circle.
func ButterworthPrototype(order int, cutoff float64) (lti.TransferFunction, error) {
	if err := checkOrderCutoff(order, cutoff); err != nil {
		return lti.TransferFunction{}, err
	}

	poles := make([]complex128, order)
	for i := range order {
		theta := math.Pi * float64(2*i-order+1) / float64(2*order)
		poles[i] = complex(-cutoff*math.Cos(theta), -cutoff*math.Sin(theta))
	}

	zpk := lti.ZPK{
		Poles: poles,
		Gain:  math.Pow(cutoff, float64(order)),
	}

	return checkPrototype(zpk, cutoff, math.Sqrt(0.5))
}

// Chebyshev1Prototype returns the unnormalized Chebyshev type I analog
// lowpass of the given order, with rippleDB of passband ripple up to the
// ripple band edge cutoff (rad/s).
//
// The normalized poles are p_m = -sinh(mu + j*theta_m) with
// mu = asinh(1/eps)/N. The gain is first set for unit peak passband gain at
// unit cutoff, then rescaled by the ratio of the constant denominator
// coefficient after and before frequency scaling so that |H(j*cutoff)| sits
// exactly at -rippleDB.
//
// Both prototypes return lti.ErrNumericalInstability when the expanded
// polynomials no longer match the pole positions they were built from.
func Chebyshev1Prototype(order int, rippleDB, cutoff float64) (lti.TransferFunction, error) {
	if err := checkOrderCutoff(order, cutoff); err != nil {
		return lti.TransferFunction{}, err
	}

	if !(rippleDB > 0) || math.IsInf(rippleDB, 0) {
		return lti.TransferFunction{}, fmt.Errorf("%w: passband ripple must be > 0 dB and finite: %g",
			ErrInvalidSpecification, rippleDB)
	}

	eps := core.RippleFactor(rippleDB)
	mu := math.Asinh(1/eps) / float64(order)
	sh, ch := math.Sinh(mu), math.Cosh(mu)

	poles := make([]complex128, order)
	gain := complex(1, 0)

	for i := range order {
		theta := math.Pi * float64(2*i-order+1) / float64(2*order)
		poles[i] = complex(-sh*math.Cos(theta), -ch*math.Sin(theta))
		gain *= -poles[i]
	}

	k := real(gain)
	if order%2 == 0 {
		k /= math.Sqrt(1 + eps*eps)
	}

	before := constantTerm(poles)

	for i := range poles {
		poles[i] *= complex(cutoff, 0)
	}

	after := constantTerm(poles)
	if before == 0 || math.IsInf(after, 0) {
		return lti.TransferFunction{}, fmt.Errorf("%w: gain rescale %g/%g is not finite (order %d, cutoff %g)",
			lti.ErrNumericalInstability, after, before, order, cutoff)
	}

	zpk := lti.ZPK{
		Poles: poles,
		Gain:  k * after / before,
	}

	return checkPrototype(zpk, cutoff, 1/math.Sqrt(1+eps*eps))
}

// checkPrototype expands zpk and verifies the polynomial form against the
// closed form: |H(j*cutoff)| within prototypeTol of edgeGain and every root
// of the denominator in the open left half-plane. Roundoff in the expansion
// breaks both at high orders.
func checkPrototype(zpk lti.ZPK, cutoff, edgeGain float64) (lti.TransferFunction, error) {
	h, err := zpk.TransferFunction(lti.Continuous)
	if err != nil {
		return lti.TransferFunction{}, err
	}

	if got := cmplx.Abs(h.EvalFrequency(cutoff)); !(math.Abs(got-edgeGain) <= prototypeTol*edgeGain) {
		return lti.TransferFunction{}, fmt.Errorf("%w: order %d gain at cutoff %g is %g, want %g",
			lti.ErrNumericalInstability, h.Order(), cutoff, got, edgeGain)
	}

	roots, err := polyroot.Roots(h.Den())
	if err != nil {
		return lti.TransferFunction{}, fmt.Errorf("%w: order %d denominator: %w", lti.ErrNumericalInstability, h.Order(), err)
	}

	for _, p := range roots {
		if real(p) >= 0 {
			return lti.TransferFunction{}, fmt.Errorf("%w: order %d denominator root %v is not in the left half-plane",
				lti.ErrNumericalInstability, h.Order(), p)
		}
	}

	return h, nil
}

// constantTerm returns the real constant coefficient of the monic polynomial
// with the given roots.
func constantTerm(roots []complex128) float64 {
	p := polyroot.Poly(roots)

	return real(p[len(p)-1])
}

func checkOrderCutoff(order int, cutoff float64) error {
	if order < 1 {
		return fmt.Errorf("%w: order must be >= 1: %d", ErrInvalidOrder, order)
	}

	if !(cutoff > 0) || math.IsInf(cutoff, 0) {
		return fmt.Errorf("%w: cutoff must be > 0 and finite: %g", ErrInvalidFrequency, cutoff)
	}

	return nil
}
