package lti

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

var (
	// ErrInvalidInput is returned for an undefined system (empty or all-zero
	// denominator), non-finite coefficients, or an operation applied to the
	// wrong domain.
	ErrInvalidInput = errors.New("lti: invalid input")

	// ErrNumericalInstability is returned when an intermediate result
	// violates an expected mathematical property, such as a non-negligible
	// imaginary residue in a polynomial that must be real.
	ErrNumericalInstability = errors.New("lti: numerical instability")
)

// ImagTol is the relative imaginary residue tolerated when a complex
// polynomial is reduced to real coefficients.
const ImagTol = 1e-9

// Domain selects the variable of a transfer function.
type Domain int

const (
	// Continuous is the s-domain. Coefficients are in descending powers of s.
	Continuous Domain = iota
	// Discrete is the z-domain. Coefficients are in ascending powers of z^-1.
	Discrete
)

// String returns "continuous" or "discrete".
func (d Domain) String() string {
	switch d {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	default:
		return fmt.Sprintf("Domain(%d)", int(d))
	}
}

// TransferFunction is an immutable rational transfer function B/A.
//
// In the continuous domain
//
//	H(s) = (b0 s^M + ... + bM) / (s^N + a1 s^(N-1) + ... + aN)
//
// and in the discrete domain
//
//	H(z) = (b0 + b1 z^-1 + ...) / (1 + a1 z^-1 + ...)
//
// The denominator is always normalized so that a0 = 1.
// The zero value has an empty denominator and is not a valid system.
type TransferFunction struct {
	b, a   []float64
	domain Domain
}

// NewTransferFunction builds a transfer function from numerator b and
// denominator a in the coefficient order of the given domain. The slices are
// copied. Continuous coefficients have their leading zeros stripped; discrete
// denominators must have a0 != 0.
func NewTransferFunction(b, a []float64, domain Domain) (TransferFunction, error) {
	if domain != Continuous && domain != Discrete {
		return TransferFunction{}, fmt.Errorf("%w: unknown domain %d", ErrInvalidInput, int(domain))
	}

	if err := checkFinite("numerator", b); err != nil {
		return TransferFunction{}, err
	}

	if err := checkFinite("denominator", a); err != nil {
		return TransferFunction{}, err
	}

	if domain == Continuous {
		a = polyroot.TrimLeadingZeros(a)
		b = polyroot.TrimLeadingZeros(b)
	}

	if len(a) == 0 || isAllZero(a) {
		return TransferFunction{}, fmt.Errorf("%w: denominator is empty or all zero", ErrInvalidInput)
	}

	if a[0] == 0 {
		return TransferFunction{}, fmt.Errorf("%w: leading denominator coefficient is zero: %v", ErrInvalidInput, a)
	}

	if len(b) == 0 {
		b = []float64{0}
	}

	a0 := a[0]
	tf := TransferFunction{
		b:      make([]float64, len(b)),
		a:      make([]float64, len(a)),
		domain: domain,
	}

	for i, v := range b {
		tf.b[i] = v / a0
	}

	for i, v := range a {
		tf.a[i] = v / a0
	}

	return tf, nil
}

// Num returns a copy of the numerator coefficients.
func (h TransferFunction) Num() []float64 { return append([]float64(nil), h.b...) }

// Den returns a copy of the denominator coefficients (Den()[0] == 1).
func (h TransferFunction) Den() []float64 { return append([]float64(nil), h.a...) }

// Domain returns the transfer function domain.
func (h TransferFunction) Domain() Domain { return h.domain }

// IsZero reports whether h is the zero value (no denominator).
func (h TransferFunction) IsZero() bool { return len(h.a) == 0 }

// Order returns the denominator order N.
func (h TransferFunction) Order() int {
	if len(h.a) == 0 {
		return 0
	}

	return len(h.a) - 1
}

// IsProper reports whether the numerator degree does not exceed the
// denominator degree. Discrete transfer functions in z^-1 are always causal
// and count as proper.
func (h TransferFunction) IsProper() bool {
	if h.domain == Discrete {
		return true
	}

	return len(h.b) <= len(h.a)
}

// Eval evaluates H at x: x is s for a continuous transfer function and z for
// a discrete one.
func (h TransferFunction) Eval(x complex128) complex128 {
	if h.domain == Discrete {
		if x == 0 {
			return cmplx.Inf()
		}

		zi := 1 / x

		return evalAscending(h.b, zi) / evalAscending(h.a, zi)
	}

	return polyroot.PolyEvalReal(h.b, x) / polyroot.PolyEvalReal(h.a, x)
}

// EvalFrequency evaluates the frequency response: H(jw) for a continuous
// transfer function (w in rad/s) and H(e^jw) for a discrete one (w in
// rad/sample).
func (h TransferFunction) EvalFrequency(w float64) complex128 {
	if h.domain == Discrete {
		return h.Eval(cmplx.Exp(complex(0, w)))
	}

	return h.Eval(complex(0, w))
}

// ImpulseResponse returns the first n samples of the impulse response of a
// discrete transfer function by running its difference equation.
func (h TransferFunction) ImpulseResponse(n int) ([]float64, error) {
	if h.domain != Discrete || h.IsZero() {
		return nil, fmt.Errorf("%w: impulse response needs a discrete transfer function", ErrInvalidInput)
	}

	if n <= 0 {
		return nil, nil
	}

	out := make([]float64, n)
	for k := range n {
		var y float64
		if k < len(h.b) {
			y = h.b[k]
		}

		for i := 1; i < len(h.a) && i <= k; i++ {
			y -= h.a[i] * out[k-i]
		}

		out[k] = y
	}

	return out, nil
}

// String formats h for diagnostics.
func (h TransferFunction) String() string {
	return fmt.Sprintf("%s TF{b=%v a=%v}", h.domain, h.b, h.a)
}

// evalAscending evaluates c0 + c1 x + c2 x^2 + ...
func evalAscending(c []float64, x complex128) complex128 {
	var v complex128
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + complex(c[i], 0)
	}

	return v
}

func isAllZero(c []float64) bool {
	for _, v := range c {
		if v != 0 {
			return false
		}
	}

	return true
}

func checkFinite(name string, c []float64) error {
	for i, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s coefficient %d is not finite: %v", ErrInvalidInput, name, i, v)
		}
	}

	return nil
}
