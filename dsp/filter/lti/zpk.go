package lti

import (
	"fmt"

	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

// ZPK is the zero/pole/gain form of a transfer function:
//
//	H(x) = Gain * prod(x - Zeros[i]) / prod(x - Poles[j])
//
// with x = s or z. Complex zeros and poles must come in conjugate pairs for
// the expanded polynomials to be real.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// TransferFunction expands z into polynomial form. It returns
// ErrNumericalInstability when an expanded coefficient has an imaginary
// residue above ImagTol (relative), which happens when zeros or poles are not
// closed under conjugation.
//
// In the discrete domain the result is expressed in powers of z^-1; a ZPK
// with more zeros than poles is non-causal and rejected with ErrInvalidInput.
func (z ZPK) TransferFunction(domain Domain) (TransferFunction, error) {
	num, res := polyroot.RealPart(polyroot.Poly(z.Zeros))
	if res > ImagTol {
		return TransferFunction{}, fmt.Errorf("%w: numerator imaginary residue %.3g exceeds %.0e (zeros %v)",
			ErrNumericalInstability, res, ImagTol, z.Zeros)
	}

	den, res := polyroot.RealPart(polyroot.Poly(z.Poles))
	if res > ImagTol {
		return TransferFunction{}, fmt.Errorf("%w: denominator imaginary residue %.3g exceeds %.0e (poles %v)",
			ErrNumericalInstability, res, ImagTol, z.Poles)
	}

	for i := range num {
		num[i] *= z.Gain
	}

	if domain == Discrete {
		if len(z.Zeros) > len(z.Poles) {
			return TransferFunction{}, fmt.Errorf("%w: %d zeros and %d poles is non-causal",
				ErrInvalidInput, len(z.Zeros), len(z.Poles))
		}

		delayed := make([]float64, len(z.Poles)-len(z.Zeros), len(den))
		num = append(delayed, num...)
	}

	return NewTransferFunction(num, den, domain)
}

// ZPK factors h into zeros, poles and gain. Zeros and poles are returned in
// canonical order (increasing real part, then imaginary part).
//
// A discrete transfer function is read as a ratio of polynomials in z after
// padding b and a to equal length, so delays show up as zeros or poles at
// the origin.
func (h TransferFunction) ZPK() (ZPK, error) {
	if h.IsZero() {
		return ZPK{}, fmt.Errorf("%w: zero-value transfer function", ErrInvalidInput)
	}

	b, a := h.b, h.a
	if h.domain == Discrete {
		n := max(len(b), len(a))
		b = padRight(b, n)
		a = padRight(a, n)
	}

	poles, err := polyroot.Roots(a)
	if err != nil {
		return ZPK{}, fmt.Errorf("%w: denominator roots: %w", ErrNumericalInstability, err)
	}

	b = polyroot.TrimLeadingZeros(b)
	if len(b) == 0 {
		return ZPK{Poles: poles}, nil
	}

	zeros, err := polyroot.Roots(b)
	if err != nil {
		return ZPK{}, fmt.Errorf("%w: numerator roots: %w", ErrNumericalInstability, err)
	}

	return ZPK{
		Zeros: zeros,
		Poles: poles,
		Gain:  b[0] / polyroot.TrimLeadingZeros(a)[0],
	}, nil
}

func padRight(c []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, c)

	return out
}
