package transform

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-filterdesign/dsp/filter/lti"
	"github.com/cwbudde/algo-filterdesign/internal/polyroot"
)

var (
	// ErrInvalidSamplingInterval is returned when T is not a positive finite
	// number.
	ErrInvalidSamplingInterval = errors.New("transform: invalid sampling interval")

	// ErrImproperTransferFunction is returned when the numerator degree
	// exceeds the denominator degree.
	ErrImproperTransferFunction = errors.New("transform: improper transfer function")

	// ErrUnsupportedPoleMultiplicity is returned for a pole repeated more than
	// MaxPoleMultiplicity times.
	ErrUnsupportedPoleMultiplicity = errors.New("transform: unsupported pole multiplicity")
)

// MaxPoleMultiplicity is the largest pole multiplicity ImpulseInvariance
// accepts.
const MaxPoleMultiplicity = 8

// roundoffTol is the size, relative to the magnitude of its summands, under
// which a numerator coefficient is treated as cancellation residue.
const roundoffTol = 1e-12

// ImpulseInvariance maps a continuous transfer function h to the discrete
// transfer function whose impulse response is h's impulse response sampled
// every T seconds.
//
// h is expanded into partial fractions. A term R/(s-p)^k, with impulse
// response R t^(k-1) e^(pt)/(k-1)!, becomes
//
//	R T^(k-1)/(k-1)! * x A_(k-1)(x) / (1-x)^k,  x = exp(pT) z^-1
//
// where A_m is the Eulerian polynomial; for k = 1 this is R/(1 - exp(pT) z^-1).
// The terms are combined over the common denominator prod (1 - exp(p_i T) z^-1)^m_i.
// A constant direct term of h (equal numerator and denominator degree) is
// carried through unchanged.
//
// The result has the same order as h. Its numerator has one coefficient less
// than the denominator unless h has a direct term.
func ImpulseInvariance(h lti.TransferFunction, T float64) (lti.TransferFunction, error) {
	if !(T > 0) || math.IsInf(T, 0) {
		return lti.TransferFunction{}, fmt.Errorf("%w: %v", ErrInvalidSamplingInterval, T)
	}

	if h.IsZero() || h.Domain() != lti.Continuous {
		return lti.TransferFunction{}, fmt.Errorf("%w: impulse invariance needs a continuous transfer function, got %v",
			lti.ErrInvalidInput, h)
	}

	if !h.IsProper() {
		return lti.TransferFunction{}, fmt.Errorf("%w: numerator degree %d exceeds denominator degree %d",
			ErrImproperTransferFunction, len(h.Num())-1, h.Order())
	}

	pf, err := polyroot.Residue(h.Num(), h.Den(), polyroot.GroupTol)
	if err != nil {
		return lti.TransferFunction{}, fmt.Errorf("%w: partial fractions of %v: %w", lti.ErrNumericalInstability, h, err)
	}

	for _, term := range pf.Terms {
		if term.Multiplicity > MaxPoleMultiplicity {
			return lti.TransferFunction{}, fmt.Errorf("%w: pole %v repeated %d times (max %d)",
				ErrUnsupportedPoleMultiplicity, term.Pole, term.Multiplicity, MaxPoleMultiplicity)
		}
	}

	mapped := make([]complex128, len(pf.Terms))
	for i, term := range pf.Terms {
		mapped[i] = cmplx.Exp(term.Pole * complex(T, 0))
	}

	// den and num are built alongside the same products of coefficient
	// magnitudes. Conjugate terms cancel in the sum, so roundoff is measured
	// against the summands rather than the result.
	den := []complex128{1}
	denScale := []complex128{1}

	for i, term := range pf.Terms {
		den = polyroot.Conv(den, powerFactor(mapped[i], term.Multiplicity))
		denScale = polyroot.Conv(denScale, magnitudeFactor(mapped[i], term.Multiplicity))
	}

	order := len(den) - 1
	num := make([]complex128, order+1)
	numScale := make([]float64, order+1)

	for i, term := range pf.Terms {
		others := []complex128{1}
		othersScale := []complex128{1}

		for j, other := range pf.Terms {
			if j != i {
				others = polyroot.Conv(others, powerFactor(mapped[j], other.Multiplicity))
				othersScale = polyroot.Conv(othersScale, magnitudeFactor(mapped[j], other.Multiplicity))
			}
		}

		for k := 1; k <= term.Multiplicity; k++ {
			if term.Residues[k-1] == 0 {
				continue
			}

			tn := termNumerator(term.Residues[k-1], mapped[i], k, T)
			part := polyroot.Conv(tn, others)
			part = polyroot.Conv(part, powerFactor(mapped[i], term.Multiplicity-k))

			partScale := polyroot.Conv(magnitudes(tn), othersScale)
			partScale = polyroot.Conv(partScale, magnitudeFactor(mapped[i], term.Multiplicity-k))

			for n, v := range part {
				num[n] += v
				numScale[n] += real(partScale[n])
			}
		}
	}

	if len(pf.Direct) > 0 {
		d := complex(pf.Direct[len(pf.Direct)-1], 0)
		for n, v := range den {
			num[n] += d * v
			numScale[n] += cmplx.Abs(d) * real(denScale[n])
		}
	} else {
		num = num[:order]
		numScale = numScale[:order]
	}

	b, res := realPart(num, numScale)
	if res > lti.ImagTol {
		return lti.TransferFunction{}, fmt.Errorf("%w: numerator imaginary residue %.3g exceeds %.0e",
			lti.ErrNumericalInstability, res, lti.ImagTol)
	}

	flushRoundoff(b, numScale)

	a, res := realPart(den, realParts(denScale))
	if res > lti.ImagTol {
		return lti.TransferFunction{}, fmt.Errorf("%w: denominator imaginary residue %.3g exceeds %.0e",
			lti.ErrNumericalInstability, res, lti.ImagTol)
	}

	return lti.NewTransferFunction(b, a, lti.Discrete)
}

// realPart returns the real parts of c and the largest imaginary part
// relative to the summation scale of its coefficient.
func realPart(c []complex128, scale []float64) ([]float64, float64) {
	out := make([]float64, len(c))
	worst := 0.0

	for i, v := range c {
		out[i] = real(v)
		if scale[i] > 0 {
			worst = math.Max(worst, math.Abs(imag(v))/scale[i])
		}
	}

	return out, worst
}

// flushRoundoff zeroes coefficients below roundoffTol relative to their
// summation scale. b0 = T*h(0) vanishes for a relative degree above one but
// the residue sum leaves a few ulps behind, which would otherwise show up as
// a zero near infinity.
func flushRoundoff(c, scale []float64) {
	for i, v := range c {
		if math.Abs(v) <= roundoffTol*scale[i] {
			c[i] = 0
		}
	}
}

func realParts(c []complex128) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}

	return out
}

func magnitudes(c []complex128) []complex128 {
	out := make([]complex128, len(c))
	for i, v := range c {
		out[i] = complex(cmplx.Abs(v), 0)
	}

	return out
}

// magnitudeFactor returns (1 + |a| z^-1)^m, the coefficient-wise bound of
// powerFactor(a, m).
func magnitudeFactor(a complex128, m int) []complex128 {
	return powerFactor(complex(-cmplx.Abs(a), 0), m)
}

// powerFactor returns (1 - a z^-1)^m in ascending powers of z^-1.
func powerFactor(a complex128, m int) []complex128 {
	out := []complex128{1}
	for range m {
		out = polyroot.Conv(out, []complex128{1, -a})
	}

	return out
}

// termNumerator returns the numerator, in ascending powers of z^-1, of the
// z-transform of the sampled R t^(k-1) e^(pt)/(k-1)! over (1 - a z^-1)^k.
func termNumerator(r, a complex128, k int, T float64) []complex128 {
	if k == 1 {
		return []complex128{r}
	}

	scale := r * complex(math.Pow(T, float64(k-1))/factorial(k-1), 0)
	eul := polyroot.Eulerian(k - 1)

	out := make([]complex128, len(eul)+1)
	pow := a

	for j, e := range eul {
		out[j+1] = scale * complex(e, 0) * pow
		pow *= a
	}

	return out
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}

	return f
}
