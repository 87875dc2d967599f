// Package polyroot provides polynomial root finding, polynomial algebra and
// partial-fraction expansion shared by the filter design packages.
//
// Real polynomials are stored in descending power order:
// c[0]*x^n + c[1]*x^(n-1) + ... + c[n].
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
)

// ErrDegeneratePolynomial is returned for a polynomial without a nonzero
// coefficient, with non-finite coefficients, or whose roots could not be
// found.
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// weierstrass refines all roots of a complex polynomial at once with the
// Weierstrass (Durand-Kerner) update
//
//	x_i <- x_i - p(x_i) / prod_{j != i} (x_i - x_j)
//
// starting from points spread on a circle of the Cauchy bound radius. It is
// the fallback when the companion eigenvalue solver does not converge.
func weierstrass(c []complex128) ([]complex128, error) {
	if len(c) < 2 || c[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(c) - 1
	monic := make([]complex128, len(c))

	bound := 0.0
	for i := range c {
		monic[i] = c[i] / c[0]
		if i > 0 {
			bound = math.Max(bound, cmplx.Abs(monic[i]))
		}
	}

	// The offset angle keeps the start points off the real axis so that
	// conjugate pairs can separate.
	x := make([]complex128, n)
	for i := range x {
		x[i] = cmplx.Rect(1+bound, 2*math.Pi*float64(i)/float64(n)+0.4)
	}

	const (
		maxIter = 1000
		stepTol = 1e-14
	)

	for range maxIter {
		largest := 0.0

		for i := range x {
			den := complex(1, 0)
			for j := range x {
				if j != i {
					den *= x[i] - x[j]
				}
			}

			if den == 0 {
				x[i] += complex(1e-10, 1e-10)
				continue
			}

			step := PolyEval(monic, x[i]) / den
			x[i] -= step
			largest = math.Max(largest, cmplx.Abs(step)/math.Max(1, cmplx.Abs(x[i])))
		}

		if largest < stepTol {
			return x, nil
		}
	}

	// Repeated roots converge linearly; accept them on a small residual.
	for _, r := range x {
		if cmplx.Abs(PolyEval(monic, r)) > 1e-6*math.Max(1, math.Pow(cmplx.Abs(r), float64(n))) {
			return nil, ErrDegeneratePolynomial
		}
	}

	return x, nil
}

// PolyEval evaluates a complex polynomial (descending powers) at x by
// Horner's rule.
func PolyEval(c []complex128, x complex128) complex128 {
	var v complex128
	for _, ci := range c {
		v = v*x + ci
	}

	return v
}

// PolyEvalReal evaluates a real polynomial (descending powers) at complex x.
func PolyEvalReal(c []float64, x complex128) complex128 {
	var v complex128
	for _, ci := range c {
		v = v*x + complex(ci, 0)
	}

	return v
}

// IsConjugate reports whether a and b are complex conjugates within the
// relative tolerance tol.
func IsConjugate(a, b complex128, tol float64) bool {
	return math.Abs(real(a)-real(b)) <= tol*math.Max(1, math.Abs(real(a))) &&
		math.Abs(imag(a)+imag(b)) <= tol*math.Max(1, math.Abs(imag(a)))
}

// IsReal reports whether x has a negligible imaginary part relative to its
// magnitude.
func IsReal(x complex128, tol float64) bool {
	return math.Abs(imag(x)) <= tol*math.Max(1, cmplx.Abs(x))
}

// PairConjugates splits roots into conjugate pairs (upper half-plane member
// first) and real roots, in the order they are first met. Each complex root
// is matched with the unused root closest to its conjugate; a match outside
// tol is an ErrDegeneratePolynomial.
func PairConjugates(roots []complex128, tol float64) ([][2]complex128, []float64, error) {
	used := make([]bool, len(roots))

	var (
		pairs [][2]complex128
		reals []float64
	)

	for i, r := range roots {
		if used[i] {
			continue
		}

		used[i] = true

		if IsReal(r, tol) {
			reals = append(reals, real(r))
			continue
		}

		match := -1
		for j := i + 1; j < len(roots); j++ {
			if used[j] {
				continue
			}

			if match < 0 || cmplx.Abs(roots[j]-cmplx.Conj(r)) < cmplx.Abs(roots[match]-cmplx.Conj(r)) {
				match = j
			}
		}

		if match < 0 || !IsConjugate(r, roots[match], tol) {
			return nil, nil, ErrDegeneratePolynomial
		}

		used[match] = true

		upper := complex(real(r), math.Abs(imag(r)))
		pairs = append(pairs, [2]complex128{upper, cmplx.Conj(upper)})
	}

	return pairs, reals, nil
}

// QuadFromRoots returns the monic quadratic z^2 - 2a z + (a^2 + b^2) with
// roots a +- jb, as (1, -2a, a^2+b^2).
func QuadFromRoots(pair [2]complex128) (float64, float64, float64, error) {
	if !IsConjugate(pair[0], pair[1], ConjugateTol) {
		return 0, 0, 0, ErrDegeneratePolynomial
	}

	a, b := real(pair[0]), imag(pair[0])

	return 1, -2 * a, a*a + b*b, nil
}
