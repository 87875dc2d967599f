package polyroot

import (
	"math"
	"math/cmplx"
)

// TrimLeadingZeros returns c without its leading zero coefficients. The
// result shares storage with c.
func TrimLeadingZeros(c []float64) []float64 {
	for len(c) > 0 && c[0] == 0 {
		c = c[1:]
	}

	return c
}

// Poly expands the monic polynomial with the given roots, returning its
// coefficients in descending power order. Poly(nil) is [1].
func Poly(roots []complex128) []complex128 {
	out := make([]complex128, 1, len(roots)+1)
	out[0] = 1

	for _, r := range roots {
		out = append(out, 0)
		for i := len(out) - 1; i > 0; i-- {
			out[i] -= r * out[i-1]
		}
	}

	return out
}

// RealPart splits a complex polynomial into its real coefficients and the
// largest imaginary residue relative to the largest coefficient magnitude.
// A relative residue of zero means the polynomial was exactly real.
func RealPart(c []complex128) ([]float64, float64) {
	out := make([]float64, len(c))
	maxImag := 0.0
	maxMag := 0.0

	for i, v := range c {
		out[i] = real(v)
		maxImag = math.Max(maxImag, math.Abs(imag(v)))
		maxMag = math.Max(maxMag, cmplx.Abs(v))
	}

	if maxMag == 0 {
		return out, 0
	}

	return out, maxImag / maxMag
}

// Conv multiplies two complex polynomials (either power order; the product
// keeps the same order).
func Conv(a, b []complex128) []complex128 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}

	out := make([]complex128, len(a)+len(b)-1)
	for i, x := range a {
		for j, y := range b {
			out[i+j] += x * y
		}
	}

	return out
}

// ToComplex widens real coefficients to complex128.
func ToComplex(c []float64) []complex128 {
	out := make([]complex128, len(c))
	for i, v := range c {
		out[i] = complex(v, 0)
	}

	return out
}

// PolyDiv divides num by den (both descending powers) and returns the
// quotient and the remainder. The remainder has length len(den)-1.
func PolyDiv(num, den []float64) ([]float64, []float64, error) {
	den = TrimLeadingZeros(den)
	if len(den) == 0 {
		return nil, nil, ErrDegeneratePolynomial
	}

	num = TrimLeadingZeros(num)

	remLen := len(den) - 1
	if len(num) < len(den) {
		rem := make([]float64, remLen)
		copy(rem[remLen-len(num):], num)

		return nil, rem, nil
	}

	work := append([]float64(nil), num...)
	quot := make([]float64, len(num)-len(den)+1)

	for i := range quot {
		q := work[i] / den[0]
		quot[i] = q

		for j := range den {
			work[i+j] -= q * den[j]
		}
	}

	rem := append([]float64(nil), work[len(quot):]...)

	return quot, rem, nil
}

// Eulerian returns the coefficients of the Eulerian polynomial A_m in
// ascending power order: A_m(x) = sum_j A(m, j) x^j, j = 0..m-1, where
// A(m, j) counts permutations of m elements with j ascents. A_0 is [1].
//
// It satisfies sum_{n>=0} n^m x^n = x A_m(x) / (1-x)^(m+1) for m >= 1.
func Eulerian(m int) []float64 {
	if m <= 0 {
		return []float64{1}
	}

	row := []float64{1}
	for n := 2; n <= m; n++ {
		next := make([]float64, n)
		for j := range next {
			if j < len(row) {
				next[j] += float64(j+1) * row[j]
			}

			if j > 0 {
				next[j] += float64(n-j) * row[j-1]
			}
		}

		row = next
	}

	return row
}
