package polyroot

// GroupTol is the relative backward error assumed for computed denominator
// roots when Residue decides whether nearby roots form one repeated pole.
const GroupTol = 1e-12

// Term is the partial-fraction contribution of one distinct pole:
//
//	Residues[0]/(s-Pole) + Residues[1]/(s-Pole)^2 + ... + Residues[m-1]/(s-Pole)^m
type Term struct {
	Pole         complex128
	Multiplicity int
	Residues     []complex128
}

// PartialFractions is the expansion b(s)/a(s) = sum(Terms) + Direct(s), with
// Direct in descending power order (empty for a strictly proper ratio).
type PartialFractions struct {
	Terms  []Term
	Direct []float64
}

// Residue computes the partial-fraction expansion of b(s)/a(s). Both
// polynomials are real and in descending power order. Roots of a are merged
// into repeated poles by GroupRoots with the backward error tol.
//
// The residues of a pole p with multiplicity m are the first m Taylor
// coefficients of r(s)/q(s) around p, where r is the proper remainder of
// b/a and q = a/(s-p)^m.
func Residue(b, a []float64, tol float64) (PartialFractions, error) {
	a = TrimLeadingZeros(a)
	if len(a) == 0 {
		return PartialFractions{}, ErrDegeneratePolynomial
	}

	direct, rem, err := PolyDiv(b, a)
	if err != nil {
		return PartialFractions{}, err
	}

	if len(a) == 1 {
		return PartialFractions{Direct: direct}, nil
	}

	roots, err := Roots(a)
	if err != nil {
		return PartialFractions{}, err
	}

	clusters := GroupRoots(a, roots, tol)
	remC := ToComplex(rem)
	terms := make([]Term, len(clusters))

	for i, cl := range clusters {
		others := make([]complex128, 0, len(roots))

		for j, other := range clusters {
			if j == i {
				continue
			}

			for range other.Multiplicity {
				others = append(others, other.Root)
			}
		}

		q := Poly(others)
		for k := range q {
			q[k] *= complex(a[0], 0)
		}

		m := cl.Multiplicity
		ratio := seriesDiv(taylor(remC, cl.Root, m), taylor(q, cl.Root, m))

		res := make([]complex128, m)
		for k := 1; k <= m; k++ {
			res[k-1] = ratio[m-k]
		}

		terms[i] = Term{Pole: cl.Root, Multiplicity: m, Residues: res}
	}

	return PartialFractions{Terms: terms, Direct: direct}, nil
}

// taylor returns the first count Taylor coefficients of the polynomial c
// (descending powers) around x0, in ascending powers of (x - x0). It uses
// repeated synthetic division.
func taylor(c []complex128, x0 complex128, count int) []complex128 {
	out := make([]complex128, count)
	work := append([]complex128(nil), c...)

	for k := range count {
		if len(work) == 0 {
			break
		}

		acc := work[0]
		for i := 1; i < len(work); i++ {
			acc = acc*x0 + work[i]
			work[i] = acc
		}

		out[k] = work[len(work)-1]
		work = work[:len(work)-1]
	}

	return out
}

// seriesDiv divides two power series truncated to len(num) terms.
func seriesDiv(num, den []complex128) []complex128 {
	out := make([]complex128, len(num))
	for j := range num {
		v := num[j]
		for i := 1; i <= j && i < len(den); i++ {
			v -= den[i] * out[j-i]
		}

		out[j] = v / den[0]
	}

	return out
}
