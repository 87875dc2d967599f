package polyroot

import (
	"cmp"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// canonicalTol is the relative tolerance under which two real parts are
// considered equal when ordering roots.
const canonicalTol = 1e-9

// polishMaxStep bounds a Newton correction relative to max(1, |root|).
const polishMaxStep = 1e-9

// Roots returns the roots of a real polynomial given in descending power
// order, in canonical order (see SortCanonical).
//
// Leading zeros are ignored and trailing zeros are returned as exact roots at
// the origin. The remaining roots are the eigenvalues of the companion matrix,
// refined by Newton steps against the original coefficients.
func Roots(c []float64) ([]complex128, error) {
	c = TrimLeadingZeros(c)
	if len(c) == 0 {
		return nil, ErrDegeneratePolynomial
	}

	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrDegeneratePolynomial
		}
	}

	zeros := 0
	for len(c) > 1 && c[len(c)-1] == 0 {
		c = c[:len(c)-1]
		zeros++
	}

	roots := make([]complex128, 0, len(c)-1+zeros)

	if len(c) > 1 {
		found, err := companionRoots(c)
		if err != nil {
			return nil, err
		}

		roots = append(roots, found...)
	}

	for range zeros {
		roots = append(roots, 0)
	}

	SortCanonical(roots)

	return roots, nil
}

func companionRoots(c []float64) ([]complex128, error) {
	n := len(c) - 1
	if n == 1 {
		return []complex128{complex(-c[1]/c[0], 0)}, nil
	}

	comp := mat.NewDense(n, n, nil)
	for j := range n {
		comp.Set(0, j, -c[j+1]/c[0])
	}

	for i := 1; i < n; i++ {
		comp.Set(i, i-1, 1)
	}

	var eig mat.Eigen

	var roots []complex128

	if eig.Factorize(comp, mat.EigenNone) {
		roots = eig.Values(nil)
	} else {
		coeff := make([]complex128, len(c))
		for i, v := range c {
			coeff[i] = complex(v, 0)
		}

		var err error

		roots, err = weierstrass(coeff)
		if err != nil {
			return nil, err
		}
	}

	for i := range roots {
		roots[i] = polish(c, roots[i])
	}

	return roots, nil
}

// polish applies a few Newton steps to x, keeping a step only when it is
// below polishMaxStep and reduces the residual. Members of a repeated-root
// cluster take large steps and are left for GroupRoots to merge.
func polish(c []float64, x complex128) complex128 {
	deriv := make([]float64, len(c)-1)

	n := len(c) - 1
	for i := range deriv {
		deriv[i] = c[i] * float64(n-i)
	}

	res := cmplx.Abs(PolyEvalReal(c, x))

	for range 8 {
		d := PolyEvalReal(deriv, x)
		if d == 0 {
			break
		}

		step := PolyEvalReal(c, x) / d
		if cmplx.Abs(step) > polishMaxStep*math.Max(1, cmplx.Abs(x)) {
			break
		}

		next := x - step
		nextRes := cmplx.Abs(PolyEvalReal(c, next))

		if !(nextRes < res) {
			break
		}

		x, res = next, nextRes
	}

	return x
}

// SortCanonical orders roots by increasing real part, then increasing
// imaginary part. Real parts within a small relative tolerance count as
// equal so conjugate pairs sort by their imaginary parts.
func SortCanonical(roots []complex128) {
	slices.SortStableFunc(roots, compareCanonical)
}

func compareCanonical(a, b complex128) int {
	scale := math.Max(1, math.Max(cmplx.Abs(a), cmplx.Abs(b)))
	if math.Abs(real(a)-real(b)) > canonicalTol*scale {
		return cmp.Compare(real(a), real(b))
	}

	return cmp.Compare(imag(a), imag(b))
}

// Cluster is a root together with its multiplicity.
type Cluster struct {
	Root         complex128
	Multiplicity int
}

// clusterRadius bounds the distance, relative to max(1, |root|), between
// members of one repeated-root cluster.
const clusterRadius = 0.1

// GroupRoots merges the computed roots of the real polynomial c (descending
// powers) into repeated roots.
//
// A computed m-fold root splits into m roots spread by about
// (tol*S/|q|)^(1/m), where S bounds the size of c near the root, q is the
// cofactor of the repeated factor and tol is the relative backward error of
// the roots. A fixed distance cannot separate such a cluster from distinct
// neighbours for every m, so each root is tried with its m-1 nearest
// unclaimed neighbours within clusterRadius, and the largest m whose spread
// fits that bound is taken. The cluster root is the mean of its members,
// which is more accurate than any single member. Clusters are returned in
// canonical order.
func GroupRoots(c []float64, roots []complex128, tol float64) []Cluster {
	coeff := ToComplex(TrimLeadingZeros(c))
	magnitude := make([]complex128, len(coeff))

	for i, v := range coeff {
		magnitude[i] = complex(cmplx.Abs(v), 0)
	}

	used := make([]bool, len(roots))
	clusters := make([]Cluster, 0, len(roots))

	for i, r := range roots {
		if used[i] {
			continue
		}

		near := nearestUnused(roots, used, i)
		best := Cluster{Root: r, Multiplicity: 1}
		claimed := 0
		sum := r

		for k, j := range near {
			sum += roots[j]
			m := k + 2
			mean := sum / complex(float64(m), 0)

			if fitsRepeatedRoot(coeff, magnitude, roots, near[:k+1], i, mean, m, tol) {
				best = Cluster{Root: mean, Multiplicity: m}
				claimed = k + 1
			}
		}

		used[i] = true
		for _, j := range near[:claimed] {
			used[j] = true
		}

		clusters = append(clusters, best)
	}

	slices.SortStableFunc(clusters, func(a, b Cluster) int {
		return compareCanonical(a.Root, b.Root)
	})

	return clusters
}

// nearestUnused returns the indices of the unclaimed roots within
// clusterRadius of roots[i], nearest first.
func nearestUnused(roots []complex128, used []bool, i int) []int {
	limit := clusterRadius * math.Max(1, cmplx.Abs(roots[i]))

	var near []int

	for j := range roots {
		if j != i && !used[j] && cmplx.Abs(roots[j]-roots[i]) <= limit {
			near = append(near, j)
		}
	}

	slices.SortStableFunc(near, func(a, b int) int {
		return cmp.Compare(cmplx.Abs(roots[a]-roots[i]), cmplx.Abs(roots[b]-roots[i]))
	})

	return near
}

// fitsRepeatedRoot reports whether roots[first] and roots[members] lie
// within the spread expected of an m-fold root of coeff at mean.
func fitsRepeatedRoot(coeff, magnitude, roots []complex128, members []int, first int, mean complex128, m int, tol float64) bool {
	spread := cmplx.Abs(roots[first] - mean)
	for _, j := range members {
		spread = math.Max(spread, cmplx.Abs(roots[j]-mean))
	}

	if spread == 0 {
		return true
	}

	// Around an m-fold root the m-th Taylor coefficient is the cofactor q.
	q := cmplx.Abs(taylor(coeff, mean, m+1)[m])
	if q == 0 {
		return false
	}

	size := real(PolyEval(magnitude, complex(cmplx.Abs(mean), 0)))

	return spread <= math.Pow(tol*size/q, 1/float64(m))
}
